package models

import "time"

// Profile is a person under a membership, as offered by the membership
// lookup. Minors log in with a PIN.
type Profile struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	IsMinor   bool   `json:"is_minor"`
}

// Initials returns the first letter of first and last name.
func (p Profile) Initials() string {
	return initials(p.FirstName, p.LastName)
}

// Membership is the billing/household unit stored by the sandbox backend.
type Membership struct {
	ID        string    `bson:"id" json:"id"`
	Number    string    `bson:"number" json:"number"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// MemberProfile is the stored form of a profile, including credentials.
type MemberProfile struct {
	ID           string    `bson:"id" json:"id"`
	MembershipID string    `bson:"membership_id" json:"membership_id"`
	FirstName    string    `bson:"first_name" json:"first_name"`
	LastName     string    `bson:"last_name" json:"last_name"`
	Role         string    `bson:"role" json:"role"`
	IsMinor      bool      `bson:"is_minor" json:"is_minor"`
	IsActive     bool      `bson:"is_active" json:"is_active"`
	PINHash      string    `bson:"pin_hash" json:"-"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// Candidate strips credentials for the profile picker.
func (p MemberProfile) Candidate() Profile {
	return Profile{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName, Role: p.Role, IsMinor: p.IsMinor}
}

// Beneficiary is a profile as listed on the family screen.
type Beneficiary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	IsMinor   bool   `json:"is_minor"`
	IsActive  bool   `json:"is_active"`
}

// Beneficiary converts the stored profile for the family listing.
func (p MemberProfile) Beneficiary() Beneficiary {
	return Beneficiary{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName, Role: p.Role, IsMinor: p.IsMinor, IsActive: p.IsActive}
}

// RoleTitular is the membership holder, the only role allowed to manage
// beneficiaries.
const RoleTitular = "titular"

// SelectProfileRequest is the body of POST /auth/select-profile.
type SelectProfileRequest struct {
	MemberNumber string `json:"member_number"`
}

// SelectProfileResponse lists the profiles under a membership.
type SelectProfileResponse struct {
	Profiles []Profile `json:"profiles"`
}

// LoginRequest is the body of POST /auth/login. Minors send a PIN, adults
// a password.
type LoginRequest struct {
	ProfileID string `json:"profile_id"`
	PIN       string `json:"pin,omitempty"`
	Password  string `json:"password,omitempty"`
}

// LoginResponse carries the member identity and bearer token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
