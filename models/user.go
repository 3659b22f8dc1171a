package models

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// UserType distinguishes club members from staff.
type UserType string

const (
	UserTypeMember   UserType = "member"
	UserTypeEmployee UserType = "employee"
)

// User is the authenticated identity held by the client session.
type User struct {
	ID           string       `json:"id"`
	MembershipID string       `json:"membership_id"`
	MemberNumber MemberNumber `json:"member_number"`
	Role         string       `json:"role"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	UserType     UserType     `json:"user_type"`
	UnitName     string       `json:"unit_name,omitempty"`
}

var ErrMalformedUser = errors.New("malformed user record")

// Validate reports whether the record is usable as a session identity.
func (u User) Validate() error {
	if u.ID == "" {
		return ErrMalformedUser
	}
	if u.UserType != UserTypeMember && u.UserType != UserTypeEmployee {
		return ErrMalformedUser
	}
	return nil
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Initials returns the first letter of first and last name.
func (u User) Initials() string {
	return initials(u.FirstName, u.LastName)
}

// IsEmployee reports whether the user logged in through the staff flow.
func (u User) IsEmployee() bool {
	return u.UserType == UserTypeEmployee
}

func initials(first, last string) string {
	var b strings.Builder
	for _, s := range []string{first, last} {
		for _, r := range s {
			b.WriteRune(r)
			break
		}
	}
	return strings.ToUpper(b.String())
}

// MemberNumber accepts both JSON strings and numbers; some backends send
// the membership number as an integer.
type MemberNumber string

func (m *MemberNumber) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = MemberNumber(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*m = MemberNumber(strconv.FormatInt(i, 10))
		return nil
	}
	*m = MemberNumber(n.String())
	return nil
}

func (m MemberNumber) String() string {
	return string(m)
}
