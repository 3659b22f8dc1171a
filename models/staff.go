package models

import (
	"errors"
	"strings"
	"time"
)

// Unit is a physical club facility.
type Unit struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	ShortName string `bson:"short_name" json:"short_name"`
}

// Staff is an employee record.
type Staff struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Username       string    `bson:"username" json:"username,omitempty"`
	Role           string    `bson:"role" json:"role"`
	EmploymentType string    `bson:"employment_type" json:"employment_type,omitempty"`
	Phone          string    `bson:"phone" json:"phone,omitempty"`
	IsActive       bool      `bson:"is_active" json:"is_active"`
	UnitID         string    `bson:"unit_id" json:"unit_id,omitempty"`
	Unit           *Unit     `bson:"-" json:"unit,omitempty"`
	UnitName       string    `bson:"-" json:"unit_name,omitempty"`
	PasswordHash   string    `bson:"password_hash" json:"-"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// SplitName splits a full name on the first space into first and last name.
func SplitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	first, last, _ = strings.Cut(name, " ")
	return first, strings.TrimSpace(last)
}

// Staff roles and employment types offered by the admin form.
const (
	StaffRoleInstructor = "instructor"
	StaffRoleTherapist  = "terapeuta"
	StaffRoleAdmin      = "admin"

	EmploymentPlanta    = "planta"
	EmploymentHonorario = "honorarios"
)

// StaffLoginRequest is the body of POST /auth/staff-login.
type StaffLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StaffLoginResponse carries the staff identity and bearer token.
type StaffLoginResponse struct {
	Staff Staff  `json:"staff"`
	Token string `json:"token"`
}

// NewStaffRequest is the body of POST /admin/staff.
type NewStaffRequest struct {
	Name           string `json:"name"`
	Role           string `json:"role"`
	EmploymentType string `json:"employment_type"`
	UnitID         string `json:"unit_id"`
	Phone          string `json:"phone"`
}

var (
	ErrStaffNameRequired = errors.New("staff name is required")
	ErrStaffUnitRequired = errors.New("staff unit is required")
)

// Validate checks the fields the admin form marks as required.
func (r NewStaffRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrStaffNameRequired
	}
	if r.UnitID == "" {
		return ErrStaffUnitRequired
	}
	return nil
}

// AppointmentStatus values shown on the employee dashboard.
const (
	AppointmentConfirmed = "confirmada"
	AppointmentPending   = "pendiente"
)

// Appointment is an entry in an employee's daily agenda.
type Appointment struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Client string `json:"client"`
	Time   string `json:"time"`
	Status string `json:"status"`
}
