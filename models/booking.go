package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrSlotOutOfRange = errors.New("slot must start on the hour between 00:00 and 22:00")
	ErrInvalidDate    = errors.New("date must be formatted as YYYY-MM-DD")
	ErrNotSlotBased   = errors.New("activities are enrolled, not reserved")
	ErrNotActivity    = errors.New("only activities accept enrollments")
	ErrMissingTarget  = errors.New("exactly one of service_id or resource_id is required")
)

// EndOfSlot returns the end of the one-hour slot starting at start, zero
// padded ("09:00" → "10:00"). A slot may not run past midnight, so 23:00 and
// anything that is not a whole hour is rejected.
func EndOfSlot(start string) (string, error) {
	if len(start) != 5 || start[2] != ':' {
		return "", ErrSlotOutOfRange
	}
	for _, i := range []int{0, 1, 3, 4} {
		if start[i] < '0' || start[i] > '9' {
			return "", ErrSlotOutOfRange
		}
	}
	h, _ := strconv.Atoi(start[:2])
	m, _ := strconv.Atoi(start[3:])
	if m != 0 || h > 22 {
		return "", ErrSlotOutOfRange
	}
	return fmt.Sprintf("%02d:00", h+1), nil
}

// ReservationRequest is the body of POST /reservations/book.
type ReservationRequest struct {
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	ServiceID  string `json:"service_id,omitempty"`
	ResourceID string `json:"resource_id,omitempty"`
}

// NewReservationRequest builds a reservation for a service or resource item.
// The end time is derived from the start, so callers cannot send a slot
// longer or shorter than an hour.
func NewReservationRequest(item CatalogItem, date, start string) (ReservationRequest, error) {
	if !item.Type.SlotBased() {
		return ReservationRequest{}, ErrNotSlotBased
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ReservationRequest{}, ErrInvalidDate
	}
	end, err := EndOfSlot(start)
	if err != nil {
		return ReservationRequest{}, err
	}
	req := ReservationRequest{Date: date, StartTime: start, EndTime: end}
	if item.Type == ItemService {
		req.ServiceID = item.ID
	} else {
		req.ResourceID = item.ID
	}
	return req, nil
}

// Validate is used by the server on decoded requests.
func (r ReservationRequest) Validate() error {
	if (r.ServiceID == "") == (r.ResourceID == "") {
		return ErrMissingTarget
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return ErrInvalidDate
	}
	end, err := EndOfSlot(r.StartTime)
	if err != nil {
		return err
	}
	if end != r.EndTime {
		return ErrSlotOutOfRange
	}
	return nil
}

// EnrollmentRequest is the body of POST /enrollments.
type EnrollmentRequest struct {
	ActivityID string `json:"activity_id"`
}

// NewEnrollmentRequest builds an enrollment for an activity item.
func NewEnrollmentRequest(item CatalogItem) (EnrollmentRequest, error) {
	if item.Type != ItemActivity {
		return EnrollmentRequest{}, ErrNotActivity
	}
	return EnrollmentRequest{ActivityID: item.ID}, nil
}

// Reservation is a booked service or resource slot.
type Reservation struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	Date       string    `bson:"date" json:"date"`
	StartTime  string    `bson:"start_time" json:"start_time"`
	EndTime    string    `bson:"end_time" json:"end_time"`
	Status     string    `bson:"status" json:"status"`
	ServiceID  string    `bson:"service_id,omitempty" json:"service_id,omitempty"`
	ResourceID string    `bson:"resource_id,omitempty" json:"resource_id,omitempty"`
	Service    *ItemRef  `bson:"service,omitempty" json:"service,omitempty"`
	Resource   *ItemRef  `bson:"resource,omitempty" json:"resource,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// Title is the name shown in reservation lists.
func (r Reservation) Title() string {
	switch {
	case r.Service != nil && r.Service.Name != "":
		return r.Service.Name
	case r.Resource != nil && r.Resource.Name != "":
		return r.Resource.Name
	}
	return "Reserva"
}

// Enrollment is a member's registration in an activity.
type Enrollment struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	ActivityID string    `bson:"activity_id" json:"activity_id"`
	Activity   *ItemRef  `bson:"activity,omitempty" json:"activity,omitempty"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// Booking statuses.
const (
	StatusConfirmed = "confirmed"
	StatusActive    = "active"
	StatusEnded     = "ended"
)
