package models

import (
	"errors"
	"time"
)

// PaymentMethod is how a member settles a statement.
type PaymentMethod string

const (
	PaymentCard     PaymentMethod = "card"
	PaymentApplePay PaymentMethod = "apple_pay"
)

// Valid reports whether m is a supported payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentApplePay
}

// SourceStatement marks a checkout that settles the account statement.
const SourceStatement = "statement_payment"

var (
	ErrInvalidAmount = errors.New("invalid payment amount")
	ErrInvalidMethod = errors.New("unsupported payment method")
)

// CheckoutRequest is the body of POST /payments/checkout.
type CheckoutRequest struct {
	Amount     float64       `json:"amount"`
	SourceType PaymentMethod `json:"source_type"`
	SourceID   string        `json:"source_id"`
}

// Validate checks amount and method.
func (r CheckoutRequest) Validate() error {
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !r.SourceType.Valid() {
		return ErrInvalidMethod
	}
	return nil
}

// Payment statuses.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Payment is a recorded checkout.
type Payment struct {
	ID           string        `bson:"id" json:"id"`
	UserID       string        `bson:"user_id" json:"user_id"`
	MembershipID string        `bson:"membership_id" json:"membership_id"`
	Amount       float64       `bson:"amount" json:"amount"`
	Currency     string        `bson:"currency" json:"currency"`
	Status       string        `bson:"status" json:"status"`
	SourceType   PaymentMethod `bson:"source_type" json:"source_type"`
	SourceID     string        `bson:"source_id" json:"source_id"`
	Reference    string        `bson:"reference" json:"reference,omitempty"`
	CreatedAt    time.Time     `bson:"created_at" json:"created_at"`
}
