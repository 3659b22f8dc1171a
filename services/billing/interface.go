package billing

import (
	"context"
	"errors"

	clubRepo "cedarclub/database/repository/club"
	"cedarclub/models"
	"cedarclub/services/idempotency"

	"go.uber.org/zap"
)

var (
	ErrMembershipNotFound = errors.New("membership not found")
	ErrNothingDue         = errors.New("statement has no balance due")
	ErrAmountExceedsDue   = errors.New("amount exceeds balance due")
	ErrPaymentDeclined    = errors.New("payment declined")
)

// BillingService exposes a membership's beneficiaries, statement and
// checkout.
type BillingService interface {
	Beneficiaries(ctx context.Context, membershipID string) ([]models.Beneficiary, error)
	Statement(ctx context.Context, membershipID string) (*models.Statement, error)
	// Checkout charges the amount against the statement balance.
	Checkout(ctx context.Context, userID, membershipID string, req models.CheckoutRequest, key string) (*models.Payment, error)
}

// PaymentProcessor settles a pending payment, filling in its status and
// reference.
type PaymentProcessor interface {
	ProcessPayment(ctx context.Context, p *models.Payment, idempotencyKey string) error
}

// DefaultBillingService implements BillingService.
type DefaultBillingService struct {
	Repo        clubRepo.Store
	Processor   PaymentProcessor
	Idempotency idempotency.Store
	Logger      *zap.Logger
}
