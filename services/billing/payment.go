package billing

import (
	"context"
	"fmt"
	"math"

	"cedarclub/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// --- Simulated processor ---

// SimulatedProcessor approves every card and Apple Pay payment. It backs
// the sandbox when no Stripe key is configured.
type SimulatedProcessor struct {
	logger *zap.Logger
}

func NewSimulatedProcessor(logger *zap.Logger) *SimulatedProcessor {
	return &SimulatedProcessor{logger: logger}
}

func (h *SimulatedProcessor) ProcessPayment(ctx context.Context, p *models.Payment, _ string) error {
	switch p.SourceType {
	case models.PaymentCard:
		p.Reference = "pi_" + uuid.New().String()
	case models.PaymentApplePay:
		p.Reference = "ap_" + uuid.New().String()
	default:
		return fmt.Errorf("unsupported payment method: %s", p.SourceType)
	}
	p.Status = models.PaymentPaid
	h.logger.Info("Simulated payment approved", zap.String("payment", p.ID), zap.String("method", string(p.SourceType)))
	return nil
}

// --- Stripe processor ---

// StripeProcessor creates and confirms a PaymentIntent per checkout. Apple
// Pay settles through the card rails, so both methods map to "card".
type StripeProcessor struct {
	api           *client.API
	paymentMethod string
	logger        *zap.Logger
}

// NewStripeProcessor uses a test-mode payment method unless one is given.
func NewStripeProcessor(key, paymentMethod string, logger *zap.Logger) *StripeProcessor {
	if paymentMethod == "" {
		paymentMethod = "pm_card_visa"
	}
	sc := &client.API{}
	sc.Init(key, nil)
	return &StripeProcessor{api: sc, paymentMethod: paymentMethod, logger: logger}
}

func (h *StripeProcessor) ProcessPayment(ctx context.Context, p *models.Payment, idempotencyKey string) error {
	if !p.SourceType.Valid() {
		return fmt.Errorf("unsupported payment method: %s", p.SourceType)
	}
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(int64(math.Round(p.Amount * 100))),
		Currency:           stripe.String(p.Currency),
		PaymentMethod:      stripe.String(h.paymentMethod),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Confirm:            stripe.Bool(true),
	}
	params.Context = ctx
	params.AddMetadata("payment_id", p.ID)
	params.AddMetadata("membership_id", p.MembershipID)
	params.AddMetadata("source", p.SourceID)
	if idempotencyKey != "" {
		params.SetIdempotencyKey(idempotencyKey)
	}

	pi, err := h.api.PaymentIntents.New(params)
	if err != nil {
		return fmt.Errorf("failed to create payment intent: %w", err)
	}
	p.Reference = pi.ID
	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		p.Status = models.PaymentPaid
	}
	h.logger.Info("Stripe payment intent created", zap.String("intent", pi.ID), zap.String("status", string(pi.Status)))
	return nil
}
