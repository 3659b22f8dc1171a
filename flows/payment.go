package flows

import (
	"context"
	"errors"
	"time"

	"cedarclub/client"
	"cedarclub/clock"
	"cedarclub/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentStep is a screen of the payment wizard.
type PaymentStep string

const (
	PaymentSummary    PaymentStep = "summary"
	PaymentProcessing PaymentStep = "processing"
	PaymentSuccess    PaymentStep = "success"
)

// DefaultGatewayDelay is the artificial wait before a checkout is sent.
const DefaultGatewayDelay = 2 * time.Second

const MsgPaymentFailed = "Error procesando el pago"

var (
	ErrNoStatement   = errors.New("no statement loaded")
	ErrNothingToPay  = errors.New("statement has no balance due")
	ErrUnknownMethod = errors.New("unknown payment method")
)

const actCheckout = "checkout"

var paymentTransitions = transitions[PaymentStep]{
	actCheckout: {PaymentSummary},
}

// PaymentAPI is the subset of the API client used by the payment screen.
type PaymentAPI interface {
	Statement(ctx context.Context, membershipID string) (models.Statement, error)
	Checkout(ctx context.Context, req models.CheckoutRequest) (models.Payment, error)
}

// Payment settles the account statement of the logged in membership.
type Payment struct {
	wizard[PaymentStep]

	api     PaymentAPI
	session SessionStore
	logger  *zap.Logger
	delay   time.Duration
	sleep   clock.Sleeper

	statement *models.Statement
	method    models.PaymentMethod
	// key is sent with every checkout of the loaded statement, so a retry
	// after a lost response is not charged twice.
	key       string
	receipt   *models.Payment
	paid      float64
}

// PaymentOption configures a Payment wizard.
type PaymentOption func(*Payment)

// WithGatewayDelay overrides the artificial gateway delay.
func WithGatewayDelay(d time.Duration) PaymentOption {
	return func(p *Payment) { p.delay = d }
}

// WithSleeper replaces how the gateway delay is waited out.
func WithSleeper(s clock.Sleeper) PaymentOption {
	return func(p *Payment) { p.sleep = s }
}

func NewPayment(api PaymentAPI, session SessionStore, logger *zap.Logger, opts ...PaymentOption) *Payment {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Payment{
		wizard:  wizard[PaymentStep]{step: PaymentSummary, table: paymentTransitions},
		api:     api,
		session: session,
		logger:  logger,
		delay:   DefaultGatewayDelay,
		sleep:   clock.Sleep,
		method:  models.PaymentCard,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load fetches the statement of the session's membership.
func (p *Payment) Load(ctx context.Context) error {
	u, ok := p.session.User()
	if !ok {
		return ErrNotLoggedIn
	}
	if u.MembershipID == "" {
		return ErrNoMembership
	}
	st, err := p.api.Statement(ctx, u.MembershipID)
	if err != nil {
		p.logger.Warn("Error fetching statement", zap.String("membership", u.MembershipID), zap.Error(err))
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statement = &st
	p.key = uuid.New().String()
	return nil
}

func (p *Payment) Statement() (models.Statement, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.statement == nil {
		return models.Statement{}, false
	}
	return *p.statement, true
}

func (p *Payment) SelectMethod(m models.PaymentMethod) error {
	if !m.Valid() {
		return invalid("method", ErrUnknownMethod)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if m != p.method {
		p.method = m
		p.key = uuid.New().String()
	}
	return nil
}

func (p *Payment) Method() models.PaymentMethod {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.method
}

// Checkout moves to processing, waits the gateway delay and pays the
// statement's total due. A failure returns the wizard to the summary.
func (p *Payment) Checkout(ctx context.Context) error {
	p.mu.Lock()
	if p.statement == nil {
		p.mu.Unlock()
		return invalid("statement", ErrNoStatement)
	}
	if p.statement.TotalDue <= 0 {
		p.mu.Unlock()
		return invalid("amount", ErrNothingToPay)
	}
	if err := p.acquire(actCheckout); err != nil {
		p.mu.Unlock()
		return err
	}
	p.step = PaymentProcessing
	req := models.CheckoutRequest{
		Amount:     p.statement.TotalDue,
		SourceType: p.method,
		SourceID:   models.SourceStatement,
	}
	ctx = client.WithIdempotencyKey(ctx, p.key)
	p.mu.Unlock()

	err := p.sleep(ctx, p.delay)
	var receipt models.Payment
	if err == nil {
		receipt, err = p.api.Checkout(ctx, req)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = false
	if err != nil {
		p.logger.Warn("Checkout failed", zap.Float64("amount", req.Amount), zap.Error(err))
		p.fail(err, MsgPaymentFailed)
		p.step = PaymentSummary
		return err
	}
	p.receipt = &receipt
	p.paid = req.Amount
	p.step = PaymentSuccess
	return nil
}

// PaidAmount is the amount charged by the last successful checkout.
func (p *Payment) PaidAmount() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paid
}

// Receipt returns the payment recorded by the backend.
func (p *Payment) Receipt() (models.Payment, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.receipt == nil {
		return models.Payment{}, false
	}
	return *p.receipt, true
}
