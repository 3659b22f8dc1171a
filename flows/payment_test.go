package flows

import (
	"context"
	"errors"
	"testing"
	"time"

	"cedarclub/client"
	"cedarclub/models"
)

func statement8500() models.Statement {
	return models.Statement{
		MembershipID:     "m-31505",
		MembershipNumber: "31505",
		TotalDue:         8500,
		Maintenance:      []models.StatementLine{{ID: "m1", Month: "Febrero 2026", Amount: 8500, Status: models.LineOverdue}},
	}
}

func TestCheckoutProcessingThenSuccess(t *testing.T) {
	t.Parallel()
	var sent models.CheckoutRequest
	api := &fakeAPI{
		statementFn: func(_ context.Context, id string) (models.Statement, error) {
			if id != "m-31505" {
				t.Errorf("unexpected membership %q", id)
			}
			return statement8500(), nil
		},
		checkoutFn: func(_ context.Context, req models.CheckoutRequest) (models.Payment, error) {
			sent = req
			return models.Payment{ID: "pay-1", Amount: req.Amount, Status: models.PaymentPaid}, nil
		},
	}

	entered := make(chan struct{})
	proceed := make(chan struct{})
	var waited time.Duration
	sleeper := func(ctx context.Context, d time.Duration) error {
		waited = d
		close(entered)
		<-proceed
		return nil
	}

	p := NewPayment(api, loggedIn(t, titular), nil, WithSleeper(sleeper))
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := p.SelectMethod(models.PaymentApplePay); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- p.Checkout(context.Background()) }()
	<-entered
	if p.Step() != PaymentProcessing {
		t.Fatalf("expected processing during the delay, got %s", p.Step())
	}
	if api.count("checkout") != 0 {
		t.Fatal("checkout must wait for the gateway delay")
	}
	close(proceed)
	if err := <-done; err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if waited != DefaultGatewayDelay {
		t.Fatalf("expected %s delay, got %s", DefaultGatewayDelay, waited)
	}
	want := models.CheckoutRequest{Amount: 8500, SourceType: models.PaymentApplePay, SourceID: "statement_payment"}
	if sent != want {
		t.Fatalf("expected %+v, got %+v", want, sent)
	}
	if p.Step() != PaymentSuccess || p.PaidAmount() != 8500 {
		t.Fatalf("expected success with 8500, got %s %v", p.Step(), p.PaidAmount())
	}
	if r, ok := p.Receipt(); !ok || r.ID != "pay-1" {
		t.Fatalf("unexpected receipt %+v", r)
	}
}

func TestCheckoutFailureReturnsToSummary(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{
		statementFn: func(context.Context, string) (models.Statement, error) { return statement8500(), nil },
		checkoutFn: func(context.Context, models.CheckoutRequest) (models.Payment, error) {
			return models.Payment{}, errors.New("card declined")
		},
	}
	p := NewPayment(api, loggedIn(t, titular), nil, WithGatewayDelay(0))
	_ = p.Load(context.Background())
	if err := p.Checkout(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if p.Step() != PaymentSummary || p.ErrorMessage() != MsgPaymentFailed {
		t.Fatalf("unexpected state %s %q", p.Step(), p.ErrorMessage())
	}
}

func TestCheckoutRetryReusesKey(t *testing.T) {
	t.Parallel()
	var keys []string
	api := &fakeAPI{
		statementFn: func(context.Context, string) (models.Statement, error) { return statement8500(), nil },
		checkoutFn: func(ctx context.Context, req models.CheckoutRequest) (models.Payment, error) {
			key, _ := client.IdempotencyKeyFrom(ctx)
			keys = append(keys, key)
			if len(keys) == 1 {
				return models.Payment{}, &client.APIError{Status: 502}
			}
			return models.Payment{ID: "pay-1", Amount: req.Amount, Status: models.PaymentPaid}, nil
		},
	}
	p := NewPayment(api, loggedIn(t, titular), nil, WithGatewayDelay(0))
	if err := p.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := p.Checkout(context.Background()); err == nil {
		t.Fatal("expected first checkout to fail")
	}
	if err := p.Checkout(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(keys) != 2 || keys[0] == "" || keys[0] != keys[1] {
		t.Fatalf("expected the same key on retry, got %v", keys)
	}

	// Switching method or reloading the statement starts a new attempt.
	q := NewPayment(api, loggedIn(t, titular), nil, WithGatewayDelay(0))
	_ = q.Load(context.Background())
	_ = q.SelectMethod(models.PaymentApplePay)
	_ = q.Checkout(context.Background())
	if len(keys) != 3 || keys[2] == keys[0] {
		t.Fatalf("expected a fresh key for a new attempt, got %v", keys)
	}
}

func TestCheckoutCancelledDuringDelay(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{statementFn: func(context.Context, string) (models.Statement, error) { return statement8500(), nil }}
	p := NewPayment(api, loggedIn(t, titular), nil, WithGatewayDelay(time.Hour))
	_ = p.Load(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Checkout(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if api.count("checkout") != 0 {
		t.Fatal("expected no checkout call")
	}
	if p.Step() != PaymentSummary {
		t.Fatalf("expected summary, got %s", p.Step())
	}
}

func TestPaymentLoadNeedsMembership(t *testing.T) {
	t.Parallel()
	staff := models.User{ID: "s-1", UserType: models.UserTypeEmployee}
	p := NewPayment(&fakeAPI{}, loggedIn(t, staff), nil)
	if err := p.Load(context.Background()); !errors.Is(err, ErrNoMembership) {
		t.Fatalf("expected ErrNoMembership, got %v", err)
	}
	if err := p.Checkout(context.Background()); !errors.Is(err, ErrNoStatement) {
		t.Fatalf("expected ErrNoStatement, got %v", err)
	}
	if err := p.SelectMethod("cash"); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
}
