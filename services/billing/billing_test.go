package billing

import (
	"context"
	"errors"
	"strings"
	"testing"

	clubRepo "cedarclub/database/repository/club"
	"cedarclub/models"
	"cedarclub/services/idempotency"

	"go.uber.org/zap"
)

type fakeProcessor struct {
	calls int
	fn    func(p *models.Payment) error
}

func (f *fakeProcessor) ProcessPayment(_ context.Context, p *models.Payment, _ string) error {
	f.calls++
	if f.fn != nil {
		return f.fn(p)
	}
	p.Status = models.PaymentPaid
	p.Reference = "ref-1"
	return nil
}

func newService(t *testing.T, proc PaymentProcessor) *DefaultBillingService {
	t.Helper()
	store, err := clubRepo.NewSeededMemoryStore(context.Background())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return &DefaultBillingService{Repo: store, Processor: proc, Idempotency: idempotency.NewMemoryStore(), Logger: zap.NewNop()}
}

func checkout(amount float64) models.CheckoutRequest {
	return models.CheckoutRequest{Amount: amount, SourceType: models.PaymentCard, SourceID: models.SourceStatement}
}

func TestCheckoutSettlesStatement(t *testing.T) {
	t.Parallel()
	svc := newService(t, &fakeProcessor{})
	ctx := context.Background()

	p, err := svc.Checkout(ctx, "p-andrea", clubRepo.DemoMembershipID, checkout(8500), "")
	if err != nil {
		t.Fatal(err)
	}
	if p.Amount != 8500 || p.Status != models.PaymentPaid || p.Currency != models.DefaultCurrency {
		t.Fatalf("payment = %+v", p)
	}
	st, _ := svc.Statement(ctx, clubRepo.DemoMembershipID)
	if st.TotalDue != 0 || st.Maintenance[0].Status != models.LinePaid {
		t.Fatalf("statement after payment = %+v", st)
	}
	if _, err := svc.Checkout(ctx, "p-andrea", clubRepo.DemoMembershipID, checkout(10), ""); !errors.Is(err, ErrNothingDue) {
		t.Fatalf("second checkout: %v", err)
	}
}

func TestCheckoutPartialPayment(t *testing.T) {
	t.Parallel()
	svc := newService(t, &fakeProcessor{})
	ctx := context.Background()
	if _, err := svc.Checkout(ctx, "p-andrea", clubRepo.DemoMembershipID, checkout(500.25), ""); err != nil {
		t.Fatal(err)
	}
	st, _ := svc.Statement(ctx, clubRepo.DemoMembershipID)
	if st.TotalDue != 7999.75 || st.Maintenance[0].Status != models.LineOverdue {
		t.Fatalf("statement = %+v", st)
	}
}

func TestCheckoutRejects(t *testing.T) {
	t.Parallel()
	proc := &fakeProcessor{}
	svc := newService(t, proc)
	ctx := context.Background()

	tests := []struct {
		name       string
		membership string
		req        models.CheckoutRequest
		want       error
	}{
		{"zero amount", clubRepo.DemoMembershipID, checkout(0), models.ErrInvalidAmount},
		{"bad method", clubRepo.DemoMembershipID, models.CheckoutRequest{Amount: 10, SourceType: "cash"}, models.ErrInvalidMethod},
		{"over balance", clubRepo.DemoMembershipID, checkout(9000), ErrAmountExceedsDue},
		{"unknown membership", "m-0", checkout(10), ErrMembershipNotFound},
	}
	for _, tt := range tests {
		if _, err := svc.Checkout(ctx, "p-andrea", tt.membership, tt.req, ""); !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}
	if proc.calls != 0 {
		t.Fatalf("processor called %d times for rejected checkouts", proc.calls)
	}
}

func TestCheckoutDeclined(t *testing.T) {
	t.Parallel()
	proc := &fakeProcessor{fn: func(*models.Payment) error { return errors.New("card_declined") }}
	svc := newService(t, proc)
	_, err := svc.Checkout(context.Background(), "p-andrea", clubRepo.DemoMembershipID, checkout(100), "")
	if !errors.Is(err, ErrPaymentDeclined) {
		t.Fatalf("err = %v", err)
	}
	st, _ := svc.Statement(context.Background(), clubRepo.DemoMembershipID)
	if st.TotalDue != 8500 {
		t.Fatalf("declined payment changed the balance: %v", st.TotalDue)
	}
}

func TestCheckoutIdempotent(t *testing.T) {
	t.Parallel()
	proc := &fakeProcessor{}
	svc := newService(t, proc)
	ctx := context.Background()
	first, err := svc.Checkout(ctx, "p-andrea", clubRepo.DemoMembershipID, checkout(100), "key")
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Checkout(ctx, "p-andrea", clubRepo.DemoMembershipID, checkout(100), "key")
	if err != nil {
		t.Fatal(err)
	}
	if proc.calls != 1 || first.ID != second.ID {
		t.Fatalf("calls = %d, ids %s %s", proc.calls, first.ID, second.ID)
	}
}

func TestSimulatedProcessor(t *testing.T) {
	t.Parallel()
	proc := NewSimulatedProcessor(zap.NewNop())
	tests := []struct {
		method models.PaymentMethod
		prefix string
	}{
		{models.PaymentCard, "pi_"},
		{models.PaymentApplePay, "ap_"},
	}
	for _, tt := range tests {
		p := &models.Payment{ID: "x", SourceType: tt.method, Status: models.PaymentPending}
		if err := proc.ProcessPayment(context.Background(), p, ""); err != nil {
			t.Fatal(err)
		}
		if p.Status != models.PaymentPaid || !strings.HasPrefix(p.Reference, tt.prefix) {
			t.Errorf("%s: payment = %+v", tt.method, p)
		}
	}
	if err := proc.ProcessPayment(context.Background(), &models.Payment{SourceType: "cash"}, ""); err == nil {
		t.Fatal("cash accepted")
	}
}

func TestBeneficiaries(t *testing.T) {
	t.Parallel()
	svc := newService(t, &fakeProcessor{})
	bs, err := svc.Beneficiaries(context.Background(), clubRepo.DemoMembershipID)
	if err != nil {
		t.Fatal(err)
	}
	if len(bs) != 2 || bs[0].Role != models.RoleTitular {
		t.Fatalf("beneficiaries = %+v", bs)
	}
	if _, err := svc.Beneficiaries(context.Background(), "m-0"); !errors.Is(err, ErrMembershipNotFound) {
		t.Fatalf("unknown membership: %v", err)
	}
}
