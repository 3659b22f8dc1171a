package flows

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"cedarclub/client"
	"cedarclub/clock"
	"cedarclub/models"
)

var (
	fixedNow = time.Date(2025, time.March, 30, 18, 45, 0, 0, time.UTC)
	massage  = models.CatalogItem{ID: "svc-1", Name: "Masaje Relajante", Category: "Spa", Type: models.ItemService, Price: 950}
	court    = models.CatalogItem{ID: "res-1", Name: "Cancha 1", Category: "Deportes", Type: models.ItemResource}
	yoga     = models.CatalogItem{ID: "act-1", Name: "Yoga", Category: "Bienestar", Type: models.ItemActivity}
)

func TestDatesStartTomorrow(t *testing.T) {
	t.Parallel()
	b := NewBooking(&fakeAPI{}, massage, clock.NewFixed(fixedNow), nil)
	want := []string{"2025-03-31", "2025-04-01", "2025-04-02", "2025-04-03", "2025-04-04", "2025-04-05", "2025-04-06"}
	if got := b.Dates(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Dates() = %v, want %v", got, want)
	}
	if b.Date() != want[0] {
		t.Fatalf("expected default date %s, got %s", want[0], b.Date())
	}
}

func TestSlots(t *testing.T) {
	t.Parallel()
	slots := Slots()
	if len(slots) != 14 || slots[0] != "07:00" || slots[13] != "20:00" {
		t.Fatalf("unexpected slots %v", slots)
	}
}

func TestReservationEndTime(t *testing.T) {
	t.Parallel()
	tests := []struct {
		item  models.CatalogItem
		slot  string
		end   string
		field string
	}{
		{item: massage, slot: "09:00", end: "10:00", field: "service"},
		{item: court, slot: "20:00", end: "21:00", field: "resource"},
		{item: massage, slot: "07:00", end: "08:00", field: "service"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.slot, func(t *testing.T) {
			t.Parallel()
			var sent models.ReservationRequest
			api := &fakeAPI{bookFn: func(_ context.Context, req models.ReservationRequest) (models.Reservation, error) {
				sent = req
				return models.Reservation{ID: "r-1"}, nil
			}}
			b := NewBooking(api, tt.item, clock.NewFixed(fixedNow), nil)
			if err := b.SelectSlot(tt.slot); err != nil {
				t.Fatalf("select slot: %v", err)
			}
			if err := b.Continue(); err != nil {
				t.Fatalf("continue: %v", err)
			}
			if err := b.Confirm(context.Background()); err != nil {
				t.Fatalf("confirm: %v", err)
			}
			if sent.StartTime != tt.slot || sent.EndTime != tt.end || sent.Date != "2025-03-31" {
				t.Fatalf("unexpected request %+v", sent)
			}
			if tt.field == "service" && (sent.ServiceID != tt.item.ID || sent.ResourceID != "") {
				t.Fatalf("expected service_id only, got %+v", sent)
			}
			if tt.field == "resource" && (sent.ResourceID != tt.item.ID || sent.ServiceID != "") {
				t.Fatalf("expected resource_id only, got %+v", sent)
			}
			if b.Step() != BookingSuccess {
				t.Fatalf("expected success, got %s", b.Step())
			}
		})
	}
}

func TestLateSlotRejectedBeforeRequest(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{}
	b := NewBooking(api, massage, clock.NewFixed(fixedNow), nil)
	for _, slot := range []string{"23:00", "06:00", "9:00", ""} {
		err := b.SelectSlot(slot)
		var verr *ValidationError
		if !errors.As(err, &verr) || !errors.Is(err, ErrSlotNotOffered) {
			t.Fatalf("SelectSlot(%q) = %v, want ErrSlotNotOffered", slot, err)
		}
	}
	if b.Slot() != "" {
		t.Fatalf("rejected slot was kept: %q", b.Slot())
	}
	if err := b.Continue(); !errors.Is(err, ErrSlotRequired) {
		t.Fatalf("expected ErrSlotRequired, got %v", err)
	}
	if api.count("book") != 0 {
		t.Fatal("expected no request")
	}
}

func TestDateOutsideOfferedDaysRejected(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{}
	b := NewBooking(api, massage, clock.NewFixed(fixedNow), nil)

	// Today, a past day and the eighth day are all outside the strip.
	for _, date := range []string{"2025-03-30", "2020-01-01", "2025-04-07", "31/03/2025"} {
		if err := b.SelectDate(date); !errors.Is(err, ErrDateNotOffered) {
			t.Fatalf("SelectDate(%q) = %v, want ErrDateNotOffered", date, err)
		}
	}
	if b.Date() != "2025-03-31" {
		t.Fatalf("rejected date replaced the draft: %q", b.Date())
	}
	if err := b.SelectDate("2025-04-06"); err != nil {
		t.Fatalf("last offered day: %v", err)
	}
}

func TestDraftFrozenAfterDetails(t *testing.T) {
	t.Parallel()
	var sent models.ReservationRequest
	api := &fakeAPI{bookFn: func(_ context.Context, req models.ReservationRequest) (models.Reservation, error) {
		sent = req
		return models.Reservation{ID: "r-1"}, nil
	}}
	b := NewBooking(api, massage, clock.NewFixed(fixedNow), nil)
	_ = b.SelectSlot("09:00")
	if err := b.Continue(); err != nil {
		t.Fatal(err)
	}
	if err := b.SelectDate("2025-04-02"); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("SelectDate on confirm = %v, want ErrIllegalTransition", err)
	}
	if err := b.SelectSlot("10:00"); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("SelectSlot on confirm = %v, want ErrIllegalTransition", err)
	}
	if err := b.Confirm(context.Background()); err != nil {
		t.Fatal(err)
	}
	if sent.Date != "2025-03-31" || sent.StartTime != "09:00" {
		t.Fatalf("draft changed after continue: %+v", sent)
	}
	if err := b.SelectSlot("11:00"); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("SelectSlot on success = %v, want ErrIllegalTransition", err)
	}
}

func TestRetryReusesIdempotencyKey(t *testing.T) {
	t.Parallel()
	var keys []string
	api := &fakeAPI{bookFn: func(ctx context.Context, req models.ReservationRequest) (models.Reservation, error) {
		key, _ := client.IdempotencyKeyFrom(ctx)
		keys = append(keys, key)
		if len(keys) == 1 {
			return models.Reservation{}, &client.APIError{Status: 502}
		}
		return models.Reservation{ID: "r-1"}, nil
	}}
	b := NewBooking(api, massage, clock.NewFixed(fixedNow), nil)
	_ = b.SelectSlot("09:00")
	_ = b.Continue()

	if err := b.Confirm(context.Background()); err == nil {
		t.Fatal("expected first confirm to fail")
	}
	if err := b.Confirm(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(keys) != 2 || keys[0] == "" || keys[0] != keys[1] {
		t.Fatalf("expected the same key on retry, got %v", keys)
	}

	// A different draft is a different submission.
	other := NewBooking(api, massage, clock.NewFixed(fixedNow), nil)
	_ = other.SelectSlot("09:00")
	_ = other.Continue()
	_ = other.Confirm(context.Background())
	if keys[2] == keys[0] {
		t.Fatal("expected a fresh key for a new draft")
	}
}

func TestChangingDraftChangesKey(t *testing.T) {
	t.Parallel()
	var keys []string
	api := &fakeAPI{bookFn: func(ctx context.Context, req models.ReservationRequest) (models.Reservation, error) {
		key, _ := client.IdempotencyKeyFrom(ctx)
		keys = append(keys, key)
		return models.Reservation{}, &client.APIError{Status: 409, Message: "El horario ya está reservado"}
	}}
	b := NewBooking(api, massage, clock.NewFixed(fixedNow), nil)
	_ = b.SelectSlot("09:00")
	_ = b.Continue()
	_ = b.Confirm(context.Background())

	if err := b.Back(); err != nil {
		t.Fatal(err)
	}
	_ = b.SelectSlot("10:00")
	_ = b.Continue()
	_ = b.Confirm(context.Background())
	if len(keys) != 2 || keys[0] == keys[1] {
		t.Fatalf("expected a new key after changing the slot, got %v", keys)
	}
}

func TestServiceNeedsSlotToContinue(t *testing.T) {
	t.Parallel()
	b := NewBooking(&fakeAPI{}, massage, clock.NewFixed(fixedNow), nil)
	if b.CanContinue() {
		t.Fatal("expected CanContinue false without slot")
	}
	if err := b.Continue(); !errors.Is(err, ErrSlotRequired) {
		t.Fatalf("expected ErrSlotRequired, got %v", err)
	}
	if err := b.SelectDate(""); !errors.Is(err, ErrDateNotOffered) {
		t.Fatalf("expected ErrDateNotOffered, got %v", err)
	}
	_ = b.SelectSlot("10:00")
	if err := b.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
}

func TestActivityEnrollsWithoutDate(t *testing.T) {
	t.Parallel()
	var sent models.EnrollmentRequest
	api := &fakeAPI{enrollFn: func(_ context.Context, req models.EnrollmentRequest) (models.Enrollment, error) {
		sent = req
		return models.Enrollment{ID: "e-1", ActivityID: req.ActivityID}, nil
	}}
	b := NewBooking(api, yoga, clock.NewFixed(fixedNow), nil)
	if !b.CanContinue() {
		t.Fatal("activities can always continue")
	}
	if err := b.Continue(); err != nil {
		t.Fatal(err)
	}
	if s := b.Summary(); s.Date != "" || s.StartTime != "" {
		t.Fatalf("expected no date in activity summary, got %+v", s)
	}
	if err := b.Confirm(context.Background()); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if sent != (models.EnrollmentRequest{ActivityID: "act-1"}) {
		t.Fatalf("unexpected enrollment %+v", sent)
	}
	if api.count("book") != 0 {
		t.Fatal("activities must not hit the reservation endpoint")
	}
	if e, ok := b.Enrollment(); !ok || e.ID != "e-1" {
		t.Fatalf("expected enrollment e-1, got %+v", e)
	}
	if err := b.Dismiss(); err != nil || b.Step() != BookingClosed {
		t.Fatalf("expected closed after dismiss, got %s %v", b.Step(), err)
	}
}

func TestBookingFailureStaysOnConfirm(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{bookFn: func(context.Context, models.ReservationRequest) (models.Reservation, error) {
		return models.Reservation{}, errors.New("POST /reservations/book: dial tcp: connection refused")
	}}
	b := NewBooking(api, court, clock.NewFixed(fixedNow), nil)
	_ = b.SelectSlot("08:00")
	_ = b.Continue()
	if err := b.Confirm(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if b.Step() != BookingConfirm || b.ErrorMessage() != MsgBookingFailed {
		t.Fatalf("unexpected state %s %q", b.Step(), b.ErrorMessage())
	}
}

func TestConfirmSingleFlight(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	started := make(chan struct{})
	api := &fakeAPI{bookFn: func(context.Context, models.ReservationRequest) (models.Reservation, error) {
		close(started)
		<-release
		return models.Reservation{ID: "r"}, nil
	}}
	b := NewBooking(api, massage, clock.NewFixed(fixedNow), nil)
	_ = b.SelectSlot("09:00")
	_ = b.Continue()

	done := make(chan error, 1)
	go func() { done <- b.Confirm(context.Background()) }()
	<-started
	if err := b.Confirm(context.Background()); !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected ErrInFlight, got %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if api.count("book") != 1 {
		t.Fatalf("expected exactly one request, got %d", api.count("book"))
	}
}

func TestCloseDiscardsDraft(t *testing.T) {
	t.Parallel()
	b := NewBooking(&fakeAPI{}, massage, clock.NewFixed(fixedNow), nil)
	_ = b.SelectSlot("09:00")
	_ = b.Continue()
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if b.Slot() != "" || b.Date() != "" || b.Step() != BookingClosed {
		t.Fatal("expected draft to be discarded")
	}
	if err := b.Continue(); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected illegal transition after close, got %v", err)
	}
}

func TestCatalogCategoriesAndFilter(t *testing.T) {
	t.Parallel()
	var units []string
	api := &fakeAPI{catalogFn: func(_ context.Context, unit string) ([]models.CatalogItem, error) {
		units = append(units, unit)
		if unit == models.UnitFredyAtala {
			return nil, errors.New("boom")
		}
		return []models.CatalogItem{massage, court, yoga, {ID: "x", Category: "SPA", Type: models.ItemService}}, nil
	}}
	c := NewCatalog(api, clock.NewFixed(fixedNow), nil)
	c.Load(context.Background())

	want := []string{"todos", "spa", "deportes", "bienestar"}
	if got := c.Categories(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	c.SetCategory("spa")
	if got := c.Items(); len(got) != 2 {
		t.Fatalf("expected 2 spa items, got %v", got)
	}

	c.SetUnit(context.Background(), models.UnitFredyAtala)
	if len(c.Items()) != 0 {
		t.Fatal("expected empty list after failed fetch")
	}
	if !reflect.DeepEqual(units, []string{models.UnitHermes, models.UnitFredyAtala}) {
		t.Fatalf("unexpected fetches %v", units)
	}
	if b := c.Open(yoga); b.Step() != BookingDetails || b.Item().ID != "act-1" {
		t.Fatal("expected booking draft on details")
	}
}
