package flows

import (
	"context"
	"errors"
	"fmt"

	"cedarclub/client"
	"cedarclub/clock"
	"cedarclub/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingStep is a screen of the booking wizard.
type BookingStep string

const (
	BookingDetails BookingStep = "details"
	BookingConfirm BookingStep = "confirm"
	BookingSuccess BookingStep = "success"
	BookingClosed  BookingStep = "closed"
)

const (
	bookingDays   = 7
	firstSlotHour = 7
	lastSlotHour  = 20
)

const MsgBookingFailed = "No se pudo completar la reservación"

var (
	ErrDateRequired   = errors.New("a date must be selected")
	ErrSlotRequired   = errors.New("a time slot must be selected")
	ErrDateNotOffered = errors.New("date is not in the offered days")
	ErrSlotNotOffered = errors.New("time slot is not offered")
)

const (
	actContinue = "continue"
	actConfirm  = "confirm"
	actDismiss  = "dismiss"
	actClose    = "close"
)

var bookingTransitions = transitions[BookingStep]{
	actSelect:   {BookingDetails},
	actContinue: {BookingDetails},
	actBack:     {BookingConfirm},
	actConfirm:  {BookingConfirm},
	actDismiss:  {BookingSuccess},
	actClose:    {BookingDetails, BookingConfirm, BookingSuccess},
}

// BookingAPI is the subset of the API client that submits bookings.
type BookingAPI interface {
	Enroll(ctx context.Context, req models.EnrollmentRequest) (models.Enrollment, error)
	BookReservation(ctx context.Context, req models.ReservationRequest) (models.Reservation, error)
}

// Booking is an in-memory draft for one catalog item. It is submitted once
// and then discarded.
type Booking struct {
	wizard[BookingStep]

	api    BookingAPI
	logger *zap.Logger

	item  models.CatalogItem
	dates []string
	date  string
	slot  string
	// key identifies this draft's submission; it changes with the draft.
	key   string

	reservation *models.Reservation
	enrollment  *models.Enrollment
}

// NewBooking opens a draft on the details step with the first offered day
// preselected.
func NewBooking(api BookingAPI, item models.CatalogItem, clk clock.Clock, logger *zap.Logger) *Booking {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	dates := NextDays(clk, bookingDays)
	return &Booking{
		wizard: wizard[BookingStep]{step: BookingDetails, table: bookingTransitions},
		api:    api,
		logger: logger,
		item:   item,
		dates:  dates,
		date:   dates[0],
		key:    uuid.New().String(),
	}
}

// NextDays returns the n calendar days after today, starting tomorrow.
func NextDays(clk clock.Clock, n int) []string {
	now := clk.Now()
	out := make([]string, n)
	for i := range out {
		out[i] = now.AddDate(0, 0, i+1).Format(models.DateLayout)
	}
	return out
}

// Slots returns the hourly start times offered for booking.
func Slots() []string {
	out := make([]string, 0, lastSlotHour-firstSlotHour+1)
	for h := firstSlotHour; h <= lastSlotHour; h++ {
		out = append(out, fmt.Sprintf("%02d:00", h))
	}
	return out
}

func (b *Booking) Item() models.CatalogItem { return b.item }

// Dates returns the days offered by the date strip.
func (b *Booking) Dates() []string {
	return append([]string(nil), b.dates...)
}

// NeedsSlot reports whether the item is booked by date and hour.
func (b *Booking) NeedsSlot() bool {
	return b.item.Type.SlotBased()
}

// SelectDate picks one of the offered days. Only the details step edits
// the draft.
func (b *Booking) SelectDate(date string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.check(actSelect); err != nil {
		return err
	}
	if !contains(b.dates, date) {
		return invalid("date", ErrDateNotOffered)
	}
	if date != b.date {
		b.date = date
		b.key = uuid.New().String()
	}
	return nil
}

// SelectSlot picks one of the hourly start times from Slots.
func (b *Booking) SelectSlot(slot string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.check(actSelect); err != nil {
		return err
	}
	if !contains(Slots(), slot) {
		return invalid("slot", ErrSlotNotOffered)
	}
	if slot != b.slot {
		b.slot = slot
		b.key = uuid.New().String()
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func (b *Booking) Date() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.date
}

func (b *Booking) Slot() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.slot
}

// CanContinue reports whether the details step is complete.
func (b *Booking) CanContinue() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.step == BookingDetails && b.detailsErr() == nil
}

func (b *Booking) detailsErr() error {
	if !b.item.Type.SlotBased() {
		return nil
	}
	if b.date == "" {
		return invalid("date", ErrDateRequired)
	}
	if b.slot == "" {
		return invalid("slot", ErrSlotRequired)
	}
	return nil
}

// Continue moves from details to the confirmation summary.
func (b *Booking) Continue() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.check(actContinue); err != nil {
		return err
	}
	if err := b.detailsErr(); err != nil {
		return err
	}
	b.step = BookingConfirm
	return nil
}

// Back returns from the summary to the details step.
func (b *Booking) Back() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.busy {
		return ErrInFlight
	}
	return b.move(actBack, BookingDetails)
}

// BookingSummary is what the confirmation step shows.
type BookingSummary struct {
	Item      models.CatalogItem
	Date      string
	StartTime string
	EndTime   string
}

func (b *Booking) Summary() BookingSummary {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := BookingSummary{Item: b.item}
	if b.item.Type.SlotBased() {
		s.Date = b.date
		s.StartTime = b.slot
		s.EndTime, _ = models.EndOfSlot(b.slot)
	}
	return s
}

// Confirm submits the draft: activities are enrolled, services and
// resources are reserved for one hour. A failure keeps the wizard on the
// confirmation step.
func (b *Booking) Confirm(ctx context.Context) error {
	b.mu.Lock()
	if err := b.acquire(actConfirm); err != nil {
		b.mu.Unlock()
		return err
	}
	item := b.item
	ctx = client.WithIdempotencyKey(ctx, b.key)
	var (
		resReq models.ReservationRequest
		enrReq models.EnrollmentRequest
		err    error
	)
	if item.Type.SlotBased() {
		if err = b.detailsErr(); err == nil {
			resReq, err = models.NewReservationRequest(item, b.date, b.slot)
			if err != nil {
				err = invalid("slot", err)
			}
		}
	} else {
		enrReq, err = models.NewEnrollmentRequest(item)
	}
	if err != nil {
		b.busy = false
		b.mu.Unlock()
		return err
	}
	b.mu.Unlock()

	var (
		res models.Reservation
		enr models.Enrollment
	)
	if item.Type.SlotBased() {
		res, err = b.api.BookReservation(ctx, resReq)
	} else {
		enr, err = b.api.Enroll(ctx, enrReq)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.busy = false
	if b.step != BookingConfirm {
		// Closed while the request was in flight.
		return err
	}
	if err != nil {
		b.logger.Warn("Booking failed", zap.String("item", item.ID), zap.Error(err))
		b.fail(err, MsgBookingFailed)
		return err
	}
	if item.Type.SlotBased() {
		b.reservation = &res
	} else {
		b.enrollment = &enr
	}
	b.step = BookingSuccess
	return nil
}

// Reservation returns the booked slot after a successful confirm.
func (b *Booking) Reservation() (models.Reservation, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.reservation == nil {
		return models.Reservation{}, false
	}
	return *b.reservation, true
}

// Enrollment returns the enrollment after a successful confirm.
func (b *Booking) Enrollment() (models.Enrollment, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.enrollment == nil {
		return models.Enrollment{}, false
	}
	return *b.enrollment, true
}

// Dismiss closes the success screen and discards the draft.
func (b *Booking) Dismiss() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.move(actDismiss, BookingClosed); err != nil {
		return err
	}
	b.discard()
	return nil
}

// Close abandons the draft from any open step.
func (b *Booking) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.move(actClose, BookingClosed); err != nil {
		return err
	}
	b.discard()
	return nil
}

func (b *Booking) discard() {
	b.date = ""
	b.slot = ""
	b.clearErr()
}
