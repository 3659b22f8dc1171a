package flows

import (
	"context"
	"errors"

	"cedarclub/models"

	"go.uber.org/zap"
)

// LockerStep is a screen of the locker rental wizard.
type LockerStep string

const (
	LockerList    LockerStep = "list"
	LockerDetails LockerStep = "details"
	LockerSuccess LockerStep = "success"
)

// ReleasePrompt is asked before a rental stops auto-renewing.
const ReleasePrompt = "¿Estás seguro de liberar este locker al finalizar el periodo?"

var (
	ErrLockerUnavailable = errors.New("locker is not available")
	ErrUnknownLocker     = errors.New("locker is not in the list")
	ErrUnknownRental     = errors.New("rental is not in the list")
	ErrNotAutoRenew      = errors.New("rental does not auto-renew")
)

const MsgLockerFailed = "No se pudo completar la operación del locker"

const (
	actSelect = "select"
	actRent   = "rent"
	actDone   = "done"
)

var lockerTransitions = transitions[LockerStep]{
	actSelect: {LockerList},
	actBack:   {LockerDetails},
	actRent:   {LockerDetails},
	actDone:   {LockerSuccess},
}

var quarterlyPrices = map[models.LockerSize]int{
	models.LockerChico:   400,
	models.LockerMediano: 600,
	models.LockerGrande:  800,
}

// QuarterlyPrice is the displayed price of a locker size for one quarter.
func QuarterlyPrice(size models.LockerSize) (int, bool) {
	p, ok := quarterlyPrices[size]
	return p, ok
}

// LockerAPI is the subset of the API client used by the locker screen.
type LockerAPI interface {
	Lockers(ctx context.Context, unit string) ([]models.Locker, error)
	MyLockers(ctx context.Context) ([]models.LockerRental, error)
	RentLocker(ctx context.Context, lockerID string) (models.LockerRental, error)
	ReleaseLocker(ctx context.Context, lockerID string) error
}

// Lockers lists lockers of a unit and rents or releases them.
type Lockers struct {
	wizard[LockerStep]

	api    LockerAPI
	logger *zap.Logger

	unit     string
	zone     string
	lockers  []models.Locker
	rentals  []models.LockerRental
	selected *models.Locker
}

func NewLockers(api LockerAPI, logger *zap.Logger) *Lockers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lockers{
		wizard: wizard[LockerStep]{step: LockerList, table: lockerTransitions},
		api:    api,
		logger: logger,
		unit:   models.UnitHermes,
		zone:   models.ZoneCaballeros,
	}
}

// Load refetches the unit's lockers and the user's rentals. Failures are
// logged and leave the affected list empty.
func (l *Lockers) Load(ctx context.Context) {
	l.mu.Lock()
	unit := l.unit
	l.mu.Unlock()

	rentals, rerr := l.api.MyLockers(ctx)
	lockers, lerr := l.api.Lockers(ctx, unit)

	l.mu.Lock()
	defer l.mu.Unlock()
	if rerr != nil {
		l.logger.Warn("Error fetching rentals", zap.Error(rerr))
		rentals = nil
	}
	l.rentals = rentals
	if unit != l.unit {
		return
	}
	if lerr != nil {
		l.logger.Warn("Error fetching lockers", zap.String("unit", unit), zap.Error(lerr))
		lockers = nil
	}
	l.lockers = lockers
}

// SetUnit switches unit and refetches.
func (l *Lockers) SetUnit(ctx context.Context, unit string) {
	l.mu.Lock()
	l.unit = unit
	l.mu.Unlock()
	l.Load(ctx)
}

func (l *Lockers) SetZone(zone string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zone = zone
}

func (l *Lockers) Unit() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.unit
}

func (l *Lockers) Zone() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.zone
}

// Visible returns the lockers in the active unit and zone.
func (l *Lockers) Visible() []models.Locker {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Locker
	for _, lk := range l.lockers {
		if lk.Zone != l.zone {
			continue
		}
		if name := lk.UnitName(); name != "" && name != l.unit {
			continue
		}
		out = append(out, lk)
	}
	return out
}

// Rentals returns the user's current rentals.
func (l *Lockers) Rentals() []models.LockerRental {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.LockerRental(nil), l.rentals...)
}

// Select opens the details of an available locker.
func (l *Lockers) Select(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.check(actSelect); err != nil {
		return err
	}
	for i := range l.lockers {
		if l.lockers[i].ID != id {
			continue
		}
		if !l.lockers[i].IsAvailable {
			return ErrLockerUnavailable
		}
		lk := l.lockers[i]
		l.selected = &lk
		l.clearErr()
		l.step = LockerDetails
		return nil
	}
	return ErrUnknownLocker
}

// Selected returns the locker on the details step.
func (l *Lockers) Selected() (models.Locker, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.selected == nil {
		return models.Locker{}, false
	}
	return *l.selected, true
}

func (l *Lockers) Back() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.busy {
		return ErrInFlight
	}
	if err := l.move(actBack, LockerList); err != nil {
		return err
	}
	l.selected = nil
	return nil
}

// Rent leases the selected locker for a quarter and refetches both lists.
func (l *Lockers) Rent(ctx context.Context) error {
	l.mu.Lock()
	if err := l.acquire(actRent); err != nil {
		l.mu.Unlock()
		return err
	}
	id := l.selected.ID
	l.mu.Unlock()

	_, err := l.api.RentLocker(ctx, id)

	l.mu.Lock()
	l.busy = false
	if err != nil {
		l.logger.Warn("Locker rent failed", zap.String("locker", id), zap.Error(err))
		l.fail(err, MsgLockerFailed)
		l.mu.Unlock()
		return err
	}
	l.step = LockerSuccess
	l.mu.Unlock()

	l.Load(ctx)
	return nil
}

// Done returns from the success screen to the list.
func (l *Lockers) Done() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.move(actDone, LockerList); err != nil {
		return err
	}
	l.selected = nil
	return nil
}

// Release stops an auto-renewing rental at the end of its period. The user
// is asked first; a declined prompt changes nothing.
func (l *Lockers) Release(ctx context.Context, rentalID string, confirmer Confirmer) (bool, error) {
	l.mu.Lock()
	if l.busy {
		l.mu.Unlock()
		return false, ErrInFlight
	}
	var rental *models.LockerRental
	for i := range l.rentals {
		if l.rentals[i].ID == rentalID {
			r := l.rentals[i]
			rental = &r
			break
		}
	}
	if rental == nil {
		l.mu.Unlock()
		return false, ErrUnknownRental
	}
	if !rental.AutoRenew {
		l.mu.Unlock()
		return false, ErrNotAutoRenew
	}
	l.busy = true
	l.mu.Unlock()

	confirmed := confirmer.Confirm(ctx, ReleasePrompt)
	var err error
	if confirmed {
		lockerID := rental.Locker.ID
		if lockerID == "" {
			lockerID = rental.LockerID
		}
		err = l.api.ReleaseLocker(ctx, lockerID)
	}

	l.mu.Lock()
	l.busy = false
	if err != nil {
		l.logger.Warn("Locker release failed", zap.String("rental", rentalID), zap.Error(err))
		l.fail(err, MsgLockerFailed)
	}
	l.mu.Unlock()

	if err != nil || !confirmed {
		return false, err
	}
	l.Load(ctx)
	return true, nil
}
