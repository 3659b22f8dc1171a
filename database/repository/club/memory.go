package clubRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"cedarclub/models"
)

// MemoryStore implements Store in process memory. It backs the sandbox
// when no database is configured and the integration tests.
type MemoryStore struct {
	mu sync.RWMutex

	memberships  map[string]models.Membership
	profiles     map[string]models.MemberProfile
	staff        map[string]models.Staff
	units        map[string]models.Unit
	catalog      map[string]models.CatalogItem
	reservations []models.Reservation
	enrollments  []models.Enrollment
	lockers      map[string]models.Locker
	rentals      map[string]models.LockerRental
	statements   map[string]models.Statement
	payments     []models.Payment

	// insertion order, so listings are stable
	profileOrder []string
	staffOrder   []string
	rentalOrder  []string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		memberships: map[string]models.Membership{},
		profiles:    map[string]models.MemberProfile{},
		staff:       map[string]models.Staff{},
		units:       map[string]models.Unit{},
		catalog:     map[string]models.CatalogItem{},
		lockers:     map[string]models.Locker{},
		rentals:     map[string]models.LockerRental{},
		statements:  map[string]models.Statement{},
	}
}

// --- Members ---

func (s *MemoryStore) GetMembershipByNumber(_ context.Context, number string) (*models.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.memberships {
		if m.Number == number {
			return &m, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetMembership(_ context.Context, id string) (*models.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.memberships[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (s *MemoryStore) CreateMembership(_ context.Context, m *models.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	s.memberships[m.ID] = *m
	return nil
}

func (s *MemoryStore) ListProfiles(_ context.Context, membershipID string) ([]models.MemberProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.MemberProfile{}
	for _, id := range s.profileOrder {
		if p := s.profiles[id]; p.MembershipID == membershipID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetProfile(_ context.Context, id string) (*models.MemberProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) CreateProfile(_ context.Context, p *models.MemberProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if _, ok := s.profiles[p.ID]; !ok {
		s.profileOrder = append(s.profileOrder, p.ID)
	}
	s.profiles[p.ID] = *p
	return nil
}

// --- Staff and units ---

func (s *MemoryStore) GetStaff(_ context.Context, id string) (*models.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.staff[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &st, nil
}

func (s *MemoryStore) GetStaffByUsername(_ context.Context, username string) (*models.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.staff {
		if st.Username != "" && st.Username == username {
			return &st, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListStaff(_ context.Context) ([]models.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Staff, 0, len(s.staffOrder))
	for _, id := range s.staffOrder {
		out = append(out, s.staff[id])
	}
	return out, nil
}

func (s *MemoryStore) CreateStaff(_ context.Context, st *models.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now()
	}
	if _, ok := s.staff[st.ID]; !ok {
		s.staffOrder = append(s.staffOrder, st.ID)
	}
	s.staff[st.ID] = *st
	return nil
}

func (s *MemoryStore) SetStaffActive(_ context.Context, id string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.staff[id]
	if !ok {
		return ErrNotFound
	}
	st.IsActive = active
	s.staff[id] = st
	return nil
}

func (s *MemoryStore) ListUnits(_ context.Context) ([]models.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Unit, 0, len(s.units))
	for _, u := range s.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) GetUnit(_ context.Context, id string) (*models.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.units[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) GetUnitByName(_ context.Context, name string) (*models.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.units {
		if u.Name == name {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUnit(_ context.Context, u *models.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.units[u.ID] = *u
	return nil
}

// --- Catalog ---

func (s *MemoryStore) ListCatalog(_ context.Context, unit string) ([]models.CatalogItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.CatalogItem{}
	for _, it := range s.catalog {
		if unit == "" || it.Unit == unit {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) GetCatalogItem(_ context.Context, id string) (*models.CatalogItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.catalog[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &it, nil
}

func (s *MemoryStore) CreateCatalogItem(_ context.Context, item *models.CatalogItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog[item.ID] = *item
	return nil
}

// --- Bookings ---

func (s *MemoryStore) CreateReservation(_ context.Context, r *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	s.reservations = append(s.reservations, *r)
	return nil
}

func (s *MemoryStore) ListReservationsByUser(_ context.Context, userID string) ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Reservation{}
	for _, r := range s.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (s *MemoryStore) SlotTaken(_ context.Context, itemID, date, start string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reservations {
		if r.ServiceID != itemID && r.ResourceID != itemID {
			continue
		}
		if r.Date == date && r.StartTime == start && r.Status == models.StatusConfirmed {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) CreateEnrollment(_ context.Context, e *models.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	s.enrollments = append(s.enrollments, *e)
	return nil
}

func (s *MemoryStore) GetEnrollment(_ context.Context, userID, activityID string) (*models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.enrollments {
		if e.UserID == userID && e.ActivityID == activityID {
			return &e, nil
		}
	}
	return nil, ErrNotFound
}

// --- Lockers ---

func (s *MemoryStore) ListLockers(_ context.Context, unitID string) ([]models.Locker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Locker{}
	for _, l := range s.lockers {
		if unitID == "" || l.UnitID == unitID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (s *MemoryStore) GetLocker(_ context.Context, id string) (*models.Locker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lockers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &l, nil
}

func (s *MemoryStore) CreateLocker(_ context.Context, l *models.Locker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockers[l.ID] = *l
	return nil
}

func (s *MemoryStore) ClaimLocker(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lockers[id]
	if !ok || !l.IsAvailable {
		return ErrNotFound
	}
	l.IsAvailable = false
	s.lockers[id] = l
	return nil
}

func (s *MemoryStore) SetLockerAvailable(_ context.Context, id string, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lockers[id]
	if !ok {
		return ErrNotFound
	}
	l.IsAvailable = available
	s.lockers[id] = l
	return nil
}

func (s *MemoryStore) CreateRental(_ context.Context, r *models.LockerRental) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rentals[r.ID]; !ok {
		s.rentalOrder = append(s.rentalOrder, r.ID)
	}
	s.rentals[r.ID] = *r
	return nil
}

func (s *MemoryStore) GetRental(_ context.Context, id string) (*models.LockerRental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rentals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *MemoryStore) ActiveRental(_ context.Context, lockerID string) (*models.LockerRental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.rentalOrder {
		if r := s.rentals[id]; r.LockerID == lockerID && r.Status == models.StatusActive {
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListRentalsByUser(_ context.Context, userID string) ([]models.LockerRental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.LockerRental{}
	for _, id := range s.rentalOrder {
		if r := s.rentals[id]; r.UserID == userID && r.Status == models.StatusActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateRental(_ context.Context, r *models.LockerRental) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rentals[r.ID]; !ok {
		return ErrNotFound
	}
	s.rentals[r.ID] = *r
	return nil
}

// --- Billing ---

func (s *MemoryStore) GetStatement(_ context.Context, membershipID string) (*models.Statement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.statements[membershipID]
	if !ok {
		return nil, ErrNotFound
	}
	st.Maintenance = append([]models.StatementLine(nil), st.Maintenance...)
	st.Services = append([]models.StatementLine(nil), st.Services...)
	st.Lockers = append([]models.StatementLine(nil), st.Lockers...)
	return &st, nil
}

func (s *MemoryStore) SaveStatement(_ context.Context, st *models.Statement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statements[st.MembershipID] = *st
	return nil
}

func (s *MemoryStore) CreatePayment(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	s.payments = append(s.payments, *p)
	return nil
}

func (s *MemoryStore) ListPayments(_ context.Context, membershipID string) ([]models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Payment{}
	for i := len(s.payments) - 1; i >= 0; i-- {
		if s.payments[i].MembershipID == membershipID {
			out = append(out, s.payments[i])
		}
	}
	return out, nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*MongoStore)(nil)
)
