package flows

import (
	"context"
	"sync"
	"testing"

	"cedarclub/models"
	"cedarclub/router"
	"cedarclub/session"
)

// fakeAPI implements every API interface the flows use. Unset functions
// return zero values.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	selectProfileFn func(ctx context.Context, number string) ([]models.Profile, error)
	loginFn         func(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
	staffLoginFn    func(ctx context.Context, username, password string) (models.StaffLoginResponse, error)
	catalogFn       func(ctx context.Context, unit string) ([]models.CatalogItem, error)
	enrollFn        func(ctx context.Context, req models.EnrollmentRequest) (models.Enrollment, error)
	bookFn          func(ctx context.Context, req models.ReservationRequest) (models.Reservation, error)
	reservationsFn  func(ctx context.Context) ([]models.Reservation, error)
	lockersFn       func(ctx context.Context, unit string) ([]models.Locker, error)
	myLockersFn     func(ctx context.Context) ([]models.LockerRental, error)
	rentFn          func(ctx context.Context, id string) (models.LockerRental, error)
	releaseFn       func(ctx context.Context, id string) error
	beneficiariesFn func(ctx context.Context, membershipID string) ([]models.Beneficiary, error)
	statementFn     func(ctx context.Context, membershipID string) (models.Statement, error)
	checkoutFn      func(ctx context.Context, req models.CheckoutRequest) (models.Payment, error)
	staffFn         func(ctx context.Context) ([]models.Staff, error)
	unitsFn         func(ctx context.Context) ([]models.Unit, error)
	createStaffFn   func(ctx context.Context, req models.NewStaffRequest) (models.Staff, error)
	deactivateFn    func(ctx context.Context, id string) error
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) SelectProfile(ctx context.Context, number string) ([]models.Profile, error) {
	f.record("select_profile")
	if f.selectProfileFn == nil {
		return nil, nil
	}
	return f.selectProfileFn(ctx, number)
}

func (f *fakeAPI) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	f.record("login")
	if f.loginFn == nil {
		return models.LoginResponse{}, nil
	}
	return f.loginFn(ctx, req)
}

func (f *fakeAPI) StaffLogin(ctx context.Context, username, password string) (models.StaffLoginResponse, error) {
	f.record("staff_login")
	if f.staffLoginFn == nil {
		return models.StaffLoginResponse{}, nil
	}
	return f.staffLoginFn(ctx, username, password)
}

func (f *fakeAPI) Catalog(ctx context.Context, unit string) ([]models.CatalogItem, error) {
	f.record("catalog")
	if f.catalogFn == nil {
		return nil, nil
	}
	return f.catalogFn(ctx, unit)
}

func (f *fakeAPI) Enroll(ctx context.Context, req models.EnrollmentRequest) (models.Enrollment, error) {
	f.record("enroll")
	if f.enrollFn == nil {
		return models.Enrollment{ActivityID: req.ActivityID}, nil
	}
	return f.enrollFn(ctx, req)
}

func (f *fakeAPI) BookReservation(ctx context.Context, req models.ReservationRequest) (models.Reservation, error) {
	f.record("book")
	if f.bookFn == nil {
		return models.Reservation{Date: req.Date, StartTime: req.StartTime, EndTime: req.EndTime}, nil
	}
	return f.bookFn(ctx, req)
}

func (f *fakeAPI) MyReservations(ctx context.Context) ([]models.Reservation, error) {
	f.record("reservations")
	if f.reservationsFn == nil {
		return nil, nil
	}
	return f.reservationsFn(ctx)
}

func (f *fakeAPI) Lockers(ctx context.Context, unit string) ([]models.Locker, error) {
	f.record("lockers")
	if f.lockersFn == nil {
		return nil, nil
	}
	return f.lockersFn(ctx, unit)
}

func (f *fakeAPI) MyLockers(ctx context.Context) ([]models.LockerRental, error) {
	f.record("my_lockers")
	if f.myLockersFn == nil {
		return nil, nil
	}
	return f.myLockersFn(ctx)
}

func (f *fakeAPI) RentLocker(ctx context.Context, id string) (models.LockerRental, error) {
	f.record("rent")
	if f.rentFn == nil {
		return models.LockerRental{}, nil
	}
	return f.rentFn(ctx, id)
}

func (f *fakeAPI) ReleaseLocker(ctx context.Context, id string) error {
	f.record("release")
	if f.releaseFn == nil {
		return nil
	}
	return f.releaseFn(ctx, id)
}

func (f *fakeAPI) Beneficiaries(ctx context.Context, membershipID string) ([]models.Beneficiary, error) {
	f.record("beneficiaries")
	if f.beneficiariesFn == nil {
		return nil, nil
	}
	return f.beneficiariesFn(ctx, membershipID)
}

func (f *fakeAPI) Statement(ctx context.Context, membershipID string) (models.Statement, error) {
	f.record("statement")
	if f.statementFn == nil {
		return models.Statement{}, nil
	}
	return f.statementFn(ctx, membershipID)
}

func (f *fakeAPI) Checkout(ctx context.Context, req models.CheckoutRequest) (models.Payment, error) {
	f.record("checkout")
	if f.checkoutFn == nil {
		return models.Payment{Amount: req.Amount, Status: models.PaymentPaid, SourceType: req.SourceType}, nil
	}
	return f.checkoutFn(ctx, req)
}

func (f *fakeAPI) Staff(ctx context.Context) ([]models.Staff, error) {
	f.record("staff")
	if f.staffFn == nil {
		return nil, nil
	}
	return f.staffFn(ctx)
}

func (f *fakeAPI) Units(ctx context.Context) ([]models.Unit, error) {
	f.record("units")
	if f.unitsFn == nil {
		return nil, nil
	}
	return f.unitsFn(ctx)
}

func (f *fakeAPI) CreateStaff(ctx context.Context, req models.NewStaffRequest) (models.Staff, error) {
	f.record("create_staff")
	if f.createStaffFn == nil {
		return models.Staff{Name: req.Name, IsActive: true}, nil
	}
	return f.createStaffFn(ctx, req)
}

func (f *fakeAPI) DeactivateStaff(ctx context.Context, id string) error {
	f.record("deactivate")
	if f.deactivateFn == nil {
		return nil
	}
	return f.deactivateFn(ctx, id)
}

// recorder is a Navigator that remembers every route requested.
type recorder struct {
	mu     sync.Mutex
	routes []router.Route
}

func (r *recorder) Navigate(route router.Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *recorder) last() router.Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.routes) == 0 {
		return ""
	}
	return r.routes[len(r.routes)-1]
}

func newSession(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.Open(context.Background(), session.NewMemoryStorage(), nil)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return s
}

func loggedIn(t *testing.T, u models.User) *session.Store {
	t.Helper()
	s := newSession(t)
	if err := s.Login(context.Background(), u, "tok"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return s
}

var titular = models.User{
	ID:           "p-1",
	MembershipID: "m-31505",
	MemberNumber: "31505",
	Role:         models.RoleTitular,
	FirstName:    "Andrea",
	LastName:     "Saad",
	UserType:     models.UserTypeMember,
}

func confirmWith(answer bool, asked *int) Confirmer {
	return ConfirmFunc(func(context.Context, string) bool {
		*asked++
		return answer
	})
}
