package clubRepo

import (
	"context"
	"errors"

	"cedarclub/models"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

// MemberRepository defines data access for memberships and their profiles.
type MemberRepository interface {
	// GetMembershipByNumber retrieves a membership by its public number.
	GetMembershipByNumber(ctx context.Context, number string) (*models.Membership, error)
	// GetMembership retrieves a membership by ID.
	GetMembership(ctx context.Context, id string) (*models.Membership, error)
	// CreateMembership inserts a membership.
	CreateMembership(ctx context.Context, m *models.Membership) error
	// ListProfiles returns every profile under a membership.
	ListProfiles(ctx context.Context, membershipID string) ([]models.MemberProfile, error)
	// GetProfile retrieves a profile by ID.
	GetProfile(ctx context.Context, id string) (*models.MemberProfile, error)
	// CreateProfile inserts a profile.
	CreateProfile(ctx context.Context, p *models.MemberProfile) error
}

// StaffRepository defines data access for employees and units.
type StaffRepository interface {
	GetStaff(ctx context.Context, id string) (*models.Staff, error)
	GetStaffByUsername(ctx context.Context, username string) (*models.Staff, error)
	ListStaff(ctx context.Context) ([]models.Staff, error)
	CreateStaff(ctx context.Context, s *models.Staff) error
	// SetStaffActive toggles a staff member's active flag.
	SetStaffActive(ctx context.Context, id string, active bool) error

	ListUnits(ctx context.Context) ([]models.Unit, error)
	GetUnit(ctx context.Context, id string) (*models.Unit, error)
	GetUnitByName(ctx context.Context, name string) (*models.Unit, error)
	CreateUnit(ctx context.Context, u *models.Unit) error
}

// CatalogRepository defines data access for bookable items.
type CatalogRepository interface {
	// ListCatalog returns the items of a unit; an empty unit lists all.
	ListCatalog(ctx context.Context, unit string) ([]models.CatalogItem, error)
	GetCatalogItem(ctx context.Context, id string) (*models.CatalogItem, error)
	CreateCatalogItem(ctx context.Context, item *models.CatalogItem) error
}

// BookingRepository defines data access for reservations and enrollments.
type BookingRepository interface {
	CreateReservation(ctx context.Context, r *models.Reservation) error
	ListReservationsByUser(ctx context.Context, userID string) ([]models.Reservation, error)
	// SlotTaken reports whether a confirmed reservation already holds the
	// item at date and start time.
	SlotTaken(ctx context.Context, itemID, date, start string) (bool, error)

	CreateEnrollment(ctx context.Context, e *models.Enrollment) error
	GetEnrollment(ctx context.Context, userID, activityID string) (*models.Enrollment, error)
}

// LockerRepository defines data access for lockers and their rentals.
type LockerRepository interface {
	ListLockers(ctx context.Context, unitID string) ([]models.Locker, error)
	GetLocker(ctx context.Context, id string) (*models.Locker, error)
	CreateLocker(ctx context.Context, l *models.Locker) error
	// ClaimLocker marks an available locker unavailable. It fails with
	// ErrNotFound when the locker does not exist or is already taken.
	ClaimLocker(ctx context.Context, id string) error
	SetLockerAvailable(ctx context.Context, id string, available bool) error

	CreateRental(ctx context.Context, r *models.LockerRental) error
	GetRental(ctx context.Context, id string) (*models.LockerRental, error)
	// ActiveRental returns the active rental of a locker.
	ActiveRental(ctx context.Context, lockerID string) (*models.LockerRental, error)
	ListRentalsByUser(ctx context.Context, userID string) ([]models.LockerRental, error)
	UpdateRental(ctx context.Context, r *models.LockerRental) error
}

// BillingRepository defines data access for statements and payments.
type BillingRepository interface {
	GetStatement(ctx context.Context, membershipID string) (*models.Statement, error)
	SaveStatement(ctx context.Context, s *models.Statement) error
	CreatePayment(ctx context.Context, p *models.Payment) error
	ListPayments(ctx context.Context, membershipID string) ([]models.Payment, error)
}

// Store groups every repository the sandbox server needs.
type Store interface {
	MemberRepository
	StaffRepository
	CatalogRepository
	BookingRepository
	LockerRepository
	BillingRepository
}
