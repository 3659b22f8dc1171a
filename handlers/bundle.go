package handlers

import (
	"cedarclub/services/admin"
	"cedarclub/services/auth"
	"cedarclub/services/billing"
	"cedarclub/services/booking"
	"cedarclub/services/locker"
	"cedarclub/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Tokens *utils.TokenIssuer

	// Auth endpoints
	SelectProfileHandler gin.HandlerFunc
	LoginHandler         gin.HandlerFunc
	StaffLoginHandler    gin.HandlerFunc

	// Catalog and booking endpoints
	CatalogHandler         gin.HandlerFunc
	EnrollHandler          gin.HandlerFunc
	BookReservationHandler gin.HandlerFunc
	MyReservationsHandler  gin.HandlerFunc

	// Locker endpoints
	ListLockersHandler   gin.HandlerFunc
	MyLockersHandler     gin.HandlerFunc
	RentLockerHandler    gin.HandlerFunc
	ReleaseLockerHandler gin.HandlerFunc

	// Membership endpoints
	BeneficiariesHandler gin.HandlerFunc
	StatementHandler     gin.HandlerFunc
	CheckoutHandler      gin.HandlerFunc

	// Admin endpoints
	ListStaffHandler       gin.HandlerFunc
	CreateStaffHandler     gin.HandlerFunc
	DeactivateStaffHandler gin.HandlerFunc
	ListUnitsHandler       gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// Services are the domain services the handlers delegate to.
type Services struct {
	Auth    auth.AuthService
	Booking booking.BookingService
	Lockers locker.LockerService
	Billing billing.BillingService
	Staff   admin.StaffService
}

// NewHandlerBundle assembles every endpoint handler. monitor may be nil.
func NewHandlerBundle(svc Services, tokens *utils.TokenIssuer, monitor *utils.HealthMonitor) *HandlerBundle {
	authHandler := NewAuthHandler(svc.Auth)
	bookingHandler := NewBookingHandler(svc.Booking)
	lockerHandler := NewLockerHandler(svc.Lockers)
	membershipHandler := NewMembershipHandler(svc.Billing)
	adminHandler := NewAdminHandler(svc.Staff)

	return &HandlerBundle{
		Tokens: tokens,

		SelectProfileHandler: authHandler.SelectProfileHandler,
		LoginHandler:         authHandler.LoginHandler,
		StaffLoginHandler:    authHandler.StaffLoginHandler,

		CatalogHandler:         bookingHandler.CatalogHandler,
		EnrollHandler:          bookingHandler.EnrollHandler,
		BookReservationHandler: bookingHandler.BookReservationHandler,
		MyReservationsHandler:  bookingHandler.MyReservationsHandler,

		ListLockersHandler:   lockerHandler.ListLockersHandler,
		MyLockersHandler:     lockerHandler.MyLockersHandler,
		RentLockerHandler:    lockerHandler.RentLockerHandler,
		ReleaseLockerHandler: lockerHandler.ReleaseLockerHandler,

		BeneficiariesHandler: membershipHandler.BeneficiariesHandler,
		StatementHandler:     membershipHandler.StatementHandler,
		CheckoutHandler:      membershipHandler.CheckoutHandler,

		ListStaffHandler:       adminHandler.ListStaffHandler,
		CreateStaffHandler:     adminHandler.CreateStaffHandler,
		DeactivateStaffHandler: adminHandler.DeactivateStaffHandler,
		ListUnitsHandler:       adminHandler.ListUnitsHandler,

		HealthHandler: HealthHandler(monitor),
	}
}
