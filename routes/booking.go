package routes

import (
	"cedarclub/handlers"
	"cedarclub/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the catalog, enrollment and reservation
// endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware(hb.Tokens))
	authed.GET("/catalog", hb.CatalogHandler)

	members := api.Group("")
	members.Use(middleware.JWTAuthMiddleware(hb.Tokens), middleware.MemberOnlyMiddleware())
	{
		members.POST("/enrollments", hb.EnrollHandler)
		members.POST("/reservations/book", hb.BookReservationHandler)
		members.GET("/reservations/user", hb.MyReservationsHandler)
	}
}

// RegisterLockerRoutes sets up locker listing and rental endpoints.
func RegisterLockerRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	lockerGroup := api.Group("/lockers")
	{
		lockerGroup.Use(middleware.JWTAuthMiddleware(hb.Tokens), middleware.MemberOnlyMiddleware())
		lockerGroup.GET("", hb.ListLockersHandler)
		lockerGroup.GET("/my", hb.MyLockersHandler)
		lockerGroup.POST("/:id/rent", hb.RentLockerHandler)
		lockerGroup.POST("/:id/release", hb.ReleaseLockerHandler)
	}
}

// RegisterMembershipRoutes sets up the family, statement and payment
// endpoints. Members only see their own membership.
func RegisterMembershipRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	membershipGroup := api.Group("/membership/:id")
	{
		membershipGroup.Use(
			middleware.JWTAuthMiddleware(hb.Tokens),
			middleware.MemberOnlyMiddleware(),
			middleware.MembershipAccessMiddleware(),
		)
		membershipGroup.GET("/beneficiaries", hb.BeneficiariesHandler)
		membershipGroup.GET("/statement", hb.StatementHandler)
	}

	paymentGroup := api.Group("/payments")
	{
		paymentGroup.Use(middleware.JWTAuthMiddleware(hb.Tokens), middleware.MemberOnlyMiddleware())
		paymentGroup.POST("/checkout", hb.CheckoutHandler)
	}
}
