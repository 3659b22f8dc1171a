package routes

import (
	"net/http"
	"time"

	"cedarclub/handlers"
	"cedarclub/middleware"
	"cedarclub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterAuthRoutes registers member and staff sign-in endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/select-profile", hb.SelectProfileHandler)
		authGroup.POST("/login", hb.LoginHandler)
		authGroup.POST("/staff-login", hb.StaffLoginHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	adminGroup := api.Group("/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(hb.Tokens), middleware.JWTAuthAdminMiddleware())
		adminGroup.GET("/staff", hb.ListStaffHandler)
		adminGroup.POST("/staff", hb.CreateStaffHandler)
		adminGroup.DELETE("/staff/:id", hb.DeactivateStaffHandler)
		adminGroup.GET("/units", hb.ListUnitsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.HealthHandler != nil {
		r.GET("/health", hb.HealthHandler)
		return
	}
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
// API endpoints live under /api; /health stays at the root.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	api := r.Group("/api")
	RegisterAuthRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterLockerRoutes(api, hb)
	RegisterMembershipRoutes(api, hb)
	RegisterAdminRoutes(api, hb)
	RegisterHealthRoute(r, hb)
}

// NewRouter builds the gin engine with the global middleware chain and
// every route registered.
func NewRouter(hb *handlers.HandlerBundle, logger *zap.Logger, requestsPerMin int) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(requestsPerMin, logger))

	RegisterRoutes(router, hb)
	return router
}
