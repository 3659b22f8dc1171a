package handlers

import (
	"net/http"

	"cedarclub/middleware"
	"cedarclub/services/locker"

	"github.com/gin-gonic/gin"
)

// LockerHandler serves locker listings and rentals.
type LockerHandler struct {
	Service locker.LockerService
}

func NewLockerHandler(svc locker.LockerService) *LockerHandler {
	return &LockerHandler{Service: svc}
}

func (h *LockerHandler) ListLockersHandler(c *gin.Context) {
	lockers, err := h.Service.List(c.Request.Context(), c.Query("unit_name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lockers)
}

func (h *LockerHandler) MyLockersHandler(c *gin.Context) {
	rentals, err := h.Service.Mine(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rentals)
}

func (h *LockerHandler) RentLockerHandler(c *gin.Context) {
	rental, err := h.Service.Rent(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rental)
}

// ReleaseLockerHandler stops auto-renew on the caller's rental of a locker.
func (h *LockerHandler) ReleaseLockerHandler(c *gin.Context) {
	rental, err := h.Service.Release(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rental)
}
