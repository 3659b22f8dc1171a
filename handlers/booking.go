package handlers

import (
	"net/http"

	"cedarclub/middleware"
	"cedarclub/models"
	"cedarclub/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the catalog, enrollments and reservations.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CatalogHandler lists the items of the unit named by ?unit_name=.
func (h *BookingHandler) CatalogHandler(c *gin.Context) {
	items, err := h.Service.Catalog(c.Request.Context(), c.Query("unit_name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *BookingHandler) EnrollHandler(c *gin.Context) {
	var req models.EnrollmentRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.Service.Enroll(c.Request.Context(), c.GetString(middleware.CtxUserID), req, c.GetHeader(idempotencyHeader))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *BookingHandler) BookReservationHandler(c *gin.Context) {
	var req models.ReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.Service.Book(c.Request.Context(), c.GetString(middleware.CtxUserID), req, c.GetHeader(idempotencyHeader))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// MyReservationsHandler lists the caller's reservations.
func (h *BookingHandler) MyReservationsHandler(c *gin.Context) {
	rs, err := h.Service.Reservations(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rs)
}
