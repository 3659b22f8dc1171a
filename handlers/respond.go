package handlers

import (
	"errors"
	"net/http"

	"cedarclub/models"
	"cedarclub/services/admin"
	"cedarclub/services/auth"
	"cedarclub/services/billing"
	"cedarclub/services/booking"
	"cedarclub/services/locker"
	"cedarclub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// idempotencyHeader carries the client's replay key on bookings and checkouts.
const idempotencyHeader = "Idempotency-Key"

type apiError struct {
	status  int
	message string
}

// errorTable maps service errors to the status and message shown to members.
// Messages are displayed verbatim by the client.
var errorTable = []struct {
	err error
	apiError
}{
	{auth.ErrMembershipNotFound, apiError{http.StatusNotFound, "Número de socio no encontrado"}},
	{auth.ErrInvalidCredentials, apiError{http.StatusUnauthorized, "Credenciales incorrectas"}},
	{auth.ErrInactiveAccount, apiError{http.StatusForbidden, "La cuenta está inactiva"}},

	{booking.ErrItemNotFound, apiError{http.StatusNotFound, "El servicio no existe"}},
	{booking.ErrWrongItemType, apiError{http.StatusBadRequest, "Este elemento no admite ese tipo de reserva"}},
	{booking.ErrSlotTaken, apiError{http.StatusConflict, "El horario ya está reservado"}},
	{booking.ErrAlreadyEnrolled, apiError{http.StatusConflict, "Ya estás inscrito en esta actividad"}},
	{models.ErrSlotOutOfRange, apiError{http.StatusBadRequest, "Horario fuera de rango"}},
	{models.ErrInvalidDate, apiError{http.StatusBadRequest, "Fecha inválida"}},
	{models.ErrMissingTarget, apiError{http.StatusBadRequest, "Indica un servicio o un recurso"}},

	{locker.ErrUnknownUnit, apiError{http.StatusNotFound, "Unidad desconocida"}},
	{locker.ErrLockerNotFound, apiError{http.StatusNotFound, "El locker no existe"}},
	{locker.ErrLockerUnavailable, apiError{http.StatusConflict, "El locker no está disponible"}},
	{locker.ErrNoActiveRental, apiError{http.StatusNotFound, "No tienes una renta activa de este locker"}},

	{billing.ErrMembershipNotFound, apiError{http.StatusNotFound, "Membresía no encontrada"}},
	{billing.ErrNothingDue, apiError{http.StatusConflict, "No hay saldo pendiente"}},
	{billing.ErrAmountExceedsDue, apiError{http.StatusBadRequest, "El monto excede el saldo pendiente"}},
	{billing.ErrPaymentDeclined, apiError{http.StatusPaymentRequired, "El pago fue rechazado"}},
	{models.ErrInvalidAmount, apiError{http.StatusBadRequest, "Monto inválido"}},
	{models.ErrInvalidMethod, apiError{http.StatusBadRequest, "Método de pago no soportado"}},

	{admin.ErrStaffNotFound, apiError{http.StatusNotFound, "Empleado no encontrado"}},
	{admin.ErrStaffInactive, apiError{http.StatusConflict, "El empleado ya está inactivo"}},
	{admin.ErrUnknownUnit, apiError{http.StatusBadRequest, "Unidad desconocida"}},
	{models.ErrStaffNameRequired, apiError{http.StatusBadRequest, "El nombre es obligatorio"}},
	{models.ErrStaffUnitRequired, apiError{http.StatusBadRequest, "La unidad es obligatoria"}},
}

// respondError writes the JSON error for err and aborts the chain.
func respondError(c *gin.Context, err error) {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			utils.JSONError(c, e.status, e.message, "")
			return
		}
	}
	getLogger(c).Error("Unhandled service error", zap.Error(err), zap.String("path", c.FullPath()))
	utils.JSONError(c, http.StatusInternalServerError, "Error interno del servidor", "")
}

// bindJSON decodes the body, answering 400 on malformed input.
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Solicitud inválida", err.Error())
		return false
	}
	return true
}
