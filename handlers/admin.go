package handlers

import (
	"net/http"

	"cedarclub/models"
	"cedarclub/services/admin"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Service admin.StaffService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc admin.StaffService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

// ListStaffHandler returns all staff, active or not.
func (ah *AdminHandler) ListStaffHandler(c *gin.Context) {
	staff, err := ah.Service.List(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to fetch staff", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo cargar el personal"})
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (ah *AdminHandler) CreateStaffHandler(c *gin.Context) {
	var req models.NewStaffRequest
	if !bindJSON(c, &req) {
		return
	}
	st, err := ah.Service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

func (ah *AdminHandler) DeactivateStaffHandler(c *gin.Context) {
	if err := ah.Service.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ah *AdminHandler) ListUnitsHandler(c *gin.Context) {
	units, err := ah.Service.Units(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to fetch units", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar las unidades"})
		return
	}
	c.JSON(http.StatusOK, units)
}
