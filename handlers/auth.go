package handlers

import (
	"net/http"

	"cedarclub/models"
	"cedarclub/services/auth"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves member and staff sign-in.
type AuthHandler struct {
	Service auth.AuthService
}

func NewAuthHandler(svc auth.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// SelectProfileHandler lists the profiles of a membership number.
func (h *AuthHandler) SelectProfileHandler(c *gin.Context) {
	var req models.SelectProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	profiles, err := h.Service.SelectProfile(c.Request.Context(), req.MemberNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SelectProfileResponse{Profiles: profiles})
}

func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Service.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) StaffLoginHandler(c *gin.Context) {
	var req models.StaffLoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Service.StaffLogin(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
