package handlers

import (
	"net/http"

	"cedarclub/middleware"
	"cedarclub/models"
	"cedarclub/services/billing"

	"github.com/gin-gonic/gin"
)

// MembershipHandler serves beneficiaries, statements and checkout.
type MembershipHandler struct {
	Service billing.BillingService
}

func NewMembershipHandler(svc billing.BillingService) *MembershipHandler {
	return &MembershipHandler{Service: svc}
}

func (h *MembershipHandler) BeneficiariesHandler(c *gin.Context) {
	bs, err := h.Service.Beneficiaries(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bs)
}

func (h *MembershipHandler) StatementHandler(c *gin.Context) {
	st, err := h.Service.Statement(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// CheckoutHandler charges against the caller's own membership.
func (h *MembershipHandler) CheckoutHandler(c *gin.Context) {
	var req models.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Service.Checkout(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.GetString(middleware.CtxMembershipID),
		req, c.GetHeader(idempotencyHeader))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}
