package handlers

import (
	"errors"
	"net/http"

	"suncrest/models"
	"suncrest/services/wizard"
	"suncrest/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WizardHandler exposes the booking wizard over HTTP.
type WizardHandler struct {
	Svc    wizard.WizardService
	Logger *zap.Logger
}

func NewWizardHandler(svc wizard.WizardService, logger *zap.Logger) *WizardHandler {
	return &WizardHandler{Svc: svc, Logger: logger}
}

// StartSession handles POST /api/wizard/session.
func (h *WizardHandler) StartSession(c *gin.Context) {
	session, err := h.Svc.StartSession(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.Logger.Error("StartSession: failed to create wizard session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to start booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// SelectRoom handles POST /api/wizard/session/:sessionID/room.
func (h *WizardHandler) SelectRoom(c *gin.Context) {
	var body struct {
		RoomID string `json:"roomId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	snap, err := h.Svc.SelectRoom(c.Request.Context(), c.Param("sessionID"), c.GetString("userID"), body.RoomID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SubmitStay handles POST /api/wizard/session/:sessionID/stay.
func (h *WizardHandler) SubmitStay(c *gin.Context) {
	var stay models.StayDetails
	if err := c.ShouldBindJSON(&stay); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	snap, err := h.Svc.SubmitStay(c.Request.Context(), c.Param("sessionID"), stay)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SubmitGuestDetails handles POST /api/wizard/session/:sessionID/guest.
func (h *WizardHandler) SubmitGuestDetails(c *gin.Context) {
	var guest models.GuestProfile
	if err := c.ShouldBindJSON(&guest); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	snap, err := h.Svc.SubmitGuestDetails(c.Request.Context(), c.Param("sessionID"), guest)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SubmitBilling handles POST /api/wizard/session/:sessionID/billing.
func (h *WizardHandler) SubmitBilling(c *gin.Context) {
	var billing models.BillingDetails
	if err := c.ShouldBindJSON(&billing); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	confirmation, err := h.Svc.SubmitBilling(c.Request.Context(), c.Param("sessionID"), billing)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, confirmation)
}

// Back handles POST /api/wizard/session/:sessionID/back.
func (h *WizardHandler) Back(c *gin.Context) {
	snap, err := h.Svc.Back(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// JumpTo handles POST /api/wizard/session/:sessionID/goto.
func (h *WizardHandler) JumpTo(c *gin.Context) {
	var body struct {
		Step int `json:"step" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	snap, err := h.Svc.JumpTo(c.Request.Context(), c.Param("sessionID"), models.WizardStep(body.Step))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GetQuote handles GET /api/wizard/session/:sessionID/quote.
func (h *WizardHandler) GetQuote(c *gin.Context) {
	quote, err := h.Svc.Quote(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// GetSnapshot handles GET /api/wizard/session/:sessionID.
func (h *WizardHandler) GetSnapshot(c *gin.Context) {
	snap, err := h.Svc.Snapshot(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// CancelSession handles DELETE /api/wizard/session/:sessionID.
func (h *WizardHandler) CancelSession(c *gin.Context) {
	if err := h.Svc.Cancel(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// renderError maps wizard error kinds onto HTTP responses.
func (h *WizardHandler) renderError(c *gin.Context, err error) {
	var validationErr *wizard.ValidationError
	var transitionErr *wizard.TransitionError
	var submissionErr *wizard.SubmissionError
	var catalogErr *wizard.CatalogError

	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking session not found or expired", "")
	case errors.Is(err, wizard.ErrSessionConflict):
		utils.JSONError(c, http.StatusConflict, "booking session changed, please retry", "")
	case errors.Is(err, wizard.ErrLoginRequired):
		utils.JSONErrorRedirect(c, http.StatusUnauthorized, "Login Required", err.Error(), "/pages/auth")
	case errors.Is(err, wizard.ErrSubmitInFlight):
		utils.JSONError(c, http.StatusConflict, "submission already in progress", "")
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusUnprocessableEntity, validationErr.Reason, "")
	case errors.As(err, &transitionErr):
		utils.JSONError(c, http.StatusConflict, "invalid wizard transition", transitionErr.Error())
	case errors.As(err, &submissionErr):
		status := http.StatusBadGateway
		redirect := ""
		if submissionErr.Kind == wizard.KindAuthInvalid {
			status = http.StatusUnauthorized
			if submissionErr.Redirect {
				redirect = "/pages/auth"
			}
		}
		if redirect != "" {
			utils.JSONErrorRedirect(c, status, "Booking Failed", submissionErr.Message, redirect)
			return
		}
		utils.JSONError(c, status, "Booking Failed", submissionErr.Message)
	case errors.As(err, &catalogErr):
		utils.JSONError(c, http.StatusServiceUnavailable, catalogErr.Message, "")
	default:
		h.Logger.Error("wizard request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}
