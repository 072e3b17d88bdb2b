package handlers

import (
	"errors"
	"net/http"

	"suncrest/services/wizard"
	"suncrest/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoomsHandler serves the bookable room list.
type RoomsHandler struct {
	Svc    wizard.WizardService
	Logger *zap.Logger
}

func NewRoomsHandler(svc wizard.WizardService, logger *zap.Logger) *RoomsHandler {
	return &RoomsHandler{Svc: svc, Logger: logger}
}

// ListRooms handles GET /api/rooms. Catalog failures come back with a
// retryable flag so the client can offer a reload action.
func (h *RoomsHandler) ListRooms(c *gin.Context) {
	rooms, err := h.Svc.LoadRooms(c.Request.Context())
	if err != nil {
		var catalogErr *wizard.CatalogError
		if errors.As(err, &catalogErr) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":     catalogErr.Message,
				"retryable": true,
			})
			return
		}
		h.Logger.Error("ListRooms: failed to load rooms", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load rooms", err.Error())
		return
	}
	c.JSON(http.StatusOK, rooms)
}
