package handlers

import (
	"context"
	"net/http"
	"time"

	"subwatch/config"
	"subwatch/services/reminder"
	"subwatch/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReminderHandler exposes the reminder engine on the admin HTTP surface.
type ReminderHandler struct {
	svc    reminder.ReminderService
	logger *zap.Logger
}

// NewReminderHandler creates the handler.
func NewReminderHandler(svc reminder.ReminderService, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{svc: svc, logger: logger}
}

// RunHandler triggers a reminder pass out of schedule and returns its summary.
func (h *ReminderHandler) RunHandler(c *gin.Context) {
	timeout := time.Duration(config.AppConfig.RunTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 540 * time.Second
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	h.logger.Info("manual reminder pass requested")
	summary, err := h.svc.RunPass(ctx)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "reminder pass failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, summary)
}

// SummaryHandler returns the last completed run summary.
func (h *ReminderHandler) SummaryHandler(c *gin.Context) {
	summary := h.svc.LastSummary()
	if summary == nil {
		utils.JSONError(c, http.StatusNotFound, "no reminder pass has completed yet", "")
		return
	}
	c.JSON(http.StatusOK, summary)
}
