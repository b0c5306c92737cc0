package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artifai/internal/app"
	"artifai/internal/logging"
)

type StatusHandler struct {
	statusService *app.StatusService
}

func NewStatusHandler(statusService *app.StatusService) *StatusHandler {
	return &StatusHandler{statusService: statusService}
}

func (h *StatusHandler) Database(c *gin.Context) {
	status, err := h.statusService.DatabaseStatus(c.Request.Context())
	if err != nil {
		logging.FromContext(c.Request.Context()).Error().Err(err).Msg("database status failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, status)
}
