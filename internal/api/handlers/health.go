package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ayash-Bera/propsearch/internal/health"
	"github.com/Ayash-Bera/propsearch/pkg/utils"
)

type HealthHandler struct {
	checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// HandleHealth runs every check. Only an unhealthy result maps to 503.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	result := h.checker.CheckAll(c.Request.Context())
	if result.Status == health.StatusUnhealthy {
		c.JSON(http.StatusServiceUnavailable, utils.APIResponse{
			Success:   false,
			Message:   "Service unhealthy",
			Data:      result,
			RequestID: c.GetString("request_id"),
		})
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Service "+result.Status, result)
}
