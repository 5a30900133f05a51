package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"goalsignal/internal/service"
)

type StatsHandler struct {
	Service *service.SignalService
}

func (h *StatsHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/stats", h.getStats)
}

// @Summary Hit-rate summary over tracked signals
// @Tags stats
// @Param since query string false "RFC3339 lower bound on trigger time"
// @Success 200 {object} stats.Summary
// @Router /api/v1/stats [get]
func (h *StatsHandler) getStats(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var since *time.Time
	if raw := strings.TrimSpace(c.Query("since")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			Error(c, http.StatusBadRequest, "since must be RFC3339", nil)
			return
		}
		parsed = parsed.UTC()
		since = &parsed
	}
	summary, err := h.Service.Stats(c.Request.Context(), since)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, summary, nil)
}
