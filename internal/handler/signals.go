package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"goalsignal/internal/service"
)

type SignalHandler struct {
	Service *service.SignalService
}

func (h *SignalHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/signals")
	group.POST("", h.createSignal)
	group.GET("", h.listSignals)
}

// @Summary Create a goal signal
// @Tags signals
// @Accept json
// @Success 200 {object} models.SignalRecord
// @Router /api/v1/signals [post]
func (h *SignalHandler) createSignal(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var in service.CreateSignalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if strings.TrimSpace(in.MatchID) == "" {
		Error(c, http.StatusBadRequest, "matchId is required", nil)
		return
	}
	rec, err := h.Service.Create(c.Request.Context(), in)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, rec, nil)
}

// @Summary List recent signals
// @Tags signals
// @Success 200 {array} models.SignalRecord
// @Router /api/v1/signals [get]
func (h *SignalHandler) listSignals(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	items, err := h.Service.Recent(c.Request.Context(), limit)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"limit": limit, "count": len(items)})
}
