package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goalsignal/internal/service"
)

type SweepHandler struct {
	Sweep *service.SweepService
}

func (h *SweepHandler) Register(r *gin.Engine) {
	r.POST("/api/v1/sweep/run", h.runSweep)
}

// @Summary Trigger a settlement sweep immediately
// @Tags sweep
// @Success 200 {object} map[string]string
// @Router /api/v1/sweep/run [post]
func (h *SweepHandler) runSweep(c *gin.Context) {
	if h.Sweep == nil {
		Error(c, http.StatusInternalServerError, "sweep unavailable", nil)
		return
	}
	if err := h.Sweep.RunOnce(c.Request.Context()); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"status": "swept"}, nil)
}
