package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"goalsignal/internal/repository"
)

type CalibrationHandler struct {
	Repo repository.Repository
}

func (h *CalibrationHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/calibration", h.listCalibrations)
}

// @Summary List calibration observations
// @Tags calibration
// @Success 200 {array} models.CalibrationRecord
// @Router /api/v1/calibration [get]
func (h *CalibrationHandler) listCalibrations(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)

	params := repository.ListCalibrationsParams{
		Limit:  limit,
		Offset: offset,
	}
	if phase := strings.TrimSpace(c.Query("phase")); phase != "" {
		params.Phase = &phase
	}
	if raw := strings.TrimSpace(c.Query("outcome")); raw != "" {
		outcome := strings.EqualFold(raw, "true") || raw == "1"
		params.Outcome = &outcome
	}
	if raw := strings.TrimSpace(c.Query("since")); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			parsed = parsed.UTC()
			params.Since = &parsed
		}
	}

	items, err := h.Repo.ListCalibrations(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountCalibrations(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}
