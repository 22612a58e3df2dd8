package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medibook/services/stats"
)

// StatsHandler serves the dashboard counters.
type StatsHandler struct {
	Stats stats.Service
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(s stats.Service) *StatsHandler {
	return &StatsHandler{Stats: s}
}

// CountsHandler returns global and per-role dashboard statistics.
func (h *StatsHandler) CountsHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	counts, err := h.Stats.Counts(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
