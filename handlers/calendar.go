package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medibook/services/calendar"
)

// CalendarHandler serves the calendar event feed.
type CalendarHandler struct {
	Calendar calendar.Service
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(cal calendar.Service) *CalendarHandler {
	return &CalendarHandler{Calendar: cal}
}

// EventsHandler returns the actor's visible appointments as calendar events,
// colored by status.
func (h *CalendarHandler) EventsHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	events, err := h.Calendar.EventsFor(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
