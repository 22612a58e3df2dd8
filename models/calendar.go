package models

// CalendarEvent is the shape consumed by the calendar UI collaborator.
type CalendarEvent struct {
	ID              string `json:"id"`
	Title           string `json:"title"` // "<appointmentId> - <patient name>"
	Start           string `json:"start"` // "<date>T<time>"
	Doctor          string `json:"extendedProps"`
	Status          string `json:"status"`
	BackgroundColor string `json:"backgroundColor"`
}

// AvailabilityResult is the response of the doctor-availability check.
// WorkingDays is only populated when the requested weekday is outside the
// doctor's configured working days, for client display.
type AvailabilityResult struct {
	Available   bool     `json:"available"`
	Message     string   `json:"message"`
	WorkingDays []string `json:"workingDays,omitempty"`
}
