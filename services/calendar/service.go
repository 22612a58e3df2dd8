package calendar

import (
	"medibook/models"
	"medibook/services/appointment"
	"medibook/services/rbac"
)

// Status display colors for the calendar UI.
const (
	colorBlue      = "#3498db"
	colorGreen     = "#2ecc71"
	colorDarkGreen = "#27ae60"
	colorRed       = "#e74c3c"
	colorOrange    = "#f39c12"
)

// Service produces the role-filtered event feed for the calendar UI.
type Service interface {
	EventsFor(actor rbac.Actor) ([]models.CalendarEvent, error)
}

// DefaultService implements Service on top of the appointment service, which
// already applies per-role visibility.
type DefaultService struct {
	Appointments appointment.Service
}

// EventsFor returns the actor's visible appointments as calendar events.
func (s *DefaultService) EventsFor(actor rbac.Actor) ([]models.CalendarEvent, error) {
	appts, err := s.Appointments.List(actor)
	if err != nil {
		return nil, err
	}

	events := make([]models.CalendarEvent, 0, len(appts))
	for _, a := range appts {
		events = append(events, models.CalendarEvent{
			ID:              a.ID,
			Title:           a.AppointmentID + " - " + a.PatientName,
			Start:           a.Date + "T" + a.Time,
			Doctor:          a.DoctorName,
			Status:          a.Status,
			BackgroundColor: ColorForStatus(a.Status),
		})
	}
	return events, nil
}

// ColorForStatus maps an appointment status to its display color.
func ColorForStatus(status string) string {
	switch status {
	case models.StatusScheduled:
		return colorBlue
	case models.StatusConfirmed:
		return colorGreen
	case models.StatusCompleted:
		return colorDarkGreen
	case models.StatusCancelled:
		return colorRed
	case models.StatusInProgress:
		return colorOrange
	default:
		return colorBlue
	}
}
