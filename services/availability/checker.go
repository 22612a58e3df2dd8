package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	"medibook/models"
	"medibook/utils"
)

// MinGapMinutes is the minimum spacing between two live appointments of the
// same doctor on the same day.
const MinGapMinutes = 10

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ErrSlotUnavailable is the sentinel used by booking paths when a slot fails
// the availability check between validation and persist.
var ErrSlotUnavailable = errors.New("slot unavailable")

// Checker decides whether a (doctor, date, time) slot is bookable. It is a
// pure read-only check: it does not reserve the slot, so callers that book
// must re-check inside their own critical section.
type Checker interface {
	Check(doctorID, date, timeOfDay string) (models.AvailabilityResult, error)
}

// DefaultChecker implements Checker over the doctor and appointment stores.
type DefaultChecker struct {
	Doctors      doctorRepo.DoctorRepository
	Appointments appointmentRepo.AppointmentRepository
}

// Check runs the short-circuit availability algorithm: doctor existence,
// active flag, working-day membership, then exact-slot and minimum-gap
// conflicts against the doctor's non-cancelled appointments on that date.
func (c *DefaultChecker) Check(doctorID, date, timeOfDay string) (models.AvailabilityResult, error) {
	doc, err := c.Doctors.GetByDoctorID(doctorID)
	if err != nil {
		return models.AvailabilityResult{}, err
	}
	if doc == nil {
		return models.AvailabilityResult{Available: false, Message: "doctor not found"}, nil
	}

	if !doc.Active {
		return models.AvailabilityResult{Available: false, Message: "doctor inactive"}, nil
	}

	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return models.AvailabilityResult{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	weekday := day.Weekday().String()

	if len(doc.WorkingDays) == 0 {
		return models.AvailabilityResult{Available: false, Message: "no working days configured"}, nil
	}

	if !containsFold(doc.WorkingDays, weekday) {
		return models.AvailabilityResult{
			Available:   false,
			Message:     "doctor does not work on " + strings.ToLower(weekday),
			WorkingDays: doc.WorkingDays,
		}, nil
	}

	requested, err := time.Parse(timeLayout, timeOfDay)
	if err != nil {
		return models.AvailabilityResult{}, fmt.Errorf("invalid time %q: %w", timeOfDay, err)
	}

	existing, err := c.Appointments.GetByDoctorID(doctorID)
	if err != nil {
		return models.AvailabilityResult{}, err
	}

	for i := range existing {
		appt := &existing[i]
		if appt.IsCancelled() || appt.Date != date {
			continue
		}

		booked, err := time.Parse(timeLayout, appt.Time)
		if err != nil {
			// A malformed stored time should not block booking; skip it.
			utils.GetLogger().Warn("skipping appointment with unparseable time",
				zap.String("appointmentID", appt.AppointmentID), zap.String("time", appt.Time))
			continue
		}

		if booked.Equal(requested) {
			return models.AvailabilityResult{Available: false, Message: "slot already booked"}, nil
		}

		diff := requested.Sub(booked)
		if diff < 0 {
			diff = -diff
		}
		if diff < MinGapMinutes*time.Minute {
			return models.AvailabilityResult{
				Available: false,
				Message: fmt.Sprintf("minimum %d-minute gap violated; existing appointment at %s",
					MinGapMinutes, appt.Time),
			}, nil
		}
	}

	return models.AvailabilityResult{Available: true, Message: "doctor is available"}, nil
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}
