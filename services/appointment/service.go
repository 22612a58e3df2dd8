package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	sequenceRepo "medibook/database/repository/sequence"
	"medibook/models"
	"medibook/services/availability"
	"medibook/services/rbac"
	"medibook/utils"
)

// DefaultService implements Service over the Mongo repositories, the
// availability checker and the per-slot Redis lock.
type DefaultService struct {
	Repo         appointmentRepo.AppointmentRepository
	Doctors      doctorRepo.DoctorRepository
	Patients     patientRepo.PatientRepository
	Sequences    sequenceRepo.SequenceRepository
	Availability availability.Checker
	Locker       utils.SlotLocker
}

// List returns the appointments visible to the actor: all rows for an admin,
// only own rows for doctors and patients.
func (s *DefaultService) List(actor rbac.Actor) ([]models.Appointment, error) {
	if err := rbac.Authorize(actor, rbac.OpListAppointments, nil).Err(); err != nil {
		return nil, err
	}
	return s.scopedList(actor)
}

// ListByDate returns all appointments on a date. Admin only.
func (s *DefaultService) ListByDate(actor rbac.Actor, date string) ([]models.Appointment, error) {
	if err := rbac.Authorize(actor, rbac.OpQueryAppointments, nil).Err(); err != nil {
		return nil, err
	}
	return s.Repo.GetByDate(date)
}

// ListByDoctor returns all appointments of a doctor. Admin only.
func (s *DefaultService) ListByDoctor(actor rbac.Actor, doctorID string) ([]models.Appointment, error) {
	if err := rbac.Authorize(actor, rbac.OpQueryAppointments, nil).Err(); err != nil {
		return nil, err
	}
	return s.Repo.GetByDoctorID(doctorID)
}

// ListByPatient returns all appointments of a patient. Admin only.
func (s *DefaultService) ListByPatient(actor rbac.Actor, patientID string) ([]models.Appointment, error) {
	if err := rbac.Authorize(actor, rbac.OpQueryAppointments, nil).Err(); err != nil {
		return nil, err
	}
	return s.Repo.GetByPatientID(patientID)
}

// Search filters the actor's visible appointments by a case-insensitive
// substring over id, names, date and status.
func (s *DefaultService) Search(actor rbac.Actor, query string) ([]models.Appointment, error) {
	visible, err := s.List(actor)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var results []models.Appointment
	for _, a := range visible {
		if strings.Contains(strings.ToLower(a.PatientName), q) ||
			strings.Contains(strings.ToLower(a.DoctorName), q) ||
			strings.Contains(strings.ToLower(a.AppointmentID), q) ||
			strings.Contains(strings.ToLower(a.Date), q) ||
			strings.Contains(strings.ToLower(a.Status), q) {
			results = append(results, a)
		}
	}
	return results, nil
}

// Get returns a single appointment, gated by ownership.
func (s *DefaultService) Get(actor rbac.Actor, id string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, ErrNotFound
	}
	res := &rbac.Resource{DoctorID: appt.DoctorID, PatientID: appt.PatientID}
	if err := rbac.Authorize(actor, rbac.OpViewAppointment, res).Err(); err != nil {
		return nil, err
	}
	return appt, nil
}

// Create books an appointment. The availability check runs inside the slot
// lock so that two concurrent bookings for the same (doctor, date, time)
// cannot both pass; the partial unique index on the collection backstops the
// lock.
func (s *DefaultService) Create(ctx context.Context, actor rbac.Actor, in CreateInput) (*models.Appointment, error) {
	res := &rbac.Resource{DoctorID: in.DoctorID, PatientID: in.PatientID}
	if err := rbac.Authorize(actor, rbac.OpCreateAppointment, res).Err(); err != nil {
		return nil, err
	}

	var created *models.Appointment
	err := s.Locker.WithSlotLock(ctx, in.DoctorID, in.Date, in.Time, func(lockCtx context.Context) error {
		check, err := s.Availability.Check(in.DoctorID, in.Date, in.Time)
		if err != nil {
			return err
		}
		if !check.Available {
			return fmt.Errorf("%w: %s", availability.ErrSlotUnavailable, check.Message)
		}

		appt, err := s.build(in)
		if err != nil {
			return err
		}
		if err := s.Repo.Create(appt); err != nil {
			return fmt.Errorf("persist appointment: %w", err)
		}
		created = appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("appointment booked",
		zap.String("appointmentID", created.AppointmentID),
		zap.String("doctorID", created.DoctorID),
		zap.String("date", created.Date),
		zap.String("time", created.Time))
	return created, nil
}

// Update performs the admin-only full edit, preserving the identity fields
// of the stored document.
func (s *DefaultService) Update(actor rbac.Actor, id string, in UpdateInput) (*models.Appointment, error) {
	if err := rbac.Authorize(actor, rbac.OpUpdateAppointment, nil).Err(); err != nil {
		return nil, err
	}

	appt, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, ErrNotFound
	}

	appt.Date = in.Date
	appt.Time = in.Time
	appt.Status = in.Status
	appt.Remarks = in.Remarks

	if err := s.Repo.Update(appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// Cancel marks an appointment cancelled, recording when and why. Cancelling
// an already-cancelled appointment is a no-op.
func (s *DefaultService) Cancel(actor rbac.Actor, id, reason string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, ErrNotFound
	}

	res := &rbac.Resource{DoctorID: appt.DoctorID, PatientID: appt.PatientID}
	if err := rbac.Authorize(actor, rbac.OpCancelAppointment, res).Err(); err != nil {
		return nil, err
	}

	if appt.IsCancelled() {
		return appt, nil
	}

	now := time.Now()
	appt.Status = models.StatusCancelled
	appt.CancelledAt = &now
	appt.CancelledReason = reason

	if err := s.Repo.Update(appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// Complete marks an appointment completed. Cancelled appointments stay
// cancelled.
func (s *DefaultService) Complete(actor rbac.Actor, id string) (*models.Appointment, error) {
	if err := rbac.Authorize(actor, rbac.OpCompleteAppointment, nil).Err(); err != nil {
		return nil, err
	}

	appt, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, ErrNotFound
	}
	if appt.IsCancelled() {
		return nil, fmt.Errorf("%w: appointment is cancelled", ErrInvalidTransition)
	}

	appt.Status = models.StatusCompleted
	if err := s.Repo.Update(appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// Delete removes an appointment document entirely. Admin only; everyone else
// must cancel instead.
func (s *DefaultService) Delete(actor rbac.Actor, id string) error {
	if err := rbac.Authorize(actor, rbac.OpDeleteAppointment, nil).Err(); err != nil {
		return err
	}
	appt, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if appt == nil {
		return ErrNotFound
	}
	return s.Repo.Delete(id)
}

func (s *DefaultService) scopedList(actor rbac.Actor) ([]models.Appointment, error) {
	switch actor.Role {
	case models.RoleDoctor:
		if actor.DoctorID == "" {
			return nil, nil
		}
		return s.Repo.GetByDoctorID(actor.DoctorID)
	case models.RolePatient:
		if actor.PatientID == "" {
			return nil, nil
		}
		return s.Repo.GetByPatientID(actor.PatientID)
	default:
		return s.Repo.GetAll()
	}
}

// build assembles a new Scheduled appointment, enriching it with patient and
// doctor display names.
func (s *DefaultService) build(in CreateInput) (*models.Appointment, error) {
	patient, err := s.Patients.GetByPatientID(in.PatientID)
	if err != nil {
		return nil, err
	}
	doctor, err := s.Doctors.GetByDoctorID(in.DoctorID)
	if err != nil {
		return nil, err
	}
	if patient == nil || doctor == nil {
		return nil, ErrUnknownEntity
	}

	apptID, err := s.Sequences.Next("appointment_seq", "A")
	if err != nil {
		return nil, err
	}

	return &models.Appointment{
		ID:                   uuid.New().String(),
		AppointmentID:        apptID,
		PatientID:            in.PatientID,
		PatientName:          patient.FullName(),
		DoctorID:             in.DoctorID,
		DoctorName:           doctor.FullName(),
		DoctorSpecialization: doctor.Specialization,
		Date:                 in.Date,
		Time:                 in.Time,
		Status:               models.StatusScheduled,
		Remarks:              in.Remarks,
	}, nil
}
