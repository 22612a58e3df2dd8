package request

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	requestRepo "medibook/database/repository/request"
	sequenceRepo "medibook/database/repository/sequence"
	"medibook/models"
	"medibook/services/availability"
	"medibook/services/rbac"
	"medibook/utils"
)

// SubmitInput is a patient's appointment request payload.
type SubmitInput struct {
	PatientID       string `json:"patientId" binding:"required"`
	DoctorID        string `json:"doctorId" binding:"required"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	AppointmentTime string `json:"appointmentTime" binding:"required"`
	Reason          string `json:"reason"`
}

// Service drives the request workflow: PENDING -> APPROVED | DENIED, with an
// approval producing exactly one Scheduled appointment.
type Service interface {
	Submit(actor rbac.Actor, in SubmitInput) (*models.AppointmentRequest, error)
	Approve(ctx context.Context, actor rbac.Actor, requestID string) (*models.AppointmentRequest, *models.Appointment, error)
	Deny(actor rbac.Actor, requestID, denialReason string) (*models.AppointmentRequest, error)
	Get(actor rbac.Actor, requestID string) (*models.AppointmentRequest, error)
	MyRequests(actor rbac.Actor) ([]models.AppointmentRequest, error)
	DoctorQueue(actor rbac.Actor, status string) ([]models.AppointmentRequest, error)
}

// DefaultService implements Service.
type DefaultService struct {
	Repo         requestRepo.RequestRepository
	Appointments appointmentRepo.AppointmentRepository
	Doctors      doctorRepo.DoctorRepository
	Patients     patientRepo.PatientRepository
	Sequences    sequenceRepo.SequenceRepository
	Availability availability.Checker
	Locker       utils.SlotLocker
}

// Submit files a PENDING request. Patients may only request for themselves.
func (s *DefaultService) Submit(actor rbac.Actor, in SubmitInput) (*models.AppointmentRequest, error) {
	res := &rbac.Resource{PatientID: in.PatientID}
	if err := rbac.Authorize(actor, rbac.OpSubmitRequest, res).Err(); err != nil {
		return nil, err
	}

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

	requestID, err := s.Sequences.Next("appointment_request_seq", "AR")
	if err != nil {
		return nil, err
	}

	req := &models.AppointmentRequest{
		ID:              uuid.New().String(),
		RequestID:       requestID,
		PatientID:       in.PatientID,
		PatientName:     patient.FullName(),
		DoctorID:        in.DoctorID,
		DoctorName:      doctor.FullName(),
		AppointmentDate: in.AppointmentDate,
		AppointmentTime: in.AppointmentTime,
		Reason:          in.Reason,
		Status:          models.RequestPending,
	}
	if err := s.Repo.Create(req); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("appointment request submitted",
		zap.String("requestID", req.RequestID),
		zap.String("patientID", req.PatientID),
		zap.String("doctorID", req.DoctorID))
	return req, nil
}

// Approve moves a PENDING request to APPROVED and books the slot. The
// availability check reruns inside the slot lock; a conflict fails the
// approval and leaves the request PENDING. Acting on a non-PENDING request
// never mutates state and never books a second appointment.
func (s *DefaultService) Approve(ctx context.Context, actor rbac.Actor, requestID string) (*models.AppointmentRequest, *models.Appointment, error) {
	req, err := s.Repo.GetByRequestID(requestID)
	if err != nil {
		return nil, nil, err
	}
	if req == nil {
		return nil, nil, ErrNotFound
	}

	res := &rbac.Resource{DoctorID: req.DoctorID}
	if err := rbac.Authorize(actor, rbac.OpApproveRequest, res).Err(); err != nil {
		return nil, nil, err
	}

	if req.Status != models.RequestPending {
		return req, nil, ErrNotPending
	}

	var booked *models.Appointment
	err = s.Locker.WithSlotLock(ctx, req.DoctorID, req.AppointmentDate, req.AppointmentTime, func(lockCtx context.Context) error {
		check, err := s.Availability.Check(req.DoctorID, req.AppointmentDate, req.AppointmentTime)
		if err != nil {
			return err
		}
		if !check.Available {
			return fmt.Errorf("%w: %s", availability.ErrSlotUnavailable, check.Message)
		}

		apptID, err := s.Sequences.Next("appointment_seq", "APT")
		if err != nil {
			return err
		}

		appt := &models.Appointment{
			ID:            uuid.New().String(),
			AppointmentID: apptID,
			PatientID:     req.PatientID,
			PatientName:   req.PatientName,
			DoctorID:      req.DoctorID,
			DoctorName:    req.DoctorName,
			Date:          req.AppointmentDate,
			Time:          req.AppointmentTime,
			Status:        models.StatusScheduled,
			Remarks:       "Created from appointment request: " + req.RequestID,
		}
		if err := s.Appointments.Create(appt); err != nil {
			return fmt.Errorf("persist appointment: %w", err)
		}

		req.Status = models.RequestApproved
		if err := s.Repo.Update(req); err != nil {
			return err
		}

		booked = appt
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	utils.GetLogger().Info("appointment request approved",
		zap.String("requestID", req.RequestID),
		zap.String("appointmentID", booked.AppointmentID))
	return req, booked, nil
}

// Deny moves a PENDING request to DENIED, storing the denial reason. No
// appointment is created. Acting on a non-PENDING request is a no-op.
func (s *DefaultService) Deny(actor rbac.Actor, requestID, denialReason string) (*models.AppointmentRequest, error) {
	req, err := s.Repo.GetByRequestID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}

	res := &rbac.Resource{DoctorID: req.DoctorID}
	if err := rbac.Authorize(actor, rbac.OpDenyRequest, res).Err(); err != nil {
		return nil, err
	}

	if req.Status != models.RequestPending {
		return req, ErrNotPending
	}

	req.Status = models.RequestDenied
	req.DenialReason = denialReason
	if err := s.Repo.Update(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Get returns a single request, gated by ownership.
func (s *DefaultService) Get(actor rbac.Actor, requestID string) (*models.AppointmentRequest, error) {
	req, err := s.Repo.GetByRequestID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}
	res := &rbac.Resource{DoctorID: req.DoctorID, PatientID: req.PatientID}
	if err := rbac.Authorize(actor, rbac.OpViewRequest, res).Err(); err != nil {
		return nil, err
	}
	return req, nil
}

// MyRequests lists the acting patient's own requests.
func (s *DefaultService) MyRequests(actor rbac.Actor) ([]models.AppointmentRequest, error) {
	if actor.Role != models.RolePatient || actor.PatientID == "" {
		return nil, rbac.Deny("only patients have a request list").Err()
	}
	return s.Repo.GetByPatientID(actor.PatientID)
}

// DoctorQueue lists the acting doctor's requests, optionally filtered by
// status.
func (s *DefaultService) DoctorQueue(actor rbac.Actor, status string) ([]models.AppointmentRequest, error) {
	if actor.Role != models.RoleDoctor || actor.DoctorID == "" {
		return nil, rbac.Deny("only doctors have a request queue").Err()
	}
	if status == "" {
		return s.Repo.GetByDoctorID(actor.DoctorID)
	}
	return s.Repo.GetByDoctorIDAndStatus(actor.DoctorID, status)
}
