package appointment

import (
	"context"

	"medibook/models"
	"medibook/services/rbac"
)

// CreateInput is the payload for booking an appointment directly.
type CreateInput struct {
	PatientID string `json:"patientId" binding:"required"`
	DoctorID  string `json:"doctorId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Remarks   string `json:"remarks"`
}

// UpdateInput is the admin-only full-edit payload. Identity fields
// (appointment id, patient, doctor, names) are preserved from the stored
// document.
type UpdateInput struct {
	Date    string `json:"date" binding:"required"`
	Time    string `json:"time" binding:"required"`
	Status  string `json:"status" binding:"required"`
	Remarks string `json:"remarks"`
}

// Service exposes the role-gated appointment operations. Every method takes
// the acting user explicitly.
type Service interface {
	List(actor rbac.Actor) ([]models.Appointment, error)
	ListByDate(actor rbac.Actor, date string) ([]models.Appointment, error)
	ListByDoctor(actor rbac.Actor, doctorID string) ([]models.Appointment, error)
	ListByPatient(actor rbac.Actor, patientID string) ([]models.Appointment, error)
	Search(actor rbac.Actor, query string) ([]models.Appointment, error)
	Get(actor rbac.Actor, id string) (*models.Appointment, error)
	Create(ctx context.Context, actor rbac.Actor, in CreateInput) (*models.Appointment, error)
	Update(actor rbac.Actor, id string, in UpdateInput) (*models.Appointment, error)
	Cancel(actor rbac.Actor, id, reason string) (*models.Appointment, error)
	Complete(actor rbac.Actor, id string) (*models.Appointment, error)
	Delete(actor rbac.Actor, id string) error
}
