package patientRepo

import "medibook/models"

// PatientRepository defines persistence operations for patients.
// Lookup methods return (nil, nil) when no document matches.
type PatientRepository interface {
	Create(p *models.Patient) error
	Update(p *models.Patient) error
	GetByPatientID(patientID string) (*models.Patient, error)
	GetAll() ([]models.Patient, error)
	GetActive() ([]models.Patient, error)
	Count() (int64, error)
}
