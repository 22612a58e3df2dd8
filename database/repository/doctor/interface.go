package doctorRepo

import "medibook/models"

// DoctorRepository defines persistence operations for doctors.
// Lookup methods return (nil, nil) when no document matches.
type DoctorRepository interface {
	Create(doc *models.Doctor) error
	Update(doc *models.Doctor) error
	GetByDoctorID(doctorID string) (*models.Doctor, error)
	GetAll() ([]models.Doctor, error)
	GetActive() ([]models.Doctor, error)
	Count() (int64, error)
}
