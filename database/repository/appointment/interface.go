package appointmentRepo

import "medibook/models"

// AppointmentRepository defines persistence operations for appointments.
// Lookup methods return (nil, nil) when no document matches.
type AppointmentRepository interface {
	Create(appt *models.Appointment) error
	Update(appt *models.Appointment) error
	Delete(id string) error
	GetByID(id string) (*models.Appointment, error)
	GetAll() ([]models.Appointment, error)
	GetByDoctorID(doctorID string) ([]models.Appointment, error)
	GetByPatientID(patientID string) ([]models.Appointment, error)
	GetByDate(date string) ([]models.Appointment, error)
	GetByStatus(status string) ([]models.Appointment, error)
	Count() (int64, error)
}
