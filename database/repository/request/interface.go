package requestRepo

import "medibook/models"

// RequestRepository defines persistence operations for appointment requests.
// Lookup methods return (nil, nil) when no document matches.
type RequestRepository interface {
	Create(req *models.AppointmentRequest) error
	Update(req *models.AppointmentRequest) error
	GetByRequestID(requestID string) (*models.AppointmentRequest, error)
	GetAll() ([]models.AppointmentRequest, error)
	GetByPatientID(patientID string) ([]models.AppointmentRequest, error)
	GetByDoctorID(doctorID string) ([]models.AppointmentRequest, error)
	GetByDoctorIDAndStatus(doctorID, status string) ([]models.AppointmentRequest, error)
}
