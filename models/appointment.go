package models

import "time"

// Appointment status values. Status moves forward only; Cancelled and
// Completed are terminal.
const (
	StatusScheduled  = "Scheduled"
	StatusConfirmed  = "Confirmed"
	StatusInProgress = "InProgress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

// Appointment represents a booked hospital appointment.
type Appointment struct {
	ID                   string     `bson:"id" json:"id"`
	AppointmentID        string     `bson:"appointment_id" json:"appointmentId"` // Human-readable id, e.g. "APT00001"
	PatientID            string     `bson:"patient_id" json:"patientId" binding:"required"`
	PatientName          string     `bson:"patient_name" json:"patientName"`
	DoctorID             string     `bson:"doctor_id" json:"doctorId" binding:"required"`
	DoctorName           string     `bson:"doctor_name" json:"doctorName"`
	DoctorSpecialization string     `bson:"doctor_specialization,omitempty" json:"doctorSpecialization,omitempty"`
	Date                 string     `bson:"date" json:"date" binding:"required"` // "YYYY-MM-DD"
	Time                 string     `bson:"time" json:"time" binding:"required"` // "HH:MM", local time of day
	Status               string     `bson:"status" json:"status"`
	Remarks              string     `bson:"remarks,omitempty" json:"remarks,omitempty"`
	CancelledAt          *time.Time `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
	CancelledReason      string     `bson:"cancelled_reason,omitempty" json:"cancelledReason,omitempty"`
	CreatedAt            time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt            time.Time  `bson:"updated_at" json:"updatedAt"`
}

// IsCancelled reports whether the appointment no longer occupies its slot.
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}
