package models

import "time"

// AppointmentRequest status values. PENDING is the only non-terminal state.
const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestDenied   = "DENIED"
)

// AppointmentRequest is a patient's request for an appointment, awaiting a
// doctor's approval or denial. An approved request produces exactly one
// Appointment; the two are linked only by a descriptive remark.
type AppointmentRequest struct {
	ID              string    `bson:"id" json:"id"`
	RequestID       string    `bson:"request_id" json:"requestId"` // e.g. "AR00001"
	PatientID       string    `bson:"patient_id" json:"patientId"`
	PatientName     string    `bson:"patient_name" json:"patientName"`
	DoctorID        string    `bson:"doctor_id" json:"doctorId" binding:"required"`
	DoctorName      string    `bson:"doctor_name" json:"doctorName"`
	AppointmentDate string    `bson:"appointment_date" json:"appointmentDate" binding:"required"` // "YYYY-MM-DD"
	AppointmentTime string    `bson:"appointment_time" json:"appointmentTime" binding:"required"` // "HH:MM"
	Reason          string    `bson:"reason" json:"reason"`
	Status          string    `bson:"status" json:"status"`
	DenialReason    string    `bson:"denial_reason,omitempty" json:"denialReason,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}
