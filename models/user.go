package models

import "time"

// User roles.
const (
	RoleAdmin   = "ADMIN"
	RoleDoctor  = "DOCTOR"
	RolePatient = "PATIENT"
)

// User is a login account. Non-admin users are bound to exactly one of
// DoctorID / PatientID; admins have neither.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	DoctorID     string    `bson:"doctor_id,omitempty" json:"doctorId,omitempty"`
	PatientID    string    `bson:"patient_id,omitempty" json:"patientId,omitempty"`
	Active       bool      `bson:"active" json:"active"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}
