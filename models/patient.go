package models

import "time"

// Patient holds a patient's demographic record. Soft-deleted via Active,
// same as Doctor.
type Patient struct {
	ID          string    `bson:"id" json:"id"`
	PatientID   string    `bson:"patient_id" json:"patientId"` // e.g. "P00001"
	FirstName   string    `bson:"first_name" json:"firstName" binding:"required"`
	LastName    string    `bson:"last_name" json:"lastName" binding:"required"`
	DateOfBirth string    `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"` // "YYYY-MM-DD"
	Gender      string    `bson:"gender,omitempty" json:"gender,omitempty"`
	Email       string    `bson:"email" json:"email" binding:"omitempty,email"`
	Phone       string    `bson:"phone" json:"phone"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
	City        string    `bson:"city,omitempty" json:"city,omitempty"`
	PostalCode  string    `bson:"postal_code,omitempty" json:"postalCode,omitempty"`
	Country     string    `bson:"country,omitempty" json:"country,omitempty"`
	Active      bool      `bson:"active" json:"active"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// FullName returns the patient's display name.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
