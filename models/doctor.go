package models

import "time"

// Doctor holds a doctor's profile, including the weekdays on which they
// accept appointments. Doctors are soft-deleted by clearing Active so that
// appointment history survives.
type Doctor struct {
	ID             string    `bson:"id" json:"id"`
	DoctorID       string    `bson:"doctor_id" json:"doctorId"` // e.g. "D00001"
	FirstName      string    `bson:"first_name" json:"firstName" binding:"required"`
	LastName       string    `bson:"last_name" json:"lastName" binding:"required"`
	Specialization string    `bson:"specialization" json:"specialization" binding:"required"`
	Email          string    `bson:"email" json:"email" binding:"omitempty,email"`
	Phone          string    `bson:"phone" json:"phone"`
	WorkingDays    []string  `bson:"working_days" json:"workingDays"` // Weekday names, e.g. ["Monday", "Wednesday"]
	OfficeLocation string    `bson:"office_location,omitempty" json:"officeLocation,omitempty"`
	OfficePhone    string    `bson:"office_phone,omitempty" json:"officePhone,omitempty"`
	Active         bool      `bson:"active" json:"active"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}

// FullName returns the doctor's display name.
func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}
