package userRepo

import "medibook/models"

// UserRepository defines persistence operations for login accounts.
// Lookup methods return (nil, nil) when no document matches.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id string) error
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	// DeactivateByBinding disables the account linked to the given doctor or
	// patient id. Exactly one of the two arguments is non-empty.
	DeactivateByBinding(doctorID, patientID string) error
}
