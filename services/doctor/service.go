package doctor

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	doctorRepo "medibook/database/repository/doctor"
	sequenceRepo "medibook/database/repository/sequence"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services/rbac"
	"medibook/utils"
)

// ErrNotFound signals that no doctor matches the given id.
var ErrNotFound = errors.New("doctor not found")

// CreateInput is the admin payload for registering a doctor. A DOCTOR user
// account is provisioned alongside the profile.
type CreateInput struct {
	FirstName      string   `json:"firstName" binding:"required"`
	LastName       string   `json:"lastName" binding:"required"`
	Specialization string   `json:"specialization" binding:"required"`
	Email          string   `json:"email" binding:"omitempty,email"`
	Phone          string   `json:"phone"`
	WorkingDays    []string `json:"workingDays"`
	OfficeLocation string   `json:"officeLocation"`
	OfficePhone    string   `json:"officePhone"`
	Username       string   `json:"username" binding:"required"`
	Password       string   `json:"password" binding:"required,min=6"`
}

// UpdateInput is the admin payload for editing a doctor profile.
type UpdateInput struct {
	FirstName      string   `json:"firstName" binding:"required"`
	LastName       string   `json:"lastName" binding:"required"`
	Specialization string   `json:"specialization" binding:"required"`
	Email          string   `json:"email" binding:"omitempty,email"`
	Phone          string   `json:"phone"`
	WorkingDays    []string `json:"workingDays"`
	OfficeLocation string   `json:"officeLocation"`
	OfficePhone    string   `json:"officePhone"`
}

// Service exposes doctor management. Listing is open to all roles (patients
// pick a doctor when requesting an appointment); mutation is admin only.
type Service interface {
	Create(actor rbac.Actor, in CreateInput) (*models.Doctor, error)
	Update(actor rbac.Actor, doctorID string, in UpdateInput) (*models.Doctor, error)
	Get(actor rbac.Actor, doctorID string) (*models.Doctor, error)
	ListActive(actor rbac.Actor) ([]models.Doctor, error)
	ListAll(actor rbac.Actor) ([]models.Doctor, error)
	Deactivate(actor rbac.Actor, doctorID string) (*models.Doctor, error)
}

// DefaultService implements Service.
type DefaultService struct {
	Repo      doctorRepo.DoctorRepository
	Users     userRepo.UserRepository
	Sequences sequenceRepo.SequenceRepository
}

// Create registers a doctor and provisions their login account.
func (s *DefaultService) Create(actor rbac.Actor, in CreateInput) (*models.Doctor, error) {
	if err := rbac.Authorize(actor, rbac.OpManageDoctors, nil).Err(); err != nil {
		return nil, err
	}

	doctorID, err := s.Sequences.Next("doctor_seq", "D")
	if err != nil {
		return nil, err
	}

	doc := &models.Doctor{
		ID:             uuid.New().String(),
		DoctorID:       doctorID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Specialization: in.Specialization,
		Email:          in.Email,
		Phone:          in.Phone,
		WorkingDays:    in.WorkingDays,
		OfficeLocation: in.OfficeLocation,
		OfficePhone:    in.OfficePhone,
		Active:         true,
	}
	if err := s.Repo.Create(doc); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	account := &models.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         models.RoleDoctor,
		DoctorID:     doctorID,
		Active:       true,
	}
	if err := s.Users.Create(account); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("doctor registered",
		zap.String("doctorID", doctorID), zap.String("username", in.Username))
	return doc, nil
}

// Update edits a doctor profile. Admin only.
func (s *DefaultService) Update(actor rbac.Actor, doctorID string, in UpdateInput) (*models.Doctor, error) {
	if err := rbac.Authorize(actor, rbac.OpManageDoctors, nil).Err(); err != nil {
		return nil, err
	}

	doc, err := s.Repo.GetByDoctorID(doctorID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}

	doc.FirstName = in.FirstName
	doc.LastName = in.LastName
	doc.Specialization = in.Specialization
	doc.Email = in.Email
	doc.Phone = in.Phone
	doc.WorkingDays = in.WorkingDays
	doc.OfficeLocation = in.OfficeLocation
	doc.OfficePhone = in.OfficePhone

	if err := s.Repo.Update(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Get returns a single doctor profile.
func (s *DefaultService) Get(actor rbac.Actor, doctorID string) (*models.Doctor, error) {
	if err := rbac.Authorize(actor, rbac.OpListDoctors, nil).Err(); err != nil {
		return nil, err
	}
	doc, err := s.Repo.GetByDoctorID(doctorID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

// ListActive returns all active doctors.
func (s *DefaultService) ListActive(actor rbac.Actor) ([]models.Doctor, error) {
	if err := rbac.Authorize(actor, rbac.OpListDoctors, nil).Err(); err != nil {
		return nil, err
	}
	return s.Repo.GetActive()
}

// ListAll returns every doctor, including deactivated ones. Admin only.
func (s *DefaultService) ListAll(actor rbac.Actor) ([]models.Doctor, error) {
	if err := rbac.Authorize(actor, rbac.OpManageDoctors, nil).Err(); err != nil {
		return nil, err
	}
	return s.Repo.GetAll()
}

// Deactivate soft-deletes a doctor and disables the linked user account in
// one domain operation. Appointment history is never removed.
func (s *DefaultService) Deactivate(actor rbac.Actor, doctorID string) (*models.Doctor, error) {
	if err := rbac.Authorize(actor, rbac.OpManageDoctors, nil).Err(); err != nil {
		return nil, err
	}

	doc, err := s.Repo.GetByDoctorID(doctorID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}

	doc.Active = false
	if err := s.Repo.Update(doc); err != nil {
		return nil, err
	}
	if err := s.Users.DeactivateByBinding(doctorID, ""); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("doctor deactivated", zap.String("doctorID", doctorID))
	return doc, nil
}
