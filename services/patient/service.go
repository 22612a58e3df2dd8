package patient

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	patientRepo "medibook/database/repository/patient"
	sequenceRepo "medibook/database/repository/sequence"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services/rbac"
	"medibook/utils"
)

// ErrNotFound signals that no patient matches the given id.
var ErrNotFound = errors.New("patient not found")

// CreateInput is the admin payload for registering a patient. A PATIENT user
// account is provisioned alongside the record.
type CreateInput struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
}

// UpdateInput is the admin payload for editing a patient record.
type UpdateInput struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
}

// Service exposes patient management. Listing is open to admins and doctors;
// mutation is admin only.
type Service interface {
	Create(actor rbac.Actor, in CreateInput) (*models.Patient, error)
	SelfRegister(in CreateInput) (*models.Patient, error)
	Update(actor rbac.Actor, patientID string, in UpdateInput) (*models.Patient, error)
	Get(actor rbac.Actor, patientID string) (*models.Patient, error)
	ListActive(actor rbac.Actor) ([]models.Patient, error)
	Deactivate(actor rbac.Actor, patientID string) (*models.Patient, error)
}

// DefaultService implements Service.
type DefaultService struct {
	Repo      patientRepo.PatientRepository
	Users     userRepo.UserRepository
	Sequences sequenceRepo.SequenceRepository
}

// Create registers a patient and provisions their login account.
func (s *DefaultService) Create(actor rbac.Actor, in CreateInput) (*models.Patient, error) {
	if err := rbac.Authorize(actor, rbac.OpManagePatients, nil).Err(); err != nil {
		return nil, err
	}
	return s.register(in)
}

// register creates the patient record plus linked user without an RBAC gate.
// Self-registration goes through the user service, which calls this.
func (s *DefaultService) register(in CreateInput) (*models.Patient, error) {
	patientID, err := s.Sequences.Next("patient_seq", "P")
	if err != nil {
		return nil, err
	}

	p := &models.Patient{
		ID:          uuid.New().String(),
		PatientID:   patientID,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		DateOfBirth: in.DateOfBirth,
		Gender:      in.Gender,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		City:        in.City,
		PostalCode:  in.PostalCode,
		Country:     in.Country,
		Active:      true,
	}
	if err := s.Repo.Create(p); err != nil {
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
		Role:         models.RolePatient,
		PatientID:    patientID,
		Active:       true,
	}
	if err := s.Users.Create(account); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("patient registered",
		zap.String("patientID", patientID), zap.String("username", in.Username))
	return p, nil
}

// SelfRegister creates a patient record and account without an acting user.
// Used by the public registration endpoint.
func (s *DefaultService) SelfRegister(in CreateInput) (*models.Patient, error) {
	return s.register(in)
}

// Update edits a patient record. Admin only.
func (s *DefaultService) Update(actor rbac.Actor, patientID string, in UpdateInput) (*models.Patient, error) {
	if err := rbac.Authorize(actor, rbac.OpManagePatients, nil).Err(); err != nil {
		return nil, err
	}

	p, err := s.Repo.GetByPatientID(patientID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}

	p.FirstName = in.FirstName
	p.LastName = in.LastName
	p.DateOfBirth = in.DateOfBirth
	p.Gender = in.Gender
	p.Email = in.Email
	p.Phone = in.Phone
	p.Address = in.Address
	p.City = in.City
	p.PostalCode = in.PostalCode
	p.Country = in.Country

	if err := s.Repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns a single patient record. A patient may fetch their own record;
// otherwise listing rules apply.
func (s *DefaultService) Get(actor rbac.Actor, patientID string) (*models.Patient, error) {
	if actor.Role == models.RolePatient && actor.PatientID != patientID {
		return nil, rbac.Deny("patients may only view their own record").Err()
	}
	if actor.Role != models.RolePatient {
		if err := rbac.Authorize(actor, rbac.OpListPatients, nil).Err(); err != nil {
			return nil, err
		}
	}

	p, err := s.Repo.GetByPatientID(patientID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// ListActive returns all active patients. Admins and doctors only.
func (s *DefaultService) ListActive(actor rbac.Actor) ([]models.Patient, error) {
	if err := rbac.Authorize(actor, rbac.OpListPatients, nil).Err(); err != nil {
		return nil, err
	}
	return s.Repo.GetActive()
}

// Deactivate soft-deletes a patient and disables the linked user account in
// one domain operation.
func (s *DefaultService) Deactivate(actor rbac.Actor, patientID string) (*models.Patient, error) {
	if err := rbac.Authorize(actor, rbac.OpManagePatients, nil).Err(); err != nil {
		return nil, err
	}

	p, err := s.Repo.GetByPatientID(patientID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}

	p.Active = false
	if err := s.Repo.Update(p); err != nil {
		return nil, err
	}
	if err := s.Users.DeactivateByBinding("", patientID); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("patient deactivated", zap.String("patientID", patientID))
	return p, nil
}
