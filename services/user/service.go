package user

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services/rbac"
	"medibook/utils"
)

var (
	// ErrInvalidCredentials covers unknown usernames and wrong passwords
	// alike, so a login attempt cannot probe for valid accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAccountDisabled signals a login against a deactivated account.
	ErrAccountDisabled = errors.New("account is disabled")
)

const tokenDuration = 24 * time.Hour

// AuthResult carries a successful login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Service resolves identities and issues tokens.
type Service interface {
	Login(username, password string) (*AuthResult, error)
	// Resolve maps an authenticated username to the acting identity used by
	// the policy layer.
	Resolve(username string) (rbac.Actor, error)
}

// DefaultService implements Service.
type DefaultService struct {
	Repo userRepo.UserRepository
}

// Login verifies credentials and returns a signed token carrying the user's
// role.
func (s *DefaultService) Login(username, password string) (*AuthResult, error) {
	usr, err := s.Repo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, ErrInvalidCredentials
	}
	if !usr.Active {
		return nil, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(usr.Username, usr.Role, tokenDuration)
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("user logged in",
		zap.String("username", usr.Username), zap.String("role", usr.Role))
	return &AuthResult{Token: token, User: usr}, nil
}

// Resolve builds the explicit actor for a username. Unknown or deactivated
// accounts resolve to an error, never to a degraded role.
func (s *DefaultService) Resolve(username string) (rbac.Actor, error) {
	usr, err := s.Repo.GetByUsername(username)
	if err != nil {
		return rbac.Actor{}, err
	}
	if usr == nil {
		return rbac.Actor{}, ErrInvalidCredentials
	}
	if !usr.Active {
		return rbac.Actor{}, ErrAccountDisabled
	}

	return rbac.Actor{
		Username:  usr.Username,
		Role:      usr.Role,
		DoctorID:  usr.DoctorID,
		PatientID: usr.PatientID,
	}, nil
}
