package user

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"medibook/models"
	"medibook/utils"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(u *models.User) error { f.users[u.Username] = u; return nil }
func (f *fakeUserRepo) Update(u *models.User) error { f.users[u.Username] = u; return nil }
func (f *fakeUserRepo) Delete(id string) error      { return nil }
func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	return f.users[username], nil
}
func (f *fakeUserRepo) DeactivateByBinding(doctorID, patientID string) error {
	for _, u := range f.users {
		if (doctorID != "" && u.DoctorID == doctorID) ||
			(patientID != "" && u.PatientID == patientID) {
			u.Active = false
		}
	}
	return nil
}

func newService(t *testing.T) (*DefaultService, *fakeUserRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{users: map[string]*models.User{
		"pjohn": {
			ID: "uuid-u1", Username: "pjohn",
			PasswordHash: string(hash),
			Role:         models.RolePatient,
			PatientID:    "P00001",
			Active:       true,
		},
	}}
	return &DefaultService{Repo: repo}, repo
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newService(t)

	result, err := svc.Login("pjohn", "s3cret!")
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Equal(t, "pjohn", result.User.Username)
	assert.NotEmpty(t, result.Token)

	username, err := utils.ExtractUsernameFromToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "pjohn", username)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Login("pjohn", "wrong")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Login("nobody", "s3cret!")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, repo := newService(t)
	repo.users["pjohn"].Active = false

	_, err := svc.Login("pjohn", "s3cret!")
	assert.True(t, errors.Is(err, ErrAccountDisabled))
}

func TestResolveBuildsActor(t *testing.T) {
	svc, _ := newService(t)

	actor, err := svc.Resolve("pjohn")
	require.NoError(t, err)
	assert.Equal(t, "pjohn", actor.Username)
	assert.Equal(t, models.RolePatient, actor.Role)
	assert.Equal(t, "P00001", actor.PatientID)
	assert.Empty(t, actor.DoctorID)
}

func TestResolveDisabledAccount(t *testing.T) {
	svc, repo := newService(t)
	repo.users["pjohn"].Active = false

	_, err := svc.Resolve("pjohn")
	assert.True(t, errors.Is(err, ErrAccountDisabled))
}

func TestResolveUnknownUser(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Resolve("nobody")
	assert.Error(t, err)
}
