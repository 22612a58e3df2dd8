package patient

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"medibook/models"
	"medibook/services/rbac"
)

type fakePatientRepo struct {
	patients map[string]*models.Patient
}

func (f *fakePatientRepo) Create(p *models.Patient) error {
	cp := *p
	f.patients[p.PatientID] = &cp
	return nil
}
func (f *fakePatientRepo) Update(p *models.Patient) error {
	cp := *p
	f.patients[p.PatientID] = &cp
	return nil
}
func (f *fakePatientRepo) GetByPatientID(patientID string) (*models.Patient, error) {
	p, ok := f.patients[patientID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (f *fakePatientRepo) GetAll() ([]models.Patient, error) {
	var out []models.Patient
	for _, p := range f.patients {
		out = append(out, *p)
	}
	return out, nil
}
func (f *fakePatientRepo) GetActive() ([]models.Patient, error) {
	var out []models.Patient
	for _, p := range f.patients {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}
func (f *fakePatientRepo) Count() (int64, error) { return int64(len(f.patients)), nil }

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(u *models.User) error { f.users[u.Username] = u; return nil }
func (f *fakeUserRepo) Update(u *models.User) error { f.users[u.Username] = u; return nil }
func (f *fakeUserRepo) Delete(id string) error      { return nil }
func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
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

type fakeSequenceRepo struct {
	counters map[string]int64
}

func (f *fakeSequenceRepo) Next(name, prefix string) (string, error) {
	f.counters[name]++
	return fmt.Sprintf("%s%05d", prefix, f.counters[name]), nil
}

func newFixture() (*DefaultService, *fakeUserRepo) {
	users := &fakeUserRepo{users: map[string]*models.User{}}
	svc := &DefaultService{
		Repo:      &fakePatientRepo{patients: map[string]*models.Patient{}},
		Users:     users,
		Sequences: &fakeSequenceRepo{counters: map[string]int64{}},
	}
	return svc, users
}

var (
	adminActor  = rbac.Actor{Username: "root", Role: models.RoleAdmin}
	doctorActor = rbac.Actor{Username: "dgrace", Role: models.RoleDoctor, DoctorID: "D00001"}
)

func sampleInput() CreateInput {
	return CreateInput{
		FirstName: "John",
		LastName:  "Otieno",
		Email:     "john@example.com",
		Username:  "pjohn",
		Password:  "s3cret!",
	}
}

func TestCreateProvisionsPatientAndAccount(t *testing.T) {
	svc, users := newFixture()

	p, err := svc.Create(adminActor, sampleInput())
	require.NoError(t, err)

	assert.Equal(t, "P00001", p.PatientID)
	assert.True(t, p.Active)

	account := users.users["pjohn"]
	require.NotNil(t, account)
	assert.Equal(t, models.RolePatient, account.Role)
	assert.Equal(t, "P00001", account.PatientID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("s3cret!")))
}

func TestCreateNonAdminForbidden(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.Create(doctorActor, sampleInput())
	assert.True(t, errors.Is(err, rbac.ErrForbidden))
}

func TestSelfRegisterNeedsNoActor(t *testing.T) {
	svc, users := newFixture()

	p, err := svc.SelfRegister(sampleInput())
	require.NoError(t, err)
	assert.Equal(t, "P00001", p.PatientID)
	assert.NotNil(t, users.users["pjohn"])
}

func TestGetOwnRecord(t *testing.T) {
	svc, _ := newFixture()
	p, err := svc.SelfRegister(sampleInput())
	require.NoError(t, err)

	self := rbac.Actor{Username: "pjohn", Role: models.RolePatient, PatientID: p.PatientID}
	got, err := svc.Get(self, p.PatientID)
	require.NoError(t, err)
	assert.Equal(t, p.PatientID, got.PatientID)

	stranger := rbac.Actor{Username: "pother", Role: models.RolePatient, PatientID: "P00002"}
	_, err = svc.Get(stranger, p.PatientID)
	assert.True(t, errors.Is(err, rbac.ErrForbidden))
}

func TestGetAsDoctor(t *testing.T) {
	svc, _ := newFixture()
	p, err := svc.SelfRegister(sampleInput())
	require.NoError(t, err)

	got, err := svc.Get(doctorActor, p.PatientID)
	require.NoError(t, err)
	assert.Equal(t, p.PatientID, got.PatientID)
}

func TestUpdateUnknownPatient(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.Update(adminActor, "P99999", UpdateInput{FirstName: "X", LastName: "Y"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListActivePatientForbidden(t *testing.T) {
	svc, _ := newFixture()

	self := rbac.Actor{Username: "pjohn", Role: models.RolePatient, PatientID: "P00001"}
	_, err := svc.ListActive(self)
	assert.True(t, errors.Is(err, rbac.ErrForbidden))
}

func TestDeactivateDisablesLinkedAccount(t *testing.T) {
	svc, users := newFixture()
	p, err := svc.Create(adminActor, sampleInput())
	require.NoError(t, err)

	deactivated, err := svc.Deactivate(adminActor, p.PatientID)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)

	account := users.users["pjohn"]
	require.NotNil(t, account)
	assert.False(t, account.Active)

	active, err := svc.ListActive(adminActor)
	require.NoError(t, err)
	assert.Empty(t, active)
}
