package request

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibook/models"
	"medibook/services/availability"
	"medibook/services/rbac"
)

type fakeRequestRepo struct {
	requests map[string]*models.AppointmentRequest
}

func (f *fakeRequestRepo) Create(req *models.AppointmentRequest) error {
	cp := *req
	f.requests[req.RequestID] = &cp
	return nil
}
func (f *fakeRequestRepo) Update(req *models.AppointmentRequest) error {
	cp := *req
	f.requests[req.RequestID] = &cp
	return nil
}
func (f *fakeRequestRepo) GetByRequestID(requestID string) (*models.AppointmentRequest, error) {
	req, ok := f.requests[requestID]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}
func (f *fakeRequestRepo) GetAll() ([]models.AppointmentRequest, error) { return nil, nil }
func (f *fakeRequestRepo) GetByPatientID(patientID string) ([]models.AppointmentRequest, error) {
	var out []models.AppointmentRequest
	for _, r := range f.requests {
		if r.PatientID == patientID {
			out = append(out, *r)
		}
	}
	return out, nil
}
func (f *fakeRequestRepo) GetByDoctorID(doctorID string) ([]models.AppointmentRequest, error) {
	var out []models.AppointmentRequest
	for _, r := range f.requests {
		if r.DoctorID == doctorID {
			out = append(out, *r)
		}
	}
	return out, nil
}
func (f *fakeRequestRepo) GetByDoctorIDAndStatus(doctorID, status string) ([]models.AppointmentRequest, error) {
	var out []models.AppointmentRequest
	for _, r := range f.requests {
		if r.DoctorID == doctorID && r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeAppointmentRepo struct {
	appointments []models.Appointment
}

func (f *fakeAppointmentRepo) Create(appt *models.Appointment) error {
	f.appointments = append(f.appointments, *appt)
	return nil
}
func (f *fakeAppointmentRepo) Update(appt *models.Appointment) error { return nil }
func (f *fakeAppointmentRepo) Delete(id string) error                { return nil }
func (f *fakeAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) GetAll() ([]models.Appointment, error) {
	return f.appointments, nil
}
func (f *fakeAppointmentRepo) GetByDoctorID(doctorID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (f *fakeAppointmentRepo) GetByPatientID(patientID string) ([]models.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) GetByDate(date string) ([]models.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) GetByStatus(status string) ([]models.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) Count() (int64, error) { return int64(len(f.appointments)), nil }

type fakeDoctorRepo struct {
	doctors map[string]*models.Doctor
}

func (f *fakeDoctorRepo) Create(doc *models.Doctor) error { f.doctors[doc.DoctorID] = doc; return nil }
func (f *fakeDoctorRepo) Update(doc *models.Doctor) error { f.doctors[doc.DoctorID] = doc; return nil }
func (f *fakeDoctorRepo) GetByDoctorID(doctorID string) (*models.Doctor, error) {
	return f.doctors[doctorID], nil
}
func (f *fakeDoctorRepo) GetAll() ([]models.Doctor, error)    { return nil, nil }
func (f *fakeDoctorRepo) GetActive() ([]models.Doctor, error) { return nil, nil }
func (f *fakeDoctorRepo) Count() (int64, error)               { return int64(len(f.doctors)), nil }

type fakePatientRepo struct {
	patients map[string]*models.Patient
}

func (f *fakePatientRepo) Create(p *models.Patient) error { f.patients[p.PatientID] = p; return nil }
func (f *fakePatientRepo) Update(p *models.Patient) error { f.patients[p.PatientID] = p; return nil }
func (f *fakePatientRepo) GetByPatientID(patientID string) (*models.Patient, error) {
	return f.patients[patientID], nil
}
func (f *fakePatientRepo) GetAll() ([]models.Patient, error)    { return nil, nil }
func (f *fakePatientRepo) GetActive() ([]models.Patient, error) { return nil, nil }
func (f *fakePatientRepo) Count() (int64, error)                { return int64(len(f.patients)), nil }

type fakeSequenceRepo struct {
	counters map[string]int64
}

func (f *fakeSequenceRepo) Next(name, prefix string) (string, error) {
	f.counters[name]++
	return fmt.Sprintf("%s%05d", prefix, f.counters[name]), nil
}

// noopLocker runs the critical section directly.
type noopLocker struct{}

func (noopLocker) WithSlotLock(ctx context.Context, doctorID, date, timeOfDay string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	svc      *DefaultService
	requests *fakeRequestRepo
	appts    *fakeAppointmentRepo
	doctors  *fakeDoctorRepo
	patients *fakePatientRepo
}

// 2024-06-10 is a Monday.
const monday = "2024-06-10"

func newFixture() *fixture {
	doctors := &fakeDoctorRepo{doctors: map[string]*models.Doctor{
		"D00001": {
			ID: "uuid-d1", DoctorID: "D00001",
			FirstName: "Grace", LastName: "Mwangi",
			Specialization: "Cardiology", Active: true,
			WorkingDays: []string{"Monday", "Wednesday", "Friday"},
		},
	}}
	patients := &fakePatientRepo{patients: map[string]*models.Patient{
		"P00001": {
			ID: "uuid-p1", PatientID: "P00001",
			FirstName: "John", LastName: "Otieno", Active: true,
		},
	}}
	appts := &fakeAppointmentRepo{}
	requests := &fakeRequestRepo{requests: map[string]*models.AppointmentRequest{}}

	svc := &DefaultService{
		Repo:         requests,
		Appointments: appts,
		Doctors:      doctors,
		Patients:     patients,
		Sequences:    &fakeSequenceRepo{counters: map[string]int64{}},
		Availability: &availability.DefaultChecker{Doctors: doctors, Appointments: appts},
		Locker:       noopLocker{},
	}
	return &fixture{svc: svc, requests: requests, appts: appts, doctors: doctors, patients: patients}
}

var (
	doctorActor  = rbac.Actor{Username: "dgrace", Role: models.RoleDoctor, DoctorID: "D00001"}
	patientActor = rbac.Actor{Username: "pjohn", Role: models.RolePatient, PatientID: "P00001"}
)

func TestSubmitCreatesPendingRequest(t *testing.T) {
	fx := newFixture()

	req, err := fx.svc.Submit(patientActor, SubmitInput{
		PatientID:       "P00001",
		DoctorID:        "D00001",
		AppointmentDate: monday,
		AppointmentTime: "10:00",
		Reason:          "chest pains",
	})
	require.NoError(t, err)

	assert.Equal(t, "AR00001", req.RequestID)
	assert.Equal(t, models.RequestPending, req.Status)
	assert.Equal(t, "John Otieno", req.PatientName)
	assert.Equal(t, "Grace Mwangi", req.DoctorName)
}

func TestSubmitForAnotherPatientForbidden(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Submit(patientActor, SubmitInput{
		PatientID:       "P00002",
		DoctorID:        "D00001",
		AppointmentDate: monday,
		AppointmentTime: "10:00",
	})
	assert.True(t, errors.Is(err, rbac.ErrForbidden))
}

func TestSubmitUnknownDoctor(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Submit(patientActor, SubmitInput{
		PatientID:       "P00001",
		DoctorID:        "D99999",
		AppointmentDate: monday,
		AppointmentTime: "10:00",
	})
	assert.True(t, errors.Is(err, ErrUnknownEntity))
}

func TestApproveBooksExactlyOneAppointment(t *testing.T) {
	fx := newFixture()
	submitted, err := fx.svc.Submit(patientActor, SubmitInput{
		PatientID: "P00001", DoctorID: "D00001",
		AppointmentDate: monday, AppointmentTime: "10:00",
	})
	require.NoError(t, err)

	req, appt, err := fx.svc.Approve(context.Background(), doctorActor, submitted.RequestID)
	require.NoError(t, err)

	assert.Equal(t, models.RequestApproved, req.Status)
	require.NotNil(t, appt)
	assert.Equal(t, "APT00001", appt.AppointmentID)
	assert.Equal(t, models.StatusScheduled, appt.Status)
	assert.Equal(t, monday, appt.Date)
	assert.Equal(t, "10:00", appt.Time)
	assert.Equal(t, "Created from appointment request: "+submitted.RequestID, appt.Remarks)
	assert.Len(t, fx.appts.appointments, 1)

	stored, err := fx.requests.GetByRequestID(submitted.RequestID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, stored.Status)
}

func TestApproveTwiceDoesNotBookAgain(t *testing.T) {
	fx := newFixture()
	submitted, _ := fx.svc.Submit(patientActor, SubmitInput{
		PatientID: "P00001", DoctorID: "D00001",
		AppointmentDate: monday, AppointmentTime: "10:00",
	})

	_, _, err := fx.svc.Approve(context.Background(), doctorActor, submitted.RequestID)
	require.NoError(t, err)

	req, appt, err := fx.svc.Approve(context.Background(), doctorActor, submitted.RequestID)
	assert.True(t, errors.Is(err, ErrNotPending))
	assert.Nil(t, appt)
	assert.Equal(t, models.RequestApproved, req.Status)
	assert.Len(t, fx.appts.appointments, 1)
}

func TestApproveConflictLeavesRequestPending(t *testing.T) {
	fx := newFixture()
	// Slot is already taken by a direct booking.
	fx.appts.Create(&models.Appointment{
		AppointmentID: "A00001", DoctorID: "D00001",
		Date: monday, Time: "10:00", Status: models.StatusScheduled,
	})

	submitted, _ := fx.svc.Submit(patientActor, SubmitInput{
		PatientID: "P00001", DoctorID: "D00001",
		AppointmentDate: monday, AppointmentTime: "10:00",
	})

	_, _, err := fx.svc.Approve(context.Background(), doctorActor, submitted.RequestID)
	assert.True(t, errors.Is(err, availability.ErrSlotUnavailable))

	stored, getErr := fx.requests.GetByRequestID(submitted.RequestID)
	require.NoError(t, getErr)
	assert.Equal(t, models.RequestPending, stored.Status)
	assert.Len(t, fx.appts.appointments, 1)
}

func TestApproveAnotherDoctorsRequestForbidden(t *testing.T) {
	fx := newFixture()
	submitted, _ := fx.svc.Submit(patientActor, SubmitInput{
		PatientID: "P00001", DoctorID: "D00001",
		AppointmentDate: monday, AppointmentTime: "10:00",
	})

	intruder := rbac.Actor{Username: "dother", Role: models.RoleDoctor, DoctorID: "D00002"}
	_, _, err := fx.svc.Approve(context.Background(), intruder, submitted.RequestID)
	assert.True(t, errors.Is(err, rbac.ErrForbidden))
	assert.Empty(t, fx.appts.appointments)
}

func TestApproveUnknownRequest(t *testing.T) {
	fx := newFixture()

	_, _, err := fx.svc.Approve(context.Background(), doctorActor, "AR99999")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDenyStoresReasonAndBooksNothing(t *testing.T) {
	fx := newFixture()
	submitted, _ := fx.svc.Submit(patientActor, SubmitInput{
		PatientID: "P00001", DoctorID: "D00001",
		AppointmentDate: monday, AppointmentTime: "10:00",
	})

	req, err := fx.svc.Deny(doctorActor, submitted.RequestID, "fully booked that week")
	require.NoError(t, err)

	assert.Equal(t, models.RequestDenied, req.Status)
	assert.Equal(t, "fully booked that week", req.DenialReason)
	assert.Empty(t, fx.appts.appointments)
}

func TestDenyAfterApproveIsNoOp(t *testing.T) {
	fx := newFixture()
	submitted, _ := fx.svc.Submit(patientActor, SubmitInput{
		PatientID: "P00001", DoctorID: "D00001",
		AppointmentDate: monday, AppointmentTime: "10:00",
	})
	_, _, err := fx.svc.Approve(context.Background(), doctorActor, submitted.RequestID)
	require.NoError(t, err)

	req, err := fx.svc.Deny(doctorActor, submitted.RequestID, "changed my mind")
	assert.True(t, errors.Is(err, ErrNotPending))
	assert.Equal(t, models.RequestApproved, req.Status)

	stored, getErr := fx.requests.GetByRequestID(submitted.RequestID)
	require.NoError(t, getErr)
	assert.Empty(t, stored.DenialReason)
}

func TestRequestLifecycleEndToEnd(t *testing.T) {
	fx := newFixture()

	submitted, err := fx.svc.Submit(patientActor, SubmitInput{
		PatientID: "P00001", DoctorID: "D00001",
		AppointmentDate: monday, AppointmentTime: "10:00",
		Reason: "follow-up",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, submitted.Status)

	mine, err := fx.svc.MyRequests(patientActor)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	queue, err := fx.svc.DoctorQueue(doctorActor, models.RequestPending)
	require.NoError(t, err)
	require.Len(t, queue, 1)

	req, appt, err := fx.svc.Approve(context.Background(), doctorActor, submitted.RequestID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, req.Status)
	require.NotNil(t, appt)
	assert.Equal(t, models.StatusScheduled, appt.Status)

	queue, err = fx.svc.DoctorQueue(doctorActor, models.RequestPending)
	require.NoError(t, err)
	assert.Empty(t, queue)
}

func TestMyRequestsDoctorDenied(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.MyRequests(doctorActor)
	assert.True(t, errors.Is(err, rbac.ErrForbidden))
}

func TestDoctorQueuePatientDenied(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.DoctorQueue(patientActor, "")
	assert.True(t, errors.Is(err, rbac.ErrForbidden))
}

func TestGetOwnershipGate(t *testing.T) {
	fx := newFixture()
	submitted, _ := fx.svc.Submit(patientActor, SubmitInput{
		PatientID: "P00001", DoctorID: "D00001",
		AppointmentDate: monday, AppointmentTime: "10:00",
	})

	got, err := fx.svc.Get(patientActor, submitted.RequestID)
	require.NoError(t, err)
	assert.Equal(t, submitted.RequestID, got.RequestID)

	stranger := rbac.Actor{Username: "pother", Role: models.RolePatient, PatientID: "P00002"}
	_, err = fx.svc.Get(stranger, submitted.RequestID)
	assert.True(t, errors.Is(err, rbac.ErrForbidden))
}
