package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibook/models"
	"medibook/services/rbac"
)

type fakeDoctorRepo struct{ doctors []models.Doctor }

func (f *fakeDoctorRepo) Create(doc *models.Doctor) error                 { return nil }
func (f *fakeDoctorRepo) Update(doc *models.Doctor) error                 { return nil }
func (f *fakeDoctorRepo) GetByDoctorID(id string) (*models.Doctor, error) { return nil, nil }
func (f *fakeDoctorRepo) GetAll() ([]models.Doctor, error)                { return f.doctors, nil }
func (f *fakeDoctorRepo) GetActive() ([]models.Doctor, error)             { return f.doctors, nil }
func (f *fakeDoctorRepo) Count() (int64, error)                           { return int64(len(f.doctors)), nil }

type fakePatientRepo struct{ patients []models.Patient }

func (f *fakePatientRepo) Create(p *models.Patient) error                    { return nil }
func (f *fakePatientRepo) Update(p *models.Patient) error                    { return nil }
func (f *fakePatientRepo) GetByPatientID(id string) (*models.Patient, error) { return nil, nil }
func (f *fakePatientRepo) GetAll() ([]models.Patient, error)                 { return f.patients, nil }
func (f *fakePatientRepo) GetActive() ([]models.Patient, error)              { return f.patients, nil }
func (f *fakePatientRepo) Count() (int64, error)                             { return int64(len(f.patients)), nil }

type fakeAppointmentRepo struct{ appointments []models.Appointment }

func (f *fakeAppointmentRepo) Create(appt *models.Appointment) error          { return nil }
func (f *fakeAppointmentRepo) Update(appt *models.Appointment) error          { return nil }
func (f *fakeAppointmentRepo) Delete(id string) error                         { return nil }
func (f *fakeAppointmentRepo) GetByID(id string) (*models.Appointment, error) { return nil, nil }
func (f *fakeAppointmentRepo) GetAll() ([]models.Appointment, error)          { return f.appointments, nil }
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
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (f *fakeAppointmentRepo) GetByDate(date string) ([]models.Appointment, error)     { return nil, nil }
func (f *fakeAppointmentRepo) GetByStatus(status string) ([]models.Appointment, error) { return nil, nil }
func (f *fakeAppointmentRepo) Count() (int64, error) { return int64(len(f.appointments)), nil }

type fakeRequestRepo struct{ requests []models.AppointmentRequest }

func (f *fakeRequestRepo) Create(req *models.AppointmentRequest) error { return nil }
func (f *fakeRequestRepo) Update(req *models.AppointmentRequest) error { return nil }
func (f *fakeRequestRepo) GetByRequestID(id string) (*models.AppointmentRequest, error) {
	return nil, nil
}
func (f *fakeRequestRepo) GetAll() ([]models.AppointmentRequest, error) { return f.requests, nil }
func (f *fakeRequestRepo) GetByPatientID(patientID string) ([]models.AppointmentRequest, error) {
	var out []models.AppointmentRequest
	for _, r := range f.requests {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeRequestRepo) GetByDoctorID(doctorID string) ([]models.AppointmentRequest, error) {
	var out []models.AppointmentRequest
	for _, r := range f.requests {
		if r.DoctorID == doctorID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeRequestRepo) GetByDoctorIDAndStatus(doctorID, status string) ([]models.AppointmentRequest, error) {
	var out []models.AppointmentRequest
	for _, r := range f.requests {
		if r.DoctorID == doctorID && r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func newService() *DefaultService {
	return &DefaultService{
		Patients: &fakePatientRepo{patients: make([]models.Patient, 4)},
		Doctors:  &fakeDoctorRepo{doctors: make([]models.Doctor, 2)},
		Appointments: &fakeAppointmentRepo{appointments: []models.Appointment{
			{AppointmentID: "A00001", DoctorID: "D00001", PatientID: "P00001", Date: "2999-01-01", Status: models.StatusScheduled},
			{AppointmentID: "A00002", DoctorID: "D00001", PatientID: "P00001", Date: "2999-01-02", Status: models.StatusCancelled},
			{AppointmentID: "A00003", DoctorID: "D00002", PatientID: "P00001", Date: "2000-01-01", Status: models.StatusCompleted},
		}},
		Requests: &fakeRequestRepo{requests: []models.AppointmentRequest{
			{RequestID: "AR00001", DoctorID: "D00001", PatientID: "P00001", Status: models.RequestPending},
			{RequestID: "AR00002", DoctorID: "D00001", PatientID: "P00002", Status: models.RequestApproved},
		}},
	}
}

func TestCountsAdminView(t *testing.T) {
	svc := newService()

	counts, err := svc.Counts(rbac.Actor{Username: "root", Role: models.RoleAdmin})
	require.NoError(t, err)

	assert.Equal(t, int64(4), counts["patientCount"])
	assert.Equal(t, int64(2), counts["doctorCount"])
	assert.Equal(t, int64(3), counts["appointmentCount"])
	assert.Equal(t, true, counts["adminView"])
	assert.NotContains(t, counts, "doctorView")
	assert.NotContains(t, counts, "patientView")
}

func TestCountsDoctorView(t *testing.T) {
	svc := newService()

	counts, err := svc.Counts(rbac.Actor{Username: "dgrace", Role: models.RoleDoctor, DoctorID: "D00001"})
	require.NoError(t, err)

	assert.Equal(t, true, counts["doctorView"])
	assert.Equal(t, 2, counts["myAppointmentCount"])
	assert.Equal(t, 1, counts["pendingRequestCount"])
}

func TestCountsPatientView(t *testing.T) {
	svc := newService()

	counts, err := svc.Counts(rbac.Actor{Username: "pjohn", Role: models.RolePatient, PatientID: "P00001"})
	require.NoError(t, err)

	assert.Equal(t, true, counts["patientView"])
	// Cancelled and past appointments are not upcoming.
	assert.Equal(t, 1, counts["upcomingAppointmentCount"])
	assert.Equal(t, 1, counts["myRequestCount"])
}

func TestCountsUnknownRoleDenied(t *testing.T) {
	svc := newService()

	_, err := svc.Counts(rbac.Actor{Username: "ghost", Role: "SUPERUSER"})
	assert.Error(t, err)
}
