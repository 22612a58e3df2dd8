package stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	requestRepo "medibook/database/repository/request"
	"medibook/models"
	"medibook/services/rbac"
)

// cacheTTL bounds how stale the dashboard counters may get.
const cacheTTL = 30 * time.Second

// Service computes the dashboard counters, with role-specific extras.
type Service interface {
	Counts(actor rbac.Actor) (map[string]interface{}, error)
}

// DefaultService implements Service. Cache is optional; without it every
// call hits the repositories.
type DefaultService struct {
	Patients     patientRepo.PatientRepository
	Doctors      doctorRepo.DoctorRepository
	Appointments appointmentRepo.AppointmentRepository
	Requests     requestRepo.RequestRepository
	Cache        *redis.Client
}

// Counts returns global entity counts plus per-role statistics: a doctor
// sees their own appointment and pending-request counts, a patient their
// upcoming appointments and submitted requests. Results are cached per
// actor for a short window.
func (s *DefaultService) Counts(actor rbac.Actor) (map[string]interface{}, error) {
	if err := rbac.Authorize(actor, rbac.OpViewStats, nil).Err(); err != nil {
		return nil, err
	}

	cacheKey := "stats:" + actor.Role + ":" + actor.Username
	if cached := s.fromCache(cacheKey); cached != nil {
		return cached, nil
	}

	patientCount, err := s.Patients.Count()
	if err != nil {
		return nil, err
	}
	doctorCount, err := s.Doctors.Count()
	if err != nil {
		return nil, err
	}
	appointmentCount, err := s.Appointments.Count()
	if err != nil {
		return nil, err
	}

	counts := map[string]interface{}{
		"patientCount":     patientCount,
		"doctorCount":      doctorCount,
		"appointmentCount": appointmentCount,
		"timestamp":        time.Now().UnixMilli(),
	}

	switch actor.Role {
	case models.RoleAdmin:
		counts["adminView"] = true

	case models.RoleDoctor:
		counts["doctorView"] = true
		if actor.DoctorID == "" {
			break
		}
		mine, err := s.Appointments.GetByDoctorID(actor.DoctorID)
		if err != nil {
			return nil, err
		}
		counts["myAppointmentCount"] = len(mine)

		pending, err := s.Requests.GetByDoctorIDAndStatus(actor.DoctorID, models.RequestPending)
		if err != nil {
			return nil, err
		}
		counts["pendingRequestCount"] = len(pending)

	case models.RolePatient:
		counts["patientView"] = true
		if actor.PatientID == "" {
			break
		}
		mine, err := s.Appointments.GetByPatientID(actor.PatientID)
		if err != nil {
			return nil, err
		}
		counts["upcomingAppointmentCount"] = countUpcoming(mine)

		requests, err := s.Requests.GetByPatientID(actor.PatientID)
		if err != nil {
			return nil, err
		}
		counts["myRequestCount"] = len(requests)
	}

	s.toCache(cacheKey, counts)
	return counts, nil
}

// fromCache returns the cached counters for a key, or nil on any miss or
// error. Cache failures never fail the request.
func (s *DefaultService) fromCache(key string) map[string]interface{} {
	if s.Cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	raw, err := s.Cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var counts map[string]interface{}
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil
	}
	return counts
}

func (s *DefaultService) toCache(key string, counts map[string]interface{}) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(counts)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Cache.Set(ctx, key, raw, cacheTTL)
}

// countUpcoming counts non-cancelled appointments dated today or later.
func countUpcoming(appts []models.Appointment) int {
	today := time.Now().Format("2006-01-02")
	n := 0
	for _, a := range appts {
		if a.IsCancelled() {
			continue
		}
		if a.Date >= today {
			n++
		}
	}
	return n
}
