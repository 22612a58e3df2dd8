package rbac

import (
	"errors"
	"fmt"

	"medibook/models"
)

// Actor is the resolved identity performing an operation. It is passed
// explicitly into every policy and service call; there is no ambient
// current-user lookup. Non-admin actors carry exactly one of DoctorID /
// PatientID.
type Actor struct {
	Username  string
	Role      string
	DoctorID  string
	PatientID string
}

// Resource carries the ownership fields of the entity an operation targets.
// Nil means the operation has no target entity.
type Resource struct {
	DoctorID  string
	PatientID string
}

// Operation identifies an action gated by the policy.
type Operation string

const (
	OpListAppointments    Operation = "appointments.list"
	OpQueryAppointments   Operation = "appointments.query" // by date / by doctor / by patient
	OpCreateAppointment   Operation = "appointments.create"
	OpUpdateAppointment   Operation = "appointments.update"
	OpCancelAppointment   Operation = "appointments.cancel"
	OpDeleteAppointment   Operation = "appointments.delete"
	OpCompleteAppointment Operation = "appointments.complete"
	OpViewAppointment     Operation = "appointments.view"

	OpSubmitRequest  Operation = "requests.submit"
	OpApproveRequest Operation = "requests.approve"
	OpDenyRequest    Operation = "requests.deny"
	OpViewRequest    Operation = "requests.view"

	OpListDoctors    Operation = "doctors.list"
	OpManageDoctors  Operation = "doctors.manage"
	OpListPatients   Operation = "patients.list"
	OpManagePatients Operation = "patients.manage"

	OpViewStats Operation = "stats.view"
)

// ErrForbidden is the sentinel wrapped by every denial.
var ErrForbidden = errors.New("forbidden")

// Decision is the tagged result of an authorization check. The HTTP layer
// decides whether a denial becomes a 403 or a fall-back to the actor's own
// view; the policy itself never leaks data either way.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow returns an allowing decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision with the given reason.
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Err converts a denial into an error wrapping ErrForbidden. Returns nil for
// an allowing decision.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
}

// Authorize evaluates the closed decision table. Any combination not
// explicitly allowed is denied; there is no default-allow fall-through.
func Authorize(actor Actor, op Operation, res *Resource) Decision {
	switch op {
	case OpListAppointments:
		// Every role may list; scoping to own rows happens in the service.
		switch actor.Role {
		case models.RoleAdmin, models.RoleDoctor, models.RolePatient:
			return Allow()
		}
		return Deny("unknown role")

	case OpQueryAppointments:
		return adminOnly(actor, "appointment queries are restricted to administrators")

	case OpCreateAppointment:
		switch actor.Role {
		case models.RoleAdmin:
			return Allow()
		case models.RoleDoctor:
			return ownDoctor(actor, res, "doctors may only book appointments for themselves")
		case models.RolePatient:
			return ownPatient(actor, res, "patients may only book appointments for themselves")
		}
		return Deny("unknown role")

	case OpUpdateAppointment:
		return adminOnly(actor, "only administrators may edit appointments")

	case OpCancelAppointment:
		switch actor.Role {
		case models.RoleAdmin:
			return Allow()
		case models.RoleDoctor:
			return ownDoctor(actor, res, "doctors may only cancel their own appointments")
		case models.RolePatient:
			return ownPatient(actor, res, "patients may only cancel their own appointments")
		}
		return Deny("unknown role")

	case OpDeleteAppointment:
		return adminOnly(actor, "only administrators may delete appointments")

	case OpCompleteAppointment:
		switch actor.Role {
		case models.RoleAdmin, models.RoleDoctor:
			return Allow()
		}
		return Deny("only administrators and doctors may complete appointments")

	case OpViewAppointment:
		switch actor.Role {
		case models.RoleAdmin:
			return Allow()
		case models.RoleDoctor:
			return ownDoctor(actor, res, "doctors may only view their own appointments")
		case models.RolePatient:
			return ownPatient(actor, res, "patients may only view their own appointments")
		}
		return Deny("unknown role")

	case OpSubmitRequest:
		if actor.Role != models.RolePatient {
			return Deny("only patients may submit appointment requests")
		}
		return ownPatient(actor, res, "patients may only request appointments for themselves")

	case OpApproveRequest, OpDenyRequest:
		if actor.Role != models.RoleDoctor {
			return Deny("only doctors may act on appointment requests")
		}
		return ownDoctor(actor, res, "doctors may only act on their own requests")

	case OpViewRequest:
		switch actor.Role {
		case models.RoleAdmin:
			return Allow()
		case models.RoleDoctor:
			return ownDoctor(actor, res, "doctors may only view their own requests")
		case models.RolePatient:
			return ownPatient(actor, res, "patients may only view their own requests")
		}
		return Deny("unknown role")

	case OpListDoctors:
		switch actor.Role {
		case models.RoleAdmin, models.RoleDoctor, models.RolePatient:
			return Allow()
		}
		return Deny("unknown role")

	case OpManageDoctors:
		return adminOnly(actor, "doctor management is restricted to administrators")

	case OpListPatients:
		switch actor.Role {
		case models.RoleAdmin, models.RoleDoctor:
			return Allow()
		}
		return Deny("patient listing is restricted to administrators and doctors")

	case OpManagePatients:
		return adminOnly(actor, "patient management is restricted to administrators")

	case OpViewStats:
		switch actor.Role {
		case models.RoleAdmin, models.RoleDoctor, models.RolePatient:
			return Allow()
		}
		return Deny("unknown role")
	}

	return Deny("unknown operation")
}

func adminOnly(actor Actor, reason string) Decision {
	if actor.Role == models.RoleAdmin {
		return Allow()
	}
	return Deny(reason)
}

// ownDoctor allows a doctor actor whose bound id matches the resource's
// doctor id. An actor without a bound id is denied outright.
func ownDoctor(actor Actor, res *Resource, reason string) Decision {
	if actor.DoctorID == "" {
		return Deny("actor has no linked doctor record")
	}
	if res == nil || res.DoctorID != actor.DoctorID {
		return Deny(reason)
	}
	return Allow()
}

func ownPatient(actor Actor, res *Resource, reason string) Decision {
	if actor.PatientID == "" {
		return Deny("actor has no linked patient record")
	}
	if res == nil || res.PatientID != actor.PatientID {
		return Deny(reason)
	}
	return Allow()
}
