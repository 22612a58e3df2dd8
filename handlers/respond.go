package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medibook/middleware"
	"medibook/services/appointment"
	"medibook/services/availability"
	"medibook/services/doctor"
	"medibook/services/patient"
	"medibook/services/rbac"
	"medibook/services/request"
	"medibook/services/user"
	"medibook/utils"
)

// mustActor pulls the resolved actor from the context. Routes behind
// AuthMiddleware always have one; a missing actor is a wiring bug.
func mustActor(c *gin.Context) (rbac.Actor, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "no actor resolved for request")
		return rbac.Actor{}, false
	}
	return actor, true
}

// respondServiceError maps service-layer sentinels to HTTP statuses. RBAC
// denials become explicit 403s; no entity data crosses that boundary.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, rbac.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, appointment.ErrNotFound),
		errors.Is(err, request.ErrNotFound),
		errors.Is(err, doctor.ErrNotFound),
		errors.Is(err, patient.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, appointment.ErrUnknownEntity),
		errors.Is(err, request.ErrUnknownEntity):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Unknown reference", err.Error())
	case errors.Is(err, availability.ErrSlotUnavailable):
		utils.JSONError(c, http.StatusConflict, "Slot unavailable", err.Error())
	case errors.Is(err, utils.ErrLockNotAcquired):
		utils.JSONError(c, http.StatusConflict, "Slot is being booked", "another booking for this slot is in progress, please retry")
	case errors.Is(err, request.ErrNotPending):
		utils.JSONError(c, http.StatusConflict, "Request already resolved", err.Error())
	case errors.Is(err, appointment.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, "Invalid status transition", err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials", "")
	case errors.Is(err, user.ErrAccountDisabled):
		utils.JSONError(c, http.StatusUnauthorized, "Account disabled", "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
