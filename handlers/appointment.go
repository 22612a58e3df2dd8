package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medibook/services/appointment"
	"medibook/services/availability"
	"medibook/services/rbac"
)

// AppointmentHandler exposes appointment CRUD and the availability check.
type AppointmentHandler struct {
	Appointments appointment.Service
	Availability availability.Checker
}

// NewAppointmentHandler creates an AppointmentHandler.
func NewAppointmentHandler(appts appointment.Service, checker availability.Checker) *AppointmentHandler {
	return &AppointmentHandler{Appointments: appts, Availability: checker}
}

// ListHandler returns the actor's visible appointments.
func (h *AppointmentHandler) ListHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	appts, err := h.Appointments.List(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// ByDateHandler returns appointments on a date. Denied non-admins fall back
// to their own list, mirroring the redirect-to-own-list page behavior.
func (h *AppointmentHandler) ByDateHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	appts, err := h.Appointments.ListByDate(actor, c.Param("date"))
	if err != nil {
		h.fallbackToOwnList(c, actor, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// ByDoctorHandler returns a doctor's appointments. Admin only, with the same
// own-list fallback.
func (h *AppointmentHandler) ByDoctorHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	appts, err := h.Appointments.ListByDoctor(actor, c.Param("doctorId"))
	if err != nil {
		h.fallbackToOwnList(c, actor, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// ByPatientHandler returns a patient's appointments. Admin only, with the
// same own-list fallback.
func (h *AppointmentHandler) ByPatientHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	appts, err := h.Appointments.ListByPatient(actor, c.Param("patientId"))
	if err != nil {
		h.fallbackToOwnList(c, actor, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// SearchHandler performs the live search over the actor's visible
// appointments.
func (h *AppointmentHandler) SearchHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	results, err := h.Appointments.Search(actor, c.Query("query"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetHandler returns a single appointment.
func (h *AppointmentHandler) GetHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	appt, err := h.Appointments.Get(actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CreateHandler books an appointment.
func (h *AppointmentHandler) CreateHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var in appointment.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Appointments.Create(c.Request.Context(), actor, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// UpdateHandler performs the admin-only full edit.
func (h *AppointmentHandler) UpdateHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var in appointment.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Appointments.Update(actor, c.Param("id"), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CancelHandler cancels an appointment with a reason.
func (h *AppointmentHandler) CancelHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var in struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Appointments.Cancel(actor, c.Param("id"), in.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CompleteHandler marks an appointment completed.
func (h *AppointmentHandler) CompleteHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	appt, err := h.Appointments.Complete(actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// DeleteHandler removes an appointment. Admin only.
func (h *AppointmentHandler) DeleteHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	if err := h.Appointments.Delete(actor, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// AvailabilityHandler runs the doctor-availability check.
func (h *AppointmentHandler) AvailabilityHandler(c *gin.Context) {
	doctorID := c.Query("doctorId")
	date := c.Query("date")
	timeOfDay := c.Query("time")
	if doctorID == "" || date == "" || timeOfDay == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "doctorId, date and time are required"})
		return
	}

	result, err := h.Availability.Check(doctorID, date, timeOfDay)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "availability check failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// fallbackToOwnList serves the actor's own list when an admin-only query is
// denied, and surfaces every other error normally.
func (h *AppointmentHandler) fallbackToOwnList(c *gin.Context, actor rbac.Actor, err error) {
	if !errors.Is(err, rbac.ErrForbidden) {
		respondServiceError(c, err)
		return
	}
	appts, listErr := h.Appointments.List(actor)
	if listErr != nil {
		respondServiceError(c, listErr)
		return
	}
	c.JSON(http.StatusOK, appts)
}
