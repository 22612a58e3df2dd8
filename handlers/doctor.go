package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medibook/services/doctor"
)

// DoctorHandler exposes doctor management.
type DoctorHandler struct {
	Doctors doctor.Service
}

// NewDoctorHandler creates a DoctorHandler.
func NewDoctorHandler(doctors doctor.Service) *DoctorHandler {
	return &DoctorHandler{Doctors: doctors}
}

// ListHandler returns active doctors. Open to every role so patients can pick
// a doctor when requesting an appointment.
func (h *DoctorHandler) ListHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	docs, err := h.Doctors.ListActive(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// ListAllHandler returns every doctor including deactivated ones. Admin only.
func (h *DoctorHandler) ListAllHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	docs, err := h.Doctors.ListAll(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// GetHandler returns a single doctor profile.
func (h *DoctorHandler) GetHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	doc, err := h.Doctors.Get(actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// CreateHandler registers a doctor plus their login account. Admin only.
func (h *DoctorHandler) CreateHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var in doctor.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	doc, err := h.Doctors.Create(actor, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// UpdateHandler edits a doctor profile. Admin only.
func (h *DoctorHandler) UpdateHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var in doctor.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	doc, err := h.Doctors.Update(actor, c.Param("id"), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// DeactivateHandler soft-deletes a doctor and disables their account.
func (h *DoctorHandler) DeactivateHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	doc, err := h.Doctors.Deactivate(actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
