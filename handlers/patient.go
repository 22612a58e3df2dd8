package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medibook/services/patient"
)

// PatientHandler exposes patient management.
type PatientHandler struct {
	Patients patient.Service
}

// NewPatientHandler creates a PatientHandler.
func NewPatientHandler(patients patient.Service) *PatientHandler {
	return &PatientHandler{Patients: patients}
}

// ListHandler returns active patients. Admins and doctors only.
func (h *PatientHandler) ListHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	patients, err := h.Patients.ListActive(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

// GetHandler returns a single patient record.
func (h *PatientHandler) GetHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	p, err := h.Patients.Get(actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateHandler registers a patient plus their login account. Admin only.
func (h *PatientHandler) CreateHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var in patient.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	p, err := h.Patients.Create(actor, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdateHandler edits a patient record. Admin only.
func (h *PatientHandler) UpdateHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var in patient.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	p, err := h.Patients.Update(actor, c.Param("id"), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeactivateHandler soft-deletes a patient and disables their account.
func (h *PatientHandler) DeactivateHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	p, err := h.Patients.Deactivate(actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
