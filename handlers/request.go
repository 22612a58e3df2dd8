package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medibook/services/request"
)

// RequestHandler exposes the appointment-request workflow.
type RequestHandler struct {
	Requests request.Service
}

// NewRequestHandler creates a RequestHandler.
func NewRequestHandler(requests request.Service) *RequestHandler {
	return &RequestHandler{Requests: requests}
}

// SubmitHandler files a new appointment request for the acting patient.
func (h *RequestHandler) SubmitHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var in request.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	req, err := h.Requests.Submit(actor, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// MyRequestsHandler lists the acting patient's own requests.
func (h *RequestHandler) MyRequestsHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	reqs, err := h.Requests.MyRequests(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// QueueHandler lists the acting doctor's requests, optionally filtered by
// ?status=.
func (h *RequestHandler) QueueHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	reqs, err := h.Requests.DoctorQueue(actor, c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// GetHandler returns a single request.
func (h *RequestHandler) GetHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	req, err := h.Requests.Get(actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// ApproveHandler approves a pending request and books the slot.
func (h *RequestHandler) ApproveHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	req, appt, err := h.Requests.Approve(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": req, "appointment": appt})
}

// DenyHandler denies a pending request with a reason.
func (h *RequestHandler) DenyHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var in struct {
		DenialReason string `json:"denialReason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	req, err := h.Requests.Deny(actor, c.Param("id"), in.DenialReason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
