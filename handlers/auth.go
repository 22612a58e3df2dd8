package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medibook/services/patient"
	"medibook/services/user"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	Users    user.Service
	Patients patient.Service
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(users user.Service, patients patient.Service) *AuthHandler {
	return &AuthHandler{Users: users, Patients: patients}
}

// RegisterPatientHandler handles public patient self-registration. It
// creates the patient record and its PATIENT login account.
func (h *AuthHandler) RegisterPatientHandler(c *gin.Context) {
	var in patient.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	p, err := h.Patients.SelfRegister(in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// LoginHandler authenticates a user and returns a signed token.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Users.Login(in.Username, in.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CurrentUserHandler returns the acting identity for the calendar/dashboard
// UI.
func (h *AuthHandler) CurrentUserHandler(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"username":  actor.Username,
		"role":      actor.Role,
		"doctorId":  actor.DoctorID,
		"patientId": actor.PatientID,
	})
}
