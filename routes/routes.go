package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"medibook/handlers"
	"medibook/middleware"
	"medibook/services/user"
)

// RegisterAuthRoutes registers registration and login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users user.Service) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterPatientHandler)
		api.POST("/login", hb.Auth.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.AuthMiddleware(users))
		api.GET("/me", hb.Auth.CurrentUserHandler)
	}
}

// RegisterAppointmentRoutes registers appointment CRUD, search and the
// availability check.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users user.Service) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.AuthMiddleware(users))
		api.GET("", hb.Appointments.ListHandler)
		api.GET("/search", hb.Appointments.SearchHandler)
		api.GET("/availability", hb.Appointments.AvailabilityHandler)
		api.GET("/date/:date", hb.Appointments.ByDateHandler)
		api.GET("/doctor/:doctorId", hb.Appointments.ByDoctorHandler)
		api.GET("/patient/:patientId", hb.Appointments.ByPatientHandler)
		api.GET("/:id", hb.Appointments.GetHandler)
		api.POST("", hb.Appointments.CreateHandler)
		api.PUT("/:id", hb.Appointments.UpdateHandler)
		api.PUT("/:id/cancel", hb.Appointments.CancelHandler)
		api.PUT("/:id/complete", hb.Appointments.CompleteHandler)
		api.DELETE("/:id", hb.Appointments.DeleteHandler)
	}
}

// RegisterRequestRoutes registers the appointment-request workflow.
func RegisterRequestRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users user.Service) {
	api := r.Group("/api/requests")
	{
		api.Use(middleware.AuthMiddleware(users))
		api.GET("/mine", hb.Requests.MyRequestsHandler)
		api.GET("/queue", hb.Requests.QueueHandler)
		api.GET("/:id", hb.Requests.GetHandler)
		api.POST("", hb.Requests.SubmitHandler)
		api.PUT("/:id/approve", hb.Requests.ApproveHandler)
		api.PUT("/:id/deny", hb.Requests.DenyHandler)
	}
}

// RegisterDoctorRoutes registers doctor management endpoints.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users user.Service) {
	api := r.Group("/api/doctors")
	{
		api.Use(middleware.AuthMiddleware(users))
		api.GET("", hb.Doctors.ListHandler)
		api.GET("/all", hb.Doctors.ListAllHandler)
		api.GET("/:id", hb.Doctors.GetHandler)
		api.POST("", hb.Doctors.CreateHandler)
		api.PUT("/:id", hb.Doctors.UpdateHandler)
		api.DELETE("/:id", hb.Doctors.DeactivateHandler)
	}
}

// RegisterPatientRoutes registers patient management endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users user.Service) {
	api := r.Group("/api/patients")
	{
		api.Use(middleware.AuthMiddleware(users))
		api.GET("", hb.Patients.ListHandler)
		api.GET("/:id", hb.Patients.GetHandler)
		api.POST("", hb.Patients.CreateHandler)
		api.PUT("/:id", hb.Patients.UpdateHandler)
		api.DELETE("/:id", hb.Patients.DeactivateHandler)
	}
}

// RegisterCalendarRoutes registers the calendar event feed and dashboard
// statistics.
func RegisterCalendarRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users user.Service) {
	api := r.Group("/api")
	{
		api.Use(middleware.AuthMiddleware(users))
		api.GET("/calendar/events", hb.Calendar.EventsHandler)
		api.GET("/stats", hb.Stats.CountsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Medibook"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users user.Service) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb, users)
	RegisterAppointmentRoutes(r, hb, users)
	RegisterRequestRoutes(r, hb, users)
	RegisterDoctorRoutes(r, hb, users)
	RegisterPatientRoutes(r, hb, users)
	RegisterCalendarRoutes(r, hb, users)
	RegisterHealthRoute(r)
}
