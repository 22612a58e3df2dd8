// File: medibook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"medibook/config"
	"medibook/database"
	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	requestRepo "medibook/database/repository/request"
	sequenceRepo "medibook/database/repository/sequence"
	userRepoPkg "medibook/database/repository/user"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/appointment"
	"medibook/services/availability"
	"medibook/services/calendar"
	"medibook/services/doctor"
	"medibook/services/patient"
	"medibook/services/request"
	"medibook/services/stats"
	"medibook/services/user"
	"medibook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	docRepo := doctorRepo.NewMongoDoctorRepo()
	patRepo := patientRepo.NewMongoPatientRepo()
	reqRepo := requestRepo.NewMongoRequestRepo()
	seqRepo := sequenceRepo.NewMongoSequenceRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	slotLocker := utils.NewRedisSlotLocker(
		utils.GetLockClient(),
		time.Duration(config.AppConfig.SlotLockTTLSeconds)*time.Second,
	)

	// services.
	userService := &user.DefaultService{
		Repo: userRepo,
	}
	checker := &availability.DefaultChecker{
		Doctors:      docRepo,
		Appointments: apptRepo,
	}
	appointmentService := &appointment.DefaultService{
		Repo:         apptRepo,
		Doctors:      docRepo,
		Patients:     patRepo,
		Sequences:    seqRepo,
		Availability: checker,
		Locker:       slotLocker,
	}
	requestService := &request.DefaultService{
		Repo:         reqRepo,
		Appointments: apptRepo,
		Doctors:      docRepo,
		Patients:     patRepo,
		Sequences:    seqRepo,
		Availability: checker,
		Locker:       slotLocker,
	}
	doctorService := &doctor.DefaultService{
		Repo:      docRepo,
		Users:     userRepo,
		Sequences: seqRepo,
	}
	patientService := &patient.DefaultService{
		Repo:      patRepo,
		Users:     userRepo,
		Sequences: seqRepo,
	}
	calendarService := &calendar.DefaultService{
		Appointments: appointmentService,
	}
	statsService := &stats.DefaultService{
		Patients:     patRepo,
		Doctors:      docRepo,
		Appointments: apptRepo,
		Requests:     reqRepo,
		Cache:        utils.GetCacheClient(),
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:         handlers.NewAuthHandler(userService, patientService),
		Appointments: handlers.NewAppointmentHandler(appointmentService, checker),
		Requests:     handlers.NewRequestHandler(requestService),
		Doctors:      handlers.NewDoctorHandler(doctorService),
		Patients:     handlers.NewPatientHandler(patientService),
		Calendar:     handlers.NewCalendarHandler(calendarService),
		Stats:        handlers.NewStatsHandler(statsService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, userService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
