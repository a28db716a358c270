package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medcore-io/appointment-service/internal/api/http/handlers"
	"github.com/medcore-io/appointment-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health             *handlers.HealthHandler
	Patients           *handlers.PatientsHandler
	Doctors            *handlers.DoctorsHandler
	Appointments       *handlers.AppointmentsHandler
	DoctorAppointments *handlers.DoctorAppointmentsHandler
	AuthMiddleware     *auth.AuthMiddleware
	RateLimiter        *RateLimiter
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	if cfg.RateLimiter != nil {
		authGroup.Use(cfg.RateLimiter.Handle)
	}
	authGroup.Post("/patients/register", cfg.Patients.Register)
	authGroup.Post("/patients/login", cfg.Patients.Login)
	authGroup.Post("/doctors/login", cfg.Patients.LoginDoctor)
	authGroup.Post("/password/reset/request", cfg.Patients.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Patients.ConfirmPasswordReset)

	app.Get("/doctors", cfg.Doctors.ListDoctors)
	app.Get("/doctors/:id", cfg.Doctors.GetDoctor)

	patientGroup := app.Group("/appointments", cfg.AuthMiddleware.Handle, auth.RequirePatient())
	patientGroup.Post("/", cfg.Appointments.Book)
	patientGroup.Get("/", cfg.Appointments.List)
	patientGroup.Delete("/:id", cfg.Appointments.Cancel)

	doctorGroup := app.Group("/doctor/appointments", cfg.AuthMiddleware.Handle, auth.RequireDoctor())
	doctorGroup.Get("/", cfg.DoctorAppointments.List)
	doctorGroup.Patch("/:id/status", cfg.DoctorAppointments.UpdateStatus)
	doctorGroup.Get("/:id/history", cfg.DoctorAppointments.History)
}
