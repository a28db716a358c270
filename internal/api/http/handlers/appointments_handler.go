package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/medcore-io/appointment-service/internal/api/dto"
	"github.com/medcore-io/appointment-service/internal/auth"
	"github.com/medcore-io/appointment-service/internal/service"
	apperrors "github.com/medcore-io/appointment-service/pkg/util"
)

// AppointmentsHandler manages patient booking endpoints.
type AppointmentsHandler struct {
	booking *service.BookingService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(booking *service.BookingService) *AppointmentsHandler {
	return &AppointmentsHandler{booking: booking}
}

// Book POST /appointments.
func (h *AppointmentsHandler) Book(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("patient required")
	}

	var req dto.BookAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DoctorID == "" || req.AppointmentTime == "" {
		return apperrors.NewValidationError("doctor_id and appointment_time are required", nil)
	}

	appointmentTime, err := dto.ParseAppointmentTime(req.AppointmentTime)
	if err != nil {
		return apperrors.NewValidationError("invalid time format, use ISO 8601 (YYYY-MM-DDTHH:MM:SS)", nil)
	}

	appt, err := h.booking.Book(c.UserContext(), principal.User, req.DoctorID, appointmentTime)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.BookAppointmentResponse{
		Message:       "appointment booked successfully",
		AppointmentID: appt.ID,
	})
}

// List GET /appointments.
func (h *AppointmentsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("patient required")
	}

	views, err := h.booking.ListForPatient(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}

	items := make([]dto.AppointmentEntry, 0, len(views))
	for i := range views {
		items = append(items, dto.AppointmentEntry{
			ID:              views[i].ID,
			DoctorName:      views[i].DoctorName,
			Specialty:       views[i].Specialty,
			AppointmentTime: dto.FormatAppointmentTime(views[i].AppointmentTime),
			Status:          views[i].Status,
		})
	}
	return c.JSON(dto.AppointmentListResponse{Appointments: items})
}

// Cancel DELETE /appointments/:id.
func (h *AppointmentsHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("patient required")
	}

	if err := h.booking.Cancel(c.UserContext(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "appointment cancelled successfully"})
}
