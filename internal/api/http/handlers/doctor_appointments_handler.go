package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medcore-io/appointment-service/internal/api/dto"
	"github.com/medcore-io/appointment-service/internal/auth"
	"github.com/medcore-io/appointment-service/internal/service"
	apperrors "github.com/medcore-io/appointment-service/pkg/util"
)

// DoctorAppointmentsHandler exposes the doctor side of the schedule.
type DoctorAppointmentsHandler struct {
	booking *service.BookingService
}

// NewDoctorAppointmentsHandler constructs handler.
func NewDoctorAppointmentsHandler(booking *service.BookingService) *DoctorAppointmentsHandler {
	return &DoctorAppointmentsHandler{booking: booking}
}

// List GET /doctor/appointments.
func (h *DoctorAppointmentsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Doctor == nil {
		return apperrors.NewUnauthorized("doctor required")
	}

	appts, err := h.booking.ListForDoctor(c.UserContext(), principal.Doctor.ID)
	if err != nil {
		return err
	}

	items := make([]dto.DoctorAppointmentEntry, 0, len(appts))
	for i := range appts {
		items = append(items, dto.DoctorAppointmentEntry{
			ID:              appts[i].ID,
			UserID:          appts[i].UserID,
			AppointmentTime: dto.FormatAppointmentTime(appts[i].AppointmentTime),
			Status:          appts[i].Status,
			RiskFlag:        appts[i].RiskFlag,
		})
	}
	return c.JSON(fiber.Map{"appointments": items})
}

// UpdateStatus PATCH /doctor/appointments/:id/status.
func (h *DoctorAppointmentsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Doctor == nil {
		return apperrors.NewUnauthorized("doctor required")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status is required", nil)
	}

	appt, err := h.booking.UpdateStatus(c.UserContext(), principal.Doctor.ID, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "status updated",
		"id":      appt.ID,
		"status":  appt.Status,
	})
}

// History GET /doctor/appointments/:id/history.
func (h *DoctorAppointmentsHandler) History(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Doctor == nil {
		return apperrors.NewUnauthorized("doctor required")
	}

	entries, err := h.booking.HistoryForDoctor(c.UserContext(), principal.Doctor.ID, c.Params("id"))
	if err != nil {
		return err
	}

	items := make([]dto.HistoryEntry, 0, len(entries))
	for i := range entries {
		items = append(items, dto.HistoryEntry{
			ID:        entries[i].ID,
			ActorType: entries[i].ActorType,
			ActorID:   entries[i].ActorID,
			OldStatus: entries[i].OldStatus,
			NewStatus: entries[i].NewStatus,
			Note:      entries[i].Note,
			CreatedAt: entries[i].CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"history": items})
}
