package dto

import (
	"time"

	"github.com/medcore-io/appointment-service/internal/domain"
)

// appointmentTimeLayout is ISO 8601 without a zone designator, matching what
// clients submit and what listings echo back.
const appointmentTimeLayout = "2006-01-02T15:04:05"

// ParseAppointmentTime accepts ISO 8601 timestamps with or without a zone.
func ParseAppointmentTime(val string) (time.Time, error) {
	if t, err := time.Parse(appointmentTimeLayout, val); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, val)
}

// FormatAppointmentTime renders a slot time in the listing format.
func FormatAppointmentTime(t time.Time) string {
	return t.Format(appointmentTimeLayout)
}

// BookAppointmentRequest payload.
type BookAppointmentRequest struct {
	DoctorID        string `json:"doctor_id"`
	AppointmentTime string `json:"appointment_time"`
}

// BookAppointmentResponse confirms the created booking.
type BookAppointmentResponse struct {
	Message       string `json:"message"`
	AppointmentID string `json:"appointment_id"`
}

// AppointmentEntry is one row in a patient's appointment listing.
type AppointmentEntry struct {
	ID              string                   `json:"id"`
	DoctorName      string                   `json:"doctor_name"`
	Specialty       string                   `json:"specialty"`
	AppointmentTime string                   `json:"appointment_time"`
	Status          domain.AppointmentStatus `json:"status"`
}

// AppointmentListResponse wraps a patient listing.
type AppointmentListResponse struct {
	Appointments []AppointmentEntry `json:"appointments"`
}

// DoctorAppointmentEntry is one row in a doctor's schedule.
type DoctorAppointmentEntry struct {
	ID              string                   `json:"id"`
	UserID          string                   `json:"user_id"`
	AppointmentTime string                   `json:"appointment_time"`
	Status          domain.AppointmentStatus `json:"status"`
	RiskFlag        domain.RiskFlag          `json:"risk_flag"`
}

// UpdateStatusRequest payload for doctor status updates.
type UpdateStatusRequest struct {
	Status domain.AppointmentStatus `json:"status"`
}

// HistoryEntry is one audit record on an appointment.
type HistoryEntry struct {
	ID        string                   `json:"id"`
	ActorType domain.ActorType         `json:"actor_type"`
	ActorID   *string                  `json:"actor_id,omitempty"`
	OldStatus domain.AppointmentStatus `json:"old_status"`
	NewStatus domain.AppointmentStatus `json:"new_status"`
	Note      string                   `json:"note,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
}
