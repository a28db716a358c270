package events

import (
	"time"

	"github.com/medcore-io/appointment-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAppointmentBooked        EventType = "appointment_booked"
	EventAppointmentCancelled     EventType = "appointment_cancelled"
	EventAppointmentStatusChanged EventType = "appointment_status_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type     domain.SubjectType `json:"type"`
	UserID   *string            `json:"user_id,omitempty"`
	DoctorID *string            `json:"doctor_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	AppointmentID string      `json:"appointment_id"`
	Actor         Actor       `json:"actor"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// AppointmentBookedPayload payload.
type AppointmentBookedPayload struct {
	DoctorID        string                   `json:"doctor_id"`
	AppointmentTime time.Time                `json:"appointment_time"`
	Status          domain.AppointmentStatus `json:"status"`
	RiskFlag        domain.RiskFlag          `json:"risk_flag"`
}

// AppointmentCancelledPayload payload.
type AppointmentCancelledPayload struct {
	DoctorID        string    `json:"doctor_id"`
	AppointmentTime time.Time `json:"appointment_time"`
}

// AppointmentStatusChangedPayload payload.
type AppointmentStatusChangedPayload struct {
	OldStatus domain.AppointmentStatus `json:"old_status"`
	NewStatus domain.AppointmentStatus `json:"new_status"`
}
