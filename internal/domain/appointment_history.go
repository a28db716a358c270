package domain

import "time"

// ActorType identifies who performed a recorded change.
type ActorType string

const (
	ActorTypePatient ActorType = "PATIENT"
	ActorTypeDoctor  ActorType = "DOCTOR"
)

// AppointmentHistory is an immutable audit trail entry for status changes.
type AppointmentHistory struct {
	ID            string
	AppointmentID string
	ActorType     ActorType
	ActorID       *string
	OldStatus     AppointmentStatus
	NewStatus     AppointmentStatus
	Note          string
	CreatedAt     time.Time
}
