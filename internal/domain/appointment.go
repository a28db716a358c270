package domain

import "time"

// AppointmentStatus enumerates lifecycle states for appointments.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "Pending"
	AppointmentStatusConfirmed AppointmentStatus = "Confirmed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
)

// ValidStatus reports whether s belongs to the closed status enum.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}

// RiskFlag is the advisory no-show estimate stored at booking time.
type RiskFlag string

const (
	RiskFlagUnknown RiskFlag = "unknown"
	RiskFlagLow     RiskFlag = "low"
	RiskFlagHigh    RiskFlag = "high"
)

// Appointment is the aggregate for a booked slot. UserID and DoctorID are
// immutable after creation; only Status changes over the lifecycle.
type Appointment struct {
	ID              string
	UserID          string
	DoctorID        string
	AppointmentTime time.Time
	Status          AppointmentStatus
	RiskFlag        RiskFlag
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Active reports whether the appointment still occupies its slot.
func (a *Appointment) Active() bool {
	return a.Status != AppointmentStatusCancelled
}

// AppointmentView is an appointment enriched with directory data for listings.
// DoctorName/Specialty fall back to "Unknown" when the doctor row is gone.
type AppointmentView struct {
	Appointment
	DoctorName string
	Specialty  string
}
