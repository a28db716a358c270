package domain

import "time"

// User is the domain model for patients who book appointments.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	PriorMissed  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
