package domain

import "time"

// Doctor is a bookable practitioner in the directory.
type Doctor struct {
	ID           string
	FullName     string
	Specialty    string
	Bio          string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
