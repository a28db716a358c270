package domain

import "time"

// SubjectType differentiates patient vs doctor tokens.
type SubjectType string

const (
	SubjectTypePatient SubjectType = "PATIENT"
	SubjectTypeDoctor  SubjectType = "DOCTOR"
)

// Token represents issued authentication token metadata.
type Token struct {
	ID        string
	SubjectID string
	Subject   SubjectType
	ExpiresAt time.Time
	IssuedAt  time.Time
}
