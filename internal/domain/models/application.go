package models

import (
	"strings"
	"time"
)

type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "applied"
	StatusReviewing ApplicationStatus = "reviewing"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusRejected  ApplicationStatus = "rejected"
)

const DefaultApplicationStatus = StatusApplied

// ParseApplicationStatus falls back to DefaultApplicationStatus for empty or unknown values.
func ParseApplicationStatus(s string) ApplicationStatus {
	switch status := ApplicationStatus(strings.ToLower(strings.TrimSpace(s))); status {
	case StatusApplied, StatusReviewing, StatusAccepted, StatusRejected:
		return status
	default:
		return DefaultApplicationStatus
	}
}

func (s ApplicationStatus) Title() string {
	if s == "" {
		s = DefaultApplicationStatus
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

type Application struct {
	ID             string
	JobID          string
	ApplicantName  string
	ApplicantEmail string
	Status         ApplicationStatus
	AppliedAt      *time.Time
}

type ApplicationForm struct {
	ApplicantName  string `form:"applicantName" validate:"required"`
	ApplicantEmail string `form:"applicantEmail" validate:"required,email"`
}

func (f ApplicationForm) Validate() error {
	return validateForm(f)
}
