package job

import (
	"time"

	"github.com/google/uuid"
)

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full-time"
	EmploymentContract EmploymentType = "contract"
	EmploymentPartTime EmploymentType = "part-time"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
	StatusOnHold Status = "on-hold"
)

// Job is a requisition snapshot. Required and preferred skills keep the order
// and casing the recruiter entered; duplicates are not collapsed.
type Job struct {
	ID              uuid.UUID
	PostedBy        *uuid.UUID
	Title           string
	Company         string
	Location        string
	EmploymentType  EmploymentType
	Description     string
	RequiredSkills  []string
	PreferredSkills []string
	MinExperience   float64
	MaxExperience   *float64
	SalaryMin       *float64
	SalaryMax       *float64
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
