package candidate

import (
	"time"

	"github.com/google/uuid"
)

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

type Candidate struct {
	ID                uuid.UUID
	FullName          string
	Email             string
	Phone             *string
	Location          *string
	CurrentTitle      *string
	YearsOfExperience float64
	LinkedInURL       *string
	GitHubURL         *string
	ResumeURL         *string
	Summary           *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Skill struct {
	ID                uuid.UUID
	CandidateID       uuid.UUID
	Name              string
	Proficiency       Proficiency
	YearsOfExperience float64
	CreatedAt         time.Time
}

// SkillNames returns the names in the order the skills were listed.
func SkillNames(skills []Skill) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, s.Name)
	}
	return out
}
