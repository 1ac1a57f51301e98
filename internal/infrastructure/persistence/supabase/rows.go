package supabase

import (
	"sort"
	"time"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/match"

	"github.com/google/uuid"
)

// Row types mirror the PostgREST JSON representation of the tables in
// migrations/.

type jobRow struct {
	ID              uuid.UUID  `json:"id"`
	PostedBy        *uuid.UUID `json:"posted_by"`
	Title           string     `json:"title"`
	Company         string     `json:"company"`
	Location        string     `json:"location"`
	JobType         string     `json:"job_type"`
	Description     string     `json:"description"`
	RequiredSkills  []string   `json:"required_skills"`
	PreferredSkills []string   `json:"preferred_skills"`
	MinExperience   float64    `json:"min_experience"`
	MaxExperience   *float64   `json:"max_experience"`
	SalaryRangeMin  *float64   `json:"salary_range_min"`
	SalaryRangeMax  *float64   `json:"salary_range_max"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (r jobRow) toDomain() job.Job {
	return job.Job{
		ID:              r.ID,
		PostedBy:        r.PostedBy,
		Title:           r.Title,
		Company:         r.Company,
		Location:        r.Location,
		EmploymentType:  job.EmploymentType(r.JobType),
		Description:     r.Description,
		RequiredSkills:  r.RequiredSkills,
		PreferredSkills: r.PreferredSkills,
		MinExperience:   r.MinExperience,
		MaxExperience:   r.MaxExperience,
		SalaryMin:       r.SalaryRangeMin,
		SalaryMax:       r.SalaryRangeMax,
		Status:          job.Status(r.Status),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type candidateRow struct {
	ID                uuid.UUID `json:"id"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	Phone             *string   `json:"phone"`
	Location          *string   `json:"location"`
	CurrentTitle      *string   `json:"current_title"`
	YearsOfExperience float64   `json:"years_of_experience"`
	LinkedInURL       *string   `json:"linkedin_url"`
	GitHubURL         *string   `json:"github_url"`
	ResumeURL         *string   `json:"resume_url"`
	Summary           *string   `json:"summary"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (r candidateRow) toDomain() candidate.Candidate {
	return candidate.Candidate{
		ID:                r.ID,
		FullName:          r.FullName,
		Email:             r.Email,
		Phone:             r.Phone,
		Location:          r.Location,
		CurrentTitle:      r.CurrentTitle,
		YearsOfExperience: r.YearsOfExperience,
		LinkedInURL:       r.LinkedInURL,
		GitHubURL:         r.GitHubURL,
		ResumeURL:         r.ResumeURL,
		Summary:           r.Summary,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

type skillRow struct {
	ID                uuid.UUID `json:"id"`
	CandidateID       uuid.UUID `json:"candidate_id"`
	SkillName         string    `json:"skill_name"`
	ProficiencyLevel  string    `json:"proficiency_level"`
	YearsOfExperience float64   `json:"years_of_experience"`
	CreatedAt         time.Time `json:"created_at"`
}

func (r skillRow) toDomain() candidate.Skill {
	return candidate.Skill{
		ID:                r.ID,
		CandidateID:       r.CandidateID,
		Name:              r.SkillName,
		Proficiency:       candidate.Proficiency(r.ProficiencyLevel),
		YearsOfExperience: r.YearsOfExperience,
		CreatedAt:         r.CreatedAt,
	}
}

type matchRow struct {
	ID            uuid.UUID     `json:"id"`
	CandidateID   uuid.UUID     `json:"candidate_id"`
	JobID         uuid.UUID     `json:"job_id"`
	MatchScore    int           `json:"match_score"`
	MatchedSkills []string      `json:"matched_skills"`
	SkillGaps     []string      `json:"skill_gaps"`
	Reasoning     *string       `json:"reasoning"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Candidate     *candidateRow `json:"candidate,omitempty"`
}

func (r matchRow) toDomain() match.Match {
	m := match.Match{
		ID:            r.ID,
		CandidateID:   r.CandidateID,
		JobID:         r.JobID,
		Score:         r.MatchScore,
		MatchedSkills: r.MatchedSkills,
		SkillGaps:     r.SkillGaps,
		Status:        match.Status(r.Status),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.Reasoning != nil {
		m.Reasoning = *r.Reasoning
	}
	return m
}

// matchUpsertRow has no id so a conflicting row keeps the id it already has.
type matchUpsertRow struct {
	CandidateID   uuid.UUID `json:"candidate_id"`
	JobID         uuid.UUID `json:"job_id"`
	MatchScore    int       `json:"match_score"`
	MatchedSkills []string  `json:"matched_skills"`
	SkillGaps     []string  `json:"skill_gaps"`
	Reasoning     string    `json:"reasoning"`
	Status        string    `json:"status"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type statusUpdate struct {
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// sortCandidateRows orders rows by creation time then id, matching the
// Postgres backend.
func sortCandidateRows(rows []candidateRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		return rows[i].ID.String() < rows[j].ID.String()
	})
}
