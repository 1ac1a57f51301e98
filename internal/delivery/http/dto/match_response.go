package dto

import (
	"time"

	"talent-match/internal/domain/matching"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type ScoreBreakdownResponse struct {
	Required   float64 `json:"required"`
	Experience float64 `json:"experience"`
	Preferred  float64 `json:"preferred"`
}

type MatchResultResponse struct {
	CandidateID      uuid.UUID              `json:"candidate_id"`
	MatchScore       int                    `json:"match_score"`
	Band             string                 `json:"band"`
	MatchedSkills    []string               `json:"matched_skills"`
	SkillGaps        []string               `json:"skill_gaps"`
	PreferredMatched []string               `json:"preferred_matched"`
	Reasoning        string                 `json:"reasoning"`
	Breakdown        ScoreBreakdownResponse `json:"breakdown"`
}

type CandidateSummaryResponse struct {
	ID                uuid.UUID `json:"id"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	CurrentTitle      *string   `json:"current_title"`
	Location          *string   `json:"location"`
	YearsOfExperience float64   `json:"years_of_experience"`
}

type SavedMatchResponse struct {
	ID            uuid.UUID                `json:"id"`
	CandidateID   uuid.UUID                `json:"candidate_id"`
	JobID         uuid.UUID                `json:"job_id"`
	MatchScore    int                      `json:"match_score"`
	Band          string                   `json:"band"`
	MatchedSkills []string                 `json:"matched_skills"`
	SkillGaps     []string                 `json:"skill_gaps"`
	Reasoning     string                   `json:"reasoning"`
	Status        string                   `json:"status"`
	Candidate     CandidateSummaryResponse `json:"candidate"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

type MatchStatusResponse struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateMatchStatusRequest struct {
	Status string `json:"status"`
}

func NewMatchResultResponses(results []matching.Result) []MatchResultResponse {
	out := make([]MatchResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, MatchResultResponse{
			CandidateID:      r.CandidateID,
			MatchScore:       r.Score,
			Band:             string(matching.BandFor(r.Score)),
			MatchedSkills:    nonNil(r.MatchedSkills),
			SkillGaps:        nonNil(r.SkillGaps),
			PreferredMatched: nonNil(r.PreferredMatched),
			Reasoning:        r.Reasoning,
			Breakdown: ScoreBreakdownResponse{
				Required:   r.RequiredScore,
				Experience: r.ExperienceScore,
				Preferred:  r.PreferredScore,
			},
		})
	}
	return out
}

func NewSavedMatchResponses(items []repository.MatchWithCandidate) []SavedMatchResponse {
	out := make([]SavedMatchResponse, 0, len(items))
	for _, it := range items {
		m, c := it.Match, it.Candidate
		out = append(out, SavedMatchResponse{
			ID:            m.ID,
			CandidateID:   m.CandidateID,
			JobID:         m.JobID,
			MatchScore:    m.Score,
			Band:          string(matching.BandFor(m.Score)),
			MatchedSkills: nonNil(m.MatchedSkills),
			SkillGaps:     nonNil(m.SkillGaps),
			Reasoning:     m.Reasoning,
			Status:        string(m.Status),
			Candidate: CandidateSummaryResponse{
				ID:                c.ID,
				FullName:          c.FullName,
				Email:             c.Email,
				CurrentTitle:      c.CurrentTitle,
				Location:          c.Location,
				YearsOfExperience: c.YearsOfExperience,
			},
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
