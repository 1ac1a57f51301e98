package supabase

import (
	"encoding/json"
	"testing"
	"time"

	"talent-match/internal/domain/job"
	"talent-match/internal/domain/match"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ repository.JobRepository       = (*Store)(nil)
	_ repository.CandidateRepository = (*Store)(nil)
	_ repository.MatchRepository     = (*Store)(nil)
)

func TestJobRow_DecodesPostgRESTPayload(t *testing.T) {
	payload := `[{
		"id": "6f1c2a0e-6a8e-4c55-9d8e-3f1f0f6c9a11",
		"posted_by": null,
		"title": "Frontend Engineer",
		"company": "Acme",
		"location": "Remote",
		"job_type": "contract",
		"description": "",
		"required_skills": ["React", "TypeScript"],
		"preferred_skills": [],
		"min_experience": 2,
		"max_experience": null,
		"salary_range_min": 90000,
		"salary_range_max": null,
		"status": "on-hold",
		"created_at": "2024-03-01T10:00:00.123456+00:00",
		"updated_at": "2024-03-02T10:00:00+00:00"
	}]`

	var rows []jobRow
	require.NoError(t, json.Unmarshal([]byte(payload), &rows))
	require.Len(t, rows, 1)

	j := rows[0].toDomain()
	assert.Equal(t, "Frontend Engineer", j.Title)
	assert.Equal(t, job.EmploymentContract, j.EmploymentType)
	assert.Equal(t, job.StatusOnHold, j.Status)
	assert.Equal(t, []string{"React", "TypeScript"}, j.RequiredSkills)
	assert.Nil(t, j.MaxExperience)
	assert.Nil(t, j.PostedBy)
	require.NotNil(t, j.SalaryMin)
	assert.Equal(t, 90000.0, *j.SalaryMin)
}

func TestMatchRow_EmbeddedCandidate(t *testing.T) {
	payload := `[{
		"id": "0b0c8f43-77a4-4f0a-8d55-2f0fd7d0b9e3",
		"candidate_id": "7d4f8a43-1b1c-4c43-a8a2-6a0a1f7a4b21",
		"job_id": "6f1c2a0e-6a8e-4c55-9d8e-3f1f0f6c9a11",
		"match_score": 74,
		"matched_skills": ["React"],
		"skill_gaps": ["TypeScript"],
		"reasoning": null,
		"status": "interviewing",
		"created_at": "2024-03-01T10:00:00+00:00",
		"updated_at": "2024-03-01T10:00:00+00:00",
		"candidate": {
			"id": "7d4f8a43-1b1c-4c43-a8a2-6a0a1f7a4b21",
			"full_name": "Grace Hopper",
			"email": "grace@example.com",
			"years_of_experience": 7.5,
			"created_at": "2024-01-01T00:00:00+00:00",
			"updated_at": "2024-01-01T00:00:00+00:00"
		}
	}]`

	var rows []matchRow
	require.NoError(t, json.Unmarshal([]byte(payload), &rows))
	require.Len(t, rows, 1)

	m := rows[0].toDomain()
	assert.Equal(t, 74, m.Score)
	assert.Equal(t, match.StatusInterviewing, m.Status)
	assert.Equal(t, "", m.Reasoning)
	require.NotNil(t, rows[0].Candidate)
	c := rows[0].Candidate.toDomain()
	assert.Equal(t, "Grace Hopper", c.FullName)
	assert.Equal(t, m.CandidateID, c.ID)
	assert.Equal(t, 7.5, c.YearsOfExperience)
}

func TestMatchUpsertRow_OmitsID(t *testing.T) {
	b, err := json.Marshal(matchUpsertRow{Status: string(match.StatusSuggested)})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(b, &fields))
	assert.NotContains(t, fields, "id")
	assert.Equal(t, "suggested", fields["status"])
}

func TestSortCandidateRows_CreatedAtThenID(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)
	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	c := uuid.MustParse("00000000-0000-0000-0000-00000000000c")

	rows := []candidateRow{
		{ID: c, CreatedAt: late},
		{ID: b, CreatedAt: early},
		{ID: a, CreatedAt: early},
	}
	sortCandidateRows(rows)

	got := []uuid.UUID{rows[0].ID, rows[1].ID, rows[2].ID}
	assert.Equal(t, []uuid.UUID{a, b, c}, got)
}
