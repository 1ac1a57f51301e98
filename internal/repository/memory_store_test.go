package repository

import (
	"context"
	"testing"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/match"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ JobRepository       = (*MemoryStore)(nil)
	_ CandidateRepository = (*MemoryStore)(nil)
	_ MatchRepository     = (*MemoryStore)(nil)

	_ JobRepository       = (*PostgresJobRepository)(nil)
	_ CandidateRepository = (*PostgresCandidateRepository)(nil)
	_ MatchRepository     = (*PostgresMatchRepository)(nil)
)

func TestMemoryStore_FindByID_NotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.FindByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrJobNotFound)
}

func TestMemoryStore_SkillsKeepInsertionOrder(t *testing.T) {
	s := NewMemoryStore()
	c := s.PutCandidate(candidate.Candidate{FullName: "Ada"},
		candidate.Skill{Name: "Go"},
		candidate.Skill{Name: "Docker"},
		candidate.Skill{Name: "AWS"},
	)

	skills, err := s.ListSkills(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Docker", "AWS"}, candidate.SkillNames(skills))
	for _, sk := range skills {
		assert.Equal(t, c.ID, sk.CandidateID)
	}
}

func TestMemoryStore_UpsertReplacesByPair(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	j := s.PutJob(job.Job{Title: "Backend Engineer"})
	c := s.PutCandidate(candidate.Candidate{FullName: "Ada"})

	require.NoError(t, s.UpsertMatches(ctx, []match.Match{{
		CandidateID:   c.ID,
		JobID:         j.ID,
		Score:         42,
		MatchedSkills: []string{"Go", "SQL"},
		SkillGaps:     []string{"Docker"},
		Reasoning:     "first",
		Status:        match.StatusSuggested,
	}}))

	first, err := s.FindByPair(ctx, c.ID, j.ID)
	require.NoError(t, err)

	_, err = s.UpdateStatus(ctx, first.ID, match.StatusShortlisted)
	require.NoError(t, err)

	require.NoError(t, s.UpsertMatches(ctx, []match.Match{{
		CandidateID:   c.ID,
		JobID:         j.ID,
		Score:         77,
		MatchedSkills: []string{"Docker"},
		SkillGaps:     []string{},
		Reasoning:     "second",
		Status:        match.StatusSuggested,
	}}))

	got, err := s.FindByPair(ctx, c.ID, j.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, 77, got.Score)
	assert.Equal(t, []string{"Docker"}, got.MatchedSkills)
	assert.Empty(t, got.SkillGaps)
	assert.Equal(t, "second", got.Reasoning)
	assert.Equal(t, match.StatusSuggested, got.Status)

	counts, err := s.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[match.StatusSuggested])
	assert.Zero(t, counts[match.StatusShortlisted])
}

func TestMemoryStore_ListByJobOrdersByScore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	j := s.PutJob(job.Job{Title: "Data Engineer"})
	other := s.PutJob(job.Job{Title: "Other", Status: job.StatusClosed})
	a := s.PutCandidate(candidate.Candidate{FullName: "A"})
	b := s.PutCandidate(candidate.Candidate{FullName: "B"})

	require.NoError(t, s.UpsertMatches(ctx, []match.Match{
		{CandidateID: a.ID, JobID: j.ID, Score: 10, Status: match.StatusSuggested},
		{CandidateID: b.ID, JobID: j.ID, Score: 90, Status: match.StatusSuggested},
		{CandidateID: a.ID, JobID: other.ID, Score: 99, Status: match.StatusSuggested},
	}))

	items, err := s.ListByJob(ctx, j.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "B", items[0].Candidate.FullName)
	assert.Equal(t, "A", items[1].Candidate.FullName)

	open, err := s.CountOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, open)
}

func TestMemoryStore_ReadsDoNotAliasStoredSkills(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	j := s.PutJob(job.Job{Title: "Backend Engineer"})
	c := s.PutCandidate(candidate.Candidate{FullName: "Ada"})
	require.NoError(t, s.UpsertMatches(ctx, []match.Match{{
		CandidateID:   c.ID,
		JobID:         j.ID,
		MatchedSkills: []string{"Go"},
		SkillGaps:     []string{"Docker"},
		Status:        match.StatusSuggested,
	}}))

	got, err := s.FindByPair(ctx, c.ID, j.ID)
	require.NoError(t, err)
	got.MatchedSkills[0] = "mutated"
	got.SkillGaps[0] = "mutated"

	items, err := s.ListByJob(ctx, j.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	items[0].Match.MatchedSkills[0] = "mutated"

	again, err := s.FindByPair(ctx, c.ID, j.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, again.MatchedSkills)
	assert.Equal(t, []string{"Docker"}, again.SkillGaps)
}

func TestMemoryStore_UpdateStatus_NotFound(t *testing.T) {
	_, err := NewMemoryStore().UpdateStatus(context.Background(), uuid.New(), match.StatusHired)
	require.ErrorIs(t, err, ErrMatchNotFound)
}
