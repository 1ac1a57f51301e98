package supabase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/match"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	supa "github.com/nedpals/supabase-go"
)

const (
	tableJobs            = "jobs"
	tableCandidates      = "candidates"
	tableCandidateSkills = "candidate_skills"
	tableMatches         = "candidate_job_matches"
)

// Store reads and writes through the Supabase PostgREST API. It satisfies
// repository.JobRepository, repository.CandidateRepository and
// repository.MatchRepository.
type Store struct {
	client *supa.Client
	now    func() time.Time
}

func NewStore(cfg config.SupabaseConfig) (*Store, error) {
	url := strings.TrimSpace(cfg.URL)
	key := strings.TrimSpace(cfg.Key)
	if url == "" || key == "" {
		return nil, errors.New("supabase URL and key must be provided")
	}
	return &Store{client: supa.CreateClient(url, key), now: time.Now}, nil
}

func (s *Store) FindByID(_ context.Context, jobID uuid.UUID) (job.Job, error) {
	var rows []jobRow
	if err := s.client.DB.From(tableJobs).Select("*").Eq("id", jobID.String()).Execute(&rows); err != nil {
		return job.Job{}, fmt.Errorf("supabase select jobs: %w", err)
	}
	if len(rows) == 0 {
		return job.Job{}, repository.ErrJobNotFound
	}
	return rows[0].toDomain(), nil
}

func (s *Store) CountOpen(_ context.Context) (int, error) {
	var rows []struct {
		ID uuid.UUID `json:"id"`
	}
	if err := s.client.DB.From(tableJobs).Select("id").Eq("status", string(job.StatusOpen)).Execute(&rows); err != nil {
		return 0, fmt.Errorf("supabase count jobs: %w", err)
	}
	return len(rows), nil
}

func (s *Store) ListCandidates(_ context.Context) ([]candidate.Candidate, error) {
	var rows []candidateRow
	if err := s.client.DB.From(tableCandidates).Select("*").Execute(&rows); err != nil {
		return nil, fmt.Errorf("supabase select candidates: %w", err)
	}
	sortCandidateRows(rows)

	out := make([]candidate.Candidate, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *Store) ListSkills(_ context.Context, candidateID uuid.UUID) ([]candidate.Skill, error) {
	var rows []skillRow
	if err := s.client.DB.From(tableCandidateSkills).Select("*").Eq("candidate_id", candidateID.String()).Execute(&rows); err != nil {
		return nil, fmt.Errorf("supabase select candidate_skills: %w", err)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })

	out := make([]candidate.Skill, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *Store) Count(_ context.Context) (int, error) {
	var rows []struct {
		ID uuid.UUID `json:"id"`
	}
	if err := s.client.DB.From(tableCandidates).Select("id").Execute(&rows); err != nil {
		return 0, fmt.Errorf("supabase count candidates: %w", err)
	}
	return len(rows), nil
}

// UpsertMatches sends one bulk request; PostgREST runs it as a single
// statement so the batch lands entirely or not at all.
func (s *Store) UpsertMatches(_ context.Context, ms []match.Match) error {
	if len(ms) == 0 {
		return nil
	}

	now := s.now().UTC()
	payload := make([]matchUpsertRow, 0, len(ms))
	for _, m := range ms {
		if m.CandidateID == uuid.Nil || m.JobID == uuid.Nil {
			return errors.New("upsert match: missing candidate or job id")
		}
		payload = append(payload, matchUpsertRow{
			CandidateID:   m.CandidateID,
			JobID:         m.JobID,
			MatchScore:    m.Score,
			MatchedSkills: nonNil(m.MatchedSkills),
			SkillGaps:     nonNil(m.SkillGaps),
			Reasoning:     m.Reasoning,
			Status:        string(m.Status),
			UpdatedAt:     now,
		})
	}

	var out []matchRow
	if err := s.client.DB.From(tableMatches).Upsert(payload).Execute(&out); err != nil {
		return fmt.Errorf("supabase upsert candidate_job_matches: %w", err)
	}
	return nil
}

func (s *Store) FindByPair(_ context.Context, candidateID, jobID uuid.UUID) (match.Match, error) {
	var rows []matchRow
	err := s.client.DB.From(tableMatches).
		Select("*").
		Eq("candidate_id", candidateID.String()).
		Eq("job_id", jobID.String()).
		Execute(&rows)
	if err != nil {
		return match.Match{}, fmt.Errorf("supabase select candidate_job_matches: %w", err)
	}
	if len(rows) == 0 {
		return match.Match{}, repository.ErrMatchNotFound
	}
	return rows[0].toDomain(), nil
}

func (s *Store) ListByJob(_ context.Context, jobID uuid.UUID) ([]repository.MatchWithCandidate, error) {
	var rows []matchRow
	err := s.client.DB.From(tableMatches).
		Select("*, candidate:candidates(*)").
		Eq("job_id", jobID.String()).
		Execute(&rows)
	if err != nil {
		return nil, fmt.Errorf("supabase select candidate_job_matches: %w", err)
	}

	out := make([]repository.MatchWithCandidate, 0, len(rows))
	for _, r := range rows {
		item := repository.MatchWithCandidate{Match: r.toDomain()}
		if r.Candidate != nil {
			item.Candidate = r.Candidate.toDomain()
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Match.Score > out[j].Match.Score })
	return out, nil
}

func (s *Store) UpdateStatus(_ context.Context, matchID uuid.UUID, status match.Status) (match.Match, error) {
	var rows []matchRow
	err := s.client.DB.From(tableMatches).
		Update(statusUpdate{Status: string(status), UpdatedAt: s.now().UTC()}).
		Eq("id", matchID.String()).
		Execute(&rows)
	if err != nil {
		return match.Match{}, fmt.Errorf("supabase update candidate_job_matches: %w", err)
	}
	if len(rows) == 0 {
		return match.Match{}, repository.ErrMatchNotFound
	}
	return rows[0].toDomain(), nil
}

func (s *Store) CountByStatus(_ context.Context) (map[match.Status]int, error) {
	var rows []struct {
		Status string `json:"status"`
	}
	if err := s.client.DB.From(tableMatches).Select("status").Execute(&rows); err != nil {
		return nil, fmt.Errorf("supabase select candidate_job_matches: %w", err)
	}
	out := make(map[match.Status]int, len(match.Statuses))
	for _, r := range rows {
		out[match.Status(r.Status)]++
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Ping runs a small read against the jobs table.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.CountOpen(ctx)
	return err
}
