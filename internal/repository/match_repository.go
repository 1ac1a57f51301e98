package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"talent-match/internal/database"
	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/match"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrMatchNotFound = errors.New("match not found")
)

type MatchWithCandidate struct {
	Match     match.Match
	Candidate candidate.Candidate
}

type MatchRepository interface {
	// UpsertMatches writes all rows or none. A row replaces any previous match
	// for the same (candidate, job) pair; the existing row id is kept.
	UpsertMatches(ctx context.Context, ms []match.Match) error
	FindByPair(ctx context.Context, candidateID, jobID uuid.UUID) (match.Match, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]MatchWithCandidate, error)
	UpdateStatus(ctx context.Context, matchID uuid.UUID, status match.Status) (match.Match, error)
	CountByStatus(ctx context.Context) (map[match.Status]int, error)
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

const matchColumns = `m.id, m.candidate_id, m.job_id, m.match_score, m.matched_skills, m.skill_gaps,
	COALESCE(m.reasoning, ''), m.status, m.created_at, m.updated_at`

func scanMatch(row database.Row, extra ...any) (match.Match, error) {
	var (
		m      match.Match
		status string
	)
	dest := []any{
		&m.ID, &m.CandidateID, &m.JobID, &m.Score, &m.MatchedSkills, &m.SkillGaps,
		&m.Reasoning, &status, &m.CreatedAt, &m.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return match.Match{}, err
	}
	m.Status = match.Status(status)
	return m, nil
}

func (r *PostgresMatchRepository) UpsertMatches(ctx context.Context, ms []match.Match) error {
	if len(ms) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	now := time.Now().UTC()
	for _, m := range ms {
		if m.CandidateID == uuid.Nil || m.JobID == uuid.Nil {
			return fmt.Errorf("upsert match: missing candidate or job id")
		}
		id := m.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO candidate_job_matches
				(id, candidate_id, job_id, match_score, matched_skills, skill_gaps, reasoning, status, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$9)
			 ON CONFLICT (candidate_id, job_id) DO UPDATE SET
				match_score = EXCLUDED.match_score,
				matched_skills = EXCLUDED.matched_skills,
				skill_gaps = EXCLUDED.skill_gaps,
				reasoning = EXCLUDED.reasoning,
				status = EXCLUDED.status,
				updated_at = EXCLUDED.updated_at`,
			id,
			m.CandidateID,
			m.JobID,
			m.Score,
			nonNil(m.MatchedSkills),
			nonNil(m.SkillGaps),
			m.Reasoning,
			string(m.Status),
			now,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresMatchRepository) FindByPair(ctx context.Context, candidateID, jobID uuid.UUID) (match.Match, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+matchColumns+`
		 FROM candidate_job_matches m
		 WHERE m.candidate_id = $1 AND m.job_id = $2`,
		candidateID, jobID,
	)
	m, err := scanMatch(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return match.Match{}, ErrMatchNotFound
		}
		return match.Match{}, err
	}
	return m, nil
}

func (r *PostgresMatchRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]MatchWithCandidate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+matchColumns+`,
			c.full_name, c.email, c.current_title, c.location, c.years_of_experience
		 FROM candidate_job_matches m
		 JOIN candidates c ON c.id = m.candidate_id
		 WHERE m.job_id = $1
		 ORDER BY m.match_score DESC, m.created_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MatchWithCandidate, 0)
	for rows.Next() {
		var c candidate.Candidate
		m, err := scanMatch(rows, &c.FullName, &c.Email, &c.CurrentTitle, &c.Location, &c.YearsOfExperience)
		if err != nil {
			return nil, err
		}
		c.ID = m.CandidateID
		out = append(out, MatchWithCandidate{Match: m, Candidate: c})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMatchRepository) UpdateStatus(ctx context.Context, matchID uuid.UUID, status match.Status) (match.Match, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE candidate_job_matches AS m
		 SET status = $1, updated_at = $2
		 WHERE m.id = $3
		 RETURNING `+matchColumns,
		string(status), time.Now().UTC(), matchID,
	)
	m, err := scanMatch(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return match.Match{}, ErrMatchNotFound
		}
		return match.Match{}, err
	}
	return m, nil
}

func (r *PostgresMatchRepository) CountByStatus(ctx context.Context) (map[match.Status]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM candidate_job_matches GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[match.Status]int, len(match.Statuses))
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[match.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
