package repository

import (
	"context"

	"talent-match/internal/database"
	"talent-match/internal/domain/candidate"

	"github.com/google/uuid"
)

type CandidateRepository interface {
	ListCandidates(ctx context.Context) ([]candidate.Candidate, error)
	ListSkills(ctx context.Context, candidateID uuid.UUID) ([]candidate.Skill, error)
	Count(ctx context.Context) (int, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

func (r *PostgresCandidateRepository) ListCandidates(ctx context.Context) ([]candidate.Candidate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, full_name, email, phone, location, current_title, years_of_experience,
			linkedin_url, github_url, resume_url, summary, created_at, updated_at
		 FROM candidates
		 ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]candidate.Candidate, 0)
	for rows.Next() {
		var c candidate.Candidate
		if err := rows.Scan(
			&c.ID, &c.FullName, &c.Email, &c.Phone, &c.Location, &c.CurrentTitle, &c.YearsOfExperience,
			&c.LinkedInURL, &c.GitHubURL, &c.ResumeURL, &c.Summary, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCandidateRepository) ListSkills(ctx context.Context, candidateID uuid.UUID) ([]candidate.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, candidate_id, skill_name, proficiency_level, years_of_experience, created_at
		 FROM candidate_skills
		 WHERE candidate_id = $1
		 ORDER BY created_at ASC, id ASC`,
		candidateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]candidate.Skill, 0)
	for rows.Next() {
		var (
			s     candidate.Skill
			level string
		)
		if err := rows.Scan(&s.ID, &s.CandidateID, &s.Name, &level, &s.YearsOfExperience, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Proficiency = candidate.Proficiency(level)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCandidateRepository) Count(ctx context.Context) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM candidates`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
