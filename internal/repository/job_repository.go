package repository

import (
	"context"
	"database/sql"
	"errors"

	"talent-match/internal/database"
	"talent-match/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

type JobRepository interface {
	FindByID(ctx context.Context, jobID uuid.UUID) (job.Job, error)
	CountOpen(ctx context.Context) (int, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, jobID uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, posted_by, title, company, location, job_type, description,
			required_skills, preferred_skills, min_experience, max_experience,
			salary_range_min, salary_range_max, status, created_at, updated_at
		 FROM jobs
		 WHERE id = $1`,
		jobID,
	)

	var (
		j              job.Job
		employmentType string
		status         string
	)
	err := row.Scan(
		&j.ID, &j.PostedBy, &j.Title, &j.Company, &j.Location, &employmentType, &j.Description,
		&j.RequiredSkills, &j.PreferredSkills, &j.MinExperience, &j.MaxExperience,
		&j.SalaryMin, &j.SalaryMax, &status, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	j.EmploymentType = job.EmploymentType(employmentType)
	j.Status = job.Status(status)
	return j, nil
}

func (r *PostgresJobRepository) CountOpen(ctx context.Context) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE status = $1`, string(job.StatusOpen))
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
