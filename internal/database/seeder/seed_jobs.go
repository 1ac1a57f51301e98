package seeder

import (
	"context"

	"talent-match/internal/database"
)

type JobsSeeder struct{}

func (JobsSeeder) Name() string { return "jobs" }

func (JobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "title", "company", "required_skills", "preferred_skills", "min_experience", "max_experience"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, j := range demoJobs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO jobs (id, title, company, location, job_type, description, required_skills, preferred_skills,
				min_experience, max_experience, salary_range_min, salary_range_max, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			 ON CONFLICT (id) DO NOTHING`,
			j.ID, j.Title, j.Company, j.Location, string(j.EmploymentType), j.Description,
			nonNil(j.RequiredSkills), nonNil(j.PreferredSkills),
			j.MinExperience, j.MaxExperience, j.SalaryMin, j.SalaryMax, string(j.Status),
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
