package seeder

import (
	"context"

	"talent-match/internal/database"
)

type CandidatesSeeder struct{}

func (CandidatesSeeder) Name() string { return "candidates" }

func (CandidatesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "candidates", "id", "full_name", "email", "years_of_experience"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "candidate_skills", "candidate_id", "skill_name", "proficiency_level"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, dc := range demoCandidates {
		c := dc.Candidate
		inserted, err := tx.Exec(ctx,
			`INSERT INTO candidates (id, full_name, email, location, current_title, years_of_experience, summary)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (id) DO NOTHING`,
			c.ID, c.FullName, c.Email, c.Location, c.CurrentTitle, c.YearsOfExperience, c.Summary,
		)
		if err != nil {
			return err
		}
		if inserted == 0 {
			continue
		}

		// skills are only written with a fresh candidate so reseeding never duplicates them
		for i, s := range dc.Skills {
			if _, err := tx.Exec(ctx,
				`INSERT INTO candidate_skills (candidate_id, skill_name, proficiency_level, years_of_experience, created_at)
				 VALUES ($1, $2, $3, $4, now() + make_interval(secs => $5))`,
				c.ID, s.Name, string(s.Proficiency), s.YearsOfExperience, i,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}
