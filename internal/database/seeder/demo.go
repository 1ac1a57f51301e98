package seeder

import (
	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type demoCandidate struct {
	Candidate candidate.Candidate
	Skills    []candidate.Skill
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func skill(name string, level candidate.Proficiency, years float64) candidate.Skill {
	return candidate.Skill{Name: name, Proficiency: level, YearsOfExperience: years}
}

// Fixed ids keep reseeding idempotent.
var demoCandidates = []demoCandidate{
	{
		Candidate: candidate.Candidate{
			ID:                uuid.MustParse("3f6c2a1e-0b7d-4e51-9a43-1c2d3e4f5a01"),
			FullName:          "Rina Kusuma",
			Email:             "rina.kusuma@example.com",
			Location:          strPtr("Jakarta"),
			CurrentTitle:      strPtr("Senior Backend Engineer"),
			YearsOfExperience: 6,
			Summary:           strPtr("Builds payment services in Go and PostgreSQL."),
		},
		Skills: []candidate.Skill{
			skill("Go", candidate.ProficiencyExpert, 5),
			skill("PostgreSQL", candidate.ProficiencyAdvanced, 6),
			skill("Docker", candidate.ProficiencyAdvanced, 4),
			skill("Kubernetes", candidate.ProficiencyIntermediate, 2),
		},
	},
	{
		Candidate: candidate.Candidate{
			ID:                uuid.MustParse("3f6c2a1e-0b7d-4e51-9a43-1c2d3e4f5a02"),
			FullName:          "Dimas Pratama",
			Email:             "dimas.pratama@example.com",
			Location:          strPtr("Bandung"),
			CurrentTitle:      strPtr("Frontend Developer"),
			YearsOfExperience: 3,
		},
		Skills: []candidate.Skill{
			skill("React.js", candidate.ProficiencyAdvanced, 3),
			skill("TypeScript", candidate.ProficiencyAdvanced, 3),
			skill("Tailwind CSS", candidate.ProficiencyIntermediate, 2),
		},
	},
	{
		Candidate: candidate.Candidate{
			ID:                uuid.MustParse("3f6c2a1e-0b7d-4e51-9a43-1c2d3e4f5a03"),
			FullName:          "Sari Wulandari",
			Email:             "sari.wulandari@example.com",
			Location:          strPtr("Surabaya"),
			CurrentTitle:      strPtr("Full Stack Engineer"),
			YearsOfExperience: 12,
		},
		Skills: []candidate.Skill{
			skill("Node.js", candidate.ProficiencyExpert, 8),
			skill("React", candidate.ProficiencyAdvanced, 6),
			skill("AWS", candidate.ProficiencyAdvanced, 5),
			skill("PostgreSQL", candidate.ProficiencyIntermediate, 4),
		},
	},
	{
		Candidate: candidate.Candidate{
			ID:                uuid.MustParse("3f6c2a1e-0b7d-4e51-9a43-1c2d3e4f5a04"),
			FullName:          "Budi Santoso",
			Email:             "budi.santoso@example.com",
			Location:          strPtr("Yogyakarta"),
			CurrentTitle:      strPtr("Junior Data Analyst"),
			YearsOfExperience: 1,
		},
		Skills: []candidate.Skill{
			skill("Python", candidate.ProficiencyIntermediate, 1),
			skill("SQL", candidate.ProficiencyIntermediate, 1),
		},
	},
}

var demoJobs = []job.Job{
	{
		ID:              uuid.MustParse("9b1e5d2c-7a4f-4c3b-8e21-6d5c4b3a2f01"),
		Title:           "Backend Engineer",
		Company:         "Nusantara Pay",
		Location:        "Jakarta",
		EmploymentType:  job.EmploymentFullTime,
		Description:     "Own the settlement services.",
		RequiredSkills:  []string{"Go", "PostgreSQL", "Docker"},
		PreferredSkills: []string{"Kubernetes", "Kafka"},
		MinExperience:   4,
		MaxExperience:   f64Ptr(8),
		SalaryMin:       f64Ptr(30000000),
		SalaryMax:       f64Ptr(45000000),
		Status:          job.StatusOpen,
	},
	{
		ID:              uuid.MustParse("9b1e5d2c-7a4f-4c3b-8e21-6d5c4b3a2f02"),
		Title:           "Frontend Engineer",
		Company:         "Kopi Digital",
		Location:        "Remote",
		EmploymentType:  job.EmploymentContract,
		Description:     "Ship the merchant dashboard.",
		RequiredSkills:  []string{"React", "TypeScript", "Node.js"},
		PreferredSkills: []string{"Tailwind CSS"},
		MinExperience:   2,
		Status:          job.StatusOpen,
	},
	{
		ID:             uuid.MustParse("9b1e5d2c-7a4f-4c3b-8e21-6d5c4b3a2f03"),
		Title:          "Data Intern",
		Company:        "Rupa Analytics",
		Location:       "Yogyakarta",
		EmploymentType: job.EmploymentPartTime,
		RequiredSkills: []string{"SQL", "Python"},
		MinExperience:  0,
		Status:         job.StatusOnHold,
	},
}

// SeedMemory loads the demo dataset into an in-memory store.
func SeedMemory(s *repository.MemoryStore) {
	for _, dc := range demoCandidates {
		s.PutCandidate(dc.Candidate, dc.Skills...)
	}
	for _, j := range demoJobs {
		s.PutJob(j)
	}
}
