package seeder

func Defaults() []Seeder {
	return []Seeder{
		CandidatesSeeder{},
		JobsSeeder{},
	}
}
