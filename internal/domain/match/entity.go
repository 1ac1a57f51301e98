package match

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusSuggested    Status = "suggested"
	StatusShortlisted  Status = "shortlisted"
	StatusRejected     Status = "rejected"
	StatusInterviewing Status = "interviewing"
	StatusHired        Status = "hired"
)

var Statuses = []Status{
	StatusSuggested,
	StatusShortlisted,
	StatusRejected,
	StatusInterviewing,
	StatusHired,
}

func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Match is the persisted association between one candidate and one job.
// (CandidateID, JobID) is unique.
type Match struct {
	ID            uuid.UUID
	CandidateID   uuid.UUID
	JobID         uuid.UUID
	Score         int
	MatchedSkills []string
	SkillGaps     []string
	Reasoning     string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
