package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/match"

	"github.com/google/uuid"
)

type pairKey struct {
	candidateID uuid.UUID
	jobID       uuid.UUID
}

// MemoryStore keeps jobs, candidates and matches in process memory. It
// satisfies JobRepository, CandidateRepository and MatchRepository.
type MemoryStore struct {
	mu         sync.RWMutex
	jobs       map[uuid.UUID]job.Job
	candidates []candidate.Candidate
	skills     map[uuid.UUID][]candidate.Skill
	matches    map[pairKey]match.Match
	now        func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs:    make(map[uuid.UUID]job.Job),
		skills:  make(map[uuid.UUID][]candidate.Skill),
		matches: make(map[pairKey]match.Match),
		now:     time.Now,
	}
}

func (s *MemoryStore) PutJob(j job.Job) job.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = job.StatusOpen
	}
	s.jobs[j.ID] = j
	return j
}

// PutCandidate stores c with its skills, in insertion order.
func (s *MemoryStore) PutCandidate(c candidate.Candidate, skills ...candidate.Skill) candidate.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.candidates = append(s.candidates, c)

	own := make([]candidate.Skill, 0, len(skills))
	for _, sk := range skills {
		if sk.ID == uuid.Nil {
			sk.ID = uuid.New()
		}
		sk.CandidateID = c.ID
		own = append(own, sk)
	}
	s.skills[c.ID] = own
	return c
}

func (s *MemoryStore) FindByID(_ context.Context, jobID uuid.UUID) (job.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[jobID]
	if !ok {
		return job.Job{}, ErrJobNotFound
	}
	return j, nil
}

func (s *MemoryStore) CountOpen(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, j := range s.jobs {
		if j.Status == job.StatusOpen {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) ListCandidates(_ context.Context) ([]candidate.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]candidate.Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out, nil
}

func (s *MemoryStore) ListSkills(_ context.Context, candidateID uuid.UUID) ([]candidate.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.skills[candidateID]
	out := make([]candidate.Skill, len(src))
	copy(out, src)
	return out, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.candidates), nil
}

func (s *MemoryStore) UpsertMatches(_ context.Context, ms []match.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	for _, m := range ms {
		key := pairKey{candidateID: m.CandidateID, jobID: m.JobID}
		m.MatchedSkills = cloneStrings(m.MatchedSkills)
		m.SkillGaps = cloneStrings(m.SkillGaps)
		m.UpdatedAt = now
		if prev, ok := s.matches[key]; ok {
			m.ID = prev.ID
			m.CreatedAt = prev.CreatedAt
		} else {
			if m.ID == uuid.Nil {
				m.ID = uuid.New()
			}
			m.CreatedAt = now
		}
		s.matches[key] = m
	}
	return nil
}

func (s *MemoryStore) FindByPair(_ context.Context, candidateID, jobID uuid.UUID) (match.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[pairKey{candidateID: candidateID, jobID: jobID}]
	if !ok {
		return match.Match{}, ErrMatchNotFound
	}
	return cloneMatch(m), nil
}

func (s *MemoryStore) ListByJob(_ context.Context, jobID uuid.UUID) ([]MatchWithCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := make(map[uuid.UUID]candidate.Candidate, len(s.candidates))
	for _, c := range s.candidates {
		byID[c.ID] = c
	}

	out := make([]MatchWithCandidate, 0)
	for _, m := range s.matches {
		if m.JobID != jobID {
			continue
		}
		c, ok := byID[m.CandidateID]
		if !ok {
			continue
		}
		out = append(out, MatchWithCandidate{Match: cloneMatch(m), Candidate: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Match.Score != out[j].Match.Score {
			return out[i].Match.Score > out[j].Match.Score
		}
		return out[i].Match.CandidateID.String() < out[j].Match.CandidateID.String()
	})
	return out, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, matchID uuid.UUID, status match.Status) (match.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, m := range s.matches {
		if m.ID != matchID {
			continue
		}
		m.Status = status
		m.UpdatedAt = s.now().UTC()
		s.matches[k] = m
		return m, nil
	}
	return match.Match{}, ErrMatchNotFound
}

func (s *MemoryStore) CountByStatus(_ context.Context) (map[match.Status]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[match.Status]int, len(match.Statuses))
	for _, m := range s.matches {
		out[m.Status]++
	}
	return out, nil
}

func cloneMatch(m match.Match) match.Match {
	m.MatchedSkills = cloneStrings(m.MatchedSkills)
	m.SkillGaps = cloneStrings(m.SkillGaps)
	return m
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
