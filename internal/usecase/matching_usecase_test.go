package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/match"
	"talent-match/internal/domain/matching"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = b
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	updates  map[uuid.UUID]int
	statuses []string
}

func (n *recordingNotifier) NotifyMatchesUpdated(jobID uuid.UUID, count int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.updates == nil {
		n.updates = make(map[uuid.UUID]int)
	}
	n.updates[jobID] = count
}

func (n *recordingNotifier) NotifyMatchStatusUpdated(_, _ uuid.UUID, status string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses = append(n.statuses, status)
}

type failingCandidates struct {
	*repository.MemoryStore
	listErr   error
	skillsErr map[uuid.UUID]error
}

func (f failingCandidates) ListCandidates(ctx context.Context) ([]candidate.Candidate, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.MemoryStore.ListCandidates(ctx)
}

func (f failingCandidates) ListSkills(ctx context.Context, id uuid.UUID) ([]candidate.Skill, error) {
	if err := f.skillsErr[id]; err != nil {
		return nil, err
	}
	return f.MemoryStore.ListSkills(ctx, id)
}

type failingMatches struct {
	*repository.MemoryStore
	err error
}

func (f failingMatches) UpsertMatches(context.Context, []match.Match) error {
	return f.err
}

func skills(names ...string) []candidate.Skill {
	out := make([]candidate.Skill, 0, len(names))
	for _, n := range names {
		out = append(out, candidate.Skill{Name: n, Proficiency: candidate.ProficiencyIntermediate})
	}
	return out
}

type fixture struct {
	store *repository.MemoryStore
	job   job.Job
	ada   candidate.Candidate
	bob   candidate.Candidate
	cy    candidate.Candidate
}

func newFixture() fixture {
	s := repository.NewMemoryStore()
	f := fixture{store: s}
	f.job = s.PutJob(job.Job{
		Title:          "Frontend Engineer",
		Company:        "Acme",
		RequiredSkills: []string{"React", "Node.js"},
		MinExperience:  0,
	})
	f.ada = s.PutCandidate(candidate.Candidate{FullName: "Ada"}, skills("react", "Python")...)
	f.bob = s.PutCandidate(candidate.Candidate{FullName: "Bob"}, skills("ReactJS", "node.js")...)
	f.cy = s.PutCandidate(candidate.Candidate{FullName: "Cy"})
	return f
}

func (f fixture) usecase(cache MatchCache, n MatchNotifier) *Matching {
	return NewMatchingUsecase(f.store, f.store, f.store, cache, n, config.MatchingConfig{}, nil)
}

func TestFindMatchesForJob_RanksCandidates(t *testing.T) {
	f := newFixture()
	res, err := f.usecase(nil, nil).FindMatchesForJob(context.Background(), f.job.ID)
	require.NoError(t, err)
	require.Len(t, res, 3)

	assert.Equal(t, f.bob.ID, res[0].CandidateID)
	assert.Equal(t, 90, res[0].Score)

	assert.Equal(t, f.ada.ID, res[1].CandidateID)
	assert.Equal(t, 60, res[1].Score)
	assert.Equal(t, []string{"React"}, res[1].MatchedSkills)
	assert.Equal(t, []string{"Node.js"}, res[1].SkillGaps)
	assert.Equal(t, 50.0, res[1].RequiredScore)

	assert.Equal(t, f.cy.ID, res[2].CandidateID)
	assert.Equal(t, 30, res[2].Score)
}

func TestFindMatchesForJob_TiesKeepCandidateOrder(t *testing.T) {
	s := repository.NewMemoryStore()
	j := s.PutJob(job.Job{RequiredSkills: []string{"Go"}})
	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		ids = append(ids, s.PutCandidate(candidate.Candidate{FullName: "same"}, skills("Go")...).ID)
	}

	uc := NewMatchingUsecase(s, s, s, nil, nil, config.MatchingConfig{FetchConcurrency: 2}, nil)
	for run := 0; run < 3; run++ {
		res, err := uc.FindMatchesForJob(context.Background(), j.ID)
		require.NoError(t, err)
		got := make([]uuid.UUID, 0, len(res))
		for _, r := range res {
			got = append(got, r.CandidateID)
		}
		assert.Equal(t, ids, got)
	}
}

func TestFindMatchesForJob_JobNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.usecase(nil, nil).FindMatchesForJob(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrJobNotFound)

	_, err = f.usecase(nil, nil).FindMatchesForJob(context.Background(), uuid.Nil)
	require.ErrorIs(t, err, ErrJobNotFound)
}

func TestFindMatchesForJob_CandidateListFailure(t *testing.T) {
	f := newFixture()
	boom := errors.New("connection reset")
	cands := failingCandidates{MemoryStore: f.store, listErr: boom}
	uc := NewMatchingUsecase(f.store, cands, f.store, nil, nil, config.MatchingConfig{}, nil)

	res, err := uc.FindMatchesForJob(context.Background(), f.job.ID)
	require.ErrorIs(t, err, ErrFetchFailed)
	require.ErrorIs(t, err, boom)
	assert.Nil(t, res)
}

func TestFindMatchesForJob_SkillFetchFailureAbortsPass(t *testing.T) {
	f := newFixture()
	boom := errors.New("timeout")
	cands := failingCandidates{MemoryStore: f.store, skillsErr: map[uuid.UUID]error{f.bob.ID: boom}}
	uc := NewMatchingUsecase(f.store, cands, f.store, nil, nil, config.MatchingConfig{FetchConcurrency: 1}, nil)

	res, err := uc.FindMatchesForJob(context.Background(), f.job.ID)
	require.ErrorIs(t, err, ErrFetchFailed)
	require.ErrorIs(t, err, boom)
	assert.Nil(t, res)
}

func TestFindMatchesForJob_NoCandidates(t *testing.T) {
	s := repository.NewMemoryStore()
	j := s.PutJob(job.Job{RequiredSkills: []string{"Go"}})
	res, err := NewMatchingUsecase(s, s, s, nil, nil, config.MatchingConfig{}, nil).FindMatchesForJob(context.Background(), j.ID)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestGenerateMatches_PersistsAndNotifies(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	cache := newMemoryCache()
	n := &recordingNotifier{}
	uc := f.usecase(cache, n)

	require.NoError(t, cache.SetJSON(ctx, JobMatchesCacheKey(f.job.ID), []int{1}, 0))

	res, err := uc.GenerateMatches(ctx, f.job.ID)
	require.NoError(t, err)
	require.Len(t, res, 3)

	saved, err := f.store.FindByPair(ctx, f.ada.ID, f.job.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, saved.Score)
	assert.Equal(t, []string{"React"}, saved.MatchedSkills)
	assert.Equal(t, []string{"Node.js"}, saved.SkillGaps)
	assert.Equal(t, match.StatusSuggested, saved.Status)
	assert.Equal(t, res[1].Reasoning, saved.Reasoning)

	assert.Equal(t, 3, n.updates[f.job.ID])
	assert.Contains(t, cache.deleted, JobMatchesCacheKey(f.job.ID))
	assert.Contains(t, cache.deleted, dashboardStatsCacheKey)
}

func TestGenerateMatches_ReplacesPriorMatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := f.usecase(nil, nil)

	_, err := uc.GenerateMatches(ctx, f.job.ID)
	require.NoError(t, err)
	first, err := f.store.FindByPair(ctx, f.ada.ID, f.job.ID)
	require.NoError(t, err)
	_, err = uc.UpdateMatchStatus(ctx, first.ID, "interviewing")
	require.NoError(t, err)

	f.store.PutCandidate(candidate.Candidate{FullName: "Dee"}, skills("Node.js")...)
	_, err = uc.GenerateMatches(ctx, f.job.ID)
	require.NoError(t, err)

	again, err := f.store.FindByPair(ctx, f.ada.ID, f.job.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, first.Score, again.Score)
	assert.Equal(t, match.StatusSuggested, again.Status)
}

func TestPublishMatches_SavesGivenResults(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	cache := newMemoryCache()
	n := &recordingNotifier{}
	uc := f.usecase(cache, n)

	res, err := uc.FindMatchesForJob(ctx, f.job.ID)
	require.NoError(t, err)
	res = res[:1]
	res[0].Score = 42

	// a candidate added after scoring must not be saved
	late := f.store.PutCandidate(candidate.Candidate{FullName: "Dee"}, skills("React")...)

	require.NoError(t, uc.PublishMatches(ctx, f.job.ID, res))

	saved, err := f.store.FindByPair(ctx, res[0].CandidateID, f.job.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, saved.Score)

	_, err = f.store.FindByPair(ctx, late.ID, f.job.ID)
	require.ErrorIs(t, err, repository.ErrMatchNotFound)

	assert.Equal(t, 1, n.updates[f.job.ID])
	assert.Contains(t, cache.deleted, JobMatchesCacheKey(f.job.ID))
}

func TestSaveMatches_Failure(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	n := &recordingNotifier{}
	boom := errors.New("write conflict")
	uc := NewMatchingUsecase(f.store, f.store, failingMatches{MemoryStore: f.store, err: boom}, nil, n, config.MatchingConfig{}, nil)

	_, err := uc.GenerateMatches(ctx, f.job.ID)
	require.ErrorIs(t, err, ErrSaveFailed)
	require.ErrorIs(t, err, boom)
	assert.Empty(t, n.updates)

	_, err = f.store.FindByPair(ctx, f.ada.ID, f.job.ID)
	require.ErrorIs(t, err, repository.ErrMatchNotFound)
}

func TestSaveMatches_EmptyIsNoop(t *testing.T) {
	f := newFixture()
	uc := NewMatchingUsecase(f.store, f.store, failingMatches{MemoryStore: f.store, err: errors.New("unused")}, nil, nil, config.MatchingConfig{}, nil)
	require.NoError(t, uc.SaveMatches(context.Background(), f.job.ID, nil))
	require.NoError(t, uc.SaveMatches(context.Background(), f.job.ID, []matching.Result{}))
}

func TestListMatches_ReadThroughCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	cache := newMemoryCache()
	uc := f.usecase(cache, nil)

	_, err := uc.GenerateMatches(ctx, f.job.ID)
	require.NoError(t, err)

	items, err := uc.ListMatches(ctx, f.job.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Bob", items[0].Candidate.FullName)
	assert.Contains(t, cache.items, JobMatchesCacheKey(f.job.ID))

	// a cached list is served even when the store changes underneath it
	late := f.store.PutCandidate(candidate.Candidate{FullName: "Late"})
	require.NoError(t, f.store.UpsertMatches(ctx, []match.Match{{
		CandidateID: late.ID, JobID: f.job.ID, Score: 1, Status: match.StatusSuggested,
	}}))
	cached, err := uc.ListMatches(ctx, f.job.ID)
	require.NoError(t, err)
	assert.Len(t, cached, 3)
}

func TestListMatches_UnknownJob(t *testing.T) {
	f := newFixture()
	_, err := f.usecase(nil, nil).ListMatches(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrJobNotFound)
}

func TestUpdateMatchStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	n := &recordingNotifier{}
	uc := f.usecase(newMemoryCache(), n)

	_, err := uc.GenerateMatches(ctx, f.job.ID)
	require.NoError(t, err)
	saved, err := f.store.FindByPair(ctx, f.bob.ID, f.job.ID)
	require.NoError(t, err)

	_, err = uc.UpdateMatchStatus(ctx, saved.ID, "promoted")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.UpdateMatchStatus(ctx, uuid.New(), "hired")
	require.ErrorIs(t, err, ErrMatchNotFound)

	m, err := uc.UpdateMatchStatus(ctx, saved.ID, "shortlisted")
	require.NoError(t, err)
	assert.Equal(t, match.StatusShortlisted, m.Status)
	assert.Equal(t, []string{"shortlisted"}, n.statuses)
}
