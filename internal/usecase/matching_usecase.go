package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/match"
	"talent-match/internal/domain/matching"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type MatchingUsecase interface {
	FindMatchesForJob(ctx context.Context, jobID uuid.UUID) ([]matching.Result, error)
	SaveMatches(ctx context.Context, jobID uuid.UUID, results []matching.Result) error
	GenerateMatches(ctx context.Context, jobID uuid.UUID) ([]matching.Result, error)
	PublishMatches(ctx context.Context, jobID uuid.UUID, results []matching.Result) error
	ListMatches(ctx context.Context, jobID uuid.UUID) ([]repository.MatchWithCandidate, error)
	UpdateMatchStatus(ctx context.Context, matchID uuid.UUID, status string) (match.Match, error)
}

type Matching struct {
	jobs       repository.JobRepository
	candidates repository.CandidateRepository
	matches    repository.MatchRepository
	cache      MatchCache
	notifier   MatchNotifier
	cfg        config.MatchingConfig
	logger     *zap.Logger
}

// NewMatchingUsecase wires the matcher. cache and notifier may be nil.
func NewMatchingUsecase(
	jobs repository.JobRepository,
	candidates repository.CandidateRepository,
	matches repository.MatchRepository,
	cache MatchCache,
	notifier MatchNotifier,
	cfg config.MatchingConfig,
	logger *zap.Logger,
) *Matching {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matching{
		jobs:       jobs,
		candidates: candidates,
		matches:    matches,
		cache:      cache,
		notifier:   notifier,
		cfg:        cfg,
		logger:     logger,
	}
}

// FindMatchesForJob scores every candidate against the job and returns the
// results ranked by descending score. Nothing is persisted.
func (u *Matching) FindMatchesForJob(ctx context.Context, jobID uuid.UUID) ([]matching.Result, error) {
	if jobID == uuid.Nil {
		return nil, ErrJobNotFound
	}
	start := time.Now()

	j, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("%w: job %s: %w", ErrFetchFailed, jobID, err)
	}

	cands, err := u.candidates.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: candidates: %w", ErrFetchFailed, err)
	}

	skills, err := u.fetchSkills(ctx, cands)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	results := make([]matching.Result, 0, len(cands))
	for i, c := range cands {
		results = append(results, matching.Score(matching.Input{
			CandidateID:     c.ID,
			CandidateSkills: skills[i],
			CandidateYears:  c.YearsOfExperience,
			RequiredSkills:  j.RequiredSkills,
			PreferredSkills: j.PreferredSkills,
			MinExperience:   j.MinExperience,
			MaxExperience:   j.MaxExperience,
		}))
	}
	matching.Rank(results)

	u.logger.Debug("matches computed",
		zap.String("job_id", jobID.String()),
		zap.Int("candidates", len(cands)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}

// fetchSkills loads each candidate's skill names. Slot i belongs to cands[i].
func (u *Matching) fetchSkills(ctx context.Context, cands []candidate.Candidate) ([][]string, error) {
	out := make([][]string, len(cands))

	g, gctx := errgroup.WithContext(ctx)
	if u.cfg.FetchConcurrency > 0 {
		g.SetLimit(u.cfg.FetchConcurrency)
	}
	for i, c := range cands {
		g.Go(func() error {
			ss, err := u.candidates.ListSkills(gctx, c.ID)
			if err != nil {
				return fmt.Errorf("skills of candidate %s: %w", c.ID, err)
			}
			out[i] = candidate.SkillNames(ss)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveMatches upserts results for the job as suggested matches. Previous
// matches for the same candidate and job are replaced.
func (u *Matching) SaveMatches(ctx context.Context, jobID uuid.UUID, results []matching.Result) error {
	if jobID == uuid.Nil {
		return ErrInvalidInput
	}
	if len(results) == 0 {
		return nil
	}

	ms := make([]match.Match, 0, len(results))
	for _, r := range results {
		ms = append(ms, match.Match{
			CandidateID:   r.CandidateID,
			JobID:         jobID,
			Score:         r.Score,
			MatchedSkills: r.MatchedSkills,
			SkillGaps:     r.SkillGaps,
			Reasoning:     r.Reasoning,
			Status:        match.StatusSuggested,
		})
	}

	if err := u.matches.UpsertMatches(ctx, ms); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return nil
}

func (u *Matching) GenerateMatches(ctx context.Context, jobID uuid.UUID) ([]matching.Result, error) {
	results, err := u.FindMatchesForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := u.PublishMatches(ctx, jobID, results); err != nil {
		return nil, err
	}
	return results, nil
}

// PublishMatches saves already computed results, then drops the cached views
// of the job and notifies listeners.
func (u *Matching) PublishMatches(ctx context.Context, jobID uuid.UUID, results []matching.Result) error {
	if err := u.SaveMatches(ctx, jobID, results); err != nil {
		return err
	}

	u.invalidate(ctx, JobMatchesCacheKey(jobID), dashboardStatsCacheKey)
	if u.notifier != nil {
		u.notifier.NotifyMatchesUpdated(jobID, len(results))
	}

	u.logger.Info("matches saved",
		zap.String("job_id", jobID.String()),
		zap.Int("count", len(results)),
	)
	return nil
}

func (u *Matching) ListMatches(ctx context.Context, jobID uuid.UUID) ([]repository.MatchWithCandidate, error) {
	if jobID == uuid.Nil {
		return nil, ErrJobNotFound
	}
	if _, err := u.jobs.FindByID(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	key := JobMatchesCacheKey(jobID)
	if u.cache != nil {
		var cached []repository.MatchWithCandidate
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.logger.Warn("match cache read failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	items, err := u.matches.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, items, u.cfg.CacheTTL); err != nil {
			u.logger.Warn("match cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return items, nil
}

func (u *Matching) UpdateMatchStatus(ctx context.Context, matchID uuid.UUID, status string) (match.Match, error) {
	if matchID == uuid.Nil {
		return match.Match{}, ErrMatchNotFound
	}
	st, ok := match.ParseStatus(status)
	if !ok {
		return match.Match{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	m, err := u.matches.UpdateStatus(ctx, matchID, st)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return match.Match{}, ErrMatchNotFound
		}
		return match.Match{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	u.invalidate(ctx, JobMatchesCacheKey(m.JobID), dashboardStatsCacheKey)
	if u.notifier != nil {
		u.notifier.NotifyMatchStatusUpdated(m.ID, m.JobID, string(m.Status))
	}
	return m, nil
}

func (u *Matching) invalidate(ctx context.Context, keys ...string) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, keys...); err != nil {
		u.logger.Warn("match cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
