package usecase

import (
	"context"
	"fmt"
	"time"

	"talent-match/internal/domain/match"
	"talent-match/internal/repository"

	"go.uber.org/zap"
)

type DashboardStats struct {
	TotalCandidates int                  `json:"total_candidates"`
	OpenJobs        int                  `json:"open_jobs"`
	TotalMatches    int                  `json:"total_matches"`
	MatchesByStatus map[match.Status]int `json:"matches_by_status"`
}

type DashboardUsecase interface {
	Stats(ctx context.Context) (DashboardStats, error)
}

type Dashboard struct {
	jobs       repository.JobRepository
	candidates repository.CandidateRepository
	matches    repository.MatchRepository
	cache      MatchCache
	ttl        time.Duration
	logger     *zap.Logger
}

func NewDashboardUsecase(
	jobs repository.JobRepository,
	candidates repository.CandidateRepository,
	matches repository.MatchRepository,
	cache MatchCache,
	ttl time.Duration,
	logger *zap.Logger,
) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{jobs: jobs, candidates: candidates, matches: matches, cache: cache, ttl: ttl, logger: logger}
}

func (u *Dashboard) Stats(ctx context.Context) (DashboardStats, error) {
	if u.cache != nil {
		var cached DashboardStats
		hit, err := u.cache.GetJSON(ctx, dashboardStatsCacheKey, &cached)
		if err != nil {
			u.logger.Warn("dashboard cache read failed", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	total, err := u.candidates.Count(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("%w: count candidates: %w", ErrInternal, err)
	}
	open, err := u.jobs.CountOpen(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("%w: count open jobs: %w", ErrInternal, err)
	}
	counts, err := u.matches.CountByStatus(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("%w: count matches: %w", ErrInternal, err)
	}

	stats := DashboardStats{
		TotalCandidates: total,
		OpenJobs:        open,
		MatchesByStatus: make(map[match.Status]int, len(match.Statuses)),
	}
	for _, st := range match.Statuses {
		n := counts[st]
		stats.MatchesByStatus[st] = n
		stats.TotalMatches += n
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, dashboardStatsCacheKey, stats, u.ttl); err != nil {
			u.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}
