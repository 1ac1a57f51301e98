package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// MatchNotifier is told when the saved matches of a job change.
type MatchNotifier interface {
	NotifyMatchesUpdated(jobID uuid.UUID, count int)
	NotifyMatchStatusUpdated(matchID, jobID uuid.UUID, status string)
}

const dashboardStatsCacheKey = "dashboard:stats"

func JobMatchesCacheKey(jobID uuid.UUID) string {
	return "matches:job:" + jobID.String()
}
