package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	EventMatchesUpdated     = "matches_updated"
	EventMatchStatusUpdated = "match_status_updated"
)

type MatchesUpdatedEvent struct {
	Type      string `json:"type"`
	JobID     string `json:"job_id"`
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
}

type MatchStatusUpdatedEvent struct {
	Type      string `json:"type"`
	MatchID   string `json:"match_id"`
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (h *Hub) NotifyMatchesUpdated(jobID uuid.UUID, count int) {
	h.publish(jobID, MatchesUpdatedEvent{
		Type:      EventMatchesUpdated,
		JobID:     jobID.String(),
		Count:     count,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Hub) NotifyMatchStatusUpdated(matchID, jobID uuid.UUID, status string) {
	h.publish(jobID, MatchStatusUpdatedEvent{
		Type:      EventMatchStatusUpdated,
		MatchID:   matchID.String(),
		JobID:     jobID.String(),
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Hub) publish(jobID uuid.UUID, evt any) {
	if h == nil {
		return
	}
	b, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("ws event encode failed", zap.Error(err))
		return
	}
	h.Broadcast(jobID, b)
}
