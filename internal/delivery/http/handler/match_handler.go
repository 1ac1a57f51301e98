package handler

import (
	"errors"
	"strings"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc      usecase.MatchingUsecase
	limiter *middleware.RateLimitMiddleware
}

// NewMatchHandler builds the handler. limiter guards match generation and may
// be nil.
func NewMatchHandler(uc usecase.MatchingUsecase, limiter *middleware.RateLimitMiddleware) *MatchHandler {
	return &MatchHandler{uc: uc, limiter: limiter}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	jobs := r.Group("/jobs")
	jobs.Get("/:job_id/matches/preview", h.PreviewMatches)
	jobs.Post("/:job_id/matches", h.limiter.Middleware(), h.GenerateMatches)
	jobs.Get("/:job_id/matches", h.ListMatches)

	r.Patch("/matches/:match_id/status", h.UpdateStatus)
}

// PreviewMatches scores all candidates without saving anything.
func (h *MatchHandler) PreviewMatches(c fiber.Ctx) error {
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}
	res, err := h.uc.FindMatchesForJob(c.Context(), jobID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResultResponses(res))
}

func (h *MatchHandler) GenerateMatches(c fiber.Ctx) error {
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}
	res, err := h.uc.GenerateMatches(c.Context(), jobID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewMatchResultResponses(res))
}

func (h *MatchHandler) ListMatches(c fiber.Ctx) error {
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}
	items, err := h.uc.ListMatches(c.Context(), jobID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSavedMatchResponses(items))
}

func (h *MatchHandler) UpdateStatus(c fiber.Ctx) error {
	matchID, err := uuidParam(c, "match_id")
	if err != nil {
		return err
	}

	var req dto.UpdateMatchStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Status is required", nil, nil)
	}

	m, err := h.uc.UpdateMatchStatus(c.Context(), matchID, status)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.MatchStatusResponse{
		ID:        m.ID,
		JobID:     m.JobID,
		Status:    string(m.Status),
		UpdatedAt: m.UpdatedAt,
	})
}

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

func mapMatchingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid input", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
