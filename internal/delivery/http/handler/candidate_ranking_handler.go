package handler

import (
	"errors"

	"talent-rank/internal/delivery/http/dto"
	"talent-rank/internal/delivery/http/middleware"
	"talent-rank/internal/pkg/response"
	"talent-rank/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CandidateRankingHandler struct {
	uc       usecase.CandidateRankingUsecase
	validate *validator.Validate
}

func NewCandidateRankingHandler(uc usecase.CandidateRankingUsecase, validate *validator.Validate) *CandidateRankingHandler {
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}
	return &CandidateRankingHandler{uc: uc, validate: validate}
}

// RankForJob handles GET /api/v1/jobs/:job_id/candidates.
func (h *CandidateRankingHandler) RankForJob(c fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	q, err := h.bindQuery(c)
	if err != nil {
		return err
	}

	ranked, err := h.uc.RankForJob(c.Context(), jobID, q.Params())
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "candidates ranked", dto.NewCandidateRankingListResponse(ranked))
}

// Discover handles GET /api/v1/candidates/discover.
func (h *CandidateRankingHandler) Discover(c fiber.Ctx) error {
	q, err := h.bindQuery(c)
	if err != nil {
		return err
	}

	ranked, err := h.uc.Discover(c.Context(), q.Params())
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "candidates ranked", dto.NewCandidateRankingListResponse(ranked))
}

func (h *CandidateRankingHandler) bindQuery(c fiber.Ctx) (dto.RankingQuery, error) {
	var q dto.RankingQuery
	if err := c.Bind().Query(&q); err != nil {
		return dto.RankingQuery{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid query parameters", nil, err)
	}
	if err := h.validate.Struct(q); err != nil {
		return dto.RankingQuery{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid query parameters", nil, err)
	}
	return q, nil
}

func mapUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid query parameters", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrCandidateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
}
