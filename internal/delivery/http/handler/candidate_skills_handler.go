package handler

import (
	"talent-rank/internal/delivery/http/dto"
	"talent-rank/internal/delivery/http/middleware"
	"talent-rank/internal/pkg/response"
	"talent-rank/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CandidateSkillsHandler struct {
	uc usecase.CandidateSkillsUsecase
}

func NewCandidateSkillsHandler(uc usecase.CandidateSkillsUsecase) *CandidateSkillsHandler {
	return &CandidateSkillsHandler{uc: uc}
}

// GetBreakdown handles GET /api/v1/candidates/:candidate_id/skills. An
// optional job_id query scopes the breakdown to a job's requirements.
func (h *CandidateSkillsHandler) GetBreakdown(c fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidate_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid candidate id", nil, err)
	}

	var jobID *uuid.UUID
	if raw := c.Query("job_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
		}
		jobID = &id
	}

	breakdown, err := h.uc.GetBreakdown(c.Context(), candidateID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "skill breakdown", dto.NewSkillBreakdownResponse(breakdown, jobID != nil))
}
