package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"talent-rank/internal/delivery/http/middleware"
	"talent-rank/internal/domain/ranking"
	"talent-rank/internal/pkg/response"
	"talent-rank/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type mockRankingUsecase struct {
	ranked []usecase.RankedCandidate
	err    error

	gotJobID  uuid.UUID
	gotParams usecase.CandidateRankingParams
}

func (m *mockRankingUsecase) RankForJob(_ context.Context, jobID uuid.UUID, params usecase.CandidateRankingParams) ([]usecase.RankedCandidate, error) {
	m.gotJobID = jobID
	m.gotParams = params
	return m.ranked, m.err
}

func (m *mockRankingUsecase) Discover(_ context.Context, params usecase.CandidateRankingParams) ([]usecase.RankedCandidate, error) {
	m.gotParams = params
	return m.ranked, m.err
}

func newTestApp(uc usecase.CandidateRankingUsecase) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())

	h := NewCandidateRankingHandler(uc, nil)
	app.Get("/jobs/:job_id/candidates", h.RankForJob)
	app.Get("/candidates/discover", h.Discover)
	return app
}

func decodeEnvelope(t *testing.T, app *fiber.App, url string) (int, response.SemanticResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	if err != nil {
		t.Fatalf("request %s: %v", url, err)
	}
	defer resp.Body.Close()

	var env response.SemanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp.StatusCode, env
}

func TestRankForJobOK(t *testing.T) {
	uc := &mockRankingUsecase{ranked: []usecase.RankedCandidate{
		{
			CandidateID: uuid.New(),
			FullName:    "Strong",
			TotalScore:  68,
			Components:  ranking.Components{Skills: 75, InterviewReadiness: 70, AIInsights: 70, Experience: 20},
			Reason:      "matched 1 required skill(s)",
		},
	}}
	app := newTestApp(uc)
	jobID := uuid.New()

	status, env := decodeEnvelope(t, app, "/jobs/"+jobID.String()+"/candidates?limit=5&min_score=30")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if env.Status != fiber.StatusOK {
		t.Fatalf("envelope status = %d, want 200", env.Status)
	}
	if uc.gotJobID != jobID {
		t.Fatalf("usecase got job %s, want %s", uc.gotJobID, jobID)
	}
	if uc.gotParams.Limit != 5 || uc.gotParams.MinScore != 30 {
		t.Fatalf("usecase got params %+v", uc.gotParams)
	}

	data, err := json.Marshal(env.Data)
	if err != nil {
		t.Fatalf("re-marshal data: %v", err)
	}
	var body struct {
		Candidates []struct {
			FullName   string `json:"full_name"`
			TotalScore int    `json:"total_score"`
		} `json:"candidates"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if body.Count != 1 || len(body.Candidates) != 1 {
		t.Fatalf("body = %+v, want one candidate", body)
	}
	if body.Candidates[0].FullName != "Strong" || body.Candidates[0].TotalScore != 68 {
		t.Fatalf("candidate = %+v", body.Candidates[0])
	}
}

func TestRankForJobBadJobID(t *testing.T) {
	app := newTestApp(&mockRankingUsecase{})

	status, env := decodeEnvelope(t, app, "/jobs/not-a-uuid/candidates")
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if env.Status != fiber.StatusBadRequest {
		t.Fatalf("envelope status = %d, want 400", env.Status)
	}
}

func TestRankForJobQueryValidation(t *testing.T) {
	app := newTestApp(&mockRankingUsecase{})

	status, _ := decodeEnvelope(t, app, "/jobs/"+uuid.NewString()+"/candidates?limit=500")
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for limit over cap", status)
	}
}

func TestRankForJobNotFound(t *testing.T) {
	app := newTestApp(&mockRankingUsecase{err: usecase.ErrJobNotFound})

	status, _ := decodeEnvelope(t, app, "/jobs/"+uuid.NewString()+"/candidates")
	if status != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
}

func TestRankForJobInternalErrorIsOpaque(t *testing.T) {
	app := newTestApp(&mockRankingUsecase{err: usecase.ErrInternal})

	status, env := decodeEnvelope(t, app, "/jobs/"+uuid.NewString()+"/candidates")
	if status != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	if env.Message != response.MessageInternalServerError {
		t.Fatalf("message = %q, internals must not leak", env.Message)
	}
}

func TestDiscoverOK(t *testing.T) {
	app := newTestApp(&mockRankingUsecase{ranked: []usecase.RankedCandidate{}})

	status, env := decodeEnvelope(t, app, "/candidates/discover")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if env.Status != fiber.StatusOK {
		t.Fatalf("envelope status = %d, want 200", env.Status)
	}
}
