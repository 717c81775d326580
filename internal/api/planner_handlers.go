package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/geasyapp/geasy-server/internal/domain"
	"github.com/geasyapp/geasy-server/internal/service"
)

func (s *Server) registerPlannerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "evaluateRequirements",
		Method:      http.MethodPost,
		Path:        "/api/v1/evaluate",
		Summary:     "Evaluate GE requirements",
		Description: "Evaluates candidate courses against a college's GE requirements",
		Tags:        []string{"Planner"},
	}, s.handleEvaluate)
}

// EvaluateInput wraps the evaluation request body.
type EvaluateInput struct {
	Body service.EvaluateRequest
}

// EvaluateResponse contains the evaluation outcome.
type EvaluateResponse struct {
	College   *domain.College            `json:"college" doc:"College the requirements belong to"`
	Satisfied bool                       `json:"satisfied" doc:"True when every requirement is satisfied"`
	Results   []domain.RequirementResult `json:"results" doc:"One result per requirement row, ordered by ID"`
}

// EvaluateOutput wraps the evaluation response for Huma.
type EvaluateOutput struct {
	Body EvaluateResponse
}

func (s *Server) handleEvaluate(ctx context.Context, input *EvaluateInput) (*EvaluateOutput, error) {
	eval, err := s.services.Planner.Evaluate(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &EvaluateOutput{Body: EvaluateResponse{
		College:   eval.College,
		Satisfied: domain.Satisfied(eval.Results),
		Results:   eval.Results,
	}}, nil
}
