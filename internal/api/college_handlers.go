package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/geasyapp/geasy-server/internal/domain"
)

func (s *Server) registerCollegeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listColleges",
		Method:      http.MethodGet,
		Path:        "/api/v1/colleges",
		Summary:     "List colleges",
		Description: "Returns all colleges with their GE totals",
		Tags:        []string{"Colleges"},
	}, s.handleListColleges)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCollege",
		Method:      http.MethodGet,
		Path:        "/api/v1/colleges/{id}",
		Summary:     "Get college",
		Description: "Returns a college by ID",
		Tags:        []string{"Colleges"},
	}, s.handleGetCollege)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCollegeRequirements",
		Method:      http.MethodGet,
		Path:        "/api/v1/colleges/{id}/requirements",
		Summary:     "List GE requirements",
		Description: "Returns the GE requirement rows of a college, ordered by ID",
		Tags:        []string{"Colleges"},
	}, s.handleListCollegeRequirements)
}

// === DTOs ===

// CollegeIDInput identifies a college by path parameter.
type CollegeIDInput struct {
	ID int64 `path:"id" minimum:"1" doc:"College ID"`
}

// CollegesResponse contains the college list.
type CollegesResponse struct {
	Colleges []*domain.College `json:"colleges" doc:"All colleges"`
}

// CollegesOutput wraps the college list for Huma.
type CollegesOutput struct {
	Body CollegesResponse
}

// CollegeOutput wraps a single college for Huma.
type CollegeOutput struct {
	Body *domain.College
}

// RequirementsResponse contains a college's GE requirement rows.
type RequirementsResponse struct {
	CollegeID    int64                  `json:"college_id" doc:"College the rows belong to"`
	Requirements []domain.GERequirement `json:"requirements" doc:"Requirement rows ordered by ID"`
}

// RequirementsOutput wraps the requirement list for Huma.
type RequirementsOutput struct {
	Body RequirementsResponse
}

// === Handlers ===

func (s *Server) handleListColleges(ctx context.Context, _ *struct{}) (*CollegesOutput, error) {
	colleges, err := s.services.Catalog.ListColleges(ctx)
	if err != nil {
		s.logger.Error("failed to list colleges", "error", err)
		return nil, err
	}
	return &CollegesOutput{Body: CollegesResponse{Colleges: colleges}}, nil
}

func (s *Server) handleGetCollege(ctx context.Context, input *CollegeIDInput) (*CollegeOutput, error) {
	college, err := s.services.Catalog.GetCollege(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CollegeOutput{Body: college}, nil
}

func (s *Server) handleListCollegeRequirements(ctx context.Context, input *CollegeIDInput) (*RequirementsOutput, error) {
	reqs, err := s.services.Catalog.ListRequirements(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if reqs == nil {
		reqs = []domain.GERequirement{}
	}
	return &RequirementsOutput{Body: RequirementsResponse{
		CollegeID:    input.ID,
		Requirements: reqs,
	}}, nil
}
