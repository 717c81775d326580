package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/geasyapp/geasy-server/internal/domain"
	"github.com/geasyapp/geasy-server/internal/store"
)

func (s *Server) registerProfessorRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listProfessors",
		Method:      http.MethodGet,
		Path:        "/api/v1/professors",
		Summary:     "List professors",
		Description: "Returns professors matching the filters, ordered by name",
		Tags:        []string{"Professors"},
	}, s.handleListProfessors)

	huma.Register(s.api, huma.Operation{
		OperationID: "getProfessor",
		Method:      http.MethodGet,
		Path:        "/api/v1/professors/{id}",
		Summary:     "Get professor",
		Description: "Returns a professor by ID",
		Tags:        []string{"Professors"},
	}, s.handleGetProfessor)
}

// ListProfessorsInput contains the optional professor query filters.
type ListProfessorsInput struct {
	Dept      string  `query:"dept" doc:"Exact department code"`
	MinRating float64 `query:"min_rating" minimum:"0" maximum:"5" doc:"Minimum aggregate rating"`
}

// ProfessorIDInput identifies a professor by path parameter.
type ProfessorIDInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Professor ID"`
}

// ProfessorsResponse contains the professor list.
type ProfessorsResponse struct {
	Professors []*domain.Professor `json:"professors" doc:"Matching professors ordered by name"`
}

// ProfessorsOutput wraps the professor list for Huma.
type ProfessorsOutput struct {
	Body ProfessorsResponse
}

// ProfessorOutput wraps a single professor for Huma.
type ProfessorOutput struct {
	Body *domain.Professor
}

func (s *Server) handleListProfessors(ctx context.Context, input *ListProfessorsInput) (*ProfessorsOutput, error) {
	professors, err := s.services.Catalog.ListProfessors(ctx, store.ProfessorFilters{
		Dept:      input.Dept,
		MinRating: input.MinRating,
	})
	if err != nil {
		s.logger.Error("failed to list professors", "error", err)
		return nil, err
	}
	if professors == nil {
		professors = []*domain.Professor{}
	}
	return &ProfessorsOutput{Body: ProfessorsResponse{Professors: professors}}, nil
}

func (s *Server) handleGetProfessor(ctx context.Context, input *ProfessorIDInput) (*ProfessorOutput, error) {
	prof, err := s.services.Catalog.GetProfessor(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ProfessorOutput{Body: prof}, nil
}
