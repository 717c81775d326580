package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/geasyapp/geasy-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchCourses",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search courses",
		Description: "Full-text search over course titles, descriptions, departments, and GE areas",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// SearchInput contains parameters for searching the catalog.
type SearchInput struct {
	Query          string `query:"q" minLength:"1" maxLength:"200" required:"true" doc:"Search query"`
	GEArea         string `query:"ge_area" doc:"Exact GE area label filter"`
	FoundationArea string `query:"foundation" doc:"Exact foundation area filter"`
	Dept           string `query:"dept" doc:"Department filter"`
	MinUnits       int    `query:"min_units" minimum:"0" doc:"Minimum units"`
	MaxUnits       int    `query:"max_units" minimum:"0" doc:"Maximum units"`
	RequireLab     bool   `query:"has_lab" doc:"Only courses with lab credit"`
	RequireWriting bool   `query:"has_writing_ii" doc:"Only courses with Writing II credit"`
	Limit          int    `query:"limit" minimum:"0" maximum:"100" doc:"Max results (default 20)"`
	Offset         int    `query:"offset" minimum:"0" doc:"Pagination offset"`
	SortBy         string `query:"sort" enum:"relevance,title,units" doc:"Result ordering (default relevance)"`
	SortOrder      string `query:"order" enum:"asc,desc" doc:"Sort direction (default desc)"`
	Facets         bool   `query:"facets" doc:"Include area facet counts"`
}

// SearchOutput wraps the search result for Huma.
type SearchOutput struct {
	Body search.Result
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	params := search.DefaultParams()
	params.Query = input.Query
	params.GEArea = input.GEArea
	params.FoundationArea = input.FoundationArea
	params.Dept = input.Dept
	params.MinUnits = input.MinUnits
	params.MaxUnits = input.MaxUnits
	params.RequireLab = input.RequireLab
	params.RequireWriting = input.RequireWriting
	params.IncludeFacets = input.Facets

	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	if input.Offset > 0 {
		params.Offset = input.Offset
	}
	if input.SortBy != "" {
		params.SortBy = input.SortBy
	}
	if input.SortOrder != "" {
		params.SortOrder = input.SortOrder
	}

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		s.logger.Error("search failed", "error", err, "query", input.Query)
		return nil, err
	}

	s.logger.Debug("search completed",
		"query", input.Query,
		"total", result.Total,
		"hits", len(result.Hits),
		"took_ms", result.TookMs,
	)

	return &SearchOutput{Body: *result}, nil
}
