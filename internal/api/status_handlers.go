package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/geasyapp/geasy-server/internal/service"
)

func (s *Server) registerStatusRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getDataStatus",
		Method:      http.MethodGet,
		Path:        "/api/v1/status",
		Summary:     "Get data status",
		Description: "Returns catalog row counts and the search index size",
		Tags:        []string{"Status"},
	}, s.handleGetDataStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "reindexCourses",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/reindex",
		Summary:     "Rebuild search index",
		Description: "Rebuilds the course search index from the catalog database",
		Tags:        []string{"Status"},
	}, s.handleReindex)
}

// DataStatusResponse reports catalog and index sizes.
type DataStatusResponse struct {
	Data           service.DataStatus `json:"data" doc:"Catalog row counts"`
	IndexedCourses uint64             `json:"indexed_courses" doc:"Courses in the search index"`
}

// DataStatusOutput wraps the status response for Huma.
type DataStatusOutput struct {
	Body DataStatusResponse
}

// ReindexResponse reports the outcome of a reindex run.
type ReindexResponse struct {
	IndexedCourses uint64 `json:"indexed_courses" doc:"Courses in the search index after the rebuild"`
}

// ReindexOutput wraps the reindex response for Huma.
type ReindexOutput struct {
	Body ReindexResponse
}

func (s *Server) handleGetDataStatus(ctx context.Context, _ *struct{}) (*DataStatusOutput, error) {
	status, err := s.services.Catalog.GetDataStatus(ctx)
	if err != nil {
		return nil, err
	}

	var indexed uint64
	if s.services.Search != nil {
		indexed, err = s.services.Search.DocumentCount()
		if err != nil {
			s.logger.Warn("failed to count indexed courses", "error", err)
		}
	}

	return &DataStatusOutput{Body: DataStatusResponse{
		Data:           status,
		IndexedCourses: indexed,
	}}, nil
}

func (s *Server) handleReindex(ctx context.Context, _ *struct{}) (*ReindexOutput, error) {
	if err := s.services.Search.ReindexAll(ctx); err != nil {
		s.logger.Error("reindex failed", "error", err)
		return nil, err
	}

	count, err := s.services.Search.DocumentCount()
	if err != nil {
		return nil, err
	}
	return &ReindexOutput{Body: ReindexResponse{IndexedCourses: count}}, nil
}
