package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/geasyapp/geasy-server/internal/domain"
)

func (s *Server) registerAreaRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listGEAreas",
		Method:      http.MethodGet,
		Path:        "/api/v1/areas",
		Summary:     "List GE areas",
		Description: "Returns the distinct GE area labels present in the catalog",
		Tags:        []string{"Areas"},
	}, s.handleListGEAreas)

	huma.Register(s.api, huma.Operation{
		OperationID: "listAreaMappings",
		Method:      http.MethodGet,
		Path:        "/api/v1/areas/mappings",
		Summary:     "List area mappings",
		Description: "Returns the GE area to foundation area mapping table",
		Tags:        []string{"Areas"},
	}, s.handleListAreaMappings)
}

// AreasResponse contains the GE area labels.
type AreasResponse struct {
	Areas []string `json:"areas" doc:"Distinct GE area labels, sorted"`
}

// AreasOutput wraps the area list for Huma.
type AreasOutput struct {
	Body AreasResponse
}

// AreaMappingsResponse contains the area mapping table.
type AreaMappingsResponse struct {
	Mappings []domain.AreaMapping `json:"mappings" doc:"GE area to foundation area mappings"`
}

// AreaMappingsOutput wraps the mapping list for Huma.
type AreaMappingsOutput struct {
	Body AreaMappingsResponse
}

func (s *Server) handleListGEAreas(ctx context.Context, _ *struct{}) (*AreasOutput, error) {
	areas, err := s.services.Catalog.ListGEAreas(ctx)
	if err != nil {
		s.logger.Error("failed to list GE areas", "error", err)
		return nil, err
	}
	if areas == nil {
		areas = []string{}
	}
	return &AreasOutput{Body: AreasResponse{Areas: areas}}, nil
}

func (s *Server) handleListAreaMappings(ctx context.Context, _ *struct{}) (*AreaMappingsOutput, error) {
	mappings, err := s.services.Catalog.ListAreaMappings(ctx)
	if err != nil {
		s.logger.Error("failed to list area mappings", "error", err)
		return nil, err
	}
	return &AreaMappingsOutput{Body: AreaMappingsResponse{Mappings: mappings}}, nil
}
