package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/geasyapp/geasy-server/internal/domain"
	"github.com/geasyapp/geasy-server/internal/service"
)

func (s *Server) registerReviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listSectionReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/sections/{id}/reviews",
		Summary:     "List section reviews",
		Description: "Returns all reviews of a section",
		Tags:        []string{"Reviews"},
	}, s.handleListSectionReviews)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createReview",
		Method:        http.MethodPost,
		Path:          "/api/v1/reviews",
		Summary:       "Create review",
		Description:   "Submits a new review for a section",
		Tags:          []string{"Reviews"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateReview)
}

// SectionIDInput identifies a section by path parameter.
type SectionIDInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Section ID"`
}

// ReviewsResponse contains a section's reviews.
type ReviewsResponse struct {
	SectionID int64            `json:"section_id" doc:"Section the reviews belong to"`
	Reviews   []*domain.Review `json:"reviews" doc:"Reviews ordered by ID"`
}

// ReviewsOutput wraps the review list for Huma.
type ReviewsOutput struct {
	Body ReviewsResponse
}

// CreateReviewInput wraps the review submission body.
type CreateReviewInput struct {
	Body service.CreateReviewRequest
}

// ReviewOutput wraps a single review for Huma.
type ReviewOutput struct {
	Body *domain.Review
}

func (s *Server) handleListSectionReviews(ctx context.Context, input *SectionIDInput) (*ReviewsOutput, error) {
	reviews, err := s.services.Catalog.ListReviews(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []*domain.Review{}
	}
	return &ReviewsOutput{Body: ReviewsResponse{SectionID: input.ID, Reviews: reviews}}, nil
}

func (s *Server) handleCreateReview(ctx context.Context, input *CreateReviewInput) (*ReviewOutput, error) {
	review, err := s.services.Catalog.CreateReview(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: review}, nil
}
