// Package service contains the business logic between the HTTP API and
// the store: catalog queries, requirement evaluation, course search, and
// CSV ingest.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/geasyapp/geasy-server/internal/domain"
	domainerrors "github.com/geasyapp/geasy-server/internal/errors"
	"github.com/geasyapp/geasy-server/internal/store"
	"github.com/geasyapp/geasy-server/internal/store/sqlite"
	"github.com/geasyapp/geasy-server/internal/validation"
)

// CatalogService handles read queries over colleges, requirements,
// courses, professors, sections, and reviews.
type CatalogService struct {
	store     *sqlite.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store *sqlite.Store, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// ListColleges returns all seeded colleges.
func (s *CatalogService) ListColleges(ctx context.Context) ([]*domain.College, error) {
	return s.store.ListColleges(ctx)
}

// GetCollege returns a single college.
func (s *CatalogService) GetCollege(ctx context.Context, id int64) (*domain.College, error) {
	college, err := s.store.GetCollege(ctx, id)
	if err != nil {
		var storeErr *store.Error
		if domainerrors.As(err, &storeErr) && storeErr.Code == store.ErrNotFound.Code {
			return nil, domainerrors.NotFoundf("college %d not found", id).WithCause(err)
		}
		return nil, fmt.Errorf("failed to get college: %w", err)
	}
	return college, nil
}

// ListRequirements returns the GE requirement rows of a college, ordered
// by requirement id. An unknown college is an invalid-college error,
// distinct from a known college with zero rows.
func (s *CatalogService) ListRequirements(ctx context.Context, collegeID int64) ([]domain.GERequirement, error) {
	if _, err := s.store.GetCollege(ctx, collegeID); err != nil {
		var storeErr *store.Error
		if domainerrors.As(err, &storeErr) && storeErr.Code == store.ErrNotFound.Code {
			return nil, domainerrors.InvalidCollegef("college %d does not exist", collegeID).WithCause(err)
		}
		return nil, fmt.Errorf("failed to check college: %w", err)
	}
	return s.store.ListRequirementsByCollege(ctx, collegeID)
}

// ListAreaMappings returns the GE area to foundation area mapping table.
func (s *CatalogService) ListAreaMappings(ctx context.Context) ([]domain.AreaMapping, error) {
	return s.store.ListAreaMappings(ctx)
}

// ListGEAreas returns the distinct GE area labels present in the catalog.
func (s *CatalogService) ListGEAreas(ctx context.Context) ([]string, error) {
	return s.store.ListGEAreas(ctx)
}

// ListCourses runs the filtered course query. Filters are normalized
// (default sort and pagination bounds) before hitting the store.
func (s *CatalogService) ListCourses(ctx context.Context, filters store.CourseFilters) ([]*domain.CourseSummary, error) {
	filters.Normalize()
	return s.store.ListCourses(ctx, filters)
}

// GetCourse returns one course with its review aggregates.
func (s *CatalogService) GetCourse(ctx context.Context, id int64) (*domain.CourseSummary, error) {
	course, err := s.store.GetCourse(ctx, id)
	if err != nil {
		var storeErr *store.Error
		if domainerrors.As(err, &storeErr) && storeErr.Code == store.ErrNotFound.Code {
			return nil, domainerrors.NotFoundf("course %d not found", id).WithCause(err)
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	stats, err := s.store.GetCourseStats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course stats: %w", err)
	}

	return &domain.CourseSummary{Course: *course, Stats: stats}, nil
}

// ListProfessors returns professors matching the filters, ordered by name.
func (s *CatalogService) ListProfessors(ctx context.Context, filters store.ProfessorFilters) ([]*domain.Professor, error) {
	return s.store.ListProfessors(ctx, filters)
}

// GetProfessor returns a single professor.
func (s *CatalogService) GetProfessor(ctx context.Context, id int64) (*domain.Professor, error) {
	prof, err := s.store.GetProfessor(ctx, id)
	if err != nil {
		var storeErr *store.Error
		if domainerrors.As(err, &storeErr) && storeErr.Code == store.ErrNotFound.Code {
			return nil, domainerrors.NotFoundf("professor %d not found", id).WithCause(err)
		}
		return nil, fmt.Errorf("failed to get professor: %w", err)
	}
	return prof, nil
}

// ListSections returns the sections of a course, newest term first.
func (s *CatalogService) ListSections(ctx context.Context, courseID int64, filters store.SectionFilters) ([]*domain.Section, error) {
	if _, err := s.store.GetCourse(ctx, courseID); err != nil {
		var storeErr *store.Error
		if domainerrors.As(err, &storeErr) && storeErr.Code == store.ErrNotFound.Code {
			return nil, domainerrors.NotFoundf("course %d not found", courseID).WithCause(err)
		}
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	return s.store.ListSectionsByCourse(ctx, courseID, filters)
}

// ListReviews returns all reviews of a section.
func (s *CatalogService) ListReviews(ctx context.Context, sectionID int64) ([]*domain.Review, error) {
	if _, err := s.store.GetSection(ctx, sectionID); err != nil {
		var storeErr *store.Error
		if domainerrors.As(err, &storeErr) && storeErr.Code == store.ErrNotFound.Code {
			return nil, domainerrors.NotFoundf("section %d not found", sectionID).WithCause(err)
		}
		return nil, fmt.Errorf("failed to check section: %w", err)
	}
	return s.store.ListReviewsBySection(ctx, sectionID)
}

// CreateReviewRequest contains fields for submitting a review.
type CreateReviewRequest struct {
	SectionID      int64  `json:"section_id" validate:"required,gt=0"`
	Quality        int    `json:"quality" validate:"required,gte=1,lte=5"`
	Workload       int    `json:"workload" validate:"required,gte=1,lte=10"`
	Text           string `json:"text,omitempty" validate:"max=4000"`
	WouldRecommend bool   `json:"would_recommend,omitempty"`
	GradeReceived  string `json:"grade_received,omitempty" validate:"max=4"`
}

// CreateReview validates and stores a new review. Schema constraints
// (dangling section, out-of-range values that slipped past validation)
// surface as constraint errors.
func (s *CatalogService) CreateReview(ctx context.Context, req CreateReviewRequest) (*domain.Review, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	review := &domain.Review{
		SectionID:      req.SectionID,
		Quality:        req.Quality,
		Workload:       req.Workload,
		Text:           req.Text,
		WouldRecommend: req.WouldRecommend,
		GradeReceived:  req.GradeReceived,
	}

	if err := s.store.CreateReview(ctx, review); err != nil {
		var storeErr *store.Error
		if domainerrors.As(err, &storeErr) && storeErr.Code == store.ErrConstraint.Code {
			return nil, domainerrors.Constraintf("review rejected: %s", storeErr.Message).WithCause(err)
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.Debug("created review", "id", review.ID, "section_id", review.SectionID)
	return review, nil
}

// DataStatus reports the catalog row counts a client can show as a
// data-freshness indicator.
type DataStatus struct {
	Courses    int `json:"courses"`
	Professors int `json:"professors"`
	Reviews    int `json:"reviews"`
}

// GetDataStatus returns the current catalog row counts.
func (s *CatalogService) GetDataStatus(ctx context.Context) (DataStatus, error) {
	courses, professors, reviews, err := s.store.CountRows(ctx)
	if err != nil {
		return DataStatus{}, fmt.Errorf("failed to count rows: %w", err)
	}
	return DataStatus{Courses: courses, Professors: professors, Reviews: reviews}, nil
}
