package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/geasyapp/geasy-server/internal/domain"
	domainerrors "github.com/geasyapp/geasy-server/internal/errors"
	"github.com/geasyapp/geasy-server/internal/ge"
	"github.com/geasyapp/geasy-server/internal/store"
	"github.com/geasyapp/geasy-server/internal/store/sqlite"
	"github.com/geasyapp/geasy-server/internal/validation"
)

// PlannerService evaluates a student's candidate courses against a
// college's GE requirements.
type PlannerService struct {
	store     *sqlite.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewPlannerService creates a new planner service.
func NewPlannerService(store *sqlite.Store, logger *slog.Logger) *PlannerService {
	return &PlannerService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// CandidateRef identifies a candidate course, optionally pinned to a
// specific section.
type CandidateRef struct {
	CourseID  int64 `json:"course_id" validate:"required,gt=0"`
	SectionID int64 `json:"section_id,omitempty" validate:"omitempty,gt=0"`
}

// EvaluateRequest contains the inputs of a requirement evaluation.
type EvaluateRequest struct {
	CollegeID  int64          `json:"college_id" validate:"required,gt=0"`
	Candidates []CandidateRef `json:"candidates,omitempty" validate:"dive"`
}

// Evaluation is the outcome of one evaluation run.
type Evaluation struct {
	College *domain.College            `json:"college"`
	Results []domain.RequirementResult `json:"results"`
}

// Evaluate resolves the candidate references, loads the college's
// requirement rows, and applies the rule evaluator. An unknown college id
// is an invalid-college error; an unknown course or section id is a
// not-found error. A college with zero requirement rows yields an empty
// result set.
func (s *PlannerService) Evaluate(ctx context.Context, req EvaluateRequest) (*Evaluation, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	college, err := s.store.GetCollege(ctx, req.CollegeID)
	if err != nil {
		var storeErr *store.Error
		if domainerrors.As(err, &storeErr) && storeErr.Code == store.ErrNotFound.Code {
			return nil, domainerrors.InvalidCollegef("college %d does not exist", req.CollegeID).WithCause(err)
		}
		return nil, fmt.Errorf("failed to get college: %w", err)
	}

	candidates, err := s.resolveCandidates(ctx, req.Candidates)
	if err != nil {
		return nil, err
	}

	reqs, err := s.store.ListRequirementsByCollege(ctx, req.CollegeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requirements: %w", err)
	}

	rows, err := s.store.ListAreaMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list area mappings: %w", err)
	}

	results := ge.Evaluate(reqs, ge.NewMappings(rows), candidates)
	if results == nil {
		results = []domain.RequirementResult{}
	}

	s.logger.Debug("evaluated requirements",
		"college_id", req.CollegeID,
		"candidates", len(candidates),
		"requirements", len(results),
	)

	return &Evaluation{College: college, Results: results}, nil
}

// resolveCandidates loads each referenced course, and section when one
// is pinned. A section pinned to a different course is a validation
// error.
func (s *PlannerService) resolveCandidates(ctx context.Context, refs []CandidateRef) ([]domain.Candidate, error) {
	candidates := make([]domain.Candidate, 0, len(refs))
	for _, ref := range refs {
		course, err := s.store.GetCourse(ctx, ref.CourseID)
		if err != nil {
			var storeErr *store.Error
			if domainerrors.As(err, &storeErr) && storeErr.Code == store.ErrNotFound.Code {
				return nil, domainerrors.NotFoundf("course %d not found", ref.CourseID).WithCause(err)
			}
			return nil, fmt.Errorf("failed to get course %d: %w", ref.CourseID, err)
		}

		candidate := domain.Candidate{Course: *course}

		if ref.SectionID != 0 {
			section, err := s.store.GetSection(ctx, ref.SectionID)
			if err != nil {
				var storeErr *store.Error
				if domainerrors.As(err, &storeErr) && storeErr.Code == store.ErrNotFound.Code {
					return nil, domainerrors.NotFoundf("section %d not found", ref.SectionID).WithCause(err)
				}
				return nil, fmt.Errorf("failed to get section %d: %w", ref.SectionID, err)
			}
			if section.CourseID != course.ID {
				return nil, domainerrors.Validationf("section %d does not belong to course %d", ref.SectionID, ref.CourseID)
			}
			candidate.Section = section
		}

		candidates = append(candidates, candidate)
	}
	return candidates, nil
}
