package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/geasyapp/geasy-server/internal/domain"
	"github.com/geasyapp/geasy-server/internal/store"
)

func (s *Server) registerCourseRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCourses",
		Method:      http.MethodGet,
		Path:        "/api/v1/courses",
		Summary:     "List courses",
		Description: "Returns courses matching the filters, joined with review aggregates",
		Tags:        []string{"Courses"},
	}, s.handleListCourses)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCourse",
		Method:      http.MethodGet,
		Path:        "/api/v1/courses/{id}",
		Summary:     "Get course",
		Description: "Returns a course by ID with its review aggregates",
		Tags:        []string{"Courses"},
	}, s.handleGetCourse)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCourseSections",
		Method:      http.MethodGet,
		Path:        "/api/v1/courses/{id}/sections",
		Summary:     "List course sections",
		Description: "Returns the sections of a course, newest term first",
		Tags:        []string{"Courses"},
	}, s.handleListCourseSections)
}

// === DTOs ===

// ListCoursesInput contains the optional course query filters. Zero
// values impose no constraint.
type ListCoursesInput struct {
	GEArea         string  `query:"ge_area" doc:"Exact GE area label"`
	FoundationArea string  `query:"foundation" doc:"Foundation area, matched via the area mappings"`
	Subgroup       string  `query:"subgroup" doc:"Subgroup label, matched via the area mappings"`
	Dept           string  `query:"dept" doc:"Exact department code"`
	Term           string  `query:"term" doc:"Only courses with a section in this term"`
	Year           int     `query:"year" minimum:"0" doc:"Only courses with a section in this year"`
	MinQuality     float64 `query:"min_quality" minimum:"0" maximum:"5" doc:"Minimum average review quality"`
	MaxWorkload    float64 `query:"max_workload" minimum:"0" maximum:"10" doc:"Maximum average review workload"`
	MinReviews     int     `query:"min_reviews" minimum:"0" doc:"Minimum review count"`
	HasLab         bool    `query:"has_lab" doc:"Only courses with lab credit"`
	HasWritingII   bool    `query:"has_writing_ii" doc:"Only courses with Writing II credit"`
	Sort           string  `query:"sort" enum:"course,quality,workload,score" doc:"Result ordering (default course)"`
	Limit          int     `query:"limit" minimum:"0" maximum:"1000" doc:"Page size (default 100)"`
	Offset         int     `query:"offset" minimum:"0" doc:"Pagination offset"`
}

// CourseIDInput identifies a course by path parameter.
type CourseIDInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Course ID"`
}

// CoursesResponse contains a page of course summaries.
type CoursesResponse struct {
	Courses []*domain.CourseSummary `json:"courses" doc:"Matching courses with review aggregates"`
	Count   int                     `json:"count" doc:"Number of courses in this page"`
}

// CoursesOutput wraps the course list for Huma.
type CoursesOutput struct {
	Body CoursesResponse
}

// CourseOutput wraps a single course summary for Huma.
type CourseOutput struct {
	Body *domain.CourseSummary
}

// SectionsInput identifies a course and optional section filters.
type SectionsInput struct {
	ID   int64  `path:"id" minimum:"1" doc:"Course ID"`
	Term string `query:"term" doc:"Only sections in this term"`
	Year int    `query:"year" minimum:"0" doc:"Only sections in this year"`
}

// SectionsResponse contains a course's sections.
type SectionsResponse struct {
	CourseID int64             `json:"course_id" doc:"Course the sections belong to"`
	Sections []*domain.Section `json:"sections" doc:"Sections, newest term first"`
}

// SectionsOutput wraps the section list for Huma.
type SectionsOutput struct {
	Body SectionsResponse
}

// === Handlers ===

func (s *Server) handleListCourses(ctx context.Context, input *ListCoursesInput) (*CoursesOutput, error) {
	filters := store.CourseFilters{
		GEArea:         input.GEArea,
		FoundationArea: input.FoundationArea,
		Subgroup:       input.Subgroup,
		Dept:           input.Dept,
		Term:           input.Term,
		Year:           input.Year,
		MinQuality:     input.MinQuality,
		MaxWorkload:    input.MaxWorkload,
		MinReviews:     input.MinReviews,
		HasLab:         input.HasLab,
		HasWritingII:   input.HasWritingII,
		Sort:           store.CourseSort(input.Sort),
		Limit:          input.Limit,
		Offset:         input.Offset,
	}

	courses, err := s.services.Catalog.ListCourses(ctx, filters)
	if err != nil {
		s.logger.Error("failed to list courses", "error", err)
		return nil, err
	}
	if courses == nil {
		courses = []*domain.CourseSummary{}
	}
	return &CoursesOutput{Body: CoursesResponse{Courses: courses, Count: len(courses)}}, nil
}

func (s *Server) handleGetCourse(ctx context.Context, input *CourseIDInput) (*CourseOutput, error) {
	course, err := s.services.Catalog.GetCourse(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CourseOutput{Body: course}, nil
}

func (s *Server) handleListCourseSections(ctx context.Context, input *SectionsInput) (*SectionsOutput, error) {
	sections, err := s.services.Catalog.ListSections(ctx, input.ID, store.SectionFilters{
		Term: input.Term,
		Year: input.Year,
	})
	if err != nil {
		return nil, err
	}
	if sections == nil {
		sections = []*domain.Section{}
	}
	return &SectionsOutput{Body: SectionsResponse{CourseID: input.ID, Sections: sections}}, nil
}
