// Package domain contains the core business entities for the GEasy GE catalog.
package domain

import "fmt"

// College is a UCLA school or college with its own GE policy.
// Colleges are seeded reference data and do not change at runtime.
type College struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ShortName      string `json:"short_name"`
	TotalGECourses int    `json:"total_ge_courses"`
	TotalGEUnits   int    `json:"total_ge_units"`
}

// GERequirement is one GE area requirement row for a college.
// SpecialNotes carries extra constraints beyond count and units; the
// ge package derives structured rules from it.
type GERequirement struct {
	ID              int64  `json:"id"`
	CollegeID       int64  `json:"college_id"`
	GEArea          string `json:"ge_area"`
	CoursesRequired int    `json:"courses_required"`
	UnitsRequired   int    `json:"units_required"`
	SpecialNotes    string `json:"special_notes,omitempty"`
}

// AreaMapping maps a GE area label to its foundation area and subgroup.
type AreaMapping struct {
	ID             int64  `json:"id"`
	GEArea         string `json:"ge_area"`
	FoundationArea string `json:"foundation_area"`
	Subgroup       string `json:"subgroup"`
}

// Foundation area labels used in ge_area_mappings.
const (
	FoundationArtsHumanities    = "Arts and Humanities"
	FoundationSocietyCulture    = "Society and Culture"
	FoundationScientificInquiry = "Scientific Inquiry"
)

// Course is a catalog course. GEArea is empty when the course satisfies
// no GE area; such courses never match a requirement.
type Course struct {
	ID            int64  `json:"id"`
	Dept          string `json:"dept"`
	Number        string `json:"number"`
	Title         string `json:"title"`
	GEArea        string `json:"ge_area,omitempty"`
	Units         int    `json:"units"`
	HasLab        bool   `json:"has_lab"`
	HasWritingII  bool   `json:"has_writing_ii"`
	Description   string `json:"description,omitempty"`
	Prerequisites string `json:"prerequisites,omitempty"`
}

// Code returns the display code for a course, e.g. "COM SCI 31".
func (c *Course) Code() string {
	return fmt.Sprintf("%s %s", c.Dept, c.Number)
}

// Professor is an instructor with an aggregate rating from an external source.
type Professor struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Dept   string  `json:"dept"`
	Rating float64 `json:"rating"`
}

// Section is one offering of a course in a term, taught by one professor.
type Section struct {
	ID            int64  `json:"id"`
	CourseID      int64  `json:"course_id"`
	ProfID        int64  `json:"prof_id"`
	Term          string `json:"term"`
	Year          int    `json:"year"`
	SectionCode   string `json:"section_code"`
	EnrollmentCap int    `json:"enrollment_cap"`
	Enrolled      int    `json:"enrolled"`
}

// Review is a student review of a section. Quality is bounded 1-5 and
// Workload 1-10 by schema check constraints.
type Review struct {
	ID             int64  `json:"id"`
	SectionID      int64  `json:"section_id"`
	Quality        int    `json:"quality"`
	Workload       int    `json:"workload"`
	Text           string `json:"text,omitempty"`
	WouldRecommend bool   `json:"would_recommend"`
	GradeReceived  string `json:"grade_received,omitempty"`
}

// ReviewStats holds review aggregates for a course across all its sections.
type ReviewStats struct {
	ReviewCount int     `json:"review_count"`
	AvgQuality  float64 `json:"avg_quality"`
	AvgWorkload float64 `json:"avg_workload"`
}

// Score combines quality and workload into a single ranking value,
// favoring high quality and low workload (same weighting the BruinWalk
// data was originally ranked with).
func (s ReviewStats) Score() float64 {
	if s.ReviewCount == 0 {
		return 0
	}
	return s.AvgQuality*0.7 + (11-s.AvgWorkload)*0.3
}

// CourseSummary is a course joined with its review aggregates, as
// returned by the query surface.
type CourseSummary struct {
	Course
	Stats ReviewStats `json:"stats"`
}
