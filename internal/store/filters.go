package store

// CourseSort selects the ordering of course query results.
type CourseSort string

const (
	// SortByCourse orders by department then number, the default.
	SortByCourse CourseSort = "course"
	// SortByQuality orders by average review quality, best first.
	SortByQuality CourseSort = "quality"
	// SortByWorkload orders by average review workload, lightest first.
	SortByWorkload CourseSort = "workload"
	// SortByScore orders by the combined quality/workload score, best first.
	SortByScore CourseSort = "score"
)

// Valid reports whether the sort value is one of the defined orderings.
func (s CourseSort) Valid() bool {
	switch s {
	case SortByCourse, SortByQuality, SortByWorkload, SortByScore:
		return true
	}
	return false
}

// CourseFilters holds the optional predicates of a course query. Zero
// values impose no constraint on their column.
type CourseFilters struct {
	GEArea         string  // exact ge_area match
	FoundationArea string  // match via ge_area_mappings
	Subgroup       string  // match via ge_area_mappings
	Dept           string  // exact department match
	Term           string  // sections offered in this term
	Year           int     // sections offered in this year
	MinQuality     float64 // minimum average review quality
	MaxWorkload    float64 // maximum average review workload
	MinReviews     int     // minimum review count
	HasLab         bool    // only courses with lab credit
	HasWritingII   bool    // only courses with Writing II credit

	Sort   CourseSort // defaults to SortByCourse
	Limit  int        // defaults to 100, capped at 1000
	Offset int
}

// Normalize applies defaults and bounds to pagination and sorting.
func (f *CourseFilters) Normalize() {
	if !f.Sort.Valid() {
		f.Sort = SortByCourse
	}
	if f.Limit <= 0 {
		f.Limit = 100
	}
	if f.Limit > 1000 {
		f.Limit = 1000
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// SectionFilters holds optional predicates for section queries.
type SectionFilters struct {
	Term string
	Year int
}

// ProfessorFilters holds optional predicates for professor queries.
type ProfessorFilters struct {
	Dept      string
	MinRating float64
}
