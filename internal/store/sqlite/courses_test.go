package sqlite

import (
	"context"
	"testing"

	"github.com/geasyapp/geasy-server/internal/domain"
	"github.com/geasyapp/geasy-server/internal/store"
)

func makeTestCourse(id int64, dept, number, title, geArea string, units int) *domain.Course {
	return &domain.Course{
		ID:     id,
		Dept:   dept,
		Number: number,
		Title:  title,
		GEArea: geArea,
		Units:  units,
	}
}

// seedCatalog loads a small catalog: three GE courses with sections,
// professors, and reviews, plus one course with no GE area.
func seedCatalog(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	courses := []*domain.Course{
		makeTestCourse(101, "EE BIOL", "100", "Introduction to Ecology", "Life Sciences", 4),
		makeTestCourse(102, "PHILOS", "7", "Introduction to Philosophy of Mind", "Philosophic and Linguistic Analysis", 5),
		makeTestCourse(103, "CLUSTER", "20", "Interracial Dynamics", "Social Analysis", 5),
		makeTestCourse(104, "COM SCI", "31", "Introduction to Computer Science I", "", 4),
	}
	courses[0].HasLab = true
	for _, c := range courses {
		if err := s.CreateCourse(ctx, c); err != nil {
			t.Fatalf("CreateCourse %d: %v", c.ID, err)
		}
	}

	profs := []*domain.Professor{
		{ID: 11, Name: "Alfaro, M.", Dept: "EE BIOL", Rating: 4.3},
		{ID: 12, Name: "Kaplan, D.", Dept: "PHILOS", Rating: 3.8},
	}
	for _, p := range profs {
		if err := s.UpsertProfessor(ctx, p); err != nil {
			t.Fatalf("UpsertProfessor %d: %v", p.ID, err)
		}
	}

	sections := []*domain.Section{
		{ID: 21, CourseID: 101, ProfID: 11, Term: "Fall", Year: 2024, SectionCode: "1"},
		{ID: 22, CourseID: 101, ProfID: 11, Term: "Winter", Year: 2025, SectionCode: "1"},
		{ID: 23, CourseID: 102, ProfID: 12, Term: "Fall", Year: 2024, SectionCode: "2"},
	}
	for _, sec := range sections {
		if err := s.CreateSection(ctx, sec); err != nil {
			t.Fatalf("CreateSection %d: %v", sec.ID, err)
		}
	}

	reviews := []*domain.Review{
		{SectionID: 21, Quality: 5, Workload: 3, WouldRecommend: true},
		{SectionID: 21, Quality: 4, Workload: 4, WouldRecommend: true},
		{SectionID: 23, Quality: 2, Workload: 8},
	}
	for i, r := range reviews {
		if err := s.CreateReview(ctx, r); err != nil {
			t.Fatalf("CreateReview %d: %v", i, err)
		}
	}
}

func TestCreateAndGetCourse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := makeTestCourse(200, "ENGL", "4W", "Critical Reading and Writing", "Literary and Cultural Analysis", 5)
	c.HasWritingII = true
	c.Description = "Close reading across genres."
	c.Prerequisites = "English Composition 3"

	if err := s.CreateCourse(ctx, c); err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}

	got, err := s.GetCourse(ctx, 200)
	if err != nil {
		t.Fatalf("GetCourse: %v", err)
	}
	if got.Dept != c.Dept || got.Number != c.Number {
		t.Errorf("code: got %q, want %q", got.Code(), c.Code())
	}
	if got.GEArea != c.GEArea {
		t.Errorf("GEArea: got %q, want %q", got.GEArea, c.GEArea)
	}
	if got.Units != 5 {
		t.Errorf("Units: got %d, want 5", got.Units)
	}
	if !got.HasWritingII {
		t.Error("HasWritingII: expected true")
	}
	if got.HasLab {
		t.Error("HasLab: expected false")
	}
	if got.Description != c.Description {
		t.Errorf("Description: got %q", got.Description)
	}
}

func TestUpsertCourse_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := makeTestCourse(201, "HIST", "1A", "Western Civilization", "Historical Analysis", 5)
	if err := s.UpsertCourse(ctx, c); err != nil {
		t.Fatalf("UpsertCourse: %v", err)
	}

	c.Title = "Introduction to Western Civilization"
	if err := s.UpsertCourse(ctx, c); err != nil {
		t.Fatalf("UpsertCourse again: %v", err)
	}

	got, err := s.GetCourse(ctx, 201)
	if err != nil {
		t.Fatalf("GetCourse: %v", err)
	}
	if got.Title != c.Title {
		t.Errorf("Title: got %q, want %q", got.Title, c.Title)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM courses WHERE course_id = 201").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d rows for course 201, want 1", count)
	}
}

func TestListCourses_ByGEArea(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	got, err := s.ListCourses(ctx, store.CourseFilters{GEArea: "Life Sciences"})
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d courses, want 1", len(got))
	}
	if got[0].ID != 101 {
		t.Errorf("got course %d, want 101", got[0].ID)
	}
	if got[0].Stats.ReviewCount != 2 {
		t.Errorf("review count: got %d, want 2", got[0].Stats.ReviewCount)
	}
	if got[0].Stats.AvgQuality != 4.5 {
		t.Errorf("avg quality: got %v, want 4.5", got[0].Stats.AvgQuality)
	}
	if got[0].Stats.AvgWorkload != 3.5 {
		t.Errorf("avg workload: got %v, want 3.5", got[0].Stats.AvgWorkload)
	}
}

func TestListCourses_EmptyResultIsNotError(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	got, err := s.ListCourses(ctx, store.CourseFilters{GEArea: "Physical Sciences"})
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d courses, want 0", len(got))
	}
}

func TestListCourses_NoFiltersSortedByCourse(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	got, err := s.ListCourses(ctx, store.CourseFilters{})
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d courses, want 4", len(got))
	}
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if prev.Dept > cur.Dept || (prev.Dept == cur.Dept && prev.Number > cur.Number) {
			t.Errorf("results out of order: %s before %s", prev.Code(), cur.Code())
		}
	}
}

func TestListCourses_ByFoundationArea(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	got, err := s.ListCourses(ctx, store.CourseFilters{FoundationArea: "Arts and Humanities"})
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d courses, want 1", len(got))
	}
	if got[0].GEArea != "Philosophic and Linguistic Analysis" {
		t.Errorf("got area %q", got[0].GEArea)
	}
}

func TestListCourses_ReviewFilters(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	// Only the ecology course has avg quality >= 4.
	got, err := s.ListCourses(ctx, store.CourseFilters{MinQuality: 4.0})
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if len(got) != 1 || got[0].ID != 101 {
		t.Fatalf("MinQuality filter: got %d courses", len(got))
	}

	// Max workload 5 excludes the philosophy course (workload 8).
	got, err = s.ListCourses(ctx, store.CourseFilters{MaxWorkload: 5, MinReviews: 1})
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if len(got) != 1 || got[0].ID != 101 {
		t.Fatalf("MaxWorkload filter: got %d courses", len(got))
	}
}

func TestListCourses_ByTerm(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	got, err := s.ListCourses(ctx, store.CourseFilters{Term: "Winter", Year: 2025})
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if len(got) != 1 || got[0].ID != 101 {
		t.Fatalf("term filter: got %d courses", len(got))
	}
}

func TestListCourses_SortByScore(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	got, err := s.ListCourses(ctx, store.CourseFilters{MinReviews: 1, Sort: store.SortByScore})
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d courses, want 2", len(got))
	}
	if got[0].ID != 101 {
		t.Errorf("best-scored course: got %d, want 101", got[0].ID)
	}
	if got[0].Stats.Score() <= got[1].Stats.Score() {
		t.Errorf("scores not descending: %v then %v", got[0].Stats.Score(), got[1].Stats.Score())
	}
}

func TestGetCourseStats_NoReviews(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	stats, err := s.GetCourseStats(ctx, 103)
	if err != nil {
		t.Fatalf("GetCourseStats: %v", err)
	}
	if stats.ReviewCount != 0 || stats.AvgQuality != 0 || stats.AvgWorkload != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
	if stats.Score() != 0 {
		t.Errorf("score without reviews: got %v, want 0", stats.Score())
	}
}
