package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/geasyapp/geasy-server/internal/domain"
	domainerrors "github.com/geasyapp/geasy-server/internal/errors"
	"github.com/geasyapp/geasy-server/internal/store"
	"github.com/geasyapp/geasy-server/internal/store/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// seedCourses loads a small catalog for the query tests.
func seedCourses(t *testing.T, s *sqlite.Store) {
	t.Helper()
	ctx := context.Background()

	courses := []*domain.Course{
		{ID: 101, Dept: "EE BIOL", Number: "100", Title: "Introduction to Ecology", GEArea: "Life Sciences", Units: 4, HasLab: true},
		{ID: 102, Dept: "PHILOS", Number: "7", Title: "Introduction to Philosophy of Mind", GEArea: "Philosophic and Linguistic Analysis", Units: 5},
		{ID: 105, Dept: "ART HIS", Number: "27", Title: "Art and Architecture of the Americas", GEArea: "Visual and Performance Arts Analysis and Practice", Units: 5},
	}
	for _, c := range courses {
		require.NoError(t, s.CreateCourse(ctx, c))
	}

	require.NoError(t, s.UpsertProfessor(ctx, &domain.Professor{ID: 11, Name: "Alfaro, M.", Dept: "EE BIOL", Rating: 4.3}))
	require.NoError(t, s.CreateSection(ctx, &domain.Section{ID: 21, CourseID: 101, ProfID: 11, Term: "Fall", Year: 2024, SectionCode: "1"}))
	require.NoError(t, s.CreateReview(ctx, &domain.Review{SectionID: 21, Quality: 5, Workload: 3}))
}

func TestCatalogService_ListColleges(t *testing.T) {
	svc := NewCatalogService(newTestStore(t), testLogger())

	colleges, err := svc.ListColleges(context.Background())
	require.NoError(t, err)
	assert.Len(t, colleges, 5)
}

func TestCatalogService_ListRequirements(t *testing.T) {
	svc := NewCatalogService(newTestStore(t), testLogger())

	reqs, err := svc.ListRequirements(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, reqs, 4)
	assert.Equal(t, int64(16), reqs[0].ID)
	assert.Equal(t, "Literary and Cultural Analysis", reqs[0].GEArea)
}

func TestCatalogService_ListRequirements_UnknownCollege(t *testing.T) {
	svc := NewCatalogService(newTestStore(t), testLogger())

	_, err := svc.ListRequirements(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCollege))

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 404, domainErr.HTTPStatus())
}

func TestCatalogService_ListCourses(t *testing.T) {
	s := newTestStore(t)
	seedCourses(t, s)
	svc := NewCatalogService(s, testLogger())

	got, err := svc.ListCourses(context.Background(), store.CourseFilters{GEArea: "Life Sciences"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(101), got[0].ID)
	assert.Equal(t, 1, got[0].Stats.ReviewCount)
}

func TestCatalogService_ListCourses_EmptyIsNotError(t *testing.T) {
	s := newTestStore(t)
	seedCourses(t, s)
	svc := NewCatalogService(s, testLogger())

	got, err := svc.ListCourses(context.Background(), store.CourseFilters{Dept: "MATH"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCatalogService_GetCourse(t *testing.T) {
	s := newTestStore(t)
	seedCourses(t, s)
	svc := NewCatalogService(s, testLogger())

	got, err := svc.GetCourse(context.Background(), 101)
	require.NoError(t, err)
	assert.Equal(t, "EE BIOL 100", got.Code())
	assert.Equal(t, 1, got.Stats.ReviewCount)
	assert.Equal(t, 5.0, got.Stats.AvgQuality)
}

func TestCatalogService_GetCourse_NotFound(t *testing.T) {
	svc := NewCatalogService(newTestStore(t), testLogger())

	_, err := svc.GetCourse(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestCatalogService_CreateReview(t *testing.T) {
	s := newTestStore(t)
	seedCourses(t, s)
	svc := NewCatalogService(s, testLogger())

	review, err := svc.CreateReview(context.Background(), CreateReviewRequest{
		SectionID:      21,
		Quality:        4,
		Workload:       6,
		Text:           "Fair exams.",
		WouldRecommend: true,
		GradeReceived:  "B+",
	})
	require.NoError(t, err)
	assert.NotZero(t, review.ID)

	reviews, err := svc.ListReviews(context.Background(), 21)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestCatalogService_CreateReview_ValidationError(t *testing.T) {
	s := newTestStore(t)
	seedCourses(t, s)
	svc := NewCatalogService(s, testLogger())

	_, err := svc.CreateReview(context.Background(), CreateReviewRequest{
		SectionID: 21,
		Quality:   9,
		Workload:  5,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
}

func TestCatalogService_CreateReview_DanglingSection(t *testing.T) {
	svc := NewCatalogService(newTestStore(t), testLogger())

	_, err := svc.CreateReview(context.Background(), CreateReviewRequest{
		SectionID: 999,
		Quality:   4,
		Workload:  5,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrConstraint))
}

func TestCatalogService_GetDataStatus(t *testing.T) {
	s := newTestStore(t)
	seedCourses(t, s)
	svc := NewCatalogService(s, testLogger())

	status, err := svc.GetDataStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, status.Courses)
	assert.Equal(t, 1, status.Professors)
	assert.Equal(t, 1, status.Reviews)
}
