package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/geasyapp/geasy-server/internal/domain"
	"github.com/geasyapp/geasy-server/internal/store"
)

func TestCreateReview(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	r := &domain.Review{
		SectionID:      22,
		Quality:        4,
		Workload:       6,
		Text:           "Lectures were dense but fair.",
		WouldRecommend: true,
		GradeReceived:  "A-",
	}
	if err := s.CreateReview(ctx, r); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if r.ID == 0 {
		t.Fatal("expected generated review id")
	}

	got, err := s.GetReview(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetReview: %v", err)
	}
	if got.Quality != 4 || got.Workload != 6 {
		t.Errorf("got quality %d workload %d", got.Quality, got.Workload)
	}
	if got.Text != r.Text {
		t.Errorf("Text: got %q", got.Text)
	}
	if !got.WouldRecommend {
		t.Error("WouldRecommend: expected true")
	}
	if got.GradeReceived != "A-" {
		t.Errorf("GradeReceived: got %q", got.GradeReceived)
	}
}

func TestCreateReview_QualityOutOfRange(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	for _, quality := range []int{0, 6} {
		err := s.CreateReview(ctx, &domain.Review{SectionID: 21, Quality: quality, Workload: 5})
		if err == nil {
			t.Fatalf("quality %d: expected constraint error, got nil", quality)
		}
		var storeErr *store.Error
		if !errors.As(err, &storeErr) || storeErr.Message != store.ErrConstraint.Message {
			t.Errorf("quality %d: expected ErrConstraint, got %v", quality, err)
		}
	}
}

func TestCreateReview_WorkloadOutOfRange(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	for _, workload := range []int{0, 11} {
		err := s.CreateReview(ctx, &domain.Review{SectionID: 21, Quality: 3, Workload: workload})
		if err == nil {
			t.Fatalf("workload %d: expected constraint error, got nil", workload)
		}
		var storeErr *store.Error
		if !errors.As(err, &storeErr) {
			t.Errorf("workload %d: expected *store.Error, got %T", workload, err)
		}
	}
}

func TestCreateReview_DanglingSection(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	err := s.CreateReview(ctx, &domain.Review{SectionID: 999, Quality: 3, Workload: 5})
	if err == nil {
		t.Fatal("expected foreign key error, got nil")
	}
	var storeErr *store.Error
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected *store.Error, got %T: %v", err, err)
	}
	if storeErr.Code != store.ErrConstraint.Code {
		t.Errorf("expected status %d, got %d", store.ErrConstraint.Code, storeErr.Code)
	}
}

func TestCreateSection_DanglingForeignKeys(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	// Unknown course.
	err := s.CreateSection(ctx, &domain.Section{
		ID: 900, CourseID: 999, ProfID: 11, Term: "Fall", Year: 2025, SectionCode: "1",
	})
	var storeErr *store.Error
	if err == nil || !errors.As(err, &storeErr) {
		t.Fatalf("unknown course: expected constraint error, got %v", err)
	}
	if storeErr.Code != store.ErrConstraint.Code {
		t.Errorf("unknown course: expected status %d, got %d", store.ErrConstraint.Code, storeErr.Code)
	}

	// Unknown professor.
	err = s.CreateSection(ctx, &domain.Section{
		ID: 901, CourseID: 101, ProfID: 999, Term: "Fall", Year: 2025, SectionCode: "1",
	})
	if err == nil {
		t.Fatal("unknown professor: expected constraint error, got nil")
	}
}

func TestListReviewsBySection(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	reviews, err := s.ListReviewsBySection(ctx, 21)
	if err != nil {
		t.Fatalf("ListReviewsBySection: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("got %d reviews, want 2", len(reviews))
	}
	for i := 1; i < len(reviews); i++ {
		if reviews[i].ID <= reviews[i-1].ID {
			t.Error("reviews not ordered by id")
		}
	}
}

func TestCountRows(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	courses, profs, reviews, err := s.CountRows(ctx)
	if err != nil {
		t.Fatalf("CountRows: %v", err)
	}
	if courses != 4 || profs != 2 || reviews != 3 {
		t.Errorf("got %d/%d/%d, want 4/2/3", courses, profs, reviews)
	}
}
