package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/geasyapp/geasy-server/internal/domain"
	"github.com/geasyapp/geasy-server/internal/ge"
	"github.com/geasyapp/geasy-server/internal/search"
	"github.com/geasyapp/geasy-server/internal/store/sqlite"
)

// SearchService bridges the course search index with the store, handling
// document creation, reindexing, and query execution.
type SearchService struct {
	index  *search.Index
	store  *sqlite.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.Index, store *sqlite.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  store,
		logger: logger,
	}
}

// Search executes a course search.
func (s *SearchService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	return s.index.Search(ctx, params)
}

// IndexCourse indexes a single course. Call this when a course is
// created or updated outside a full reindex.
func (s *SearchService) IndexCourse(ctx context.Context, course *domain.Course) error {
	mappings, err := s.loadMappings(ctx)
	if err != nil {
		return err
	}

	doc := search.CourseToDocument(course, mappings.Foundation(course.GEArea))
	if err := s.index.IndexDocument(doc); err != nil {
		return fmt.Errorf("index document: %w", err)
	}

	s.logger.Debug("indexed course", "id", course.ID, "code", course.Code())
	return nil
}

// DocumentCount returns the number of indexed courses.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// ReindexAll rebuilds the entire search index from the store. Run after
// an ingest, and at startup when the index is empty.
func (s *SearchService) ReindexAll(ctx context.Context) error {
	s.logger.Info("starting full reindex")

	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	courses, err := s.store.ListAllCourses(ctx)
	if err != nil {
		return fmt.Errorf("list courses: %w", err)
	}

	mappings, err := s.loadMappings(ctx)
	if err != nil {
		return err
	}

	docs := make([]*search.CourseDocument, 0, len(courses))
	for _, course := range courses {
		docs = append(docs, search.CourseToDocument(course, mappings.Foundation(course.GEArea)))
	}

	if len(docs) > 0 {
		if err := s.index.IndexDocuments(docs); err != nil {
			return fmt.Errorf("index courses: %w", err)
		}
	}

	s.logger.Info("full reindex complete", "courses", len(docs))
	return nil
}

func (s *SearchService) loadMappings(ctx context.Context) (*ge.Mappings, error) {
	rows, err := s.store.ListAreaMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list area mappings: %w", err)
	}
	return ge.NewMappings(rows), nil
}
