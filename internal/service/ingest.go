package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/geasyapp/geasy-server/internal/domain"
	"github.com/geasyapp/geasy-server/internal/store/sqlite"
)

// IngestService loads catalog data from CSV files produced by the
// scraper pipeline. Files are named after their target table
// (courses.csv, professors.csv, sections.csv, reviews.csv) with a header
// row naming the columns. Rows are upserted, so re-running an ingest
// over the same files is idempotent.
type IngestService struct {
	store  *sqlite.Store
	logger *slog.Logger
}

// NewIngestService creates a new ingest service.
func NewIngestService(store *sqlite.Store, logger *slog.Logger) *IngestService {
	return &IngestService{
		store:  store,
		logger: logger,
	}
}

// IngestSummary reports what an ingest run loaded. Skipped counts rows
// rejected by schema constraints; previously loaded rows stand.
type IngestSummary struct {
	Courses    int `json:"courses"`
	Professors int `json:"professors"`
	Sections   int `json:"sections"`
	Reviews    int `json:"reviews"`
	Skipped    int `json:"skipped"`
}

// Run ingests all four CSV files from dir. Files are loaded in foreign
// key dependency order; a missing file is skipped with a warning so
// partial data drops still load.
func (s *IngestService) Run(ctx context.Context, dir string) (*IngestSummary, error) {
	summary := &IngestSummary{}

	loaders := []struct {
		name string
		load func(ctx context.Context, rec *csvRecord) error
		n    *int
	}{
		{"courses", s.loadCourse, &summary.Courses},
		{"professors", s.loadProfessor, &summary.Professors},
		{"sections", s.loadSection, &summary.Sections},
		{"reviews", s.loadReview, &summary.Reviews},
	}

	for _, loader := range loaders {
		path := filepath.Join(dir, loader.name+".csv")
		loaded, skipped, err := s.loadFile(ctx, path, loader.load)
		if err != nil {
			if os.IsNotExist(err) {
				s.logger.Warn("csv file missing, skipping", "path", path)
				continue
			}
			return nil, fmt.Errorf("load %s: %w", loader.name, err)
		}
		*loader.n = loaded
		summary.Skipped += skipped
		s.logger.Info("loaded csv", "table", loader.name, "rows", loaded, "skipped", skipped)
	}

	return summary, nil
}

// loadFile streams one CSV file through a row loader. Constraint
// rejections are logged and counted, not fatal; malformed CSV is fatal.
func (s *IngestService) loadFile(ctx context.Context, path string, load func(ctx context.Context, rec *csvRecord) error) (loaded, skipped int, err error) {
	f, err := os.Open(path) //#nosec G304 -- Ingest path comes from operator config
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}

	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return loaded, skipped, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		rec := &csvRecord{cols: cols, row: row}
		if err := load(ctx, rec); err != nil {
			s.logger.Warn("row rejected", "path", path, "line", line, "error", err)
			skipped++
			continue
		}
		loaded++
	}

	return loaded, skipped, nil
}

func (s *IngestService) loadCourse(ctx context.Context, rec *csvRecord) error {
	return s.store.UpsertCourse(ctx, &domain.Course{
		ID:            rec.int64("course_id"),
		Dept:          rec.str("dept"),
		Number:        rec.str("number"),
		Title:         rec.str("title"),
		GEArea:        rec.str("ge_area"),
		Units:         rec.int("units"),
		HasLab:        rec.boolean("has_lab"),
		HasWritingII:  rec.boolean("has_writing_ii"),
		Description:   rec.str("description"),
		Prerequisites: rec.str("prerequisites"),
	})
}

func (s *IngestService) loadProfessor(ctx context.Context, rec *csvRecord) error {
	return s.store.UpsertProfessor(ctx, &domain.Professor{
		ID:     rec.int64("prof_id"),
		Name:   rec.str("name"),
		Dept:   rec.str("dept"),
		Rating: rec.float("rating"),
	})
}

func (s *IngestService) loadSection(ctx context.Context, rec *csvRecord) error {
	return s.store.UpsertSection(ctx, &domain.Section{
		ID:            rec.int64("section_id"),
		CourseID:      rec.int64("course_id"),
		ProfID:        rec.int64("prof_id"),
		Term:          rec.str("term"),
		Year:          rec.int("year"),
		SectionCode:   rec.str("section_code"),
		EnrollmentCap: rec.int("enrollment_cap"),
		Enrolled:      rec.int("enrolled"),
	})
}

func (s *IngestService) loadReview(ctx context.Context, rec *csvRecord) error {
	return s.store.CreateReview(ctx, &domain.Review{
		ID:             rec.int64("review_id"),
		SectionID:      rec.int64("section_id"),
		Quality:        rec.int("quality"),
		Workload:       rec.int("workload"),
		Text:           rec.str("review_text"),
		WouldRecommend: rec.boolean("would_recommend"),
		GradeReceived:  rec.str("grade_received"),
	})
}

// csvRecord is one CSV row with header-based column access. Missing
// columns and unparseable values resolve to zero values; the schema's
// constraints decide whether the row survives.
type csvRecord struct {
	cols map[string]int
	row  []string
}

func (r *csvRecord) str(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.row) {
		return ""
	}
	return strings.TrimSpace(r.row[i])
}

func (r *csvRecord) int(name string) int {
	n, _ := strconv.Atoi(r.str(name))
	return n
}

func (r *csvRecord) int64(name string) int64 {
	n, _ := strconv.ParseInt(r.str(name), 10, 64)
	return n
}

func (r *csvRecord) float(name string) float64 {
	f, _ := strconv.ParseFloat(r.str(name), 64)
	return f
}

func (r *csvRecord) boolean(name string) bool {
	switch strings.ToLower(r.str(name)) {
	case "true", "1", "yes", "t":
		return true
	}
	return false
}
