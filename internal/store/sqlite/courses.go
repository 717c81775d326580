package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/geasyapp/geasy-server/internal/domain"
	"github.com/geasyapp/geasy-server/internal/store"
)

// courseColumns is the ordered list of columns selected in course queries.
// Must match the scan order in scanCourse.
const courseColumns = `course_id, dept, number, title, ge_area, units,
	has_lab, has_writing_ii, description, prerequisites`

func scanCourse(scanner interface{ Scan(dest ...any) error }) (*domain.Course, error) {
	var c domain.Course

	var (
		geArea        sql.NullString
		hasLab        int
		hasWritingII  int
		description   sql.NullString
		prerequisites sql.NullString
	)

	err := scanner.Scan(
		&c.ID,
		&c.Dept,
		&c.Number,
		&c.Title,
		&geArea,
		&c.Units,
		&hasLab,
		&hasWritingII,
		&description,
		&prerequisites,
	)
	if err != nil {
		return nil, err
	}

	if geArea.Valid {
		c.GEArea = geArea.String
	}
	if description.Valid {
		c.Description = description.String
	}
	if prerequisites.Valid {
		c.Prerequisites = prerequisites.String
	}
	c.HasLab = hasLab != 0
	c.HasWritingII = hasWritingII != 0

	return &c, nil
}

// CreateCourse inserts a new course.
// Returns store.ErrAlreadyExists if the course id is taken and
// store.ErrConstraint on a check failure.
func (s *Store) CreateCourse(ctx context.Context, c *domain.Course) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO courses (
			course_id, dept, number, title, ge_area, units,
			has_lab, has_writing_ii, description, prerequisites
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.Dept,
		c.Number,
		c.Title,
		nullString(c.GEArea),
		c.Units,
		boolToInt(c.HasLab),
		boolToInt(c.HasWritingII),
		nullString(c.Description),
		nullString(c.Prerequisites),
	)
	return mapConstraintErr(err)
}

// UpsertCourse inserts a course, replacing any existing row with the same
// id. Used by ingest so re-running a load is idempotent.
func (s *Store) UpsertCourse(ctx context.Context, c *domain.Course) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO courses (
			course_id, dept, number, title, ge_area, units,
			has_lab, has_writing_ii, description, prerequisites
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.Dept,
		c.Number,
		c.Title,
		nullString(c.GEArea),
		c.Units,
		boolToInt(c.HasLab),
		boolToInt(c.HasWritingII),
		nullString(c.Description),
		nullString(c.Prerequisites),
	)
	return mapConstraintErr(err)
}

// GetCourse retrieves a course by id.
// Returns store.ErrNotFound if the course does not exist.
func (s *Store) GetCourse(ctx context.Context, id int64) (*domain.Course, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE course_id = ?`, id)

	c, err := scanCourse(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListAllCourses returns every course ordered by dept then number.
// Used for search index rebuilds.
func (s *Store) ListAllCourses(ctx context.Context) ([]*domain.Course, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+courseColumns+` FROM courses ORDER BY dept ASC, number ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*domain.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

// ListCourses runs the parameterized course query: courses joined with
// their sections and reviews, aggregated per course, filtered by the
// optional predicates in filters. Every filter with a zero value imposes
// no constraint. An empty result is a success.
func (s *Store) ListCourses(ctx context.Context, filters store.CourseFilters) ([]*domain.CourseSummary, error) {
	filters.Normalize()

	var (
		conds []string
		args  []any
	)

	join := `
		LEFT JOIN sections sec ON sec.course_id = c.course_id
		LEFT JOIN reviews r ON r.section_id = sec.section_id`

	if filters.FoundationArea != "" || filters.Subgroup != "" {
		join += `
		JOIN ge_area_mappings m ON m.ge_area = c.ge_area COLLATE NOCASE`
	}

	if filters.GEArea != "" {
		conds = append(conds, "c.ge_area = ?")
		args = append(args, filters.GEArea)
	}
	if filters.FoundationArea != "" {
		conds = append(conds, "m.foundation_area = ? COLLATE NOCASE")
		args = append(args, filters.FoundationArea)
	}
	if filters.Subgroup != "" {
		conds = append(conds, "m.subgroup = ? COLLATE NOCASE")
		args = append(args, filters.Subgroup)
	}
	if filters.Dept != "" {
		conds = append(conds, "c.dept = ?")
		args = append(args, filters.Dept)
	}
	if filters.Term != "" {
		conds = append(conds, "sec.term = ?")
		args = append(args, filters.Term)
	}
	if filters.Year != 0 {
		conds = append(conds, "sec.year = ?")
		args = append(args, filters.Year)
	}
	if filters.HasLab {
		conds = append(conds, "c.has_lab = 1")
	}
	if filters.HasWritingII {
		conds = append(conds, "c.has_writing_ii = 1")
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var having []string
	if filters.MinReviews > 0 {
		having = append(having, "review_count >= ?")
		args = append(args, filters.MinReviews)
	}
	if filters.MinQuality > 0 {
		having = append(having, "review_count > 0 AND avg_quality >= ?")
		args = append(args, filters.MinQuality)
	}
	if filters.MaxWorkload > 0 {
		having = append(having, "review_count > 0 AND avg_workload <= ?")
		args = append(args, filters.MaxWorkload)
	}
	havingClause := ""
	if len(having) > 0 {
		havingClause = "HAVING " + strings.Join(having, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT `+prefixedCourseColumns("c")+`,
			COUNT(r.review_id) AS review_count,
			COALESCE(AVG(CAST(r.quality AS FLOAT)), 0) AS avg_quality,
			COALESCE(AVG(CAST(r.workload AS FLOAT)), 0) AS avg_workload
		FROM courses c%s
		%s
		GROUP BY c.course_id
		%s
		ORDER BY %s
		LIMIT ? OFFSET ?`,
		join, where, havingClause, orderClause(filters.Sort))
	args = append(args, filters.Limit, filters.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	var summaries []*domain.CourseSummary
	for rows.Next() {
		cs, err := scanCourseSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetCourseStats returns review aggregates for one course across all its
// sections. A course with no reviews yields zero-valued stats.
func (s *Store) GetCourseStats(ctx context.Context, courseID int64) (domain.ReviewStats, error) {
	var stats domain.ReviewStats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(r.review_id),
			COALESCE(AVG(CAST(r.quality AS FLOAT)), 0),
			COALESCE(AVG(CAST(r.workload AS FLOAT)), 0)
		FROM sections sec
		JOIN reviews r ON r.section_id = sec.section_id
		WHERE sec.course_id = ?`, courseID).
		Scan(&stats.ReviewCount, &stats.AvgQuality, &stats.AvgWorkload)
	if err != nil {
		return domain.ReviewStats{}, err
	}
	return stats, nil
}

// scanCourseSummary scans a joined course row with its review aggregates.
func scanCourseSummary(scanner interface{ Scan(dest ...any) error }) (*domain.CourseSummary, error) {
	var cs domain.CourseSummary

	var (
		geArea        sql.NullString
		hasLab        int
		hasWritingII  int
		description   sql.NullString
		prerequisites sql.NullString
	)

	err := scanner.Scan(
		&cs.ID,
		&cs.Dept,
		&cs.Number,
		&cs.Title,
		&geArea,
		&cs.Units,
		&hasLab,
		&hasWritingII,
		&description,
		&prerequisites,
		&cs.Stats.ReviewCount,
		&cs.Stats.AvgQuality,
		&cs.Stats.AvgWorkload,
	)
	if err != nil {
		return nil, err
	}

	if geArea.Valid {
		cs.GEArea = geArea.String
	}
	if description.Valid {
		cs.Description = description.String
	}
	if prerequisites.Valid {
		cs.Prerequisites = prerequisites.String
	}
	cs.HasLab = hasLab != 0
	cs.HasWritingII = hasWritingII != 0

	return &cs, nil
}

// prefixedCourseColumns qualifies courseColumns with a table alias for
// use in joined queries.
func prefixedCourseColumns(alias string) string {
	cols := strings.Split(courseColumns, ",")
	for i, col := range cols {
		cols[i] = alias + "." + strings.TrimSpace(col)
	}
	return strings.Join(cols, ", ")
}

// orderClause maps a CourseSort to its SQL ordering. Every ordering ends
// with dept/number so results are deterministic.
func orderClause(sort store.CourseSort) string {
	switch sort {
	case store.SortByQuality:
		return "avg_quality DESC, c.dept ASC, c.number ASC"
	case store.SortByWorkload:
		return "avg_workload ASC, c.dept ASC, c.number ASC"
	case store.SortByScore:
		return `CASE WHEN COUNT(r.review_id) = 0 THEN 0
			ELSE AVG(CAST(r.quality AS FLOAT)) * 0.7 + (11 - AVG(CAST(r.workload AS FLOAT))) * 0.3
			END DESC, avg_quality DESC, c.dept ASC, c.number ASC`
	default:
		return "c.dept ASC, c.number ASC"
	}
}
