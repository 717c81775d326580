package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/geasyapp/geasy-server/internal/domain"
	"github.com/geasyapp/geasy-server/internal/store"
)

// sectionColumns must match the scan order in scanSection.
const sectionColumns = `section_id, course_id, prof_id, term, year, section_code, enrollment_cap, enrolled`

func scanSection(scanner interface{ Scan(dest ...any) error }) (*domain.Section, error) {
	var sec domain.Section
	err := scanner.Scan(
		&sec.ID,
		&sec.CourseID,
		&sec.ProfID,
		&sec.Term,
		&sec.Year,
		&sec.SectionCode,
		&sec.EnrollmentCap,
		&sec.Enrolled,
	)
	if err != nil {
		return nil, err
	}
	return &sec, nil
}

// CreateSection inserts a new section. A dangling course_id or prof_id
// surfaces as store.ErrConstraint.
func (s *Store) CreateSection(ctx context.Context, sec *domain.Section) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sections (
			section_id, course_id, prof_id, term, year, section_code, enrollment_cap, enrolled
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sec.ID,
		sec.CourseID,
		sec.ProfID,
		sec.Term,
		sec.Year,
		sec.SectionCode,
		sec.EnrollmentCap,
		sec.Enrolled,
	)
	return mapConstraintErr(err)
}

// UpsertSection inserts a section, replacing any existing row with the
// same id. Foreign keys are still enforced.
func (s *Store) UpsertSection(ctx context.Context, sec *domain.Section) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO sections (
			section_id, course_id, prof_id, term, year, section_code, enrollment_cap, enrolled
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sec.ID,
		sec.CourseID,
		sec.ProfID,
		sec.Term,
		sec.Year,
		sec.SectionCode,
		sec.EnrollmentCap,
		sec.Enrolled,
	)
	return mapConstraintErr(err)
}

// GetSection retrieves a section by id.
// Returns store.ErrNotFound if the section does not exist.
func (s *Store) GetSection(ctx context.Context, id int64) (*domain.Section, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sectionColumns+` FROM sections WHERE section_id = ?`, id)

	sec, err := scanSection(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sec, nil
}

// ListSectionsByCourse returns the sections of a course matching the
// optional term/year filters, newest term first then by section code.
func (s *Store) ListSectionsByCourse(ctx context.Context, courseID int64, filters store.SectionFilters) ([]*domain.Section, error) {
	conds := []string{"course_id = ?"}
	args := []any{courseID}

	if filters.Term != "" {
		conds = append(conds, "term = ?")
		args = append(args, filters.Term)
	}
	if filters.Year != 0 {
		conds = append(conds, "year = ?")
		args = append(args, filters.Year)
	}

	query := `SELECT ` + sectionColumns + ` FROM sections
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY year DESC, term ASC, section_code ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*domain.Section
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sections, nil
}
