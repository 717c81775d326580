package sqlite

import (
	"context"
	"database/sql"

	"github.com/geasyapp/geasy-server/internal/domain"
	"github.com/geasyapp/geasy-server/internal/store"
)

// collegeColumns is the ordered list of columns selected in college queries.
// Must match the scan order in scanCollege.
const collegeColumns = `college_id, name, short_name, total_ge_courses, total_ge_units`

// scanCollege scans a sql.Row (or sql.Rows via its Scan method) into a domain.College.
func scanCollege(scanner interface{ Scan(dest ...any) error }) (*domain.College, error) {
	var c domain.College
	err := scanner.Scan(
		&c.ID,
		&c.Name,
		&c.ShortName,
		&c.TotalGECourses,
		&c.TotalGEUnits,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCollege retrieves a college by id.
// Returns store.ErrNotFound if the college does not exist.
func (s *Store) GetCollege(ctx context.Context, id int64) (*domain.College, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+collegeColumns+` FROM colleges WHERE college_id = ?`, id)

	c, err := scanCollege(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListColleges returns all colleges ordered by id.
func (s *Store) ListColleges(ctx context.Context) ([]*domain.College, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+collegeColumns+` FROM colleges ORDER BY college_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var colleges []*domain.College
	for rows.Next() {
		c, err := scanCollege(rows)
		if err != nil {
			return nil, err
		}
		colleges = append(colleges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return colleges, nil
}
