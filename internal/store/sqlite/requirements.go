package sqlite

import (
	"context"
	"database/sql"

	"github.com/geasyapp/geasy-server/internal/domain"
	"github.com/geasyapp/geasy-server/internal/store"
)

// requirementColumns is the ordered list of columns selected in GE
// requirement queries. Must match the scan order in scanRequirement.
const requirementColumns = `req_id, college_id, ge_area, courses_required, units_required, special_notes`

func scanRequirement(scanner interface{ Scan(dest ...any) error }) (domain.GERequirement, error) {
	var r domain.GERequirement
	var notes sql.NullString

	err := scanner.Scan(
		&r.ID,
		&r.CollegeID,
		&r.GEArea,
		&r.CoursesRequired,
		&r.UnitsRequired,
		&notes,
	)
	if err != nil {
		return domain.GERequirement{}, err
	}

	if notes.Valid {
		r.SpecialNotes = notes.String
	}
	return r, nil
}

// GetRequirement retrieves a single GE requirement row by id.
// Returns store.ErrNotFound if the requirement does not exist.
func (s *Store) GetRequirement(ctx context.Context, id int64) (*domain.GERequirement, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+requirementColumns+` FROM ge_requirements WHERE req_id = ?`, id)

	r, err := scanRequirement(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRequirementsByCollege returns all GE requirement rows for one
// college, ordered by req_id for stable display. An empty slice is a
// valid result; callers distinguish unknown colleges via GetCollege.
func (s *Store) ListRequirementsByCollege(ctx context.Context, collegeID int64) ([]domain.GERequirement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+requirementColumns+` FROM ge_requirements
		WHERE college_id = ? ORDER BY req_id ASC`, collegeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.GERequirement
	for rows.Next() {
		r, err := scanRequirement(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reqs, nil
}
