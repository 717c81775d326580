package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/geasyapp/geasy-server/internal/domain"
	"github.com/geasyapp/geasy-server/internal/store"
)

// professorColumns must match the scan order in scanProfessor.
const professorColumns = `prof_id, name, dept, rating`

func scanProfessor(scanner interface{ Scan(dest ...any) error }) (*domain.Professor, error) {
	var p domain.Professor
	err := scanner.Scan(
		&p.ID,
		&p.Name,
		&p.Dept,
		&p.Rating,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertProfessor inserts a professor, replacing any existing row with
// the same id.
func (s *Store) UpsertProfessor(ctx context.Context, p *domain.Professor) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO professors (prof_id, name, dept, rating)
		VALUES (?, ?, ?, ?)`,
		p.ID,
		p.Name,
		p.Dept,
		p.Rating,
	)
	return mapConstraintErr(err)
}

// GetProfessor retrieves a professor by id.
// Returns store.ErrNotFound if the professor does not exist.
func (s *Store) GetProfessor(ctx context.Context, id int64) (*domain.Professor, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+professorColumns+` FROM professors WHERE prof_id = ?`, id)

	p, err := scanProfessor(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProfessors returns professors matching the optional filters,
// ordered by name.
func (s *Store) ListProfessors(ctx context.Context, filters store.ProfessorFilters) ([]*domain.Professor, error) {
	var (
		conds []string
		args  []any
	)
	if filters.Dept != "" {
		conds = append(conds, "dept = ?")
		args = append(args, filters.Dept)
	}
	if filters.MinRating > 0 {
		conds = append(conds, "rating >= ?")
		args = append(args, filters.MinRating)
	}

	query := `SELECT ` + professorColumns + ` FROM professors`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name ASC, prof_id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profs []*domain.Professor
	for rows.Next() {
		p, err := scanProfessor(rows)
		if err != nil {
			return nil, err
		}
		profs = append(profs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profs, nil
}
