package sqlite

import (
	"context"

	"github.com/geasyapp/geasy-server/internal/domain"
)

// mappingColumns must match the scan order in scanAreaMapping.
const mappingColumns = `mapping_id, ge_area, foundation_area, subgroup`

func scanAreaMapping(scanner interface{ Scan(dest ...any) error }) (domain.AreaMapping, error) {
	var m domain.AreaMapping
	err := scanner.Scan(
		&m.ID,
		&m.GEArea,
		&m.FoundationArea,
		&m.Subgroup,
	)
	return m, err
}

// ListAreaMappings returns every GE area mapping row ordered by id.
func (s *Store) ListAreaMappings(ctx context.Context) ([]domain.AreaMapping, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+mappingColumns+` FROM ge_area_mappings ORDER BY mapping_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []domain.AreaMapping
	for rows.Next() {
		m, err := scanAreaMapping(rows)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return mappings, nil
}

// ListGEAreas returns the distinct non-empty GE area labels present on
// course rows, sorted alphabetically. This drives the area picker in a
// presentation layer; labels missing from ge_area_mappings still appear.
func (s *Store) ListGEAreas(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT ge_area FROM courses
		WHERE ge_area IS NOT NULL AND ge_area != ''
		ORDER BY ge_area ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var areas []string
	for rows.Next() {
		var area string
		if err := rows.Scan(&area); err != nil {
			return nil, err
		}
		areas = append(areas, area)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return areas, nil
}
