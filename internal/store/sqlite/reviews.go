package sqlite

import (
	"context"
	"database/sql"

	"github.com/geasyapp/geasy-server/internal/domain"
	"github.com/geasyapp/geasy-server/internal/store"
)

// reviewColumns must match the scan order in scanReview.
const reviewColumns = `review_id, section_id, quality, workload, review_text, would_recommend, grade_received`

func scanReview(scanner interface{ Scan(dest ...any) error }) (*domain.Review, error) {
	var r domain.Review

	var (
		text           sql.NullString
		wouldRecommend int
		grade          sql.NullString
	)

	err := scanner.Scan(
		&r.ID,
		&r.SectionID,
		&r.Quality,
		&r.Workload,
		&text,
		&wouldRecommend,
		&grade,
	)
	if err != nil {
		return nil, err
	}

	if text.Valid {
		r.Text = text.String
	}
	if grade.Valid {
		r.GradeReceived = grade.String
	}
	r.WouldRecommend = wouldRecommend != 0

	return &r, nil
}

// CreateReview inserts a review and fills in the generated id when the
// caller left it zero. Out-of-range quality/workload or a dangling
// section_id surfaces as store.ErrConstraint, untouched.
func (s *Store) CreateReview(ctx context.Context, r *domain.Review) error {
	var (
		res sql.Result
		err error
	)
	if r.ID != 0 {
		res, err = s.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO reviews (
				review_id, section_id, quality, workload, review_text, would_recommend, grade_received
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.SectionID, r.Quality, r.Workload,
			nullString(r.Text), boolToInt(r.WouldRecommend), nullString(r.GradeReceived))
	} else {
		res, err = s.db.ExecContext(ctx, `
			INSERT INTO reviews (
				section_id, quality, workload, review_text, would_recommend, grade_received
			) VALUES (?, ?, ?, ?, ?, ?)`,
			r.SectionID, r.Quality, r.Workload,
			nullString(r.Text), boolToInt(r.WouldRecommend), nullString(r.GradeReceived))
	}
	if err != nil {
		return mapConstraintErr(err)
	}

	if r.ID == 0 {
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		r.ID = id
	}
	return nil
}

// GetReview retrieves a review by id.
// Returns store.ErrNotFound if the review does not exist.
func (s *Store) GetReview(ctx context.Context, id int64) (*domain.Review, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE review_id = ?`, id)

	r, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListReviewsBySection returns all reviews of a section ordered by id.
func (s *Store) ListReviewsBySection(ctx context.Context, sectionID int64) ([]*domain.Review, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE section_id = ? ORDER BY review_id ASC`,
		sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CountRows returns the row counts of the courses, professors, and
// reviews tables, the data-status numbers shown by a presentation layer.
func (s *Store) CountRows(ctx context.Context) (courses, professors, reviews int, err error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM courses),
			(SELECT COUNT(*) FROM professors),
			(SELECT COUNT(*) FROM reviews)`)
	if err := row.Scan(&courses, &professors, &reviews); err != nil {
		return 0, 0, 0, err
	}
	return courses, professors, reviews, nil
}
