package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/volcano/internal/model"
	"github.com/xxxsen/volcano/internal/pkg/dbutil"
	appErr "github.com/xxxsen/volcano/internal/pkg/errors"
)

type ReviewRepo struct {
	db *sql.DB
}

func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func (r *ReviewRepo) Create(ctx context.Context, review *model.Review) error {
	data := map[string]interface{}{
		"volcano_id": review.VolcanoID,
		"user_id":    review.UserID,
		"rating":     review.Rating,
		"comment":    review.Comment,
	}
	sqlStr, args, err := builder.BuildInsert("reviews", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsForeignKeyViolation(err) {
			return appErr.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *ReviewRepo) ListByVolcano(ctx context.Context, volcanoID int64) ([]model.ReviewView, error) {
	sqlStr := "SELECT r.rating, r.comment, u.first_name, u.last_name FROM reviews r " +
		"JOIN users u ON u.id = r.user_id " +
		"WHERE r.volcano_id = ? ORDER BY r.id ASC"
	sqlStr, args := dbutil.Finalize(sqlStr, []interface{}{volcanoID})
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := make([]model.ReviewView, 0)
	for rows.Next() {
		var item model.ReviewView
		var comment, firstName, lastName sql.NullString
		if err := rows.Scan(&item.Rating, &comment, &firstName, &lastName); err != nil {
			return nil, err
		}
		item.Comment = stringPtr(comment)
		item.FirstName = stringPtr(firstName)
		item.LastName = stringPtr(lastName)
		items = append(items, item)
	}
	return items, rows.Err()
}

// AverageRating reports ok=false when the volcano has no reviews.
func (r *ReviewRepo) AverageRating(ctx context.Context, volcanoID int64) (float64, bool, error) {
	sqlStr, args := dbutil.Finalize("SELECT AVG(rating) FROM reviews WHERE volcano_id = ?", []interface{}{volcanoID})
	var avg sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&avg); err != nil {
		return 0, false, err
	}
	if !avg.Valid {
		return 0, false, nil
	}
	return avg.Float64, true, nil
}
