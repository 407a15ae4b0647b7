package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/devcamper/internal/model"
)

type ReviewRepository interface {
	// Create fails with ErrDuplicate when the user already reviewed the bootcamp.
	Create(ctx context.Context, review *model.Review) error
	ByID(ctx context.Context, id string) (*model.Review, error)
	List(ctx context.Context, bootcampID string) ([]*model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id string) error
}

type reviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *model.Review) error {
	query := `INSERT INTO reviews (id, bootcamp_id, user_id, title, text, rating, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query, rv.ID, rv.BootcampID, rv.UserID, rv.Title, rv.Text, rv.Rating, rv.CreatedAt)
	return execErr(err)
}

func (r *reviewRepository) ByID(ctx context.Context, id string) (*model.Review, error) {
	review := &model.Review{}

	err := r.db.GetContext(ctx, review, `SELECT * FROM reviews WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	return review, err
}

func (r *reviewRepository) List(ctx context.Context, bootcampID string) ([]*model.Review, error) {
	reviews := []*model.Review{}

	var err error
	if bootcampID == "" {
		err = r.db.SelectContext(ctx, &reviews, `SELECT * FROM reviews ORDER BY created_at`)
	} else {
		err = r.db.SelectContext(ctx, &reviews, `SELECT * FROM reviews WHERE bootcamp_id = $1 ORDER BY created_at`, bootcampID)
	}
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *reviewRepository) Update(ctx context.Context, rv *model.Review) error {
	query := `UPDATE reviews SET title = $1, text = $2, rating = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, rv.Title, rv.Text, rv.Rating, rv.ID)
	if err != nil {
		return err
	}

	return affected(result)
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return affected(result)
}
