package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/devcamper/internal/model"
)

type BootcampRepository interface {
	Create(ctx context.Context, bootcamp *model.Bootcamp) error
	ByID(ctx context.Context, id string) (*model.Bootcamp, error)
	List(ctx context.Context) ([]*model.Bootcamp, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, bootcamp *model.Bootcamp) error
	UpdatePhoto(ctx context.Context, id, photo string) error
	Delete(ctx context.Context, id string) error
}

type bootcampRepository struct {
	db *sqlx.DB
}

func NewBootcampRepository(db *sqlx.DB) BootcampRepository {
	return &bootcampRepository{db: db}
}

func (r *bootcampRepository) Create(ctx context.Context, b *model.Bootcamp) error {
	query := `INSERT INTO bootcamps (id, user_id, name, description, website, phone, email, address, photo, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.UserID,
		b.Name,
		b.Description,
		b.Website,
		b.Phone,
		b.Email,
		b.Address,
		b.Photo,
		b.CreatedAt,
	)

	return execErr(err)
}

func (r *bootcampRepository) ByID(ctx context.Context, id string) (*model.Bootcamp, error) {
	bootcamp := &model.Bootcamp{}

	err := r.db.GetContext(ctx, bootcamp, `SELECT * FROM bootcamps WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	return bootcamp, err
}

func (r *bootcampRepository) List(ctx context.Context) ([]*model.Bootcamp, error) {
	bootcamps := []*model.Bootcamp{}

	err := r.db.SelectContext(ctx, &bootcamps, `SELECT * FROM bootcamps ORDER BY created_at`)
	if err != nil {
		return nil, err
	}

	return bootcamps, nil
}

func (r *bootcampRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM bootcamps WHERE user_id = $1`, userID)
	return count, err
}

func (r *bootcampRepository) Update(ctx context.Context, b *model.Bootcamp) error {
	query := `UPDATE bootcamps SET name = $1, description = $2, website = $3, phone = $4, email = $5, address = $6 WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query, b.Name, b.Description, b.Website, b.Phone, b.Email, b.Address, b.ID)
	if err != nil {
		return execErr(err)
	}

	return affected(result)
}

func (r *bootcampRepository) UpdatePhoto(ctx context.Context, id, photo string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE bootcamps SET photo = $1 WHERE id = $2`, photo, id)
	if err != nil {
		return err
	}

	return affected(result)
}

func (r *bootcampRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bootcamps WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return affected(result)
}
