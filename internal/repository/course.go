package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/devcamper/internal/model"
)

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	ByID(ctx context.Context, id string) (*model.Course, error)
	// List returns all courses, or only those of bootcampID when it is not empty.
	List(ctx context.Context, bootcampID string) ([]*model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id string) error
}

type courseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, c *model.Course) error {
	query := `INSERT INTO courses (id, bootcamp_id, user_id, title, description, weeks, tuition, minimum_skill, scholarship_available, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.BootcampID,
		c.UserID,
		c.Title,
		c.Description,
		c.Weeks,
		c.Tuition,
		c.MinimumSkill,
		c.ScholarshipAvailable,
		c.CreatedAt,
	)

	return execErr(err)
}

func (r *courseRepository) ByID(ctx context.Context, id string) (*model.Course, error) {
	course := &model.Course{}

	err := r.db.GetContext(ctx, course, `SELECT * FROM courses WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	return course, err
}

func (r *courseRepository) List(ctx context.Context, bootcampID string) ([]*model.Course, error) {
	courses := []*model.Course{}

	var err error
	if bootcampID == "" {
		err = r.db.SelectContext(ctx, &courses, `SELECT * FROM courses ORDER BY created_at`)
	} else {
		err = r.db.SelectContext(ctx, &courses, `SELECT * FROM courses WHERE bootcamp_id = $1 ORDER BY created_at`, bootcampID)
	}
	if err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) Update(ctx context.Context, c *model.Course) error {
	query := `UPDATE courses SET title = $1, description = $2, weeks = $3, tuition = $4, minimum_skill = $5, scholarship_available = $6 WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill, c.ScholarshipAvailable, c.ID)
	if err != nil {
		return execErr(err)
	}

	return affected(result)
}

func (r *courseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return affected(result)
}
