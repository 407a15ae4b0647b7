// Package seed loads and removes the sample data set used for development.
package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/devcamper/internal/model"
	"github.com/templui/devcamper/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

//go:embed data/*.json
var dataFS embed.FS

type seedUser struct {
	model.User
	Password string `json:"password"`
}

type Seeder struct {
	db        *sqlx.DB
	users     repository.UserRepository
	bootcamps repository.BootcampRepository
	courses   repository.CourseRepository
	reviews   repository.ReviewRepository
	now       func() time.Time
}

func New(db *sqlx.DB) *Seeder {
	return &Seeder{
		db:        db,
		users:     repository.NewUserRepository(db),
		bootcamps: repository.NewBootcampRepository(db),
		courses:   repository.NewCourseRepository(db),
		reviews:   repository.NewReviewRepository(db),
		now:       time.Now,
	}
}

func load[T any](name string) ([]T, error) {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var items []T
	err = json.Unmarshal(raw, &items)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return items, nil
}

// Import inserts the sample users, bootcamps, courses and reviews.
func (s *Seeder) Import(ctx context.Context) error {
	createdAt := s.now().UTC()

	users, err := load[seedUser]("users.json")
	if err != nil {
		return err
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user := u.User
		user.PasswordHash = string(hash)
		user.CreatedAt = createdAt

		err = s.users.Create(ctx, &user)
		if err != nil {
			return fmt.Errorf("failed to import user %s: %w", user.Email, err)
		}
	}

	bootcamps, err := load[model.Bootcamp]("bootcamps.json")
	if err != nil {
		return err
	}
	for _, b := range bootcamps {
		b.Photo = model.DefaultPhoto
		b.CreatedAt = createdAt
		err = s.bootcamps.Create(ctx, &b)
		if err != nil {
			return fmt.Errorf("failed to import bootcamp %s: %w", b.Name, err)
		}
	}

	courses, err := load[model.Course]("courses.json")
	if err != nil {
		return err
	}
	for _, c := range courses {
		c.CreatedAt = createdAt
		err = s.courses.Create(ctx, &c)
		if err != nil {
			return fmt.Errorf("failed to import course %s: %w", c.Title, err)
		}
	}

	reviews, err := load[model.Review]("reviews.json")
	if err != nil {
		return err
	}
	for _, rv := range reviews {
		rv.CreatedAt = createdAt
		err = s.reviews.Create(ctx, &rv)
		if err != nil {
			return fmt.Errorf("failed to import review %s: %w", rv.Title, err)
		}
	}

	slog.Info("sample data imported",
		"users", len(users),
		"bootcamps", len(bootcamps),
		"courses", len(courses),
		"reviews", len(reviews),
	)
	return nil
}

// Destroy deletes all rows, children first.
func (s *Seeder) Destroy(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"reviews", "courses", "bootcamps", "users"} {
		_, err = tx.ExecContext(ctx, "DELETE FROM "+table)
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return err
	}

	slog.Info("sample data destroyed")
	return nil
}
