package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/devcamper/internal/config"
	"github.com/templui/devcamper/internal/db"
	"github.com/templui/devcamper/internal/middleware"
	"github.com/templui/devcamper/internal/repository"
	"github.com/templui/devcamper/internal/service"
	"github.com/templui/devcamper/internal/storage"
)

// App owns the process-wide state: the database handle, the rate limiter
// store and the services built on top of them.
type App struct {
	Cfg     *config.Config
	DB      *sqlx.DB
	Storage storage.Storage
	Limiter *middleware.RateLimiter

	Bootcamps repository.BootcampRepository
	Courses   repository.CourseRepository
	Reviews   repository.ReviewRepository

	AuthService  *service.AuthService
	UserService  *service.UserService
	PhotoService *service.PhotoService
}

// New connects to the database and runs migrations before returning, so the
// caller can bind the listener knowing the database is reachable.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(ctx, cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Storage
	fileStorage, err := storage.New(ctx, cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	bootcampRepository := repository.NewBootcampRepository(database)
	courseRepository := repository.NewCourseRepository(database)
	reviewRepository := repository.NewReviewRepository(database)

	// Services
	authService := service.NewAuthService(
		userRepository,
		cfg.JWTSecret,
		cfg.JWTExpire,
		cfg.JWTCookieExpire,
		cfg.IsProduction(),
	)
	userService := service.NewUserService(userRepository, authService)
	photoService := service.NewPhotoService(bootcampRepository, fileStorage, cfg.MaxFileUpload)

	return &App{
		Cfg:          cfg,
		DB:           database,
		Storage:      fileStorage,
		Limiter:      middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow),
		Bootcamps:    bootcampRepository,
		Courses:      courseRepository,
		Reviews:      reviewRepository,
		AuthService:  authService,
		UserService:  userService,
		PhotoService: photoService,
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
