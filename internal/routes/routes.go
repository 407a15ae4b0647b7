package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/templui/devcamper/internal/app"
	"github.com/templui/devcamper/internal/handler"
	"github.com/templui/devcamper/internal/httperr"
	"github.com/templui/devcamper/internal/middleware"
	"github.com/templui/devcamper/internal/model"
)

// Route mounts a router under a path prefix.
type Route struct {
	Prefix string
	Router http.Handler
}

// Stages is the request pipeline, executed top to bottom before dispatch.
func Stages(app *app.App, log *slog.Logger) []middleware.Stage {
	cfg := app.Cfg

	return []middleware.Stage{
		{Name: "json", Enabled: true, Middleware: middleware.JSONBody(cfg.JSONBodyLimit)},
		{Name: "cookies", Enabled: true, Middleware: middleware.Cookies},
		{Name: "logger", Enabled: cfg.IsDevelopment(), Middleware: middleware.RequestLogging(log)},
		{Name: "fileupload", Enabled: true, Middleware: middleware.FileUpload(cfg.UploadLimit)},
		{Name: "sanitize", Enabled: true, Middleware: middleware.Sanitize},
		{Name: "helmet", Enabled: true, Middleware: middleware.SecurityHeaders},
		{Name: "xss", Enabled: true, Middleware: middleware.XSS()},
		{Name: "ratelimit", Enabled: true, Middleware: middleware.RateLimit(app.Limiter, cfg.TrustProxy)},
		{Name: "hpp", Enabled: true, Middleware: middleware.ParameterPollution(cfg.HPPWhitelist...)},
		{Name: "cors", Enabled: true, Middleware: middleware.CORS()},
		{Name: "static", Enabled: true, Middleware: middleware.Static(cfg.PublicDir)},
	}
}

// Routes is the route table in registration order.
func Routes(app *app.App) []Route {
	// Handlers
	bootcamps := handler.NewBootcampHandler(app.Bootcamps, app.PhotoService)
	courses := handler.NewCourseHandler(app.Courses, app.Bootcamps)
	reviews := handler.NewReviewHandler(app.Reviews, app.Bootcamps)
	auth := handler.NewAuthHandler(app.AuthService, app.UserService)
	users := handler.NewUserHandler(app.UserService)

	protect := middleware.Protect(app.AuthService)

	return []Route{
		{Prefix: "/api/v1/bootcamps", Router: bootcampRouter(bootcamps, courses, reviews, protect)},
		{Prefix: "/api/v1/courses", Router: courseRouter(courses, protect)},
		{Prefix: "/api/v1/auth", Router: authRouter(auth, protect)},
		{Prefix: "/api/v1/users", Router: userRouter(users, protect)},
		{Prefix: "/api/v1/reviews", Router: reviewRouter(reviews, protect)},
	}
}

// Dispatcher mounts every route and answers anything unmatched with 404.
func Dispatcher(routes []Route) http.Handler {
	mux := chi.NewRouter()
	mux.NotFound(middleware.NotFound)
	mux.MethodNotAllowed(middleware.NotFound)

	for _, route := range routes {
		mux.Mount(route.Prefix, route.Router)
	}

	return mux
}

// SetupRoutes builds the full handler: error handler, pipeline stages, dispatch.
func SetupRoutes(app *app.App, log *slog.Logger) http.Handler {
	dispatch := Dispatcher(Routes(app))
	return middleware.ErrorHandler(log)(middleware.Build(dispatch, Stages(app, log)))
}

var handle = httperr.Handle

func bootcampRouter(h *handler.BootcampHandler, courses *handler.CourseHandler, reviews *handler.ReviewHandler, protect middleware.Middleware) http.Handler {
	r := chi.NewRouter()
	publisher := chi.Chain(protect, middleware.Authorize(model.RolePublisher, model.RoleAdmin))

	r.Get("/", handle(h.List))
	r.Get("/{id}", handle(h.Get))
	r.With(publisher...).Post("/", handle(h.Create))
	r.With(publisher...).Put("/{id}", handle(h.Update))
	r.With(publisher...).Delete("/{id}", handle(h.Delete))
	r.With(publisher...).Put("/{id}/photo", handle(h.UploadPhoto))

	// Nested resources
	r.Get("/{bootcampId}/courses", handle(courses.List))
	r.Get("/{bootcampId}/reviews", handle(reviews.List))

	return r
}

func courseRouter(h *handler.CourseHandler, protect middleware.Middleware) http.Handler {
	r := chi.NewRouter()
	publisher := chi.Chain(protect, middleware.Authorize(model.RolePublisher, model.RoleAdmin))

	r.Get("/", handle(h.List))
	r.Get("/{id}", handle(h.Get))
	r.With(publisher...).Post("/", handle(h.Create))
	r.With(publisher...).Put("/{id}", handle(h.Update))
	r.With(publisher...).Delete("/{id}", handle(h.Delete))

	return r
}

func reviewRouter(h *handler.ReviewHandler, protect middleware.Middleware) http.Handler {
	r := chi.NewRouter()
	reviewer := chi.Chain(protect, middleware.Authorize(model.RoleUser, model.RoleAdmin))

	r.Get("/", handle(h.List))
	r.Get("/{id}", handle(h.Get))
	r.With(reviewer...).Post("/", handle(h.Create))
	r.With(reviewer...).Put("/{id}", handle(h.Update))
	r.With(reviewer...).Delete("/{id}", handle(h.Delete))

	return r
}

func authRouter(h *handler.AuthHandler, protect middleware.Middleware) http.Handler {
	r := chi.NewRouter()

	r.Post("/register", handle(h.Register))
	r.Post("/login", handle(h.Login))
	r.Get("/logout", handle(h.Logout))
	r.With(protect).Get("/me", handle(h.Me))
	r.With(protect).Put("/updatedetails", handle(h.UpdateDetails))
	r.With(protect).Put("/updatepassword", handle(h.UpdatePassword))

	return r
}

func userRouter(h *handler.UserHandler, protect middleware.Middleware) http.Handler {
	r := chi.NewRouter()
	r.Use(protect, middleware.Authorize(model.RoleAdmin))

	r.Get("/", handle(h.List))
	r.Post("/", handle(h.Create))
	r.Get("/{id}", handle(h.Get))
	r.Put("/{id}", handle(h.Update))
	r.Delete("/{id}", handle(h.Delete))

	return r
}
