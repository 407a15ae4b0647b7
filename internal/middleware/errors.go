package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/templui/devcamper/internal/httperr"
	"github.com/templui/devcamper/internal/repository"
	"github.com/templui/devcamper/internal/validation"
)

// errorStatusMap maps collaborator errors to the response clients see
var errorStatusMap = []struct {
	target  error
	status  int
	message string
}{
	{repository.ErrNotFound, http.StatusNotFound, "Resource not found"},
	{repository.ErrDuplicate, http.StatusBadRequest, "Duplicate field value entered"},
}

// resolve picks the status and message for err.
func resolve(err error) (int, string) {
	var httpErr *httperr.Error
	if errors.As(err, &httpErr) {
		return httpErr.Status, httpErr.Message
	}

	var invalid validation.Errors
	if errors.As(err, &invalid) {
		return http.StatusBadRequest, invalid.Error()
	}

	for _, m := range errorStatusMap {
		if errors.Is(err, m.target) {
			return m.status, m.message
		}
	}

	return http.StatusInternalServerError, "Server Error"
}

// ErrorHandler is the outermost stage. It receives every error forwarded by
// later stages or routers, recovers panics, and writes the uniform error body.
func ErrorHandler(log *slog.Logger) Middleware {
	report := func(w http.ResponseWriter, r *http.Request, err error) {
		status, message := resolve(err)

		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"error", err,
			)
		} else {
			log.Debug("request rejected",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"error", err,
			)
		}

		httperr.WriteJSON(w, status, httperr.Body{Success: false, Error: message})
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err := fmt.Errorf("panic: %v", rec)
				if rw.written {
					// Headers are already out; the response cannot be replaced.
					log.Error("request failed after response started",
						"method", r.Method,
						"path", r.URL.Path,
						"status", rw.statusCode,
						"error", err,
					)
					return
				}
				report(rw, r, err)
			}()

			ctx := httperr.WithReporter(r.Context(), report)
			next.ServeHTTP(rw, r.WithContext(ctx))
		})
	}
}

// NotFound forwards a not-found error for requests no router matched.
func NotFound(w http.ResponseWriter, r *http.Request) {
	httperr.Forward(w, r, httperr.New(http.StatusNotFound, "Not found - "+r.URL.Path))
}
