// Package httperr carries request errors from any pipeline stage or router
// to the single global error handler.
package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Error is an error with the status and message the client should see.
type Error struct {
	Status  int
	Message string
	Err     error
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func Wrap(status int, message string, err error) *Error {
	return &Error{Status: status, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Reporter turns an error into a response.
type Reporter func(w http.ResponseWriter, r *http.Request, err error)

type reporterKey struct{}

// WithReporter installs the reporter used by Forward for this request.
func WithReporter(ctx context.Context, rep Reporter) context.Context {
	return context.WithValue(ctx, reporterKey{}, rep)
}

// Forward hands err to the reporter installed on the request.
// Without one, err is written directly with its own status.
func Forward(w http.ResponseWriter, r *http.Request, err error) {
	if rep, ok := r.Context().Value(reporterKey{}).(Reporter); ok && rep != nil {
		rep(w, r, err)
		return
	}

	status, message := http.StatusInternalServerError, "Server Error"
	var e *Error
	if errors.As(err, &e) {
		status, message = e.Status, e.Message
	}
	WriteJSON(w, status, Body{Success: false, Error: message})
}

// HandlerFunc is an http handler that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn so returned errors are forwarded to the error handler.
func Handle(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err != nil {
			Forward(w, r, err)
		}
	}
}

// Body is the uniform error response.
type Body struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}
