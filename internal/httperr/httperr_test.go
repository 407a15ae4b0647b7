package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := Wrap(http.StatusBadRequest, "Malformed JSON body", cause)

	assert.Equal(t, "Malformed JSON body: unexpected end of JSON input", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Not found", New(http.StatusNotFound, "Not found").Error())
}

func TestForwardUsesInstalledReporter(t *testing.T) {
	var got error
	rep := Reporter(func(w http.ResponseWriter, r *http.Request, err error) {
		got = err
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithReporter(req.Context(), rep))
	rec := httptest.NewRecorder()

	want := New(http.StatusBadRequest, "bad")
	Handle(func(w http.ResponseWriter, r *http.Request) error {
		return want
	})(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Same(t, want, got)
}

func TestForwardWithoutReporter(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	Forward(rec, req, New(http.StatusForbidden, "Not authorized"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var body Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, Body{Success: false, Error: "Not authorized"}, body)

	rec = httptest.NewRecorder()
	Forward(rec, req, fmt.Errorf("load bootcamp: %w", New(http.StatusNotFound, "Resource not found")))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Resource not found")

	rec = httptest.NewRecorder()
	Forward(rec, req, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Server Error")
}

func TestHandleWithoutError(t *testing.T) {
	rec := httptest.NewRecorder()
	Handle(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
