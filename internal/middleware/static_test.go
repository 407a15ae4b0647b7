package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPublicDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>DevCamper API</h1>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "uploads"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "uploads", "photo_1.jpg"), []byte("jpeg"), 0o644))
	return dir
}

func TestStaticServesFiles(t *testing.T) {
	dir := newPublicDir(t)
	next := &capture{t: t}
	h := Static(dir)(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/photo_1.jpg", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jpeg", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "DevCamper API")

	assert.Equal(t, 0, next.calls)
}

func TestStaticFallsThrough(t *testing.T) {
	dir := newPublicDir(t)
	next := &capture{t: t}
	h := Static(dir)(next)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/v1/bootcamps", nil),
		httptest.NewRequest(http.MethodPost, "/uploads/photo_1.jpg", nil),
		httptest.NewRequest(http.MethodGet, "/uploads", nil),
		httptest.NewRequest(http.MethodGet, "/../../etc/passwd", nil),
	} {
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 4, next.calls)
}
