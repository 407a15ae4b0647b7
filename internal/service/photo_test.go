package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/devcamper/internal/db/dbtest"
	"github.com/templui/devcamper/internal/httperr"
	"github.com/templui/devcamper/internal/model"
	"github.com/templui/devcamper/internal/repository"
	"github.com/templui/devcamper/internal/storage"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

func uploadHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestPhotoUpload(t *testing.T) {
	ctx := context.Background()
	database := dbtest.New(t)
	users := repository.NewUserRepository(database)
	bootcamps := repository.NewBootcampRepository(database)

	owner := &model.User{ID: uuid.NewString(), Name: "Pub", Email: "pub@gmail.com", Role: model.RolePublisher, PasswordHash: "x", CreatedAt: time.Now().UTC()}
	require.NoError(t, users.Create(ctx, owner))
	bootcamp := &model.Bootcamp{ID: uuid.NewString(), UserID: owner.ID, Name: "Devworks", Description: "d", Address: "a", Photo: model.DefaultPhoto, CreatedAt: time.Now().UTC()}
	require.NoError(t, bootcamps.Create(ctx, bootcamp))

	dir := t.TempDir()
	local, err := storage.NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)
	s := NewPhotoService(bootcamps, local, 1000)

	assert.Empty(t, s.URL(bootcamp))

	name, err := s.Upload(ctx, bootcamp, uploadHeader(t, "Photo.PNG", pngBytes))
	require.NoError(t, err)
	assert.Equal(t, "photo_"+bootcamp.ID+".png", name)
	assert.Equal(t, "/uploads/"+name, s.URL(bootcamp))

	stored, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, stored)

	got, err := bootcamps.ByID(ctx, bootcamp.ID)
	require.NoError(t, err)
	assert.Equal(t, name, got.Photo)

	_, err = s.Upload(ctx, bootcamp, uploadHeader(t, "notes.txt", []byte("plain text")))
	var httpErr *httperr.Error
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}
