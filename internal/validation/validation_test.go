package validation

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("john@gmail.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("John <john@gmail.com>"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@x.io"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("123456"))
	assert.Error(t, ValidatePassword("12345"))
	assert.Error(t, ValidatePassword(strings.Repeat("a", 73)))
}

func TestValidateText(t *testing.T) {
	assert.NoError(t, ValidateText("title", "Full Stack Web Development", 100))
	assert.EqualError(t, ValidateText("title", "   ", 100), "please add a title")
	assert.EqualError(t, ValidateName(strings.Repeat("n", 51)), "name can not be more than 50 characters")
}

func TestErrors(t *testing.T) {
	var errs Errors
	assert.NoError(t, errs.Err())

	errs.Add("name", nil)
	assert.NoError(t, errs.Err())

	errs.Add("name", errors.New("please add a name"))
	errs.Add("email", errors.New("please add a valid email"))

	err := errs.Err()
	require.Error(t, err)
	assert.Equal(t, "please add a name, please add a valid email", err.Error())

	var target Errors
	require.ErrorAs(t, err, &target)
	assert.Len(t, target, 2)
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

// pngHeader is the PNG signature followed by enough bytes for sniffing.
var pngHeader = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

func TestValidateFile(t *testing.T) {
	assert.NoError(t, ValidateFile(fileHeader(t, "photo.png", pngHeader), ImageConstraints(1000)))

	err := ValidateFile(fileHeader(t, "photo.png", pngHeader), ImageConstraints(10))
	assert.ErrorContains(t, err, "less than 10 bytes")

	err = ValidateFile(fileHeader(t, "notes.png", []byte("just some text")), ImageConstraints(1000))
	assert.ErrorContains(t, err, "please upload an image file")

	err = ValidateFile(fileHeader(t, "photo.exe", pngHeader), ImageConstraints(1000))
	assert.ErrorContains(t, err, "invalid file extension")
}
