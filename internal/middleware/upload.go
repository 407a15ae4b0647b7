package middleware

import (
	"errors"
	"mime"
	"net/http"

	"github.com/templui/devcamper/internal/ctxkeys"
	"github.com/templui/devcamper/internal/httperr"
)

// multipartMemory is how much of a multipart body is kept in memory; the rest goes to temp files.
const multipartMemory = 8 << 20

var errUploadTooLarge = httperr.New(http.StatusRequestEntityTooLarge, "File upload exceeds the size limit")

// FileUpload parses multipart/form-data bodies of at most limit bytes and
// stores the uploaded files on the context keyed by form field.
func FileUpload(limit int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil || mediaType != "multipart/form-data" {
				next.ServeHTTP(w, r)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			err = r.ParseMultipartForm(multipartMemory)
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					httperr.Forward(w, r, errUploadTooLarge)
					return
				}
				httperr.Forward(w, r, httperr.Wrap(http.StatusBadRequest, "Malformed multipart body", err))
				return
			}
			form := r.MultipartForm
			defer func() { _ = form.RemoveAll() }()

			ctx := ctxkeys.WithFiles(r.Context(), form.File)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
