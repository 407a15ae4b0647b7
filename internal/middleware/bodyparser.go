package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/templui/devcamper/internal/ctxkeys"
	"github.com/templui/devcamper/internal/httperr"
)

var (
	errMalformedJSON = httperr.New(http.StatusBadRequest, "Malformed JSON body")
	errBodyTooLarge  = httperr.New(http.StatusRequestEntityTooLarge, "Request entity too large")
)

// JSONBody decodes application/json request bodies of at most limit bytes.
// The decoded document is stored in the context and the body stays readable.
// Only objects and arrays are accepted at the top level.
func JSONBody(limit int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody || !isJSON(r.Header.Get("Content-Type")) {
				next.ServeHTTP(w, r)
				return
			}

			raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					httperr.Forward(w, r, errBodyTooLarge)
					return
				}
				httperr.Forward(w, r, httperr.Wrap(http.StatusBadRequest, "Failed to read request body", err))
				return
			}

			trimmed := bytes.TrimSpace(raw)
			if len(trimmed) == 0 {
				r.Body = io.NopCloser(bytes.NewReader(raw))
				next.ServeHTTP(w, r)
				return
			}

			if (trimmed[0] != '{' && trimmed[0] != '[') || !json.Valid(trimmed) {
				httperr.Forward(w, r, errMalformedJSON)
				return
			}

			doc, err := decodeJSON(trimmed)
			if err != nil {
				httperr.Forward(w, r, errMalformedJSON)
				return
			}

			r = r.WithContext(ctxkeys.WithBody(r.Context(), doc))
			r.Body = io.NopCloser(bytes.NewReader(raw))
			next.ServeHTTP(w, r)
		})
	}
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	err := dec.Decode(&doc)
	return doc, err
}

// replaceJSONBody stores doc as the request document and re-encodes the body.
func replaceJSONBody(r *http.Request, doc any) (*http.Request, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return r, err
	}

	r = r.WithContext(ctxkeys.WithBody(r.Context(), doc))
	r.Body = io.NopCloser(bytes.NewReader(raw))
	r.ContentLength = int64(len(raw))
	return r, nil
}
