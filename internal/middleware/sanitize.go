package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/templui/devcamper/internal/ctxkeys"
)

// prohibitedKey reports keys shaped like query-operator injection ($gt, a.b).
func prohibitedKey(key string) bool {
	return strings.HasPrefix(key, "$") || strings.Contains(key, ".")
}

// stripKeys removes prohibited keys from every object in doc, in place.
// It reports whether anything was removed.
func stripKeys(doc any) bool {
	removed := false
	switch v := doc.(type) {
	case map[string]any:
		for key, child := range v {
			if prohibitedKey(key) {
				delete(v, key)
				removed = true
				continue
			}
			if stripKeys(child) {
				removed = true
			}
		}
	case []any:
		for _, child := range v {
			if stripKeys(child) {
				removed = true
			}
		}
	}
	return removed
}

// Sanitize removes operator-injection keys from the JSON body and from query parameter names.
func Sanitize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		dirty := false
		for key := range query {
			if prohibitedKey(key) {
				query.Del(key)
				dirty = true
			}
		}
		if dirty {
			r.URL.RawQuery = query.Encode()
		}

		if doc := ctxkeys.Body(r.Context()); doc != nil && stripKeys(doc) {
			var err error
			r, err = replaceJSONBody(r, doc)
			if err != nil {
				slog.Warn("failed to re-encode sanitized body", "error", err)
			}
		}

		next.ServeHTTP(w, r)
	})
}
