package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/templui/devcamper/internal/ctxkeys"
)

// cleanStrings replaces every string inside doc using clean, in place where possible.
func cleanStrings(doc any, clean func(string) string) any {
	switch v := doc.(type) {
	case string:
		return clean(v)
	case map[string]any:
		for key, child := range v {
			v[key] = cleanStrings(child, clean)
		}
	case []any:
		for i, child := range v {
			v[i] = cleanStrings(child, clean)
		}
	}
	return doc
}

// XSS strips markup from JSON body strings and query values.
// Values without angle brackets are left untouched.
func XSS() Middleware {
	policy := bluemonday.StrictPolicy()
	clean := func(s string) string {
		if !strings.ContainsAny(s, "<>") {
			return s
		}
		return policy.Sanitize(s)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.RawQuery != "" {
				query := r.URL.Query()
				for key, values := range query {
					for i, v := range values {
						values[i] = clean(v)
					}
					query[key] = values
				}
				r.URL.RawQuery = query.Encode()
			}

			if doc := ctxkeys.Body(r.Context()); doc != nil {
				var err error
				r, err = replaceJSONBody(r, cleanStrings(doc, clean))
				if err != nil {
					slog.Warn("failed to re-encode cleaned body", "error", err)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
