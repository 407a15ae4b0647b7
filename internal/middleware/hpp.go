package middleware

import (
	"net/http"
	"net/url"

	"github.com/templui/devcamper/internal/ctxkeys"
)

// ParameterPollution collapses repeated query parameters to their last value.
// Whitelisted names keep every value. The original values of collapsed
// parameters are kept on the context.
func ParameterPollution(whitelist ...string) Middleware {
	keep := make(map[string]bool, len(whitelist))
	for _, name := range whitelist {
		keep[name] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.RawQuery == "" {
				next.ServeHTTP(w, r)
				return
			}

			query := r.URL.Query()
			polluted := url.Values{}
			for key, values := range query {
				if len(values) > 1 && !keep[key] {
					polluted[key] = values
					query[key] = values[len(values)-1:]
				}
			}

			if len(polluted) > 0 {
				r.URL.RawQuery = query.Encode()
				r = r.WithContext(ctxkeys.WithQueryPolluted(r.Context(), polluted))
			}

			next.ServeHTTP(w, r)
		})
	}
}
