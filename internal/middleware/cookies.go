package middleware

import (
	"net/http"

	"github.com/templui/devcamper/internal/ctxkeys"
)

// Cookies parses the Cookie header into a name -> value map on the context.
// Later cookies with the same name do not override the first one.
func Cookies(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookies := make(map[string]string)
		for _, c := range r.Cookies() {
			if _, seen := cookies[c.Name]; !seen {
				cookies[c.Name] = c.Value
			}
		}

		ctx := ctxkeys.WithCookies(r.Context(), cookies)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
