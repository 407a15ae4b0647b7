package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/templui/devcamper/internal/ctxkeys"
	"github.com/templui/devcamper/internal/httperr"
	"github.com/templui/devcamper/internal/service"
)

var errNotAuthorized = httperr.New(http.StatusUnauthorized, "Not authorized to access this route")

// bearerToken reads the JWT from the Authorization header, then from the token cookie.
func bearerToken(r *http.Request) string {
	if scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}

	if cookies := ctxkeys.Cookies(r.Context()); cookies != nil {
		return cookies[service.TokenCookie]
	}

	cookie, err := r.Cookie(service.TokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Protect requires a valid token and puts its user on the context.
func Protect(auth *service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" || token == "none" {
				httperr.Forward(w, r, errNotAuthorized)
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrInvalidToken) {
					httperr.Forward(w, r, errNotAuthorized)
					return
				}
				httperr.Forward(w, r, err)
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authorize lets through only users whose role is listed. It must run after Protect.
func Authorize(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := ctxkeys.User(r.Context())
			if user == nil {
				httperr.Forward(w, r, errNotAuthorized)
				return
			}

			if !slices.Contains(roles, user.Role) {
				httperr.Forward(w, r, httperr.New(http.StatusForbidden,
					fmt.Sprintf("User role %s is not authorized to access this route", user.Role)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
