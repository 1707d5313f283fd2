package middleware

import (
	"net/http"
	"strings"

	"courseapp/internal/common/security"
	"courseapp/internal/domain/model"
)

// publicPages are navigable with no token at all. /unauthorized must be
// public or the deny redirect below would loop.
var publicPages = []string{"/", "/login", "/signup", "/unauthorized"}

// rolePages is the static role -> allowed-path-prefix table, fixed at
// process start and read-only afterwards. An unknown role gets the empty
// set.
var rolePages = map[model.Role][]string{
	model.RoleAdmin:      {"/dashboard", "/users", "/courses", "/my-learning", "/ai-mentor", "/enrollments"},
	model.RoleInstructor: {"/dashboard", "/courses", "/my-learning", "/ai-mentor", "/enrollments"},
	model.RoleStudent:    {"/dashboard", "/my-learning", "/ai-mentor", "/courses"},
}

// PageGate is the single access-control filter for page navigation. API
// routes never pass through it; they verify tokens themselves. Outcomes:
// serve the page, redirect to /login (no or bad token), or redirect to
// /unauthorized (role not allowed on this path).
func PageGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if matchesAny(path, publicPages) {
			next.ServeHTTP(w, r)
			return
		}

		token := TokenFromAccessTokenCookie(r)
		if token == "" {
			http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
			return
		}

		claims, err := security.VerifyToken(token)
		if err != nil {
			// Any verification failure degrades to the no-token outcome.
			http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
			return
		}

		if !matchesAny(path, rolePages[claims.Role]) {
			http.Redirect(w, r, "/unauthorized", http.StatusTemporaryRedirect)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// matchesAny reports whether path equals a route or sits under it as a
// sub-path ("/courses" matches "/courses" and "/courses/go-basics").
func matchesAny(path string, routes []string) bool {
	for _, route := range routes {
		if path == route || strings.HasPrefix(path, route+"/") {
			return true
		}
	}
	return false
}
