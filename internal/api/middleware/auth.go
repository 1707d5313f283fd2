package middleware

import (
	"context"
	"net/http"

	"courseapp/internal/common"
	"courseapp/internal/common/security"
	"courseapp/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const claimsCtxKey contextKey = "sessionClaims"

// TokenFromAccessTokenCookie finds the session token in the accessToken
// cookie, the carrier set at login.
func TokenFromAccessTokenCookie(r *http.Request) string {
	cookie, err := r.Cookie(security.AccessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Verifier checks the token signature and expiry and stashes the raw claims
// in the request context. Cookie first, Authorization header as fallback.
func Verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verify(ja, TokenFromAccessTokenCookie, jwtauth.TokenFromHeader)
}

// Authenticator rejects requests without a verified token and converts the
// raw claims map into typed claims. Every failure collapses to one 401
// outcome; an expired token and a forged one are indistinguishable to the
// caller.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, rawClaims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "User Unauthorized")
			return
		}

		claims, err := security.ClaimsFromMap(rawClaims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "User Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), claimsCtxKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route on the role order student < instructor < admin.
// All handlers use this one guard instead of ad-hoc equality checks, so the
// course gate ("instructor or above") and the user-admin gate ("admin") read
// off the same comparison.
func RequireRole(required model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaimsFromContext(r.Context())
			if !ok || !claims.Role.AtLeast(required) {
				common.RespondWithError(w, http.StatusUnauthorized, "User Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetClaimsFromContext returns the typed claims placed by Authenticator.
func GetClaimsFromContext(ctx context.Context) (*security.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey).(*security.Claims)
	return claims, ok
}
