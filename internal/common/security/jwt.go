package security

import (
	"errors"
	"time"

	"courseapp/internal/domain/model"
	"courseapp/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenCookie is the cookie carrying the signed session token.
const AccessTokenCookie = "accessToken"

var (
	TokenAuth *jwtauth.JWTAuth

	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims is the typed session-token payload. Tokens whose role is not one of
// the three known variants are rejected on decode.
type Claims struct {
	UserID string     `json:"user_id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken issues a signed token asserting the user's identity claims,
// expiring JWTExp (7 days) from now. Verification is stateless; nothing is
// stored server-side and nothing can revoke the token before expiry.
func GenerateToken(user *model.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.AppConfig.JWTExp)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.AppConfig.JWTKey)
}

// VerifyToken checks the signature and expiry and returns the decoded claims.
// A forged, malformed, and expired token all yield the same ErrInvalidToken;
// callers map it to an unauthenticated outcome without distinguishing causes.
func VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return config.AppConfig.JWTKey, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ClaimsFromMap rebuilds typed claims from the loosely-typed map the jwtauth
// middleware leaves in the request context, applying the same role check as
// VerifyToken.
func ClaimsFromMap(m map[string]interface{}) (*Claims, error) {
	id, _ := m["user_id"].(string)
	name, _ := m["name"].(string)
	email, _ := m["email"].(string)
	role, _ := m["role"].(string)

	claims := &Claims{UserID: id, Name: name, Email: email, Role: model.Role(role)}
	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
