package session

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/tutienda/storefront/pkg/enums"
)

type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// roleFromToken reads the role claim out of a backend-issued JWT. The client
// holds no signing secret, so the token is decoded without verification;
// the claim only steers what the client shows, every privileged call is
// re-checked server-side.
func roleFromToken(token string) (enums.Role, bool) {
	if token == "" {
		return "", false
	}
	claims := &accessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", false
	}
	role, err := enums.ParseRole(claims.Role)
	if err != nil {
		return "", false
	}
	return role, true
}
