package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/auth"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/user"
)

// actorFromContext extracts the acting user's ID and role from JWT claims.
func actorFromContext(r *http.Request) (string, user.Role, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", auth.ErrInvalidToken
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", "", auth.ErrInvalidToken
	}

	return userID, user.Role(roleStr), nil
}
