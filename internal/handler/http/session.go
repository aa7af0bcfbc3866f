package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/auth"
)

// sessionFromRequest derives the caller's session from the verified JWT
// claims. An empty UserID means the request carried no usable identity.
func sessionFromRequest(r *http.Request) auth.Session {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return auth.Session{}
	}

	var session auth.Session
	if userID, ok := claims["user_id"].(string); ok {
		session.UserID = userID
	}
	if email, ok := claims["email"].(string); ok {
		session.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		session.Role = role
	}
	return session
}
