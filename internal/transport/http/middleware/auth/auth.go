package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/webshop-labs/checkout/internal/service/models/session"
)

type sessionKey struct{}

// NewAuthMiddleware resolves the caller's identity from a Bearer token and
// stores it as a session value in the request context. A missing or invalid
// token yields an unauthenticated session rather than a transport-level
// rejection: deciding what requires authentication belongs to the service
// layer.
func NewAuthMiddleware(secret []byte) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := resolveSession(r, secret)
			ctx := context.WithValue(r.Context(), sessionKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the session stored by the middleware, or a zero
// session when none was resolved.
func FromContext(ctx context.Context) session.Session {
	sess, ok := ctx.Value(sessionKey{}).(session.Session)
	if !ok {
		return session.Session{}
	}

	return sess
}

func resolveSession(r *http.Request, secret []byte) session.Session {
	header := r.Header.Get("Authorization")
	tokenStr, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenStr == "" {
		return session.Session{}
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return secret, nil
	})
	if err != nil || !token.Valid {
		return session.Session{}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return session.Session{}
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return session.Session{}
	}

	return session.Session{UserID: int64(userID)}
}
