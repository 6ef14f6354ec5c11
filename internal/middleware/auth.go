package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pictonet/pictonet/internal/domain"
	jwt_internal "github.com/pictonet/pictonet/internal/jwt"
	"github.com/pictonet/pictonet/internal/utils"
)

// Key to store the caller identity in the request context.
type key int

const userClaimsKey key = 0

// Auth decodes an already-issued token into a caller identity. It never
// issues credentials and never authorizes anything; the access resolver does
// that with whatever identity (or absence of one) ends up in the context.
type Auth struct {
	jwtService jwt_internal.JwtService
}

func NewAuth(jwtService jwt_internal.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// OptionalAuth populates the caller identity when a token is supplied.
// No token means an anonymous request and the chain continues; a supplied
// but invalid token is rejected outright so a caller never silently loses
// the privileges they asked to use.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := a.decodeUser(tokenString)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken prefers the browser cookie, then the Authorization header for
// API clients.
func extractToken(r *http.Request) string {
	if accessCookie, err := r.Cookie("accessToken"); err == nil {
		return accessCookie.Value
	}
	if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		return token
	}
	return ""
}

func (a *Auth) decodeUser(tokenString string) (*domain.User, error) {
	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidClaims
	}

	uidFloat, ok := claims["uid"].(float64)
	if !ok {
		return nil, errInvalidClaims
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, errInvalidClaims
	}

	return &domain.User{Id: domain.UserId(uidFloat), Role: role}, nil
}

// GetUserFromContext returns the caller identity, or nil for anonymous
// requests.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(userClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// WithUser is a test helper mirroring what OptionalAuth does on success.
func WithUser(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userClaimsKey, user))
}
