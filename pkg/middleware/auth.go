package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/looklush/storefront/pkg/auth"
	"github.com/looklush/storefront/pkg/response"
)

// Identity is the authenticated caller placed in the request context.
type Identity struct {
	UserID  string
	Email   string
	IsAdmin bool
}

// Role maps the admin flag onto the role names used by rbac.HasRole.
func (i Identity) Role() string {
	if i.IsAdmin {
		return "admin"
	}
	return "customer"
}

type identityKey struct{}

// SessionResolver resolves an identity from the request when no bearer
// token is present (cookie-backed browser sessions). Wired at boot.
type SessionResolver func(r *http.Request) (Identity, bool)

var sessionResolver SessionResolver

// SetSessionResolver installs the fallback used by Authenticate for
// requests without an Authorization header.
func SetSessionResolver(fn SessionResolver) {
	sessionResolver = fn
}

// Authenticate resolves the caller from a Bearer JWT, falling back to the
// session resolver, and rejects the request when neither yields an identity.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := resolve(r)
		if !ok {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// MaybeAuthenticate is like Authenticate but lets anonymous requests
// through. Handlers that behave differently for signed-in callers read the
// identity with IdentityFromCtx.
func MaybeAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := resolve(r); ok {
			r = r.WithContext(context.WithValue(r.Context(), identityKey{}, id))
		}
		next.ServeHTTP(w, r)
	})
}

func resolve(r *http.Request) (Identity, bool) {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := auth.ValidateToken(token)
		if err != nil {
			return Identity{}, false
		}
		return Identity{UserID: claims.UserID, Email: claims.Email, IsAdmin: claims.IsAdmin}, true
	}

	if sessionResolver != nil {
		return sessionResolver(r)
	}
	return Identity{}, false
}

// IdentityFromCtx returns the authenticated identity, if any.
func IdentityFromCtx(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey{}).(Identity)
	return id, ok
}

// UserIDFromCtx returns the authenticated user's ID.
func UserIDFromCtx(r *http.Request) (string, bool) {
	id, ok := IdentityFromCtx(r)
	return id.UserID, ok
}

// RoleFromCtx returns the caller's role name for rbac checks.
func RoleFromCtx(r *http.Request) (string, bool) {
	id, ok := IdentityFromCtx(r)
	if !ok {
		return "", false
	}
	return id.Role(), true
}
