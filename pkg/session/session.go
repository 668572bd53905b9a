// Package session issues the anonymous storefront session cookie.
//
// Every visitor gets a random session ID on first contact. Carts, buy-now
// slots and login records are all keyed by this ID in the entity store, so
// the cookie itself carries no data.
//
// Usage (middleware):
//
//	r.Use(session.Middleware(session.DefaultOptions()))
//
// Usage (handler):
//
//	sid := session.ID(r)
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"
)

// Options configures the session cookie.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions returns the storefront defaults. A long TTL keeps carts
// alive between visits.
func DefaultOptions() Options {
	return Options{
		CookieName: "storefront_session",
		TTL:        30 * 24 * time.Hour,
		HTTPOnly:   true,
		Secure:     false, // set true behind TLS
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

type ctxKey struct{}

// newID generates a cryptographically random 32-byte hex session ID.
func newID() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Middleware reads the session cookie, minting and setting a new one for
// first-time visitors, and injects the session ID into the request context.
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if cookie, err := r.Cookie(opts.CookieName); err == nil && cookie.Value != "" {
				id = cookie.Value
			} else {
				id = newID()
				http.SetCookie(w, &http.Cookie{
					Name:     opts.CookieName,
					Value:    id,
					Path:     opts.Path,
					MaxAge:   int(opts.TTL.Seconds()),
					HttpOnly: opts.HTTPOnly,
					Secure:   opts.Secure,
					SameSite: opts.SameSite,
				})
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ID returns the request's session ID, or "" outside the middleware.
func ID(r *http.Request) string {
	return FromCtx(r.Context())
}

// FromCtx extracts the session ID from a context.
func FromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}
