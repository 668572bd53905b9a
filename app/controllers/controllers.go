// Package controllers holds the HTTP handlers for the storefront API.
// Controllers stay thin: they bind and validate input, call the injected
// service, and map service errors onto HTTP statuses. All state lives in
// the services.
package controllers

import (
	"errors"
	"net/http"

	"github.com/looklush/storefront/app/services"
	"github.com/looklush/storefront/pkg/ctx"
	"github.com/looklush/storefront/pkg/middleware"
)

// errStatus maps the typed service errors onto HTTP status codes.
func errStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrProtectedUser):
		return http.StatusForbidden
	case errors.Is(err, services.ErrDuplicateSKU),
		errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrPriceOutOfBand),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrEmptyCheckout):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the mapped error response.
func fail(c *ctx.Context, err error) {
	c.Error(errStatus(err), err.Error())
}

// actor returns the authenticated admin behind the request, for audit
// entries. Routes using it sit behind Authenticate + rbac, so the identity
// is always present; the zero value only shows up in tests hitting the
// handler directly.
func actor(c *ctx.Context) (id, email string) {
	if ident, ok := middleware.IdentityFromCtx(c.R); ok {
		return ident.UserID, ident.Email
	}
	return "", ""
}
