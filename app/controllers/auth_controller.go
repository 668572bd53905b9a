package controllers

import (
	"net/http"

	"github.com/looklush/storefront/app/services"
	"github.com/looklush/storefront/pkg/ctx"
	"github.com/looklush/storefront/pkg/session"
)

// AuthController handles login, logout and the current-session probe.
type AuthController struct {
	auth *services.Auth
}

func NewAuthController(auth *services.Auth) *AuthController {
	return &AuthController{auth: auth}
}

type loginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates the credentials against the account store. On
// success the session record is persisted server-side and a bearer token
// is returned for non-browser clients.
func (ac *AuthController) Login(c *ctx.Context) {
	var in loginInput
	if !c.BindJSON(&in) {
		return
	}

	user, token, ok := ac.auth.Login(session.FromCtx(c.Context()), in.Email, in.Password)
	if !ok {
		c.Error(http.StatusUnauthorized, "invalid email or password")
		return
	}

	c.Success(map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Logout drops the server-side session record. The anonymous session
// cookie itself survives; the cart stays with the visitor.
func (ac *AuthController) Logout(c *ctx.Context) {
	ac.auth.Logout(session.FromCtx(c.Context()))
	c.Success(map[string]string{"message": "logged out"})
}

// Me returns the identity bound to the current session, or 401 when the
// visitor is anonymous.
func (ac *AuthController) Me(c *ctx.Context) {
	user, ok := ac.auth.CurrentUser(session.FromCtx(c.Context()))
	if !ok {
		c.Unauthorized("not logged in")
		return
	}
	c.Success(user)
}
