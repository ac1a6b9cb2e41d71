// Package controllers holds the HTTP handlers. Each controller owns one
// resource and speaks the JSON envelope through pkg/ctx.
package controllers

import (
	"errors"
	"net/http"

	"github.com/pawvilla/pawvilla/app/middleware"
	"github.com/pawvilla/pawvilla/app/services"
	"github.com/pawvilla/pawvilla/pkg/auth"
	"github.com/pawvilla/pawvilla/pkg/ctx"
	"github.com/pawvilla/pawvilla/pkg/logger"
)

// AuthController handles registration, login, logout, and the session probe.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type registerInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register creates a user account and opens a session.
func (ac *AuthController) Register(c *ctx.Context) {
	var in registerInput
	if !c.BindJSON(&in) {
		return
	}

	user, token, err := ac.auth.Register(c.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			c.Fail(http.StatusBadRequest, "User already exists")
			return
		}
		logger.WithCtx(c.Context()).Error("register failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not register user")
		return
	}

	c.SetCookie(auth.SessionCookie(token))
	c.Created(ctx.M{"user": user})
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and opens a session.
func (ac *AuthController) Login(c *ctx.Context) {
	var in loginInput
	if !c.BindJSON(&in) {
		return
	}

	user, token, err := ac.auth.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.Unauthorized("Invalid email or password")
			return
		}
		logger.WithCtx(c.Context()).Error("login failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not log in")
		return
	}

	c.SetCookie(auth.SessionCookie(token))
	c.OK(ctx.M{"user": user})
}

// Logout clears the session cookie.
func (ac *AuthController) Logout(c *ctx.Context) {
	c.SetCookie(auth.ExpiredCookie())
	c.OK(ctx.M{"message": "Logged out successfully"})
}

// Me returns the authenticated user.
func (ac *AuthController) Me(c *ctx.Context) {
	user, ok := middleware.CurrentUser(c.Context())
	if !ok {
		c.Unauthorized("Not authorized, no token")
		return
	}
	c.OK(ctx.M{"user": user})
}
