package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pawvilla/pawvilla/app/middleware"
	"github.com/pawvilla/pawvilla/app/models"
	"github.com/pawvilla/pawvilla/app/repositories"
	"github.com/pawvilla/pawvilla/pkg/auth"
	"github.com/pawvilla/pawvilla/pkg/ctx"
	"github.com/pawvilla/pawvilla/pkg/logger"
)

// UserController handles the authenticated user's profile and account.
type UserController struct {
	users repositories.UserRepository
}

func NewUserController(users repositories.UserRepository) *UserController {
	return &UserController{users: users}
}

// Profile returns the current user's profile.
func (uc *UserController) Profile(c *ctx.Context) {
	user, _ := middleware.CurrentUser(c.Context())
	c.OK(ctx.M{"user": user})
}

type updateProfileInput struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" validate:"nullable,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Bio     *string `json:"bio"`
}

// UpdateProfile merges the provided fields into the profile. Absent or empty
// fields keep their stored value.
func (uc *UserController) UpdateProfile(c *ctx.Context) {
	user, _ := middleware.CurrentUser(c.Context())

	var in updateProfileInput
	if !c.BindJSON(&in) {
		return
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != user.Email {
			if _, err := uc.users.FindByEmail(c.Context(), email); err == nil {
				c.Fail(http.StatusBadRequest, "Email already in use")
				return
			}
			user.Email = email
		}
	}
	if in.Phone != nil && *in.Phone != "" {
		user.Phone = *in.Phone
	}
	if in.Address != nil && *in.Address != "" {
		user.Address = *in.Address
	}
	if in.Bio != nil && *in.Bio != "" {
		user.Bio = *in.Bio
	}

	if err := uc.users.Update(c.Context(), user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			c.Fail(http.StatusBadRequest, "Email already in use")
			return
		}
		logger.WithCtx(c.Context()).Error("profile update failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not update profile")
		return
	}
	c.OK(ctx.M{"message": "Profile updated successfully", "user": user})
}

type updatePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// UpdatePassword changes the password after verifying the current one.
func (uc *UserController) UpdatePassword(c *ctx.Context) {
	user, _ := middleware.CurrentUser(c.Context())

	var in updatePasswordInput
	if !c.BindJSON(&in) {
		return
	}

	if !auth.CheckPassword(user.Password, in.CurrentPassword) {
		c.Unauthorized("Current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		c.Fail(http.StatusInternalServerError, "Could not update password")
		return
	}
	user.Password = hash

	if err := uc.users.Update(c.Context(), user); err != nil {
		logger.WithCtx(c.Context()).Error("password update failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not update password")
		return
	}
	c.OK(ctx.M{"message": "Password updated successfully"})
}

// DeleteAccount removes the current user and ends the session.
func (uc *UserController) DeleteAccount(c *ctx.Context) {
	user, _ := middleware.CurrentUser(c.Context())

	if err := uc.users.Delete(c.Context(), user.ID); err != nil {
		logger.WithCtx(c.Context()).Error("account delete failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not delete account")
		return
	}
	c.SetCookie(auth.ExpiredCookie())
	c.OK(ctx.M{"message": "Account deleted successfully"})
}

// Search finds users by name or email substring. Capped at 10 results.
func (uc *UserController) Search(c *ctx.Context) {
	q := strings.TrimSpace(c.Query("query"))
	if q == "" {
		c.OK(ctx.M{"users": []models.User{}, "count": 0})
		return
	}

	users, err := uc.users.Search(c.Context(), q, 10)
	if err != nil {
		logger.WithCtx(c.Context()).Error("user search failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Search failed")
		return
	}
	c.OK(ctx.M{"users": users, "count": len(users)})
}
