package controllers

import (
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pawvilla/pawvilla/app/middleware"
	"github.com/pawvilla/pawvilla/app/models"
	"github.com/pawvilla/pawvilla/app/repositories"
	"github.com/pawvilla/pawvilla/pkg/auth"
	"github.com/pawvilla/pawvilla/pkg/ctx"
	"github.com/pawvilla/pawvilla/pkg/logger"
)

// AdminController manages admin accounts and the dashboard stats. All of its
// routes sit behind Protect + AdminOnly.
type AdminController struct {
	users    repositories.UserRepository
	products repositories.ProductRepository
	doctors  repositories.DoctorRepository
}

func NewAdminController(users repositories.UserRepository, products repositories.ProductRepository, doctors repositories.DoctorRepository) *AdminController {
	return &AdminController{users: users, products: products, doctors: doctors}
}

// ListAdmins returns all admin accounts.
func (ac *AdminController) ListAdmins(c *ctx.Context) {
	admins, err := ac.users.FindByRole(c.Context(), models.RoleAdmin)
	if err != nil {
		logger.WithCtx(c.Context()).Error("admin list failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not list admins")
		return
	}
	c.OK(ctx.M{"admins": admins, "count": len(admins)})
}

type createAdminInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// CreateAdmin creates a new admin account.
func (ac *AdminController) CreateAdmin(c *ctx.Context) {
	var in createAdminInput
	if !c.BindJSON(&in) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := ac.users.FindByEmail(c.Context(), email); err == nil {
		c.Fail(http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		c.Fail(http.StatusInternalServerError, "Could not create admin")
		return
	}

	admin := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := ac.users.Create(c.Context(), admin); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			c.Fail(http.StatusBadRequest, "User already exists")
			return
		}
		logger.WithCtx(c.Context()).Error("admin create failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not create admin")
		return
	}
	c.Created(ctx.M{"message": "Admin created successfully", "admin": admin})
}

type updateAdminInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"nullable,email"`
}

// UpdateAdmin updates another admin's name or email.
func (ac *AdminController) UpdateAdmin(c *ctx.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Fail(http.StatusBadRequest, "Invalid admin ID")
		return
	}

	admin, err := ac.users.FindByID(c.Context(), id)
	if err != nil || !admin.IsAdmin() {
		c.NotFound("Admin not found")
		return
	}

	var in updateAdminInput
	if !c.BindJSON(&in) {
		return
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		admin.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != admin.Email {
			if _, err := ac.users.FindByEmail(c.Context(), email); err == nil {
				c.Fail(http.StatusBadRequest, "Email already in use")
				return
			}
			admin.Email = email
		}
	}

	if err := ac.users.Update(c.Context(), admin); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			c.Fail(http.StatusBadRequest, "Email already in use")
			return
		}
		logger.WithCtx(c.Context()).Error("admin update failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not update admin")
		return
	}
	c.OK(ctx.M{"message": "Admin updated successfully", "admin": admin})
}

// DeleteAdmin removes another admin account. Self-deletion is refused.
func (ac *AdminController) DeleteAdmin(c *ctx.Context) {
	current, _ := middleware.CurrentUser(c.Context())

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Fail(http.StatusBadRequest, "Invalid admin ID")
		return
	}
	if id == current.ID {
		c.Fail(http.StatusBadRequest, "Cannot delete your own admin account")
		return
	}

	admin, err := ac.users.FindByID(c.Context(), id)
	if err != nil || !admin.IsAdmin() {
		c.NotFound("Admin not found")
		return
	}

	if err := ac.users.Delete(c.Context(), id); err != nil {
		logger.WithCtx(c.Context()).Error("admin delete failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not delete admin")
		return
	}
	c.OK(ctx.M{"message": "Admin deleted successfully"})
}

// Stats returns the dashboard counters.
func (ac *AdminController) Stats(c *ctx.Context) {
	rc := c.Context()

	totalUsers, err := ac.users.CountByRole(rc, models.RoleUser)
	if err != nil {
		c.Fail(http.StatusInternalServerError, "Could not load stats")
		return
	}
	totalAdmins, err := ac.users.CountByRole(rc, models.RoleAdmin)
	if err != nil {
		c.Fail(http.StatusInternalServerError, "Could not load stats")
		return
	}
	totalProducts, err := ac.products.Count(rc)
	if err != nil {
		c.Fail(http.StatusInternalServerError, "Could not load stats")
		return
	}
	totalDoctors, err := ac.doctors.Count(rc)
	if err != nil {
		c.Fail(http.StatusInternalServerError, "Could not load stats")
		return
	}
	recent, err := ac.users.Recent(rc, models.RoleUser, 5)
	if err != nil {
		c.Fail(http.StatusInternalServerError, "Could not load stats")
		return
	}

	c.OK(ctx.M{"stats": ctx.M{
		"totalUsers":    totalUsers,
		"totalAdmins":   totalAdmins,
		"totalProducts": totalProducts,
		"totalDoctors":  totalDoctors,
		"recentUsers":   recent,
	}})
}
