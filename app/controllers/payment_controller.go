package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pawvilla/pawvilla/app/middleware"
	"github.com/pawvilla/pawvilla/app/models"
	"github.com/pawvilla/pawvilla/app/repositories"
	"github.com/pawvilla/pawvilla/pkg/ctx"
	"github.com/pawvilla/pawvilla/pkg/logger"
)

// PaymentController manages the payment methods embedded on the user
// document. Only card metadata is ever stored, never a full card number.
type PaymentController struct {
	users repositories.UserRepository
}

func NewPaymentController(users repositories.UserRepository) *PaymentController {
	return &PaymentController{users: users}
}

// List returns the current user's saved payment methods.
func (pc *PaymentController) List(c *ctx.Context) {
	user, _ := middleware.CurrentUser(c.Context())
	methods := user.SavedPaymentMethods
	if methods == nil {
		methods = []models.PaymentMethod{}
	}
	c.OK(ctx.M{"paymentMethods": methods})
}

type addCardInput struct {
	Brand    string `json:"brand"`
	Last4    string `json:"last4"`
	ExpMonth int    `json:"expMonth"`
	ExpYear  int    `json:"expYear"`
	Label    string `json:"label"`
}

func isFourDigits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Add saves a new payment method.
func (pc *PaymentController) Add(c *ctx.Context) {
	user, _ := middleware.CurrentUser(c.Context())

	var in addCardInput
	if errs, err := c.ShouldBindJSON(&in); err != nil {
		c.Fail(http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		c.ValidationError(errs)
		return
	}

	if strings.TrimSpace(in.Brand) == "" || in.Last4 == "" || in.ExpMonth == 0 || in.ExpYear == 0 {
		c.Fail(http.StatusBadRequest, "Missing card fields")
		return
	}
	if !isFourDigits(in.Last4) || in.ExpMonth < 1 || in.ExpMonth > 12 {
		c.Fail(http.StatusBadRequest, "Invalid card details")
		return
	}

	method := models.PaymentMethod{
		ID:       uuid.NewString(),
		Brand:    strings.TrimSpace(in.Brand),
		Last4:    in.Last4,
		ExpMonth: in.ExpMonth,
		ExpYear:  in.ExpYear,
		Label:    strings.TrimSpace(in.Label),
	}
	user.SavedPaymentMethods = append(user.SavedPaymentMethods, method)

	if err := pc.users.Update(c.Context(), user); err != nil {
		logger.WithCtx(c.Context()).Error("payment method add failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not save payment method")
		return
	}
	c.Created(ctx.M{"message": "Payment method added", "paymentMethods": user.SavedPaymentMethods})
}

type updateCardInput struct {
	Label *string `json:"label"`
}

// Update renames a saved payment method. Card details are immutable.
func (pc *PaymentController) Update(c *ctx.Context) {
	user, _ := middleware.CurrentUser(c.Context())

	method := user.PaymentMethodByID(c.Param("id"))
	if method == nil {
		c.NotFound("Card not found")
		return
	}

	var in updateCardInput
	if !c.BindJSON(&in) {
		return
	}
	if in.Label != nil {
		method.Label = strings.TrimSpace(*in.Label)
	}

	if err := pc.users.Update(c.Context(), user); err != nil {
		logger.WithCtx(c.Context()).Error("payment method update failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not update payment method")
		return
	}
	c.OK(ctx.M{"message": "Payment method updated", "paymentMethods": user.SavedPaymentMethods})
}

// Delete removes a saved payment method.
func (pc *PaymentController) Delete(c *ctx.Context) {
	user, _ := middleware.CurrentUser(c.Context())

	if !user.RemovePaymentMethod(c.Param("id")) {
		c.NotFound("Card not found")
		return
	}

	if err := pc.users.Update(c.Context(), user); err != nil {
		logger.WithCtx(c.Context()).Error("payment method delete failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not delete payment method")
		return
	}
	methods := user.SavedPaymentMethods
	if methods == nil {
		methods = []models.PaymentMethod{}
	}
	c.OK(ctx.M{"message": "Payment method removed", "paymentMethods": methods})
}
