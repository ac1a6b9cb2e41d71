package controllers

import (
	"errors"
	"net/http"

	"github.com/pawvilla/pawvilla/app/middleware"
	"github.com/pawvilla/pawvilla/app/services"
	"github.com/pawvilla/pawvilla/pkg/ctx"
	"github.com/pawvilla/pawvilla/pkg/logger"
)

// OrderController handles checkout and order history.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

type checkoutInput struct {
	Items []services.CheckoutItem `json:"items"`
}

// Checkout creates an order from the submitted cart.
func (oc *OrderController) Checkout(c *ctx.Context) {
	user, _ := middleware.CurrentUser(c.Context())

	var in checkoutInput
	if !c.BindJSON(&in) {
		return
	}

	order, err := oc.orders.Checkout(c.Context(), user.ID, in.Items)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoItems):
			c.Fail(http.StatusBadRequest, "No items")
		case errors.Is(err, services.ErrProductUnavailable):
			c.Fail(http.StatusBadRequest, "One or more products are unavailable")
		default:
			logger.WithCtx(c.Context()).Error("checkout failed", "error", err)
			c.Fail(http.StatusInternalServerError, "Could not place order")
		}
		return
	}
	c.Created(ctx.M{"message": "Order placed successfully", "order": order})
}

// History returns the current user's orders, newest first.
func (oc *OrderController) History(c *ctx.Context) {
	user, _ := middleware.CurrentUser(c.Context())

	orders, err := oc.orders.History(c.Context(), user.ID)
	if err != nil {
		logger.WithCtx(c.Context()).Error("order history failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not list orders")
		return
	}
	c.OK(ctx.M{"orders": orders, "count": len(orders)})
}
