package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pawvilla/pawvilla/app/models"
	"github.com/pawvilla/pawvilla/app/repositories"
	"github.com/pawvilla/pawvilla/config"
)

// ErrNoItems is returned when a checkout request carries no items.
var ErrNoItems = errors.New("no items")

// ErrProductUnavailable is returned under the strict missing-item policy
// when a requested product no longer exists.
var ErrProductUnavailable = errors.New("product unavailable")

// CheckoutItem is one line of a checkout request.
type CheckoutItem struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// OrderService turns carts into orders with immutable price snapshots.
type OrderService struct {
	orders   repositories.OrderRepository
	products repositories.ProductRepository
}

func NewOrderService(orders repositories.OrderRepository, products repositories.ProductRepository) *OrderService {
	return &OrderService{orders: orders, products: products}
}

// Checkout resolves each requested product and snapshots its current name
// and price onto the order, so later catalog edits never change past orders.
// Items referencing products that no longer exist are skipped or rejected
// depending on ORDER_MISSING_ITEM_POLICY.
func (s *OrderService) Checkout(ctx context.Context, userID primitive.ObjectID, items []CheckoutItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	failOnMissing := config.OrderMissingItemPolicy() == "fail"

	var lines []models.OrderItem
	var total float64
	for _, item := range items {
		qty := item.Qty
		if qty < 1 {
			qty = 1
		}

		id, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			if failOnMissing {
				return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, item.ProductID)
			}
			continue
		}
		product, err := s.products.FindByID(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			if failOnMissing {
				return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, item.ProductID)
			}
			continue
		}
		if err != nil {
			return nil, err
		}

		lines = append(lines, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Qty:       qty,
		})
		total += product.Price * float64(qty)
	}

	if len(lines) == 0 {
		return nil, ErrNoItems
	}

	order := &models.Order{
		UserID: userID,
		Items:  lines,
		Total:  total,
		Status: models.OrderPaid,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// History returns the user's orders, newest first.
func (s *OrderService) History(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.ByUser(ctx, userID)
}
