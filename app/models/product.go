package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductCategories is the fixed enumeration of catalog categories.
var ProductCategories = []string{"Food", "Toy", "Accessory", "Medicine"}

// IsValidProductCategory reports whether c is an accepted category.
func IsValidProductCategory(c string) bool {
	for _, v := range ProductCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Product is a catalog item. StockQty is tracked but never decremented by
// checkout (no stock depletion in this flow).
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	InStock     bool               `bson:"inStock" json:"inStock"`
	StockQty    int                `bson:"stockQty" json:"stockQty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
