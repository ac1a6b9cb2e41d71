package seeders

import (
	"context"

	"github.com/pawvilla/pawvilla/app/models"
	"github.com/pawvilla/pawvilla/app/repositories"
)

// ProductSeeder installs the default store catalog.
type ProductSeeder struct {
	products repositories.ProductRepository
}

func (s *ProductSeeder) Name() string { return "products" }

func (s *ProductSeeder) Run(ctx context.Context) error {
	count, err := s.products.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.Product{
		{Name: "Premium Dog Food 5kg", Category: "Food", Price: 29.99, Description: "Balanced nutrition for adult dogs", InStock: true, StockQty: 50, ImageURL: "https://images.unsplash.com/photo-1589927986089-35812388d1d1?q=80&w=1200&auto=format&fit=crop"},
		{Name: "Kitten Dry Food 2kg", Category: "Food", Price: 18.5, Description: "High-protein formula for growing kittens", InStock: true, StockQty: 40, ImageURL: "https://images.unsplash.com/photo-1576201836106-db1758fd1c97?q=80&w=1200&auto=format&fit=crop"},
		{Name: "Interactive Ball Toy", Category: "Toy", Price: 9.99, Description: "Durable rubber ball for active play", InStock: true, StockQty: 120, ImageURL: "https://images.unsplash.com/photo-1583511655857-d19b40a7a54e?q=80&w=1200&auto=format&fit=crop"},
		{Name: "Feather Teaser Wand", Category: "Toy", Price: 7.49, Description: "Engaging teaser toy for cats", InStock: true, StockQty: 100, ImageURL: "https://images.unsplash.com/photo-1574158622682-e40e69881006?q=80&w=1200&auto=format&fit=crop"},
		{Name: "Flea & Tick Medicine", Category: "Medicine", Price: 24.0, Description: "Topical protection for 30 days", InStock: true, StockQty: 35, ImageURL: "https://images.unsplash.com/photo-1582719478250-c89cae4dc85b?q=80&w=1200&auto=format&fit=crop"},
		{Name: "Digestive Probiotics", Category: "Medicine", Price: 15.0, Description: "Supports healthy gut flora", InStock: true, StockQty: 60, ImageURL: "https://images.unsplash.com/photo-1582719478250-c89cae4dc85b?q=80&w=1200&auto=format&fit=crop"},
		{Name: "Oatmeal Shampoo 500ml", Category: "Accessory", Price: 12.99, Description: "Gentle grooming shampoo for sensitive skin", InStock: true, StockQty: 80, ImageURL: "https://images.unsplash.com/photo-1615485737651-3a5a7cba1cc3?q=80&w=1200&auto=format&fit=crop"},
		{Name: "Anti-Shed Brush", Category: "Accessory", Price: 11.5, Description: "Reduces shedding and detangles coat", InStock: true, StockQty: 70, ImageURL: "https://images.unsplash.com/photo-1546443046-ed1ce6ffd1ab?q=80&w=1200&auto=format&fit=crop"},
	}
	for i := range defaults {
		if err := s.products.Create(ctx, &defaults[i]); err != nil {
			return err
		}
	}
	return nil
}
