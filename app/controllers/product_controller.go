package controllers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pawvilla/pawvilla/app/models"
	"github.com/pawvilla/pawvilla/app/repositories"
	"github.com/pawvilla/pawvilla/pkg/cache"
	"github.com/pawvilla/pawvilla/pkg/ctx"
	"github.com/pawvilla/pawvilla/pkg/logger"
	"github.com/pawvilla/pawvilla/pkg/storage"
)

const productsCacheKey = "products:list"

// maxImageBytes caps product image uploads at 5 MB.
const maxImageBytes = 5 << 20

// ProductController serves the store catalog and its admin CRUD.
type ProductController struct {
	products repositories.ProductRepository
}

func NewProductController(products repositories.ProductRepository) *ProductController {
	return &ProductController{products: products}
}

// List returns products, optionally filtered by ?category= and ?q=.
// The unfiltered listing is served from cache when warm.
func (pc *ProductController) List(c *ctx.Context) {
	category := c.Query("category")
	q := strings.TrimSpace(c.Query("q"))

	unfiltered := category == "" && q == ""
	if unfiltered {
		var cached []models.Product
		if cache.Get(productsCacheKey, &cached) {
			c.OK(ctx.M{"products": cached, "count": len(cached)})
			return
		}
	}
	if category != "" && !models.IsValidProductCategory(category) {
		c.Fail(http.StatusBadRequest, "Category must be one of: "+strings.Join(models.ProductCategories, ", "))
		return
	}

	products, err := pc.products.List(c.Context(), category, q)
	if err != nil {
		logger.WithCtx(c.Context()).Error("product list failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not list products")
		return
	}
	if unfiltered {
		cache.Set(productsCacheKey, products, 60*time.Second) //nolint:errcheck
	}
	c.OK(ctx.M{"products": products, "count": len(products)})
}

// Get returns one product by id.
func (pc *ProductController) Get(c *ctx.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Fail(http.StatusBadRequest, "Invalid product ID")
		return
	}
	product, err := pc.products.FindByID(c.Context(), id)
	if err != nil {
		c.NotFound("Product not found")
		return
	}
	c.OK(ctx.M{"product": product})
}

type productInput struct {
	Name        string   `json:"name" validate:"required,min=2"`
	Category    string   `json:"category" validate:"required,in=Food|Toy|Accessory|Medicine"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl" validate:"nullable,url"`
	InStock     *bool    `json:"inStock"`
	StockQty    int      `json:"stockQty" validate:"nullable,gte=0"`
}

// productUpdateInput carries only the fields the client sent; absent
// fields keep the stored value.
type productUpdateInput struct {
	Name        *string  `json:"name" validate:"nullable,min=2"`
	Category    *string  `json:"category" validate:"nullable,in=Food|Toy|Accessory|Medicine"`
	Price       *float64 `json:"price" validate:"nullable,gte=0"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl" validate:"nullable,url"`
	InStock     *bool    `json:"inStock"`
	StockQty    *int     `json:"stockQty" validate:"nullable,gte=0"`
}

// Create adds a product to the catalog.
func (pc *ProductController) Create(c *ctx.Context) {
	var in productInput
	if !c.BindJSON(&in) {
		return
	}

	product := &models.Product{
		Name:        in.Name,
		Category:    in.Category,
		Price:       *in.Price,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		InStock:     true,
		StockQty:    in.StockQty,
	}
	if in.InStock != nil {
		product.InStock = *in.InStock
	}

	if err := pc.products.Create(c.Context(), product); err != nil {
		logger.WithCtx(c.Context()).Error("product create failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not create product")
		return
	}
	cache.Forget(productsCacheKey) //nolint:errcheck
	c.Created(ctx.M{"message": "Product created successfully", "product": product})
}

// Update edits a product. Later catalog edits never touch past orders,
// which carry their own price snapshots.
func (pc *ProductController) Update(c *ctx.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Fail(http.StatusBadRequest, "Invalid product ID")
		return
	}
	product, err := pc.products.FindByID(c.Context(), id)
	if err != nil {
		c.NotFound("Product not found")
		return
	}

	var in productUpdateInput
	if !c.BindJSON(&in) {
		return
	}

	if in.Name != nil && *in.Name != "" {
		product.Name = *in.Name
	}
	if in.Category != nil && *in.Category != "" {
		product.Category = *in.Category
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.ImageURL != nil && *in.ImageURL != "" {
		product.ImageURL = *in.ImageURL
	}
	if in.InStock != nil {
		product.InStock = *in.InStock
	}
	if in.StockQty != nil {
		product.StockQty = *in.StockQty
	}

	if err := pc.products.Update(c.Context(), product); err != nil {
		logger.WithCtx(c.Context()).Error("product update failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not update product")
		return
	}
	cache.Forget(productsCacheKey) //nolint:errcheck
	c.OK(ctx.M{"message": "Product updated successfully", "product": product})
}

// Delete removes a product from the catalog.
func (pc *ProductController) Delete(c *ctx.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Fail(http.StatusBadRequest, "Invalid product ID")
		return
	}
	if err := pc.products.Delete(c.Context(), id); err != nil {
		c.NotFound("Product not found")
		return
	}
	cache.Forget(productsCacheKey) //nolint:errcheck
	c.OK(ctx.M{"message": "Product deleted successfully"})
}

// UploadImage stores a product image from a multipart form field named
// "image" and updates the product's imageUrl.
func (pc *ProductController) UploadImage(c *ctx.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Fail(http.StatusBadRequest, "Invalid product ID")
		return
	}
	product, err := pc.products.FindByID(c.Context(), id)
	if err != nil {
		c.NotFound("Product not found")
		return
	}

	if err := c.R.ParseMultipartForm(maxImageBytes); err != nil {
		c.Fail(http.StatusBadRequest, "Invalid upload")
		return
	}
	file, header, err := c.R.FormFile("image")
	if err != nil {
		c.Fail(http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		c.Fail(http.StatusBadRequest, "Unsupported image type")
		return
	}

	path := "products/" + product.ID.Hex() + ext
	if err := storage.PutStream(path, io.LimitReader(file, maxImageBytes)); err != nil {
		logger.WithCtx(c.Context()).Error("image upload failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not store image")
		return
	}

	product.ImageURL = storage.URL(path)
	if err := pc.products.Update(c.Context(), product); err != nil {
		logger.WithCtx(c.Context()).Error("product update failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not update product")
		return
	}
	cache.Forget(productsCacheKey) //nolint:errcheck
	c.OK(ctx.M{"message": "Image uploaded successfully", "product": product})
}
