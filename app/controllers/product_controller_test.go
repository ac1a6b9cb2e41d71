package controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProductsWithFilters(t *testing.T) {
	api := newTestAPI(t)
	seedProduct(t, api, "Premium Dog Food 5kg", 29.99)

	toy := seedProduct(t, api, "Interactive Ball Toy", 9.99)
	toy.Category = "Toy"
	require.NoError(t, api.products.Update(t.Context(), toy))

	_, body := api.do(t, http.MethodGet, "/api/products", "")
	assert.EqualValues(t, 2, body["count"])

	_, body = api.do(t, http.MethodGet, "/api/products?category=Toy", "")
	assert.EqualValues(t, 1, body["count"])

	_, body = api.do(t, http.MethodGet, "/api/products?q=dog+food", "")
	assert.EqualValues(t, 1, body["count"])

	res, body := api.do(t, http.MethodGet, "/api/products?category=Vehicles", "")
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Category must be one of: Food, Toy, Accessory, Medicine", body["message"])
}

func TestProductWriteEndpointsAreAdminOnly(t *testing.T) {
	api := newTestAPI(t)
	_, userCookie := api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")

	res, _ := api.do(t, http.MethodPost, "/api/products",
		`{"name":"Chew Bone","category":"Toy","price":4.99}`, userCookie)
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestCreateProduct(t *testing.T) {
	api := newTestAPI(t)
	_, adminCookie := api.seedUser(t, "Root", "root@example.com", "hunter22", "admin")

	res, body := api.do(t, http.MethodPost, "/api/products",
		`{"name":"Chew Bone","category":"Toy","price":4.99,"stockQty":25}`, adminCookie)

	assert.Equal(t, http.StatusCreated, res.Code)
	product := body["product"].(map[string]any)
	assert.Equal(t, "Chew Bone", product["name"])
	assert.Equal(t, true, product["inStock"], "inStock defaults to true")
}

func TestCreateProductInvalidCategory(t *testing.T) {
	api := newTestAPI(t)
	_, adminCookie := api.seedUser(t, "Root", "root@example.com", "hunter22", "admin")

	res, body := api.do(t, http.MethodPost, "/api/products",
		`{"name":"Mystery Box","category":"Mystery","price":4.99}`, adminCookie)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Validation failed", body["message"])
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "category")
}

func TestUpdateProductMergesProvidedFields(t *testing.T) {
	api := newTestAPI(t)
	_, adminCookie := api.seedUser(t, "Root", "root@example.com", "hunter22", "admin")
	p := seedProduct(t, api, "Premium Dog Food 5kg", 29.99)

	res, body := api.do(t, http.MethodPut, "/api/products/"+p.ID.Hex(),
		`{"price":39.99}`, adminCookie)

	assert.Equal(t, http.StatusOK, res.Code)
	product := body["product"].(map[string]any)
	assert.Equal(t, 39.99, product["price"])
	assert.Equal(t, "Premium Dog Food 5kg", product["name"], "absent fields keep the stored value")
	assert.Equal(t, "Food", product["category"])
}

func TestUpdateProductValidatesProvidedFields(t *testing.T) {
	api := newTestAPI(t)
	_, adminCookie := api.seedUser(t, "Root", "root@example.com", "hunter22", "admin")
	p := seedProduct(t, api, "Premium Dog Food 5kg", 29.99)

	res, body := api.do(t, http.MethodPut, "/api/products/"+p.ID.Hex(),
		`{"price":-1}`, adminCookie)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "price")
}

func TestCreateProductAllowsZeroPrice(t *testing.T) {
	api := newTestAPI(t)
	_, adminCookie := api.seedUser(t, "Root", "root@example.com", "hunter22", "admin")

	res, body := api.do(t, http.MethodPost, "/api/products",
		`{"name":"Free Sample Treats","category":"Food","price":0}`, adminCookie)

	assert.Equal(t, http.StatusCreated, res.Code)
	product := body["product"].(map[string]any)
	assert.EqualValues(t, 0, product["price"])
}

func TestCreateProductRequiresPrice(t *testing.T) {
	api := newTestAPI(t)
	_, adminCookie := api.seedUser(t, "Root", "root@example.com", "hunter22", "admin")

	res, body := api.do(t, http.MethodPost, "/api/products",
		`{"name":"Chew Bone","category":"Toy"}`, adminCookie)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "price")
}

func TestGetProductNotFound(t *testing.T) {
	api := newTestAPI(t)

	res, body := api.do(t, http.MethodGet, "/api/products/64f1c0ffee0000000000abcd", "")
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Product not found", body["message"])
}

func TestDeleteProduct(t *testing.T) {
	api := newTestAPI(t)
	_, adminCookie := api.seedUser(t, "Root", "root@example.com", "hunter22", "admin")
	p := seedProduct(t, api, "Premium Dog Food 5kg", 29.99)

	res, body := api.do(t, http.MethodDelete, "/api/products/"+p.ID.Hex(), "", adminCookie)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Product deleted successfully", body["message"])
}

func TestUploadProductImageRequiresFile(t *testing.T) {
	api := newTestAPI(t)
	_, adminCookie := api.seedUser(t, "Root", "root@example.com", "hunter22", "admin")
	p := seedProduct(t, api, "Premium Dog Food 5kg", 29.99)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "value"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products/"+p.ID.Hex()+"/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(adminCookie)

	w := httptest.NewRecorder()
	api.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Image file is required")
}

func TestUploadProductImageRejectsBadExtension(t *testing.T) {
	api := newTestAPI(t)
	_, adminCookie := api.seedUser(t, "Root", "root@example.com", "hunter22", "admin")
	p := seedProduct(t, api, "Premium Dog Food 5kg", 29.99)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "malware.exe")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not an image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products/"+p.ID.Hex()+"/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(adminCookie)

	w := httptest.NewRecorder()
	api.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unsupported image type")
}
