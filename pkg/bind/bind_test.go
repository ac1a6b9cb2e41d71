package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cardForm struct {
	Brand string `json:"brand" validate:"required"`
	Last4 string `json:"last4" validate:"required,digits=4"`
}

func TestJSONDecodesAndValidates(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"brand":"Visa","last4":"4242"}`))

	var form cardForm
	errs, err := JSON(req, &form)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "Visa", form.Brand)
}

func TestJSONReportsValidationErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"brand":"Visa","last4":"42"}`))

	var form cardForm
	errs, err := JSON(req, &form)
	require.NoError(t, err)
	assert.Equal(t, "The last4 must be 4 digits.", errs["last4"])
}

func TestJSONRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"brand":`))

	var form cardForm
	_, err := JSON(req, &form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestJSONTreatsEmptyBodyAsEmptyObject(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

	var form cardForm
	errs, err := JSON(req, &form)
	require.NoError(t, err, "an absent body is not a syntax error")
	assert.Equal(t, "The brand field is required.", errs["brand"])
	assert.Equal(t, "The last4 field is required.", errs["last4"])
}

func TestJSONRejectsOversizedBody(t *testing.T) {
	t.Setenv("MAX_BODY_BYTES", "16")
	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"brand":"Visa","last4":"4242","padding":"xxxxxxxxxxxxxxxx"}`))

	var form cardForm
	_, err := JSON(req, &form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request body too large")
}
