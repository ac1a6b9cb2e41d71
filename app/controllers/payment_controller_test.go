package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addCard(t *testing.T, api *testAPI, cookie *http.Cookie) map[string]any {
	t.Helper()
	res, body := api.do(t, http.MethodPost, "/api/payment/methods",
		`{"brand":"Visa","last4":"4242","expMonth":12,"expYear":2027,"label":"Personal"}`, cookie)
	require.Equal(t, http.StatusCreated, res.Code, "body: %v", body)
	methods, ok := body["paymentMethods"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, methods)
	return methods[len(methods)-1].(map[string]any)
}

func TestAddPaymentMethod(t *testing.T) {
	api := newTestAPI(t)
	_, cookie := api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")

	method := addCard(t, api, cookie)
	assert.NotEmpty(t, method["id"], "server must assign the id")
	assert.Equal(t, "Visa", method["brand"])
	assert.Equal(t, "4242", method["last4"])
	assert.EqualValues(t, 12, method["expMonth"])

	// Each add responds with the whole updated list.
	_, body := api.do(t, http.MethodPost, "/api/payment/methods",
		`{"brand":"Amex","last4":"0005","expMonth":6,"expYear":2028}`, cookie)
	methods := body["paymentMethods"].([]any)
	assert.Len(t, methods, 2)
}

func TestAddPaymentMethodMissingFields(t *testing.T) {
	api := newTestAPI(t)
	_, cookie := api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")

	res, body := api.do(t, http.MethodPost, "/api/payment/methods",
		`{"brand":"Visa"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Missing card fields", body["message"])
}

func TestAddPaymentMethodInvalidDetails(t *testing.T) {
	api := newTestAPI(t)
	_, cookie := api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")

	res, body := api.do(t, http.MethodPost, "/api/payment/methods",
		`{"brand":"Visa","last4":"42","expMonth":12,"expYear":2027}`, cookie)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Invalid card details", body["message"])

	res, body = api.do(t, http.MethodPost, "/api/payment/methods",
		`{"brand":"Visa","last4":"4242","expMonth":13,"expYear":2027}`, cookie)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Invalid card details", body["message"])
}

func TestListPaymentMethodsIsPerUser(t *testing.T) {
	api := newTestAPI(t)
	_, jamieCookie := api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")
	_, morganCookie := api.seedUser(t, "Morgan", "morgan@example.com", "hunter22", "user")
	addCard(t, api, jamieCookie)

	res, body := api.do(t, http.MethodGet, "/api/payment/methods", "", morganCookie)
	assert.Equal(t, http.StatusOK, res.Code)
	methods, ok := body["paymentMethods"].([]any)
	require.True(t, ok)
	assert.Empty(t, methods, "users never see each other's cards")
}

func TestUpdatePaymentMethodLabelOnly(t *testing.T) {
	api := newTestAPI(t)
	user, cookie := api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")
	method := addCard(t, api, cookie)

	res, body := api.do(t, http.MethodPut, "/api/payment/methods/"+method["id"].(string),
		`{"label":"Work card","last4":"9999"}`, cookie)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Payment method updated", body["message"])
	methods := body["paymentMethods"].([]any)
	require.Len(t, methods, 1)
	assert.Equal(t, "Work card", methods[0].(map[string]any)["label"])

	stored, err := api.users.FindByID(t.Context(), user.ID)
	require.NoError(t, err)
	require.Len(t, stored.SavedPaymentMethods, 1)
	assert.Equal(t, "Work card", stored.SavedPaymentMethods[0].Label)
	assert.Equal(t, "4242", stored.SavedPaymentMethods[0].Last4,
		"card details are immutable through update")

	// A body without a label field leaves the label alone.
	res, _ = api.do(t, http.MethodPut, "/api/payment/methods/"+method["id"].(string),
		`{}`, cookie)
	assert.Equal(t, http.StatusOK, res.Code)
	stored, err = api.users.FindByID(t.Context(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Work card", stored.SavedPaymentMethods[0].Label)
}

func TestUpdatePaymentMethodNotFound(t *testing.T) {
	api := newTestAPI(t)
	_, cookie := api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")

	res, body := api.do(t, http.MethodPut, "/api/payment/methods/no-such-id",
		`{"label":"x"}`, cookie)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Card not found", body["message"])
}

func TestDeletePaymentMethod(t *testing.T) {
	api := newTestAPI(t)
	user, cookie := api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")
	method := addCard(t, api, cookie)

	res, body := api.do(t, http.MethodDelete, "/api/payment/methods/"+method["id"].(string), "", cookie)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Payment method removed", body["message"])
	methods, ok := body["paymentMethods"].([]any)
	require.True(t, ok, "delete responds with the remaining list")
	assert.Empty(t, methods)

	stored, err := api.users.FindByID(t.Context(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.SavedPaymentMethods)

	res, body = api.do(t, http.MethodDelete, "/api/payment/methods/"+method["id"].(string), "", cookie)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Card not found", body["message"])
}
