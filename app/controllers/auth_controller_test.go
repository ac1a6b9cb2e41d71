package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	api := newTestAPI(t)

	res, body := api.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"Jamie","email":"Jamie@Example.com","password":"hunter22"}`)

	assert.Equal(t, http.StatusCreated, res.Code)
	assert.Equal(t, true, body["success"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Jamie", user["name"])
	assert.Equal(t, "jamie@example.com", user["email"], "email should be stored lowercased")
	assert.Equal(t, "user", user["role"])
	assert.NotContains(t, user, "password", "password hash must never leave the API")

	cookie := sessionCookie(res)
	require.NotNil(t, cookie, "register should open a session")
	assert.True(t, cookie.HttpOnly)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	api := newTestAPI(t)
	api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")

	res, body := api.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"Other","email":"jamie@example.com","password":"hunter22"}`)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "User already exists", body["message"])
}

func TestRegisterValidation(t *testing.T) {
	api := newTestAPI(t)

	res, body := api.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"J","email":"bad","password":"123"}`)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Validation failed", body["message"])
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t)
	api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")

	res, body := api.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"jamie@example.com","password":"hunter22"}`)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, true, body["success"])
	require.NotNil(t, sessionCookie(res))
}

func TestLoginWrongPassword(t *testing.T) {
	api := newTestAPI(t)
	api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")

	res, body := api.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"jamie@example.com","password":"wrong-pass"}`)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "Invalid email or password", body["message"])
}

func TestLoginUnknownEmail(t *testing.T) {
	api := newTestAPI(t)

	res, body := api.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"ghost@example.com","password":"whatever1"}`)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "Invalid email or password", body["message"])
}

func TestMe(t *testing.T) {
	api := newTestAPI(t)
	user, cookie := api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")

	res, body := api.do(t, http.MethodGet, "/api/auth/me", "", cookie)

	assert.Equal(t, http.StatusOK, res.Code)
	me, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, user.ID.Hex(), me["_id"])
}

func TestMeWithoutSession(t *testing.T) {
	api := newTestAPI(t)

	res, body := api.do(t, http.MethodGet, "/api/auth/me", "")

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "Not authorized, no token", body["message"])
}

func TestLogoutClearsCookie(t *testing.T) {
	api := newTestAPI(t)
	_, cookie := api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")

	res, body := api.do(t, http.MethodPost, "/api/auth/logout", "", cookie)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Logged out successfully", body["message"])

	cleared := sessionCookie(res)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
