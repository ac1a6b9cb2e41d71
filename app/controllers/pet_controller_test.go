package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPet(t *testing.T, api *testAPI, body string) map[string]any {
	t.Helper()
	res, decoded := api.do(t, http.MethodPost, "/api/pets", body)
	require.Equal(t, http.StatusCreated, res.Code, "body: %v", decoded)
	pet, ok := decoded["pet"].(map[string]any)
	require.True(t, ok)
	return pet
}

func TestCreatePet(t *testing.T) {
	api := newTestAPI(t)

	pet := createPet(t, api,
		`{"name":"  Rex ","type":"DOG","dateOfBirth":"2020-05-01","weight":12.5,"ownerName":" Jamie "}`)

	assert.Equal(t, "Rex", pet["name"], "name should be trimmed")
	assert.Equal(t, "dog", pet["type"], "type should be lowercased")
	assert.Equal(t, "Jamie", pet["ownerName"])
	assert.EqualValues(t, 12.5, pet["weight"])
}

func TestCreatePetMissingFields(t *testing.T) {
	api := newTestAPI(t)

	res, body := api.do(t, http.MethodPost, "/api/pets", `{"name":"Rex"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t,
		"Please provide all required fields: name, type, dateOfBirth, weight, ownerName",
		body["message"])
}

func TestCreatePetNegativeWeight(t *testing.T) {
	api := newTestAPI(t)

	res, body := api.do(t, http.MethodPost, "/api/pets",
		`{"name":"Rex","type":"dog","dateOfBirth":"2020-05-01","weight":-3,"ownerName":"Jamie"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Weight must be a positive number", body["message"])
}

func TestCreatePetInvalidType(t *testing.T) {
	api := newTestAPI(t)

	res, body := api.do(t, http.MethodPost, "/api/pets",
		`{"name":"Iggy","type":"iguana","dateOfBirth":"2020-05-01","weight":2,"ownerName":"Jamie"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Pet type must be one of: dog, cat, cow, other", body["message"])
}

func TestGetPet(t *testing.T) {
	api := newTestAPI(t)
	pet := createPet(t, api,
		`{"name":"Rex","type":"dog","dateOfBirth":"2020-05-01","weight":12,"ownerName":"Jamie"}`)

	res, body := api.do(t, http.MethodGet, "/api/pets/"+pet["_id"].(string), "")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Rex", body["pet"].(map[string]any)["name"])
}

func TestGetPetInvalidID(t *testing.T) {
	api := newTestAPI(t)

	res, body := api.do(t, http.MethodGet, "/api/pets/not-hex", "")
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Invalid pet ID", body["message"])
}

func TestGetPetNotFound(t *testing.T) {
	api := newTestAPI(t)

	res, body := api.do(t, http.MethodGet, "/api/pets/64f1c0ffee0000000000abcd", "")
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Pet not found", body["message"])
}

func TestUpdatePet(t *testing.T) {
	api := newTestAPI(t)
	pet := createPet(t, api,
		`{"name":"Rex","type":"dog","dateOfBirth":"2020-05-01","weight":12,"ownerName":"Jamie"}`)

	res, body := api.do(t, http.MethodPut, "/api/pets/"+pet["_id"].(string),
		`{"name":"Rexy","type":"dog","dateOfBirth":"2020-05-01","weight":14,"ownerName":"Jamie"}`)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Pet updated successfully", body["message"])
	assert.EqualValues(t, 14, body["pet"].(map[string]any)["weight"])
}

func TestDeletePet(t *testing.T) {
	api := newTestAPI(t)
	pet := createPet(t, api,
		`{"name":"Rex","type":"dog","dateOfBirth":"2020-05-01","weight":12,"ownerName":"Jamie"}`)

	res, body := api.do(t, http.MethodDelete, "/api/pets/"+pet["_id"].(string), "")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Pet deleted successfully", body["message"])

	res, _ = api.do(t, http.MethodGet, "/api/pets/"+pet["_id"].(string), "")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestSearchPets(t *testing.T) {
	api := newTestAPI(t)
	createPet(t, api, `{"name":"Rex","type":"dog","dateOfBirth":"2020-05-01","weight":12,"ownerName":"Jamie"}`)
	createPet(t, api, `{"name":"Whiskers","type":"cat","dateOfBirth":"2021-03-02","weight":4,"ownerName":"Morgan"}`)

	res, body := api.do(t, http.MethodGet, "/api/pets/search?query=whisk", "")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, 1, body["count"])

	// Matches come back newest-first.
	res, body = api.do(t, http.MethodGet, "/api/pets/search?query=e", "")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, 2, body["count"])
	pets := body["pets"].([]any)
	assert.Equal(t, "Whiskers", pets[0].(map[string]any)["name"])
	assert.Equal(t, "Rex", pets[1].(map[string]any)["name"])

	// A blank query is not an error; it just matches nothing.
	res, body = api.do(t, http.MethodGet, "/api/pets/search", "")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, 0, body["count"])
	assert.Empty(t, body["pets"])
}

func TestPetsByOwnerAndType(t *testing.T) {
	api := newTestAPI(t)
	createPet(t, api, `{"name":"Rex","type":"dog","dateOfBirth":"2020-05-01","weight":12,"ownerName":"Jamie"}`)
	createPet(t, api, `{"name":"Whiskers","type":"cat","dateOfBirth":"2021-03-02","weight":4,"ownerName":"Jamie"}`)

	res, body := api.do(t, http.MethodGet, "/api/pets/owner/jamie", "")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, 2, body["count"])

	res, body = api.do(t, http.MethodGet, "/api/pets/type/cat", "")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, 1, body["count"])

	res, body = api.do(t, http.MethodGet, "/api/pets/type/iguana", "")
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Pet type must be one of: dog, cat, cow, other", body["message"])
}

func TestPetStats(t *testing.T) {
	api := newTestAPI(t)
	createPet(t, api, `{"name":"Rex","type":"dog","dateOfBirth":"2020-05-01","weight":10,"ownerName":"Jamie"}`)
	createPet(t, api, `{"name":"Whiskers","type":"cat","dateOfBirth":"2021-03-02","weight":4,"ownerName":"Morgan"}`)

	res, body := api.do(t, http.MethodGet, "/api/pets/stats", "")
	assert.Equal(t, http.StatusOK, res.Code)

	stats, ok := body["stats"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 2, stats["totalPets"])
	assert.EqualValues(t, 7, stats["averageWeight"])

	byType, ok := stats["petsByType"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, byType["dog"])
	assert.EqualValues(t, 1, byType["cat"])
}
