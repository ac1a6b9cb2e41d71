package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawvilla/pawvilla/app/models"
)

func TestListDoctorsShowsOnlyActive(t *testing.T) {
	api := newTestAPI(t)

	active := &models.Doctor{Name: "Dr. Samantha Perera", Title: "Chief Veterinarian", Specialization: "Small Animal Medicine", ExperienceYears: 15, IsActive: true}
	retired := &models.Doctor{Name: "Dr. Gone", Title: "Veterinarian", Specialization: "General", ExperienceYears: 30, IsActive: false}
	require.NoError(t, api.doctors.Create(t.Context(), active))
	require.NoError(t, api.doctors.Create(t.Context(), retired))

	res, body := api.do(t, http.MethodGet, "/api/doctors", "")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, 1, body["count"])

	doctors := body["doctors"].([]any)
	assert.Equal(t, "Dr. Samantha Perera", doctors[0].(map[string]any)["name"])
}

func TestCreateDoctorAdminOnly(t *testing.T) {
	api := newTestAPI(t)
	_, userCookie := api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")
	_, adminCookie := api.seedUser(t, "Root", "root@example.com", "hunter22", "admin")

	payload := `{"name":"Dr. Rukshan Silva","title":"Senior Veterinarian","specialization":"Emergency Care","experienceYears":12}`

	res, _ := api.do(t, http.MethodPost, "/api/doctors", payload, userCookie)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res, body := api.do(t, http.MethodPost, "/api/doctors", payload, adminCookie)
	assert.Equal(t, http.StatusCreated, res.Code)
	doctor := body["doctor"].(map[string]any)
	assert.Equal(t, true, doctor["isActive"], "doctors default to active")
}

func TestUpdateDoctorNotFound(t *testing.T) {
	api := newTestAPI(t)
	_, adminCookie := api.seedUser(t, "Root", "root@example.com", "hunter22", "admin")

	res, body := api.do(t, http.MethodPut, "/api/doctors/64f1c0ffee0000000000abcd",
		`{"name":"Dr. Nobody","title":"Veterinarian","specialization":"General"}`, adminCookie)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Doctor not found", body["message"])
}

func TestDeleteDoctor(t *testing.T) {
	api := newTestAPI(t)
	_, adminCookie := api.seedUser(t, "Root", "root@example.com", "hunter22", "admin")

	d := &models.Doctor{Name: "Dr. Niluka Fernando", Title: "Veterinary Surgeon", Specialization: "Surgical Procedures", ExperienceYears: 8, IsActive: true}
	require.NoError(t, api.doctors.Create(t.Context(), d))

	res, body := api.do(t, http.MethodDelete, "/api/doctors/"+d.ID.Hex(), "", adminCookie)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Doctor deleted successfully", body["message"])
}
