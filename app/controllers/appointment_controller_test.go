package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookingBody = `{
	"petName": "Rex",
	"petType": "dog",
	"serviceType": "Vaccination",
	"appointmentDate": "2026-10-01",
	"appointmentTime": "10:30",
	"veterinarian": "Dr. Samantha Perera",
	"notes": "first shots"
}`

func TestBookAppointment(t *testing.T) {
	api := newTestAPI(t)
	_, cookie := api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")

	res, body := api.do(t, http.MethodPost, "/api/appointments", bookingBody, cookie)

	assert.Equal(t, http.StatusCreated, res.Code)
	assert.Equal(t, "Appointment booked successfully", body["message"])

	appt, ok := body["appointment"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Pending", appt["status"], "new bookings always start Pending")
	assert.Equal(t, "Vaccination", appt["serviceType"])
}

func TestBookAppointmentInvalidServiceType(t *testing.T) {
	api := newTestAPI(t)
	_, cookie := api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")

	res, body := api.do(t, http.MethodPost, "/api/appointments",
		`{"petName":"Rex","petType":"dog","serviceType":"Massage","appointmentDate":"2026-10-01","appointmentTime":"10:30"}`,
		cookie)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t,
		"Service type must be one of: Vaccination, Grooming, Checkup, Surgery, Dental",
		body["message"])
}

func TestMyAppointments(t *testing.T) {
	api := newTestAPI(t)
	_, jamieCookie := api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")
	_, morganCookie := api.seedUser(t, "Morgan", "morgan@example.com", "hunter22", "user")

	res, _ := api.do(t, http.MethodPost, "/api/appointments", bookingBody, jamieCookie)
	require.Equal(t, http.StatusCreated, res.Code)

	_, body := api.do(t, http.MethodGet, "/api/appointments/my", "", jamieCookie)
	assert.EqualValues(t, 1, body["count"])

	_, body = api.do(t, http.MethodGet, "/api/appointments/my", "", morganCookie)
	assert.EqualValues(t, 0, body["count"], "users only see their own bookings")
}

func TestAllAppointmentsAdminOnly(t *testing.T) {
	api := newTestAPI(t)
	_, userCookie := api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")
	_, adminCookie := api.seedUser(t, "Root", "root@example.com", "hunter22", "admin")

	res, _ := api.do(t, http.MethodPost, "/api/appointments", bookingBody, userCookie)
	require.Equal(t, http.StatusCreated, res.Code)

	res, body := api.do(t, http.MethodGet, "/api/appointments/all", "", userCookie)
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Equal(t, "Access denied. Admin only.", body["message"])

	res, body = api.do(t, http.MethodGet, "/api/appointments/all", "", adminCookie)
	assert.Equal(t, http.StatusOK, res.Code)
	appts := body["appointments"].([]any)
	require.Len(t, appts, 1)
	joined := appts[0].(map[string]any)
	assert.Equal(t, "Jamie", joined["ownerName"])
	assert.Equal(t, "jamie@example.com", joined["ownerEmail"])
}

func TestUpdateAppointmentStatus(t *testing.T) {
	api := newTestAPI(t)
	_, userCookie := api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")
	_, adminCookie := api.seedUser(t, "Root", "root@example.com", "hunter22", "admin")

	res, created := api.do(t, http.MethodPost, "/api/appointments", bookingBody, userCookie)
	require.Equal(t, http.StatusCreated, res.Code)
	id := created["appointment"].(map[string]any)["_id"].(string)

	// Status changes are an admin-only operation.
	res, body := api.do(t, http.MethodPut, "/api/appointments/"+id+"/status",
		`{"status":"Confirmed"}`, userCookie)
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Equal(t, "Access denied. Admin only.", body["message"])

	res, body = api.do(t, http.MethodPut, "/api/appointments/"+id+"/status",
		`{"status":"Confirmed"}`, adminCookie)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Confirmed", body["appointment"].(map[string]any)["status"])
}

func TestUpdateAppointmentStatusInvalid(t *testing.T) {
	api := newTestAPI(t)
	_, userCookie := api.seedUser(t, "Jamie", "jamie@example.com", "hunter22", "user")
	_, adminCookie := api.seedUser(t, "Root", "root@example.com", "hunter22", "admin")

	res, created := api.do(t, http.MethodPost, "/api/appointments", bookingBody, userCookie)
	require.Equal(t, http.StatusCreated, res.Code)
	id := created["appointment"].(map[string]any)["_id"].(string)

	res, body := api.do(t, http.MethodPut, "/api/appointments/"+id+"/status",
		`{"status":"Teleported"}`, adminCookie)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t,
		"Status must be one of: Pending, Confirmed, Completed, Cancelled",
		body["message"])
}

func TestUpdateAppointmentStatusNotFound(t *testing.T) {
	api := newTestAPI(t)
	_, adminCookie := api.seedUser(t, "Root", "root@example.com", "hunter22", "admin")

	res, body := api.do(t, http.MethodPut, "/api/appointments/64f1c0ffee0000000000abcd/status",
		`{"status":"Confirmed"}`, adminCookie)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Appointment not found", body["message"])
}
