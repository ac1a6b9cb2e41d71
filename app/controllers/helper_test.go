package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pawvilla/pawvilla/app/models"
	"github.com/pawvilla/pawvilla/app/repositories"
	"github.com/pawvilla/pawvilla/app/routes"
	"github.com/pawvilla/pawvilla/pkg/auth"
	"github.com/pawvilla/pawvilla/pkg/router"
	"github.com/pawvilla/pawvilla/pkg/ws"
)

// testAPI is a fully mounted API backed by in-memory repositories.
type testAPI struct {
	handler http.Handler

	users        *repositories.MemoryUserRepository
	pets         *repositories.MemoryPetRepository
	doctors      *repositories.MemoryDoctorRepository
	products     *repositories.MemoryProductRepository
	orders       *repositories.MemoryOrderRepository
	appointments *repositories.MemoryAppointmentRepository
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	users := repositories.NewMemoryUserRepository()
	api := &testAPI{
		users:        users,
		pets:         repositories.NewMemoryPetRepository(),
		doctors:      repositories.NewMemoryDoctorRepository(),
		products:     repositories.NewMemoryProductRepository(),
		orders:       repositories.NewMemoryOrderRepository(),
		appointments: repositories.NewMemoryAppointmentRepository(users),
	}

	hub := ws.NewHub()
	go hub.Run()

	r := router.New()
	routes.Register(r, routes.Deps{
		Users:        api.users,
		Pets:         api.pets,
		Doctors:      api.doctors,
		Products:     api.products,
		Orders:       api.orders,
		Appointments: api.appointments,
		Hub:          hub,
	})
	api.handler = r.Handler()
	return api
}

// do performs a request and decodes the JSON envelope.
func (a *testAPI) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 && strings.Contains(w.Header().Get("Content-Type"), "json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), "body: %s", w.Body.String())
	}
	return w, decoded
}

// seedUser inserts a user directly and returns it with a session cookie.
func (a *testAPI) seedUser(t *testing.T, name, email, password, role string) (*models.User, *http.Cookie) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{Name: name, Email: email, Password: hash, Role: role}
	require.NoError(t, a.users.Create(t.Context(), user))

	token, err := auth.GenerateToken(user.ID.Hex(), user.Role)
	require.NoError(t, err)
	return user, auth.SessionCookie(token)
}

func sessionCookie(res *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range res.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}
