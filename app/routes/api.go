// Package routes mounts the API surface onto the router.
package routes

import (
	"net/http"

	"github.com/pawvilla/pawvilla/app/controllers"
	appmw "github.com/pawvilla/pawvilla/app/middleware"
	"github.com/pawvilla/pawvilla/app/repositories"
	"github.com/pawvilla/pawvilla/app/services"
	"github.com/pawvilla/pawvilla/pkg/ctx"
	"github.com/pawvilla/pawvilla/pkg/metrics"
	"github.com/pawvilla/pawvilla/pkg/middleware"
	"github.com/pawvilla/pawvilla/pkg/router"
	"github.com/pawvilla/pawvilla/pkg/ws"
)

// Deps collects everything the route table needs.
type Deps struct {
	Users        repositories.UserRepository
	Pets         repositories.PetRepository
	Doctors      repositories.DoctorRepository
	Products     repositories.ProductRepository
	Orders       repositories.OrderRepository
	Appointments repositories.AppointmentRepository
	Hub          *ws.Hub
}

// Register mounts every API route. The hub must already be running.
func Register(r *router.Router, d Deps) {
	authSvc := services.NewAuthService(d.Users)
	orderSvc := services.NewOrderService(d.Orders, d.Products)

	authCtl := controllers.NewAuthController(authSvc)
	userCtl := controllers.NewUserController(d.Users)
	adminCtl := controllers.NewAdminController(d.Users, d.Products, d.Doctors)
	petCtl := controllers.NewPetController(d.Pets)
	doctorCtl := controllers.NewDoctorController(d.Doctors)
	productCtl := controllers.NewProductController(d.Products)
	orderCtl := controllers.NewOrderController(orderSvc)
	paymentCtl := controllers.NewPaymentController(d.Users)
	apptCtl := controllers.NewAppointmentController(d.Appointments, d.Hub)

	protect := appmw.Protect(d.Users)

	// Login and register share one limiter so a client cannot rotate
	// between them to dodge the cap.
	loginLimiter := middleware.NewRateLimiter(1, 10)

	auth := r.Group("/api/auth")
	auth.Post("/register", "auth.register", ctx.Wrap(authCtl.Register), loginLimiter.Middleware)
	auth.Post("/login", "auth.login", ctx.Wrap(authCtl.Login), loginLimiter.Middleware)
	auth.Post("/logout", "auth.logout", ctx.Wrap(authCtl.Logout))
	auth.Get("/me", "auth.me", ctx.Wrap(authCtl.Me), protect)

	users := r.Group("/api/users", protect)
	users.Get("/profile", "users.profile", ctx.Wrap(userCtl.Profile))
	users.Put("/profile", "users.profile.update", ctx.Wrap(userCtl.UpdateProfile))
	users.Put("/password", "users.password.update", ctx.Wrap(userCtl.UpdatePassword))
	users.Delete("/account", "users.account.delete", ctx.Wrap(userCtl.DeleteAccount))
	users.Get("/search", "users.search", ctx.Wrap(userCtl.Search))

	admin := r.Group("/api/admin", protect, appmw.AdminOnly)
	admin.Get("/admins", "admin.list", ctx.Wrap(adminCtl.ListAdmins))
	admin.Post("/admins", "admin.create", ctx.Wrap(adminCtl.CreateAdmin))
	admin.Put("/admins/{id}", "admin.update", ctx.Wrap(adminCtl.UpdateAdmin))
	admin.Delete("/admins/{id}", "admin.delete", ctx.Wrap(adminCtl.DeleteAdmin))
	admin.Get("/stats", "admin.stats", ctx.Wrap(adminCtl.Stats))

	// The pet registry is public. Fixed segments mount before /{id} so
	// "search", "stats", and friends never match as an id.
	pets := r.Group("/api/pets")
	pets.Get("/", "pets.index", ctx.Wrap(petCtl.List))
	pets.Post("/", "pets.create", ctx.Wrap(petCtl.Create))
	pets.Get("/search", "pets.search", ctx.Wrap(petCtl.Search))
	pets.Get("/stats", "pets.stats", ctx.Wrap(petCtl.Stats))
	pets.Get("/owner/{ownerName}", "pets.by_owner", ctx.Wrap(petCtl.ByOwner))
	pets.Get("/type/{type}", "pets.by_type", ctx.Wrap(petCtl.ByType))
	pets.Get("/{id}", "pets.show", ctx.Wrap(petCtl.Get))
	pets.Put("/{id}", "pets.update", ctx.Wrap(petCtl.Update))
	pets.Delete("/{id}", "pets.delete", ctx.Wrap(petCtl.Delete))

	doctors := r.Group("/api/doctors")
	doctors.Get("/", "doctors.index", ctx.Wrap(doctorCtl.List))
	doctors.Post("/", "doctors.create", ctx.Wrap(doctorCtl.Create), protect, appmw.AdminOnly)
	doctors.Put("/{id}", "doctors.update", ctx.Wrap(doctorCtl.Update), protect, appmw.AdminOnly)
	doctors.Delete("/{id}", "doctors.delete", ctx.Wrap(doctorCtl.Delete), protect, appmw.AdminOnly)

	products := r.Group("/api/products")
	products.Get("/", "products.index", ctx.Wrap(productCtl.List))
	products.Get("/{id}", "products.show", ctx.Wrap(productCtl.Get))
	products.Post("/", "products.create", ctx.Wrap(productCtl.Create), protect, appmw.AdminOnly)
	products.Put("/{id}", "products.update", ctx.Wrap(productCtl.Update), protect, appmw.AdminOnly)
	products.Post("/{id}/image", "products.image", ctx.Wrap(productCtl.UploadImage), protect, appmw.AdminOnly)
	products.Delete("/{id}", "products.delete", ctx.Wrap(productCtl.Delete), protect, appmw.AdminOnly)

	orders := r.Group("/api/orders", protect)
	orders.Post("/", "orders.checkout", ctx.Wrap(orderCtl.Checkout))
	orders.Get("/my", "orders.mine", ctx.Wrap(orderCtl.History))

	payment := r.Group("/api/payment/methods", protect)
	payment.Get("/", "payment.index", ctx.Wrap(paymentCtl.List))
	payment.Post("/", "payment.add", ctx.Wrap(paymentCtl.Add))
	payment.Put("/{id}", "payment.update", ctx.Wrap(paymentCtl.Update))
	payment.Delete("/{id}", "payment.delete", ctx.Wrap(paymentCtl.Delete))

	appts := r.Group("/api/appointments", protect)
	appts.Post("/", "appointments.create", ctx.Wrap(apptCtl.Create))
	appts.Get("/my", "appointments.mine", ctx.Wrap(apptCtl.Mine))
	appts.Get("/all", "appointments.all", ctx.Wrap(apptCtl.All), appmw.AdminOnly)
	appts.Put("/{id}/status", "appointments.status", ctx.Wrap(apptCtl.UpdateStatus), appmw.AdminOnly)
	appts.Get("/ws", "appointments.ws", ctx.Wrap(apptCtl.Socket), appmw.AdminOnly)

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"OK"}`)) //nolint:errcheck
	})
}
