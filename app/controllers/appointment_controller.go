package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pawvilla/pawvilla/app/middleware"
	"github.com/pawvilla/pawvilla/app/models"
	"github.com/pawvilla/pawvilla/app/repositories"
	"github.com/pawvilla/pawvilla/pkg/ctx"
	"github.com/pawvilla/pawvilla/pkg/logger"
	"github.com/pawvilla/pawvilla/pkg/ws"
)

// AppointmentController handles booking and the admin-side status board.
// Status changes are pushed to connected dashboards over the websocket hub.
type AppointmentController struct {
	appts repositories.AppointmentRepository
	hub   *ws.Hub
}

func NewAppointmentController(appts repositories.AppointmentRepository, hub *ws.Hub) *AppointmentController {
	return &AppointmentController{appts: appts, hub: hub}
}

type appointmentInput struct {
	PetName         string `json:"petName" validate:"required"`
	PetType         string `json:"petType" validate:"required"`
	ServiceType     string `json:"serviceType" validate:"required"`
	AppointmentDate string `json:"appointmentDate" validate:"required,date"`
	AppointmentTime string `json:"appointmentTime" validate:"required"`
	Veterinarian    string `json:"veterinarian"`
	Notes           string `json:"notes"`
}

// Create books an appointment for the current user. New bookings always
// start out Pending.
func (ac *AppointmentController) Create(c *ctx.Context) {
	user, _ := middleware.CurrentUser(c.Context())

	var in appointmentInput
	if !c.BindJSON(&in) {
		return
	}

	petType := strings.ToLower(strings.TrimSpace(in.PetType))
	if !models.IsValidPetType(petType) {
		c.Fail(http.StatusBadRequest, "Pet type must be one of: "+strings.Join(models.PetTypes, ", "))
		return
	}
	if !models.IsValidServiceType(in.ServiceType) {
		c.Fail(http.StatusBadRequest, "Service type must be one of: "+strings.Join(models.ServiceTypes, ", "))
		return
	}

	date, ok := parsePetDate(in.AppointmentDate)
	if !ok {
		c.Fail(http.StatusBadRequest, "Invalid appointmentDate format")
		return
	}

	appt := &models.Appointment{
		PetOwner:        user.ID,
		PetName:         strings.TrimSpace(in.PetName),
		PetType:         petType,
		ServiceType:     in.ServiceType,
		AppointmentDate: date,
		AppointmentTime: in.AppointmentTime,
		Veterinarian:    in.Veterinarian,
		Status:          models.AppointmentPending,
		Notes:           in.Notes,
	}
	if err := ac.appts.Create(c.Context(), appt); err != nil {
		logger.WithCtx(c.Context()).Error("appointment create failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not book appointment")
		return
	}
	c.Created(ctx.M{"message": "Appointment booked successfully", "appointment": appt})
}

// Mine returns the current user's appointments, newest first.
func (ac *AppointmentController) Mine(c *ctx.Context) {
	user, _ := middleware.CurrentUser(c.Context())

	appts, err := ac.appts.ByOwner(c.Context(), user.ID)
	if err != nil {
		logger.WithCtx(c.Context()).Error("appointment list failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not list appointments")
		return
	}
	c.OK(ctx.M{"appointments": appts, "count": len(appts)})
}

// All returns every appointment joined with its owner's name and email.
func (ac *AppointmentController) All(c *ctx.Context) {
	appts, err := ac.appts.AllWithOwner(c.Context())
	if err != nil {
		logger.WithCtx(c.Context()).Error("appointment list failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not list appointments")
		return
	}
	c.OK(ctx.M{"appointments": appts, "count": len(appts)})
}

type statusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus moves an appointment to a new status and notifies the
// websocket dashboards.
func (ac *AppointmentController) UpdateStatus(c *ctx.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Fail(http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	var in statusInput
	if !c.BindJSON(&in) {
		return
	}
	if !models.IsValidAppointmentStatus(in.Status) {
		c.Fail(http.StatusBadRequest, "Status must be one of: "+strings.Join(models.AppointmentStatuses, ", "))
		return
	}

	appt, err := ac.appts.UpdateStatus(c.Context(), id, in.Status)
	if err != nil {
		c.NotFound("Appointment not found")
		return
	}

	if ac.hub != nil {
		if msg, err := json.Marshal(map[string]string{
			"id":     appt.ID.Hex(),
			"status": appt.Status,
		}); err == nil {
			ac.hub.Broadcast <- msg
		}
	}

	c.OK(ctx.M{"message": "Appointment status updated", "appointment": appt})
}

// Socket upgrades the request and joins the admin dashboard feed.
func (ac *AppointmentController) Socket(c *ctx.Context) {
	ws.Upgrade(c.W, c.R, ac.hub)
}
