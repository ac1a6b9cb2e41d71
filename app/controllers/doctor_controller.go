package controllers

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pawvilla/pawvilla/app/models"
	"github.com/pawvilla/pawvilla/app/repositories"
	"github.com/pawvilla/pawvilla/pkg/cache"
	"github.com/pawvilla/pawvilla/pkg/ctx"
	"github.com/pawvilla/pawvilla/pkg/logger"
)

const doctorsCacheKey = "doctors:list"

// DoctorController serves the public doctor roster and its admin CRUD.
type DoctorController struct {
	doctors repositories.DoctorRepository
}

func NewDoctorController(doctors repositories.DoctorRepository) *DoctorController {
	return &DoctorController{doctors: doctors}
}

// List returns the active doctors. Served from cache when warm.
func (dc *DoctorController) List(c *ctx.Context) {
	var cached []models.Doctor
	if cache.Get(doctorsCacheKey, &cached) {
		c.OK(ctx.M{"doctors": cached, "count": len(cached)})
		return
	}

	doctors, err := dc.doctors.ListActive(c.Context())
	if err != nil {
		logger.WithCtx(c.Context()).Error("doctor list failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not list doctors")
		return
	}
	cache.Set(doctorsCacheKey, doctors, 60*time.Second) //nolint:errcheck
	c.OK(ctx.M{"doctors": doctors, "count": len(doctors)})
}

type doctorInput struct {
	Name            string `json:"name" validate:"required,min=2"`
	Title           string `json:"title" validate:"required"`
	Specialization  string `json:"specialization" validate:"required"`
	ExperienceYears int    `json:"experienceYears" validate:"nullable,gte=0"`
	PhotoURL        string `json:"photoUrl" validate:"nullable,url"`
	IsActive        *bool  `json:"isActive"`
}

// Create adds a doctor to the roster.
func (dc *DoctorController) Create(c *ctx.Context) {
	var in doctorInput
	if !c.BindJSON(&in) {
		return
	}

	doctor := &models.Doctor{
		Name:            in.Name,
		Title:           in.Title,
		Specialization:  in.Specialization,
		ExperienceYears: in.ExperienceYears,
		PhotoURL:        in.PhotoURL,
		IsActive:        true,
	}
	if in.IsActive != nil {
		doctor.IsActive = *in.IsActive
	}

	if err := dc.doctors.Create(c.Context(), doctor); err != nil {
		logger.WithCtx(c.Context()).Error("doctor create failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not create doctor")
		return
	}
	cache.Forget(doctorsCacheKey) //nolint:errcheck
	c.Created(ctx.M{"message": "Doctor created successfully", "doctor": doctor})
}

// Update edits a doctor's details.
func (dc *DoctorController) Update(c *ctx.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Fail(http.StatusBadRequest, "Invalid doctor ID")
		return
	}
	doctor, err := dc.doctors.FindByID(c.Context(), id)
	if err != nil {
		c.NotFound("Doctor not found")
		return
	}

	var in doctorInput
	if !c.BindJSON(&in) {
		return
	}

	doctor.Name = in.Name
	doctor.Title = in.Title
	doctor.Specialization = in.Specialization
	doctor.ExperienceYears = in.ExperienceYears
	doctor.PhotoURL = in.PhotoURL
	if in.IsActive != nil {
		doctor.IsActive = *in.IsActive
	}

	if err := dc.doctors.Update(c.Context(), doctor); err != nil {
		logger.WithCtx(c.Context()).Error("doctor update failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not update doctor")
		return
	}
	cache.Forget(doctorsCacheKey) //nolint:errcheck
	c.OK(ctx.M{"message": "Doctor updated successfully", "doctor": doctor})
}

// Delete removes a doctor from the roster.
func (dc *DoctorController) Delete(c *ctx.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Fail(http.StatusBadRequest, "Invalid doctor ID")
		return
	}
	if err := dc.doctors.Delete(c.Context(), id); err != nil {
		c.NotFound("Doctor not found")
		return
	}
	cache.Forget(doctorsCacheKey) //nolint:errcheck
	c.OK(ctx.M{"message": "Doctor deleted successfully"})
}
