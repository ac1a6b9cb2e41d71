package controllers

import (
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pawvilla/pawvilla/app/models"
	"github.com/pawvilla/pawvilla/app/repositories"
	"github.com/pawvilla/pawvilla/pkg/ctx"
	"github.com/pawvilla/pawvilla/pkg/logger"
)

// PetController handles the public pet registry.
type PetController struct {
	pets repositories.PetRepository
}

func NewPetController(pets repositories.PetRepository) *PetController {
	return &PetController{pets: pets}
}

type petInput struct {
	Name                string  `json:"name"`
	Type                string  `json:"type"`
	DateOfBirth         string  `json:"dateOfBirth"`
	LastVaccinationDate string  `json:"lastVaccinationDate"`
	Weight              float64 `json:"weight"`
	OwnerName           string  `json:"ownerName"`
}

func parsePetDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// validatePetInput enforces the registry's field rules and normalizes the
// input in place. It returns a user-facing message when the input is bad.
func validatePetInput(in *petInput) string {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.OwnerName = strings.TrimSpace(in.OwnerName)

	if in.Name == "" || in.Type == "" || in.DateOfBirth == "" || in.Weight == 0 || in.OwnerName == "" {
		return "Please provide all required fields: name, type, dateOfBirth, weight, ownerName"
	}
	if in.Weight <= 0 {
		return "Weight must be a positive number"
	}
	if !models.IsValidPetType(in.Type) {
		return "Pet type must be one of: " + strings.Join(models.PetTypes, ", ")
	}
	if _, ok := parsePetDate(in.DateOfBirth); !ok {
		return "Invalid dateOfBirth format"
	}
	if in.LastVaccinationDate != "" {
		if _, ok := parsePetDate(in.LastVaccinationDate); !ok {
			return "Invalid lastVaccinationDate format"
		}
	}
	return ""
}

// Create registers a new pet.
func (pc *PetController) Create(c *ctx.Context) {
	var in petInput
	if errs, err := c.ShouldBindJSON(&in); err != nil {
		c.Fail(http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		c.ValidationError(errs)
		return
	}

	if msg := validatePetInput(&in); msg != "" {
		c.Fail(http.StatusBadRequest, msg)
		return
	}

	dob, _ := parsePetDate(in.DateOfBirth)
	pet := &models.Pet{
		Name:        in.Name,
		Type:        in.Type,
		DateOfBirth: dob,
		Weight:      in.Weight,
		OwnerName:   in.OwnerName,
	}
	if in.LastVaccinationDate != "" {
		vax, _ := parsePetDate(in.LastVaccinationDate)
		pet.LastVaccinationDate = &vax
	}

	if err := pc.pets.Create(c.Context(), pet); err != nil {
		logger.WithCtx(c.Context()).Error("pet create failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not create pet")
		return
	}
	c.Created(ctx.M{"message": "Pet created successfully", "pet": pet})
}

// List returns all pets, newest first.
func (pc *PetController) List(c *ctx.Context) {
	pets, err := pc.pets.All(c.Context())
	if err != nil {
		logger.WithCtx(c.Context()).Error("pet list failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not list pets")
		return
	}
	c.OK(ctx.M{"pets": pets, "count": len(pets)})
}

// Get returns one pet by id.
func (pc *PetController) Get(c *ctx.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Fail(http.StatusBadRequest, "Invalid pet ID")
		return
	}
	pet, err := pc.pets.FindByID(c.Context(), id)
	if err != nil {
		c.NotFound("Pet not found")
		return
	}
	c.OK(ctx.M{"pet": pet})
}

// Update replaces a pet's details. The same field rules as Create apply.
func (pc *PetController) Update(c *ctx.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Fail(http.StatusBadRequest, "Invalid pet ID")
		return
	}
	pet, err := pc.pets.FindByID(c.Context(), id)
	if err != nil {
		c.NotFound("Pet not found")
		return
	}

	var in petInput
	if errs, err := c.ShouldBindJSON(&in); err != nil {
		c.Fail(http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		c.ValidationError(errs)
		return
	}
	if msg := validatePetInput(&in); msg != "" {
		c.Fail(http.StatusBadRequest, msg)
		return
	}

	dob, _ := parsePetDate(in.DateOfBirth)
	pet.Name = in.Name
	pet.Type = in.Type
	pet.DateOfBirth = dob
	pet.Weight = in.Weight
	pet.OwnerName = in.OwnerName
	pet.LastVaccinationDate = nil
	if in.LastVaccinationDate != "" {
		vax, _ := parsePetDate(in.LastVaccinationDate)
		pet.LastVaccinationDate = &vax
	}

	if err := pc.pets.Update(c.Context(), pet); err != nil {
		logger.WithCtx(c.Context()).Error("pet update failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not update pet")
		return
	}
	c.OK(ctx.M{"message": "Pet updated successfully", "pet": pet})
}

// Delete removes a pet.
func (pc *PetController) Delete(c *ctx.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Fail(http.StatusBadRequest, "Invalid pet ID")
		return
	}
	if err := pc.pets.Delete(c.Context(), id); err != nil {
		c.NotFound("Pet not found")
		return
	}
	c.OK(ctx.M{"message": "Pet deleted successfully"})
}

// Search matches pets by name, type, or owner name. Capped at 20 results.
func (pc *PetController) Search(c *ctx.Context) {
	q := strings.TrimSpace(c.Query("query"))
	if q == "" {
		c.OK(ctx.M{"pets": []models.Pet{}, "count": 0})
		return
	}
	pets, err := pc.pets.Search(c.Context(), q, 20)
	if err != nil {
		logger.WithCtx(c.Context()).Error("pet search failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Search failed")
		return
	}
	c.OK(ctx.M{"pets": pets, "count": len(pets)})
}

// ByOwner returns pets whose owner name matches, case-insensitively.
func (pc *PetController) ByOwner(c *ctx.Context) {
	owner := c.Param("ownerName")
	pets, err := pc.pets.ByOwner(c.Context(), owner)
	if err != nil {
		logger.WithCtx(c.Context()).Error("pet owner lookup failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Lookup failed")
		return
	}
	c.OK(ctx.M{"pets": pets, "count": len(pets)})
}

// ByType returns pets of the given type.
func (pc *PetController) ByType(c *ctx.Context) {
	petType := strings.ToLower(c.Param("type"))
	if !models.IsValidPetType(petType) {
		c.Fail(http.StatusBadRequest, "Pet type must be one of: "+strings.Join(models.PetTypes, ", "))
		return
	}
	pets, err := pc.pets.ByType(c.Context(), petType)
	if err != nil {
		logger.WithCtx(c.Context()).Error("pet type lookup failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Lookup failed")
		return
	}
	c.OK(ctx.M{"pets": pets, "count": len(pets)})
}

// Stats returns registry-wide aggregates.
func (pc *PetController) Stats(c *ctx.Context) {
	stats, err := pc.pets.Stats(c.Context())
	if err != nil {
		logger.WithCtx(c.Context()).Error("pet stats failed", "error", err)
		c.Fail(http.StatusInternalServerError, "Could not load stats")
		return
	}
	c.OK(ctx.M{"stats": stats})
}
