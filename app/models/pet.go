package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PetTypes is the fixed enumeration of accepted pet types.
var PetTypes = []string{"dog", "cat", "cow", "other"}

// IsValidPetType reports whether t is an accepted type, case-insensitively.
func IsValidPetType(t string) bool {
	t = strings.ToLower(t)
	for _, v := range PetTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Pet is a clinic pet record. Pets are clinic-wide data with no owner
// account binding; ownerName is free text.
type Pet struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name                string             `bson:"name" json:"name"`
	Type                string             `bson:"type" json:"type"`
	DateOfBirth         time.Time          `bson:"dateOfBirth" json:"dateOfBirth"`
	LastVaccinationDate *time.Time         `bson:"lastVaccinationDate,omitempty" json:"lastVaccinationDate,omitempty"`
	Weight              float64            `bson:"weight" json:"weight"`
	OwnerName           string             `bson:"ownerName" json:"ownerName"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PetSummary is the trimmed projection used by the stats endpoint.
type PetSummary struct {
	Name      string    `bson:"name" json:"name"`
	Type      string    `bson:"type" json:"type"`
	OwnerName string    `bson:"ownerName" json:"ownerName"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// PetStats aggregates the collection for the dashboard.
type PetStats struct {
	TotalPets     int64            `json:"totalPets"`
	PetsByType    map[string]int64 `json:"petsByType"`
	AverageWeight float64          `json:"averageWeight"`
	RecentPets    []PetSummary     `json:"recentPets"`
}
