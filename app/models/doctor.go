package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Doctor is a veterinarian profile. Read-mostly; mutated only by admins.
type Doctor struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name            string             `bson:"name" json:"name"`
	Title           string             `bson:"title" json:"title"`
	Specialization  string             `bson:"specialization" json:"specialization"`
	ExperienceYears int                `bson:"experienceYears" json:"experienceYears"`
	PhotoURL        string             `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	IsActive        bool               `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
