package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment service types.
var ServiceTypes = []string{"Vaccination", "Grooming", "Checkup", "Surgery", "Dental"}

// Appointment status values.
var AppointmentStatuses = []string{"Pending", "Confirmed", "Completed", "Cancelled"}

const AppointmentPending = "Pending"

// IsValidServiceType reports whether s is an accepted service type.
func IsValidServiceType(s string) bool {
	for _, v := range ServiceTypes {
		if s == v {
			return true
		}
	}
	return false
}

// IsValidAppointmentStatus reports whether s is an accepted status.
func IsValidAppointmentStatus(s string) bool {
	for _, v := range AppointmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Appointment is a booked clinic visit owned by a user account.
type Appointment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PetOwner        primitive.ObjectID `bson:"petOwner" json:"petOwner"`
	PetName         string             `bson:"petName" json:"petName"`
	PetType         string             `bson:"petType" json:"petType"`
	ServiceType     string             `bson:"serviceType" json:"serviceType"`
	AppointmentDate time.Time          `bson:"appointmentDate" json:"appointmentDate"`
	AppointmentTime string             `bson:"appointmentTime" json:"appointmentTime"`
	Veterinarian    string             `bson:"veterinarian" json:"veterinarian"`
	Status          string             `bson:"status" json:"status"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AppointmentWithOwner joins in the owner's name and email for the admin
// listing.
type AppointmentWithOwner struct {
	Appointment `bson:",inline"`
	OwnerName   string `bson:"ownerName" json:"ownerName"`
	OwnerEmail  string `bson:"ownerEmail" json:"ownerEmail"`
}
