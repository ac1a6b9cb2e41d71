package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account record. Password holds the bcrypt hash and is never
// serialised; emails are stored lowercased so the unique index enforces
// case-insensitive uniqueness.
type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name                string             `bson:"name" json:"name"`
	Email               string             `bson:"email" json:"email"`
	Password            string             `bson:"password" json:"-"`
	Role                string             `bson:"role" json:"role"`
	Phone               string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address             string             `bson:"address,omitempty" json:"address,omitempty"`
	Bio                 string             `bson:"bio,omitempty" json:"bio,omitempty"`
	SavedPaymentMethods []PaymentMethod    `bson:"savedPaymentMethods" json:"savedPaymentMethods"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// PaymentMethod is masked card metadata embedded in the owning user.
// Only the brand, last four digits and expiry are ever accepted or stored —
// never a full card number or CVV.
type PaymentMethod struct {
	ID       string `bson:"id" json:"id"`
	Brand    string `bson:"brand" json:"brand"`
	Last4    string `bson:"last4" json:"last4"`
	ExpMonth int    `bson:"expMonth" json:"expMonth"`
	ExpYear  int    `bson:"expYear" json:"expYear"`
	Label    string `bson:"label,omitempty" json:"label,omitempty"`
}

// PaymentMethodByID returns a pointer into SavedPaymentMethods, or nil.
func (u *User) PaymentMethodByID(id string) *PaymentMethod {
	for i := range u.SavedPaymentMethods {
		if u.SavedPaymentMethods[i].ID == id {
			return &u.SavedPaymentMethods[i]
		}
	}
	return nil
}

// RemovePaymentMethod deletes the method with the given id.
// Returns false when no method matches.
func (u *User) RemovePaymentMethod(id string) bool {
	for i := range u.SavedPaymentMethods {
		if u.SavedPaymentMethods[i].ID == id {
			u.SavedPaymentMethods = append(
				u.SavedPaymentMethods[:i], u.SavedPaymentMethods[i+1:]...)
			return true
		}
	}
	return false
}
