// Package repositories defines the persistence contracts and their MongoDB
// implementations. In-memory implementations of the same interfaces back
// the handler tests.
package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pawvilla/pawvilla/app/models"
)

// ErrNotFound is returned when the target document does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when a write would violate email uniqueness.
var ErrDuplicateEmail = errors.New("email already in use")

// UserRepository handles persistence for User.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByRole(ctx context.Context, role string) ([]models.User, error)
	Search(ctx context.Context, query string, limit int64) ([]models.User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	Recent(ctx context.Context, role string, limit int64) ([]models.User, error)
}

// PetRepository handles persistence for Pet.
type PetRepository interface {
	Create(ctx context.Context, p *models.Pet) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Pet, error)
	Update(ctx context.Context, p *models.Pet) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	All(ctx context.Context) ([]models.Pet, error)
	Search(ctx context.Context, query string, limit int64) ([]models.Pet, error)
	ByOwner(ctx context.Context, ownerName string) ([]models.Pet, error)
	ByType(ctx context.Context, petType string) ([]models.Pet, error)
	Stats(ctx context.Context) (*models.PetStats, error)
}

// DoctorRepository handles persistence for Doctor.
type DoctorRepository interface {
	Create(ctx context.Context, d *models.Doctor) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error)
	Update(ctx context.Context, d *models.Doctor) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListActive(ctx context.Context) ([]models.Doctor, error)
	Count(ctx context.Context) (int64, error)
}

// ProductRepository handles persistence for Product.
type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, category, nameQuery string) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
}

// OrderRepository handles persistence for Order.
type OrderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	ByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
}

// AppointmentRepository handles persistence for Appointment.
type AppointmentRepository interface {
	Create(ctx context.Context, a *models.Appointment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error)
	ByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Appointment, error)
	AllWithOwner(ctx context.Context) ([]models.AppointmentWithOwner, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Appointment, error)
}
