// Package seeders fills an empty database with the default roster and
// catalog. Every seeder is idempotent: it only inserts when its
// collection is empty.
package seeders

import (
	"context"

	"github.com/pawvilla/pawvilla/app/repositories"
	"github.com/pawvilla/pawvilla/pkg/logger"
)

// Seeder populates one collection.
type Seeder interface {
	Name() string
	Run(ctx context.Context) error
}

// All returns the registered seeders in run order.
func All(doctors repositories.DoctorRepository, products repositories.ProductRepository) []Seeder {
	return []Seeder{
		&DoctorSeeder{doctors: doctors},
		&ProductSeeder{products: products},
	}
}

// Run executes every seeder, logging failures without aborting the rest.
func Run(ctx context.Context, seeders []Seeder) {
	for _, s := range seeders {
		if err := s.Run(ctx); err != nil {
			logger.L.Error("seeder failed", "seeder", s.Name(), "error", err)
			continue
		}
		logger.L.Info("seeder finished", "seeder", s.Name())
	}
}
