package seeders

import (
	"context"

	"github.com/pawvilla/pawvilla/app/models"
	"github.com/pawvilla/pawvilla/app/repositories"
)

// DoctorSeeder installs the default veterinarian roster.
type DoctorSeeder struct {
	doctors repositories.DoctorRepository
}

func (s *DoctorSeeder) Name() string { return "doctors" }

func (s *DoctorSeeder) Run(ctx context.Context) error {
	count, err := s.doctors.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.Doctor{
		{Name: "Dr. Samantha Perera", Title: "Chief Veterinarian", Specialization: "Small Animal Medicine", ExperienceYears: 15, IsActive: true},
		{Name: "Dr. Rukshan Silva", Title: "Senior Veterinarian", Specialization: "Emergency Care", ExperienceYears: 12, IsActive: true},
		{Name: "Dr. Niluka Fernando", Title: "Veterinary Surgeon", Specialization: "Surgical Procedures", ExperienceYears: 8, IsActive: true},
	}
	for i := range defaults {
		if err := s.doctors.Create(ctx, &defaults[i]); err != nil {
			return err
		}
	}
	return nil
}
