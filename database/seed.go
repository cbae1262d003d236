package database

import (
	"fmt"
	"log"
	"os"

	"github.com/learning-master/api/model"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedInstructors(); err != nil {
		return fmt.Errorf("failed to seed instructors: %w", err)
	}

	if err := s.SeedClasses(); err != nil {
		return fmt.Errorf("failed to seed classes: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedAdminUser creates the default admin user
func (s *Seeder) SeedAdminUser() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Admin user already exists, skipping...")
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		log.Println("⚠️  ADMIN_EMAIL environment variable not set, skipping admin user creation")
		return nil
	}

	admin := &model.User{
		Name:  "System Administrator",
		Email: adminEmail,
		Role:  model.RoleAdmin,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Created admin user: %s\n", admin.Email)
	return nil
}

// SeedInstructors creates sample instructor accounts
func (s *Seeder) SeedInstructors() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleInstructor).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Instructors already exist, skipping...")
		return nil
	}

	instructors := []model.User{
		{
			Name:   "Nimal Perera",
			Email:  "nimal.perera@learning-master.dev",
			Role:   model.RoleInstructor,
			About:  "Full-stack web development instructor",
			Skills: "JavaScript, React, Node.js",
		},
		{
			Name:   "Sanduni Fernando",
			Email:  "sanduni.fernando@learning-master.dev",
			Role:   model.RoleInstructor,
			About:  "Data science and machine learning instructor",
			Skills: "Python, Pandas, TensorFlow",
		},
		{
			Name:   "Kasun Jayawardena",
			Email:  "kasun.jayawardena@learning-master.dev",
			Role:   model.RoleInstructor,
			About:  "Cloud and DevOps instructor",
			Skills: "AWS, Docker, Kubernetes",
		},
	}

	if err := s.db.Create(&instructors).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d instructors\n", len(instructors))
	return nil
}

// SeedClasses creates sample approved classes for the seeded instructors
func (s *Seeder) SeedClasses() error {
	var count int64
	if err := s.db.Model(&model.Class{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Classes already exist, skipping...")
		return nil
	}

	var instructors []model.User
	if err := s.db.Where("role = ?", model.RoleInstructor).Order("id ASC").Find(&instructors).Error; err != nil {
		return err
	}

	if len(instructors) == 0 {
		log.Println("⏭️  No instructors found, skipping class seeding...")
		return nil
	}

	classes := []model.Class{
		{
			Name:            "Modern JavaScript from Scratch",
			Description:     "ES2020+, async programming and the browser platform",
			InstructorName:  instructors[0].Name,
			InstructorEmail: instructors[0].Email,
			Price:           4500,
			AvailableSeats:  30,
			Status:          model.StatusApproved,
		},
		{
			Name:            "React for Working Developers",
			Description:     "Hooks, state management and production build tooling",
			InstructorName:  instructors[0].Name,
			InstructorEmail: instructors[0].Email,
			Price:           6000,
			AvailableSeats:  25,
			Status:          model.StatusApproved,
		},
		{
			Name:            "Practical Machine Learning",
			Description:     "From linear regression to deployed models",
			InstructorName:  instructors[1%len(instructors)].Name,
			InstructorEmail: instructors[1%len(instructors)].Email,
			Price:           8000,
			AvailableSeats:  20,
			Status:          model.StatusApproved,
		},
		{
			Name:            "Kubernetes in Production",
			Description:     "Cluster operations, observability and cost control",
			InstructorName:  instructors[2%len(instructors)].Name,
			InstructorEmail: instructors[2%len(instructors)].Email,
			Price:           7500,
			AvailableSeats:  15,
			Status:          model.StatusPending,
		},
	}

	if err := s.db.Create(&classes).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d classes\n", len(classes))
	return nil
}

// RunSeeds is a convenience function to run all seeds
func RunSeeds(db *gorm.DB) error {
	seeder := NewSeeder(db)
	return seeder.SeedAll()
}
