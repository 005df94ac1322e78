package main

import (
	"log"

	"garage-backend/internal/config"
	"garage-backend/internal/database"
	"garage-backend/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Creates the schema and seeds the default administrator account and the
// quick-service catalog. Safe to run more than once.
func main() {
	cfg := config.Load()
	database.Init(cfg)

	seedAdmin()
	seedServiceCategories()

	log.Println("Initialization complete.")
}

func seedAdmin() {
	var count int64
	database.DB.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		log.Println("Admin user already exists, skipping.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Could not hash default password: %v", err)
	}

	admin := models.User{
		Username:     "admin",
		Email:        "admin@localhost",
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		log.Fatalf("Could not create admin user: %v", err)
	}
	log.Println("Created default admin user (admin/admin123). Change the password after first login.")
}

func seedServiceCategories() {
	// Names match the quick-service type display strings so that adding a
	// quick item with zero cost resolves the seeded base price.
	categories := []models.ServiceCategory{
		{Name: "Oil Change Service", Description: "Engine oil and filter change", BasePrice: decimal.NewFromFloat(450.00)},
		{Name: "Brake System Service", Description: "Brake pad replacement and system check", BasePrice: decimal.NewFromFloat(800.00)},
		{Name: "Suspension Repair", Description: "Suspension system inspection and repair", BasePrice: decimal.NewFromFloat(1200.00)},
		{Name: "Engine Diagnosis", Description: "Comprehensive engine diagnostic check", BasePrice: decimal.NewFromFloat(300.00)},
		{Name: "Tire Rotation & Balancing", Description: "Tire rotation, balancing and replacement", BasePrice: decimal.NewFromFloat(200.00)},
		{Name: "Battery Replacement", Description: "Battery testing and replacement", BasePrice: decimal.NewFromFloat(600.00)},
		{Name: "Air Conditioning Service", Description: "AC system service and repair", BasePrice: decimal.NewFromFloat(750.00)},
	}

	for _, cat := range categories {
		var count int64
		database.DB.Model(&models.ServiceCategory{}).Where("name = ?", cat.Name).Count(&count)
		if count > 0 {
			continue
		}
		cat.IsActive = true
		if err := database.DB.Create(&cat).Error; err != nil {
			log.Printf("Could not seed category %q: %v", cat.Name, err)
		}
	}
}
