package config

import (
	"fmt"
	"strings"

	"restaurant-api/logger"
	"restaurant-api/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the first superuser when credentials are configured
func SeedAdmin(db *gorm.DB, seed AdminSeed) error {
	if seed.Email == "" || seed.Password == "" {
		logger.L().Info("seed_admin", "skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD", "", nil)
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", strings.ToLower(seed.Email)).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := models.User{
		Email:        strings.ToLower(seed.Email),
		Username:     "admin",
		FirstName:    "Admin",
		PasswordHash: string(hash),
		IsStaff:      true,
		IsSuperuser:  true,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logger.L().Info("seed_admin", "admin account created", "", map[string]any{"email": seed.Email})
	return nil
}

var sampleMenu = []struct {
	name, description, price string
}{
	{"Margherita Pizza", "Classic pizza with fresh tomatoes, mozzarella, and basil", "12.99"},
	{"Caesar Salad", "Crisp romaine lettuce with parmesan cheese and croutons", "8.99"},
	{"Grilled Salmon", "Fresh Atlantic salmon grilled to perfection with herbs", "18.99"},
	{"Chicken Alfredo", "Creamy pasta with grilled chicken and parmesan cheese", "15.99"},
	{"Chocolate Cake", "Rich chocolate cake with chocolate frosting", "6.99"},
	{"Beef Burger", "Juicy beef patty with lettuce, tomato, and cheese", "11.99"},
	{"Vegetable Stir Fry", "Fresh mixed vegetables stir-fried with soy sauce", "10.99"},
	{"Fish Tacos", "Grilled fish with cabbage slaw in soft tortillas", "13.99"},
}

// SeedMenu inserts the sample menu, skipping items that already exist by name.
// It returns the number of items created.
func SeedMenu(db *gorm.DB) (int, error) {
	created := 0
	for _, s := range sampleMenu {
		item := models.MenuItem{
			Name:        s.name,
			Description: s.description,
			Price:       decimal.RequireFromString(s.price),
			IsAvailable: true,
		}
		res := db.Where("name = ?", s.name).FirstOrCreate(&item)
		if res.Error != nil {
			return created, res.Error
		}
		if res.RowsAffected > 0 {
			created++
		}
	}
	return created, nil
}
