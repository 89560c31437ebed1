package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/sendbyop/sendbyop-backend/configs"
	"github.com/sendbyop/sendbyop-backend/models"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: false,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.Customer{},
		&models.Flight{},
		&models.Receiver{},
		&models.Booking{},
		&models.Parcel{},
		&models.ParcelPhoto{},
		&models.PlatformSettings{},
		&models.Transaction{},
		&models.RefundableBooking{},
		&models.Review{},
		&models.FlightCancellation{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.Customer{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	admin := models.Customer{
		FirstName: config.Config("ADMIN_FIRST_NAME"),
		LastName:  config.Config("ADMIN_LAST_NAME"),
		Email:     adminEmail,
		Password:  string(hashedPassword),
		Role:      "admin",
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}

// SeedSettings makes sure the platform-settings row exists so the first
// booking does not race the lazy default creation.
func SeedSettings() {
	var count int64
	if err := DB.Model(&models.PlatformSettings{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check platform settings: %v", err)
		return
	}
	if count > 0 {
		return
	}
	defaults := models.DefaultPlatformSettings()
	if err := DB.Create(&defaults).Error; err != nil {
		log.Fatalf("🔥 Failed to seed platform settings: %v", err)
		return
	}
	log.Println("✅ Platform settings seeded with defaults")
}
