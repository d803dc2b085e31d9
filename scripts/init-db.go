package main

import (
	"fmt"
	"log"

	"tableside/internal/config"
	"tableside/internal/database"
	"tableside/internal/models"
	"tableside/internal/repository"
	"tableside/internal/services"

	"gorm.io/gorm"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderLine{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	fmt.Println("Recreating tables...")
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	seedAdmin(db, cfg)
	seedMenu(db)

	fmt.Println("Database initialized successfully")
}

func seedAdmin(db *gorm.DB, cfg *config.Config) {
	authService := services.NewAuthService(repository.NewUserRepository(db))
	user, err := authService.CreateUser(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminFullName, cfg.AdminEmail)
	if err != nil {
		log.Fatal("Failed to create admin account:", err)
	}
	fmt.Printf("Created admin account %q (id %d)\n", user.Username, user.ID)
}

func seedMenu(db *gorm.DB) {
	menuService := services.NewMenuService(repository.NewMenuRepository(db))
	defaultItems := []models.MenuItem{
		{Name: "Margherita Pizza", Price: "12.99", Category: "Pizza", Description: "Fresh tomato sauce, mozzarella, basil"},
		{Name: "Chicken Caesar Salad", Price: "9.99", Category: "Salads", Description: "Grilled chicken, romaine, parmesan, croutons"},
		{Name: "Beef Burger", Price: "14.99", Category: "Burgers", Description: "Angus beef patty, lettuce, tomato, onion"},
		{Name: "Pasta Carbonara", Price: "13.99", Category: "Pasta", Description: "Spaghetti with eggs, cheese, pancetta"},
		{Name: "Fish & Chips", Price: "16.99", Category: "Main Course", Description: "Beer battered cod with fries"},
		{Name: "Chocolate Cake", Price: "6.99", Category: "Desserts", Description: "Rich chocolate layer cake"},
		{Name: "Coca Cola", Price: "2.99", Category: "Beverages", Description: "Classic cola drink"},
		{Name: "Coffee", Price: "3.99", Category: "Beverages", Description: "Freshly brewed coffee"},
	}
	for i := range defaultItems {
		if err := menuService.Create(&defaultItems[i]); err != nil {
			log.Fatal("Failed to seed menu:", err)
		}
	}
	fmt.Printf("Seeded %d menu items\n", len(defaultItems))
}
