package main

import (
	"fmt"
	"log"

	"group_order_tracker/internal/config"
	"group_order_tracker/internal/database"
	"group_order_tracker/internal/migrations"
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
	if err := migrations.Reset(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed a small sample catalog
	fmt.Println("Seeding sample catalog...")
	migrations.SeedSampleCatalog(db)

	fmt.Println("Database initialization completed successfully!")
}
