package migrations

import (
	"log"

	"group_order_tracker/internal/database"
	"group_order_tracker/internal/models"
	"group_order_tracker/internal/repository"
	"group_order_tracker/internal/services"

	"gorm.io/gorm"
)

// Reset drops and recreates the full schema. Children are dropped before
// parents so foreign keys never block the teardown.
func Reset(db *gorm.DB) error {
	log.Println("Dropping existing tables...")
	err := db.Migrator().DropTable(
		&models.OrderItem{},
		&models.Order{},
		&models.OrderPeriod{},
		&models.Inventory{},
		&models.Product{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	log.Println("Creating tables...")
	return database.AutoMigrate(db)
}

// SeedSampleCatalog inserts a handful of demo products with stock counts so
// a fresh install has something to order.
func SeedSampleCatalog(db *gorm.DB) {
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	catalogService := services.NewCatalogService(productRepo)
	inventoryService := services.NewInventoryService(inventoryRepo, productRepo)

	samples := []struct {
		name        string
		description string
		quantity    int
	}{
		{"Coffee Beans 1kg", "Whole beans, medium roast", 12},
		{"Olive Oil 1l", "Extra virgin", 8},
		{"Honey 500g", "Local wildflower honey", 0},
	}

	for _, sample := range samples {
		product, err := catalogService.AddProduct(sample.name, sample.description)
		if err != nil {
			log.Printf("Warning: Failed to seed product %q: %v", sample.name, err)
			continue
		}
		if sample.quantity > 0 {
			if _, err := inventoryService.SetQuantity(product.ID, sample.quantity); err != nil {
				log.Printf("Warning: Failed to seed inventory for %q: %v", sample.name, err)
			}
		}
	}
}
