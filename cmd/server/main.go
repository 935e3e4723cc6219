package main

import (
	"log"
	"time"

	"group_order_tracker/internal/config"
	"group_order_tracker/internal/database"
	"group_order_tracker/internal/handlers"
	"group_order_tracker/internal/redis"
	"group_order_tracker/internal/repository"
	"group_order_tracker/internal/services"
	"group_order_tracker/pkg/discord"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize Discord client
	discordClient := discord.NewClient(cfg.DiscordAPIURL, cfg.DiscordBotToken)

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	periodRepo := repository.NewOrderPeriodRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	catalogService := services.NewCatalogService(productRepo)
	inventoryService := services.NewInventoryService(inventoryRepo, productRepo)
	periodService := services.NewPeriodService(periodRepo)
	orderService := services.NewOrderService(orderRepo, periodRepo)
	botService := services.NewBotService(discordClient, redisClient,
		time.Duration(cfg.SessionTimeout)*time.Second)

	// Initialize handlers
	webHandler := handlers.NewWebHandler(catalogService, inventoryService, periodService, orderService)
	apiHandler := handlers.NewAPIHandler(catalogService, inventoryService, periodService, orderService)
	discordHandler := handlers.NewDiscordHandler(botService, catalogService, inventoryService,
		periodService, orderService, cfg.DiscordWebhookSecret)

	// Setup routes
	router := gin.Default()
	router.LoadHTMLGlob("web/templates/*.html")

	// Web UI
	router.GET("/", webHandler.Index)
	router.GET("/products", webHandler.Products)
	router.POST("/products/add", webHandler.AddProduct)
	router.POST("/products/update", webHandler.UpdateProduct)
	router.POST("/products/:id/delete", webHandler.DeleteProduct)
	router.GET("/inventory", webHandler.Inventory)
	router.POST("/inventory/update", webHandler.UpdateInventory)
	router.GET("/order_periods", webHandler.OrderPeriods)
	router.POST("/order_periods/create", webHandler.CreateOrderPeriod)
	router.POST("/order_periods/:id/toggle", webHandler.ToggleOrderPeriod)
	router.GET("/orders", webHandler.Orders)
	router.POST("/orders/add", webHandler.AddOrder)
	router.POST("/orders/:id/delete", webHandler.DeleteOrder)
	router.POST("/orders/:id/toggle-delivery", webHandler.ToggleOrderDelivery)

	// JSON API
	api := router.Group("/api")
	{
		api.GET("/products", apiHandler.ListProducts)
		api.GET("/inventory", apiHandler.ListInventory)
		api.GET("/order_periods", apiHandler.ListPeriods)
		api.GET("/order_periods/current", apiHandler.CurrentPeriod)
		api.POST("/order_periods", apiHandler.CreatePeriod)
		api.POST("/order_periods/:id/toggle", apiHandler.TogglePeriod)
		api.GET("/orders", apiHandler.ListOrders)
		api.POST("/orders", apiHandler.CreateOrder)
		api.DELETE("/orders/:id", apiHandler.DeleteOrder)
		api.POST("/orders/:id/toggle-delivery", apiHandler.ToggleDelivery)

		// Discord webhook
		api.POST("/discord/webhook", discordHandler.HandleWebhook)
		api.POST("/discord/send-message", discordHandler.SendMessage)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
