package main

import (
	"log"
	"os"

	"lulukitchen/config"
	"lulukitchen/db"
	"lulukitchen/notify"
	"lulukitchen/realtime"
	"lulukitchen/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	zlog, _ := zap.NewProduction()
	defer zlog.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Create uploads directory if it doesn't exist
	if _, err := os.Stat(cfg.UploadsDir); os.IsNotExist(err) {
		os.Mkdir(cfg.UploadsDir, 0755)
	}

	notifier := notify.New(cfg, zlog)

	hub := realtime.NewHub(zlog)
	go hub.Run()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Serve static files
	app.Static("/uploads", "./"+cfg.UploadsDir)

	// Setup routes
	handler := routes.NewHandler(database, cfg, zlog, notifier, hub)
	routes.SetupRoutes(app, handler)

	zlog.Info("starting server", zap.String("port", cfg.Port))
	log.Fatal(app.Listen(":" + cfg.Port))
}
