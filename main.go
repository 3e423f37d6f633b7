package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/krissanaruk/kritsanaruks-API/config"
	"github.com/krissanaruk/kritsanaruks-API/database"
	handler "github.com/krissanaruk/kritsanaruks-API/handlers"
	"github.com/krissanaruk/kritsanaruks-API/router"
	"github.com/krissanaruk/kritsanaruks-API/services"
	"github.com/krissanaruk/kritsanaruks-API/storage"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Error closing the database connection: %v", err)
		}
	}()

	store, err := storage.NewDiskStorage(cfg.ContentDir, cfg.StaticPrefix)
	if err != nil {
		log.Fatalf("Failed to prepare content directory: %v", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024,
	})

	cars := handler.NewCarHandler(services.NewCarService(db, cfg.UpdatePolicy), store, cfg.RequestTimeout)
	router.SetupRoutes(app, cfg, cars)

	log.Printf("Server is listening at the port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
