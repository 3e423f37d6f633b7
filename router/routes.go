package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/krissanaruk/kritsanaruks-API/config"
	handler "github.com/krissanaruk/kritsanaruks-API/handlers"
)

func SetupRoutes(app *fiber.App, cfg *config.Config, cars *handler.CarHandler) {
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	app.Post("/add-car", cars.AddCar)
	app.Get("/cars", cars.GetCars)
	app.Get("/cars/:id", cars.GetCar)
	app.Put("/cars/:id", cars.UpdateCar)
	app.Delete("/cars/:id", cars.DeleteCar)

	// Serve uploaded images read-only under the public prefix.
	app.Static(cfg.StaticPrefix, cfg.ContentDir)
}
