package handler

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/krissanaruk/kritsanaruks-API/services"
	"github.com/krissanaruk/kritsanaruks-API/storage"
)

// CarHandler maps the car endpoints onto the service and the upload
// storage. Uploads are materialized before any persistence call so a row
// never references a half-written file.
type CarHandler struct {
	service *services.CarService
	storage *storage.DiskStorage
	timeout time.Duration
}

func NewCarHandler(service *services.CarService, storage *storage.DiskStorage, timeout time.Duration) *CarHandler {
	return &CarHandler{service: service, storage: storage, timeout: timeout}
}

func (h *CarHandler) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), h.timeout)
}

func carInputFromForm(c *fiber.Ctx) services.CarInput {
	return services.CarInput{
		Brand:         c.FormValue("brand"),
		Model:         c.FormValue("model"),
		Year:          c.FormValue("year"),
		Color:         c.FormValue("color"),
		Price:         c.FormValue("price"),
		FuelType:      c.FormValue("fuel_type"),
		MagazineBrand: c.FormValue("magazine_brand"),
		Doors:         c.FormValue("doors"),
		Seats:         c.FormValue("seats"),
	}
}

// saveUpload stores the optional "image" file before the handler body
// touches the database. A missing file is not an error.
func (h *CarHandler) saveUpload(c *fiber.Ctx) (*string, error) {
	file, err := c.FormFile("image")
	if err != nil || file == nil {
		return nil, nil
	}

	ref, err := h.storage.Save(file)
	if err != nil {
		return nil, err
	}

	return &ref, nil
}

// discardUpload removes a stored file whose request did not make it into
// the database. Best effort; failures are only logged.
func (h *CarHandler) discardUpload(ref *string) {
	if ref == nil {
		return
	}
	if err := h.storage.Remove(*ref); err != nil {
		log.Printf("Error removing orphaned upload %s: %v", *ref, err)
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *CarHandler) AddCar(c *fiber.Ctx) error {
	imageRef, err := h.saveUpload(c)
	if err != nil {
		log.Printf("Error storing upload: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store uploaded image"})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if _, err := h.service.Create(ctx, carInputFromForm(c), imageRef); err != nil {
		h.discardUpload(imageRef)

		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Error()})
		}

		log.Printf("Error inserting car: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add car"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Car added successfully"})
}

func (h *CarHandler) GetCars(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	cars, err := h.service.List(ctx)
	if err != nil {
		log.Printf("Error retrieving cars: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve cars"})
	}

	return c.Status(fiber.StatusOK).JSON(cars)
}

func (h *CarHandler) GetCar(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid car id"})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	car, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrCarNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Car not found"})
		}
		log.Printf("Error retrieving car: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve car"})
	}

	return c.Status(fiber.StatusOK).JSON(car)
}

func (h *CarHandler) UpdateCar(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid car id"})
	}

	imageRef, err := h.saveUpload(c)
	if err != nil {
		log.Printf("Error storing upload: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store uploaded image"})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.service.Update(ctx, id, carInputFromForm(c), imageRef, imageRef != nil); err != nil {
		h.discardUpload(imageRef)

		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Error()})
		}
		if errors.Is(err, services.ErrCarNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Car not found"})
		}

		log.Printf("Error updating car: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update car"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Car updated successfully"})
}

func (h *CarHandler) DeleteCar(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid car id"})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, services.ErrCarNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Car not found"})
		}
		log.Printf("Error deleting car: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete car"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Car deleted successfully"})
}
