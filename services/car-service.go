package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/krissanaruk/kritsanaruks-API/config"
	"github.com/krissanaruk/kritsanaruks-API/models"
	"gorm.io/gorm"
)

// ErrCarNotFound signals that the targeted id matched no row.
var ErrCarNotFound = errors.New("car not found")

// ValidationError reports payload problems found before the store is
// touched.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid car payload: " + strings.Join(e.Problems, ", ")
}

// CarInput carries the raw form fields of a write request. Numeric fields
// stay strings here because they arrive as form values; validation parses
// them.
type CarInput struct {
	Brand         string
	Model         string
	Year          string
	Color         string
	Price         string
	FuelType      string
	MagazineBrand string
	Doors         string
	Seats         string
}

func (in CarInput) validate() (*models.Car, *ValidationError) {
	verr := &ValidationError{}

	required := []struct{ name, value string }{
		{"brand", in.Brand},
		{"model", in.Model},
		{"year", in.Year},
		{"color", in.Color},
		{"price", in.Price},
		{"doors", in.Doors},
		{"seats", in.Seats},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			verr.Problems = append(verr.Problems, f.name+" is required")
		}
	}
	if len(verr.Problems) > 0 {
		return nil, verr
	}

	car := &models.Car{
		Brand: strings.TrimSpace(in.Brand),
		Model: strings.TrimSpace(in.Model),
		Color: strings.TrimSpace(in.Color),
	}

	var err error
	if car.Year, err = strconv.Atoi(strings.TrimSpace(in.Year)); err != nil {
		verr.Problems = append(verr.Problems, "year must be an integer")
	}
	if car.Price, err = strconv.ParseFloat(strings.TrimSpace(in.Price), 64); err != nil {
		verr.Problems = append(verr.Problems, "price must be a number")
	}
	if car.Doors, err = strconv.Atoi(strings.TrimSpace(in.Doors)); err != nil {
		verr.Problems = append(verr.Problems, "doors must be an integer")
	}
	if car.Seats, err = strconv.Atoi(strings.TrimSpace(in.Seats)); err != nil {
		verr.Problems = append(verr.Problems, "seats must be an integer")
	}
	if len(verr.Problems) > 0 {
		return nil, verr
	}

	if v := strings.TrimSpace(in.FuelType); v != "" {
		car.FuelType = &v
	}
	if v := strings.TrimSpace(in.MagazineBrand); v != "" {
		car.MagazineBrand = &v
	}

	return car, nil
}

// CarService performs one persistence operation per call against the
// shared pool.
type CarService struct {
	db           *gorm.DB
	updatePolicy string
}

func NewCarService(db *gorm.DB, updatePolicy string) *CarService {
	return &CarService{db: db, updatePolicy: updatePolicy}
}

// Create validates the payload and inserts a single row. The caller has
// already stored any uploaded image; imageRef is its reference path.
func (s *CarService) Create(ctx context.Context, in CarInput, imageRef *string) (*models.Car, error) {
	car, verr := in.validate()
	if verr != nil {
		return nil, verr
	}
	car.ImageURL = imageRef

	if err := s.db.WithContext(ctx).Create(car).Error; err != nil {
		return nil, fmt.Errorf("insert car: %w", err)
	}

	return car, nil
}

func (s *CarService) List(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	if err := s.db.WithContext(ctx).Order("id").Find(&cars).Error; err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}

	return cars, nil
}

func (s *CarService) GetByID(ctx context.Context, id uint) (*models.Car, error) {
	var car models.Car
	if err := s.db.WithContext(ctx).First(&car, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("get car %d: %w", id, err)
	}

	return &car, nil
}

// Update overwrites the row in one statement. Under the replace policy
// image_url is always written, clearing it when the request carried no
// file; under the patch policy the stored image survives unless a new one
// was uploaded.
func (s *CarService) Update(ctx context.Context, id uint, in CarInput, imageRef *string, hasNewImage bool) error {
	car, verr := in.validate()
	if verr != nil {
		return verr
	}

	values := map[string]interface{}{
		"brand":          car.Brand,
		"model":          car.Model,
		"year":           car.Year,
		"color":          car.Color,
		"price":          car.Price,
		"fuel_type":      car.FuelType,
		"magazine_brand": car.MagazineBrand,
		"doors":          car.Doors,
		"seats":          car.Seats,
	}
	if hasNewImage || s.updatePolicy == config.UpdatePolicyReplace {
		values["image_url"] = imageRef
	}

	tx := s.db.WithContext(ctx).Model(&models.Car{}).Where("id = ?", id).Updates(values)
	if tx.Error != nil {
		return fmt.Errorf("update car %d: %w", id, tx.Error)
	}
	if tx.RowsAffected == 0 {
		// MySQL reports zero affected rows for a no-op write, so probe
		// before concluding the row is gone.
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Car{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("update car %d: %w", id, err)
		}
		if count == 0 {
			return ErrCarNotFound
		}
	}

	return nil
}

func (s *CarService) Delete(ctx context.Context, id uint) error {
	tx := s.db.WithContext(ctx).Delete(&models.Car{}, id)
	if tx.Error != nil {
		return fmt.Errorf("delete car %d: %w", id, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrCarNotFound
	}

	return nil
}
