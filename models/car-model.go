package models

// Car corresponds to the 'cars' table. FuelType and MagazineBrand are
// nullable because older schema revisions disagree on whether they are
// required; the superset keeps both optional. ImageURL holds the public
// reference path of an uploaded image, or NULL when none was attached.
type Car struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	Brand         string  `json:"brand" gorm:"size:100;not null"`
	Model         string  `json:"model" gorm:"size:100;not null"`
	Year          int     `json:"year" gorm:"not null"`
	Color         string  `json:"color" gorm:"size:50;not null"`
	Price         float64 `json:"price" gorm:"not null"`
	FuelType      *string `json:"fuel_type" gorm:"size:50"`
	MagazineBrand *string `json:"magazine_brand" gorm:"size:100"`
	Doors         int     `json:"doors" gorm:"not null"`
	Seats         int     `json:"seats" gorm:"not null"`
	ImageURL      *string `json:"image_url" gorm:"size:255"`
}

func (Car) TableName() string {
	return "cars"
}
