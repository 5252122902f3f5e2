package models

import "time"

// Course is a degree program, addressed by its slugged code.
type Course struct {
	ID        string    `json:"-"`
	Code      string    `json:"code" validate:"required,nodash"`
	Name      string    `json:"name" validate:"required"`
	Level     string    `json:"level" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Catalog is the curriculum version of one academic year.
type Catalog struct {
	ID        string    `json:"-"`
	Year      int       `json:"year" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
