package dto

import (
	"time"

	"github.com/yigit/unicatalog/internal/app/models"
)

// CourseRequest is the body of course create and replace requests.
type CourseRequest struct {
	Code  string `json:"code" form:"code"`
	Name  string `json:"name" form:"name"`
	Level string `json:"level" form:"level"`
}

// CourseResponse represents a course
type CourseResponse struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewCourseResponse(c *models.Course) *CourseResponse {
	if c == nil {
		return nil
	}
	return &CourseResponse{
		Code:      c.Code,
		Name:      c.Name,
		Level:     c.Level,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CatalogRequest is the body of catalog create and replace requests.
type CatalogRequest struct {
	Year *int `json:"year" form:"year"`
}

// CatalogResponse represents a catalog
type CatalogResponse struct {
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewCatalogResponse(c *models.Catalog) *CatalogResponse {
	return &CatalogResponse{Year: c.Year, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}
