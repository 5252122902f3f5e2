package repositories

import (
	"context"

	"github.com/yigit/unicatalog/internal/app/models"
	"github.com/yigit/unicatalog/internal/db"
	"github.com/yigit/unicatalog/internal/pkg/helpers"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	*Collection[models.Course]
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(database *db.DB) *CourseRepository {
	return &CourseRepository{NewCollection(database, Schema[models.Course]{
		Table:   "courses",
		Fields:  []string{"code", "name", "level"},
		OrderBy: []string{"code"},
		Scan: func(row rowScanner) (*models.Course, error) {
			var c models.Course
			if err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Level, &c.CreatedAt, &c.UpdatedAt); err != nil {
				return nil, err
			}
			return &c, nil
		},
		Values: func(c *models.Course) ([]interface{}, error) {
			return []interface{}{c.Code, c.Name, c.Level}, nil
		},
		Meta: func(c *models.Course) Meta {
			return Meta{ID: &c.ID, CreatedAt: &c.CreatedAt, UpdatedAt: &c.UpdatedAt}
		},
	})}
}

// List returns one page of courses ordered by code.
func (r *CourseRepository) List(ctx context.Context, page helpers.Page) ([]*models.Course, error) {
	return r.Find(ctx, nil, &page)
}

// FindByCode matches the code case-insensitively.
func (r *CourseRepository) FindByCode(ctx context.Context, code string) (*models.Course, error) {
	return r.FindOne(ctx, codeEq("code", code))
}
