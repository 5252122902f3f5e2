package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/unicatalog/internal/app/models"
	"github.com/yigit/unicatalog/internal/db"
	"github.com/yigit/unicatalog/internal/pkg/helpers"
)

// CatalogRepository handles database operations for catalogs
type CatalogRepository struct {
	*Collection[models.Catalog]
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(database *db.DB) *CatalogRepository {
	return &CatalogRepository{NewCollection(database, Schema[models.Catalog]{
		Table:   "catalogs",
		Fields:  []string{"year"},
		OrderBy: []string{"year"},
		Scan: func(row rowScanner) (*models.Catalog, error) {
			var c models.Catalog
			if err := row.Scan(&c.ID, &c.Year, &c.CreatedAt, &c.UpdatedAt); err != nil {
				return nil, err
			}
			return &c, nil
		},
		Values: func(c *models.Catalog) ([]interface{}, error) {
			return []interface{}{c.Year}, nil
		},
		Meta: func(c *models.Catalog) Meta {
			return Meta{ID: &c.ID, CreatedAt: &c.CreatedAt, UpdatedAt: &c.UpdatedAt}
		},
	})}
}

func (r *CatalogRepository) List(ctx context.Context, page helpers.Page) ([]*models.Catalog, error) {
	return r.Find(ctx, nil, &page)
}

func (r *CatalogRepository) FindByYear(ctx context.Context, year int) (*models.Catalog, error) {
	return r.FindOne(ctx, squirrel.Eq{"year": year})
}
