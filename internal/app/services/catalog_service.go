package services

import (
	"context"
	"fmt"

	"github.com/yigit/unicatalog/internal/app/cascade"
	"github.com/yigit/unicatalog/internal/app/models"
	"github.com/yigit/unicatalog/internal/app/models/dto"
	"github.com/yigit/unicatalog/internal/app/repositories"
	"github.com/yigit/unicatalog/internal/pkg/helpers"
)

// CatalogService handles catalog-related operations
type CatalogService struct {
	catalogRepo *repositories.CatalogRepository
	graph       *cascade.Registry
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(catalogRepo *repositories.CatalogRepository, graph *cascade.Registry) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo, graph: graph}
}

func (s *CatalogService) Create(ctx context.Context, req dto.CatalogRequest) (*models.Catalog, error) {
	catalog := &models.Catalog{}
	if req.Year != nil {
		catalog.Year = *req.Year
	}
	if err := s.catalogRepo.Insert(ctx, catalog); err != nil {
		return nil, fmt.Errorf("error creating catalog: %w", err)
	}
	return catalog, nil
}

func (s *CatalogService) List(ctx context.Context, page helpers.Page) ([]*models.Catalog, error) {
	catalogs, err := s.catalogRepo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("error listing catalogs: %w", err)
	}
	return catalogs, nil
}

func (s *CatalogService) GetByYear(ctx context.Context, year int) (*models.Catalog, error) {
	return s.catalogRepo.FindByYear(ctx, year)
}

// Replace changes a catalog's year. Modalities reference the catalog by
// id, so nothing needs propagating.
func (s *CatalogService) Replace(ctx context.Context, catalog *models.Catalog, req dto.CatalogRequest) error {
	updated := *catalog
	updated.Year = 0
	if req.Year != nil {
		updated.Year = *req.Year
	}
	if err := s.catalogRepo.Update(ctx, &updated); err != nil {
		return fmt.Errorf("error updating catalog: %w", err)
	}
	*catalog = updated
	return nil
}

// Delete removes the catalog with all of its modalities, their blocks and
// their requirements.
func (s *CatalogService) Delete(ctx context.Context, catalog *models.Catalog) error {
	if err := s.graph.Remove(ctx, cascade.Catalog, catalog.ID); err != nil {
		return fmt.Errorf("error deleting catalog: %w", err)
	}
	return nil
}
