package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unicatalog/internal/app/models/dto"
	"github.com/yigit/unicatalog/internal/app/resolvers"
	"github.com/yigit/unicatalog/internal/app/services"
	"github.com/yigit/unicatalog/internal/middleware"
	"github.com/yigit/unicatalog/internal/pkg/helpers"
)

// CatalogController handles catalog-related operations
type CatalogController struct {
	catalogService *services.CatalogService
	pageSize       int
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *services.CatalogService, pageSize int) *CatalogController {
	return &CatalogController{catalogService: catalogService, pageSize: pageSize}
}

// CreateCatalog handles catalog creation
// @Summary Create a catalog
// @Tags catalogs
// @Accept json
// @Security CSRFToken
// @Param request body dto.CatalogRequest true "Catalog"
// @Success 201 "Catalog created"
// @Failure 400 {object} map[string]string "Missing or invalid fields"
// @Failure 409 "Catalog year already exists"
// @Router /catalogs [post]
func (c *CatalogController) CreateCatalog(ctx *gin.Context) {
	var req dto.CatalogRequest
	if err := bindBody(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if _, err := c.catalogService.Create(ctx.Request.Context(), req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusCreated)
}

// GetAllCatalogs lists catalogs by year
// @Summary List catalogs
// @Tags catalogs
// @Produce json
// @Router /catalogs [get]
func (c *CatalogController) GetAllCatalogs(ctx *gin.Context) {
	catalogs, err := c.catalogService.List(ctx.Request.Context(), helpers.ParsePage(ctx, c.pageSize))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MapList(catalogs, dto.NewCatalogResponse))
}

// GetCatalog returns the resolved catalog
// @Summary Get a catalog
// @Tags catalogs
// @Produce json
// @Router /catalogs/{catalog} [get]
func (c *CatalogController) GetCatalog(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewCatalogResponse(resolvers.ScopeFrom(ctx).Catalog))
}

// UpdateCatalog replaces the resolved catalog
// @Summary Replace a catalog
// @Tags catalogs
// @Accept json
// @Security CSRFToken
// @Router /catalogs/{catalog} [put]
func (c *CatalogController) UpdateCatalog(ctx *gin.Context) {
	var req dto.CatalogRequest
	if err := bindBody(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.catalogService.Replace(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Catalog, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}

// DeleteCatalog removes the catalog with every modality, block and
// requirement under it
// @Summary Delete a catalog
// @Tags catalogs
// @Security CSRFToken
// @Router /catalogs/{catalog} [delete]
func (c *CatalogController) DeleteCatalog(ctx *gin.Context) {
	if err := c.catalogService.Delete(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Catalog); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
