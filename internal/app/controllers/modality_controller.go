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

// ModalityController handles modalities nested under a catalog
type ModalityController struct {
	modalityService *services.ModalityService
	pageSize        int
}

// NewModalityController creates a new ModalityController
func NewModalityController(modalityService *services.ModalityService, pageSize int) *ModalityController {
	return &ModalityController{modalityService: modalityService, pageSize: pageSize}
}

// CreateModality handles modality creation inside the resolved catalog
// @Summary Create a modality
// @Tags modalities
// @Accept json
// @Security CSRFToken
// @Param catalog path int true "Catalog year"
// @Param request body dto.ModalityRequest true "Modality"
// @Success 201 "Modality created"
// @Failure 400 {object} map[string]string "Missing or invalid fields; unknown course reported as course: required"
// @Failure 404 "Catalog not found"
// @Failure 409 "Modality already exists for this course"
// @Router /catalogs/{catalog}/modalities [post]
func (c *ModalityController) CreateModality(ctx *gin.Context) {
	var req dto.ModalityRequest
	if err := bindBody(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if _, err := c.modalityService.Create(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Catalog, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusCreated)
}

// GetAllModalities lists the catalog's modalities
// @Summary List modalities
// @Tags modalities
// @Produce json
// @Param catalog path int true "Catalog year"
// @Param page query int false "Zero-based page"
// @Success 200 {array} dto.ModalityResponse
// @Router /catalogs/{catalog}/modalities [get]
func (c *ModalityController) GetAllModalities(ctx *gin.Context) {
	modalities, err := c.modalityService.List(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Catalog, helpers.ParsePage(ctx, c.pageSize))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MapList(modalities, dto.NewModalityResponse))
}

// GetModality returns the resolved modality with its course
// @Summary Get a modality
// @Tags modalities
// @Produce json
// @Router /catalogs/{catalog}/modalities/{modality} [get]
func (c *ModalityController) GetModality(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewModalityResponse(resolvers.ScopeFrom(ctx).Modality))
}

// UpdateModality replaces the resolved modality
// @Summary Replace a modality
// @Tags modalities
// @Accept json
// @Security CSRFToken
// @Router /catalogs/{catalog}/modalities/{modality} [put]
func (c *ModalityController) UpdateModality(ctx *gin.Context) {
	var req dto.ModalityRequest
	if err := bindBody(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.modalityService.Replace(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Modality, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}

// DeleteModality removes the modality with its blocks and requirements
// @Summary Delete a modality
// @Tags modalities
// @Security CSRFToken
// @Router /catalogs/{catalog}/modalities/{modality} [delete]
func (c *ModalityController) DeleteModality(ctx *gin.Context) {
	if err := c.modalityService.Delete(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Modality); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
