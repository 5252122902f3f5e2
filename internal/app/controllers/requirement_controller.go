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

// RequirementController handles requirements nested under a block
type RequirementController struct {
	requirementService *services.RequirementService
	pageSize           int
}

// NewRequirementController creates a new RequirementController
func NewRequirementController(requirementService *services.RequirementService, pageSize int) *RequirementController {
	return &RequirementController{requirementService: requirementService, pageSize: pageSize}
}

// CreateRequirement adds a requirement to the resolved block. The body
// names either a discipline code or a mask such as "MC---".
// @Summary Create a requirement
// @Tags requirements
// @Accept json
// @Security CSRFToken
// @Param request body dto.RequirementRequest true "Requirement"
// @Success 201 "Requirement created"
// @Failure 400 {object} map[string]string "Unknown discipline or invalid mask"
// @Failure 409 "Requirement already in block"
// @Router /catalogs/{catalog}/modalities/{modality}/blocks/{block}/requirements [post]
func (c *RequirementController) CreateRequirement(ctx *gin.Context) {
	var req dto.RequirementRequest
	if err := bindBody(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if _, err := c.requirementService.Create(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Block, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusCreated)
}

// GetAllRequirements lists the block's requirements with their disciplines
// @Summary List requirements
// @Tags requirements
// @Produce json
// @Router /catalogs/{catalog}/modalities/{modality}/blocks/{block}/requirements [get]
func (c *RequirementController) GetAllRequirements(ctx *gin.Context) {
	requirements, err := c.requirementService.List(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Block, helpers.ParsePage(ctx, c.pageSize))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MapList(requirements, dto.NewRequirementResponse))
}

// GetRequirement returns the resolved requirement
// @Summary Get a requirement
// @Tags requirements
// @Produce json
// @Router /catalogs/{catalog}/modalities/{modality}/blocks/{block}/requirements/{requirement} [get]
func (c *RequirementController) GetRequirement(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewRequirementResponse(resolvers.ScopeFrom(ctx).Requirement))
}

// UpdateRequirement replaces the resolved requirement
// @Summary Replace a requirement
// @Tags requirements
// @Accept json
// @Security CSRFToken
// @Router /catalogs/{catalog}/modalities/{modality}/blocks/{block}/requirements/{requirement} [put]
func (c *RequirementController) UpdateRequirement(ctx *gin.Context) {
	var req dto.RequirementRequest
	if err := bindBody(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.requirementService.Replace(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Requirement, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}

// DeleteRequirement removes the resolved requirement
// @Summary Delete a requirement
// @Tags requirements
// @Security CSRFToken
// @Router /catalogs/{catalog}/modalities/{modality}/blocks/{block}/requirements/{requirement} [delete]
func (c *RequirementController) DeleteRequirement(ctx *gin.Context) {
	if err := c.requirementService.Delete(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Requirement); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
