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

// BlockController handles blocks nested under a modality
type BlockController struct {
	blockService *services.BlockService
	pageSize     int
}

// NewBlockController creates a new BlockController
func NewBlockController(blockService *services.BlockService, pageSize int) *BlockController {
	return &BlockController{blockService: blockService, pageSize: pageSize}
}

// CreateBlock adds a block to the resolved modality
// @Summary Create a block
// @Tags blocks
// @Accept json
// @Security CSRFToken
// @Router /catalogs/{catalog}/modalities/{modality}/blocks [post]
func (c *BlockController) CreateBlock(ctx *gin.Context) {
	var req dto.BlockRequest
	if err := bindBody(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if _, err := c.blockService.Create(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Modality, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusCreated)
}

// GetAllBlocks lists the modality's blocks, optionally of one type
// @Summary List blocks
// @Tags blocks
// @Produce json
// @Param type query string false "Block type"
// @Param page query int false "Zero-based page"
// @Router /catalogs/{catalog}/modalities/{modality}/blocks [get]
func (c *BlockController) GetAllBlocks(ctx *gin.Context) {
	blocks, err := c.blockService.List(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Modality, ctx.Query("type"), helpers.ParsePage(ctx, c.pageSize))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MapList(blocks, dto.NewBlockResponse))
}

// GetBlock returns the resolved block
// @Summary Get a block
// @Tags blocks
// @Produce json
// @Router /catalogs/{catalog}/modalities/{modality}/blocks/{block} [get]
func (c *BlockController) GetBlock(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewBlockResponse(resolvers.ScopeFrom(ctx).Block))
}

// UpdateBlock replaces the resolved block
// @Summary Replace a block
// @Tags blocks
// @Accept json
// @Security CSRFToken
// @Router /catalogs/{catalog}/modalities/{modality}/blocks/{block} [put]
func (c *BlockController) UpdateBlock(ctx *gin.Context) {
	var req dto.BlockRequest
	if err := bindBody(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.blockService.Replace(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Block, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}

// DeleteBlock removes the resolved block and its requirements
// @Summary Delete a block
// @Tags blocks
// @Security CSRFToken
// @Router /catalogs/{catalog}/modalities/{modality}/blocks/{block} [delete]
func (c *BlockController) DeleteBlock(ctx *gin.Context) {
	if err := c.blockService.Delete(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Block); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
