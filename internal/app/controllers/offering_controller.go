package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unicatalog/internal/app/models/dto"
	"github.com/yigit/unicatalog/internal/app/repositories"
	"github.com/yigit/unicatalog/internal/app/resolvers"
	"github.com/yigit/unicatalog/internal/app/services"
	"github.com/yigit/unicatalog/internal/middleware"
	"github.com/yigit/unicatalog/internal/pkg/helpers"
)

// OfferingController handles offerings nested under a discipline
type OfferingController struct {
	offeringService *services.OfferingService
	pageSize        int
}

// NewOfferingController creates a new OfferingController
func NewOfferingController(offeringService *services.OfferingService, pageSize int) *OfferingController {
	return &OfferingController{offeringService: offeringService, pageSize: pageSize}
}

// CreateOffering handles offering creation under the resolved discipline
// @Summary Create an offering
// @Tags offerings
// @Accept json
// @Security CSRFToken
// @Param discipline path string true "Discipline code"
// @Param request body dto.OfferingRequest true "Offering"
// @Success 201 "Offering created"
// @Failure 400 {object} map[string]string "Missing or invalid fields"
// @Failure 403 "Missing changeOffering capability"
// @Failure 409 "Offering key already taken"
// @Router /disciplines/{discipline}/offerings [post]
func (c *OfferingController) CreateOffering(ctx *gin.Context) {
	var req dto.OfferingRequest
	if err := bindBody(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if _, err := c.offeringService.Create(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Discipline, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusCreated)
}

// GetAllOfferings lists the discipline's offerings
// @Summary List offerings
// @Tags offerings
// @Produce json
// @Param discipline path string true "Discipline code"
// @Param year query int false "Only offerings of this year"
// @Param period query string false "Only offerings of this period"
// @Param page query int false "Zero-based page"
// @Success 200 {array} dto.OfferingResponse
// @Router /disciplines/{discipline}/offerings [get]
func (c *OfferingController) GetAllOfferings(ctx *gin.Context) {
	var filter repositories.OfferingFilter
	if year, err := strconv.Atoi(ctx.Query("year")); err == nil {
		filter.Year = &year
	}
	filter.Period = ctx.Query("period")

	offerings, err := c.offeringService.List(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Discipline, filter, helpers.ParsePage(ctx, c.pageSize))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MapList(offerings, dto.NewOfferingResponse))
}

// GetOffering returns the resolved offering with reservation courses
// @Summary Get an offering
// @Tags offerings
// @Produce json
// @Param discipline path string true "Discipline code"
// @Param offering path string true "<year>-<period>-<code>, e.g. 2014-1-A"
// @Success 200 {object} dto.OfferingResponse
// @Failure 404 "Offering not found"
// @Router /disciplines/{discipline}/offerings/{offering} [get]
func (c *OfferingController) GetOffering(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewOfferingResponse(resolvers.ScopeFrom(ctx).Offering))
}

// UpdateOffering replaces the resolved offering
// @Summary Replace an offering
// @Tags offerings
// @Accept json
// @Security CSRFToken
// @Param discipline path string true "Discipline code"
// @Param offering path string true "<year>-<period>-<code>"
// @Param request body dto.OfferingRequest true "Offering"
// @Success 200 "Offering updated"
// @Router /disciplines/{discipline}/offerings/{offering} [put]
func (c *OfferingController) UpdateOffering(ctx *gin.Context) {
	var req dto.OfferingRequest
	if err := bindBody(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.offeringService.Replace(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Offering, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}

// DeleteOffering removes the resolved offering
// @Summary Delete an offering
// @Tags offerings
// @Security CSRFToken
// @Param discipline path string true "Discipline code"
// @Param offering path string true "<year>-<period>-<code>"
// @Success 204 "Offering deleted"
// @Router /disciplines/{discipline}/offerings/{offering} [delete]
func (c *OfferingController) DeleteOffering(ctx *gin.Context) {
	if err := c.offeringService.Delete(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Offering); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
