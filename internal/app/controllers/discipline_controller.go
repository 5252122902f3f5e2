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

// DisciplineController handles discipline-related operations
type DisciplineController struct {
	disciplineService *services.DisciplineService
	pageSize          int
}

// NewDisciplineController creates a new DisciplineController
func NewDisciplineController(disciplineService *services.DisciplineService, pageSize int) *DisciplineController {
	return &DisciplineController{disciplineService: disciplineService, pageSize: pageSize}
}

// CreateDiscipline handles discipline creation
// @Summary Create a discipline
// @Tags disciplines
// @Accept json
// @Security CSRFToken
// @Param request body dto.DisciplineRequest true "Discipline; requirements lists prerequisite codes"
// @Success 201 "Discipline created"
// @Failure 400 {object} map[string]string "Missing fields or unknown prerequisite"
// @Failure 409 "Discipline code already taken"
// @Router /disciplines [post]
func (c *DisciplineController) CreateDiscipline(ctx *gin.Context) {
	var req dto.DisciplineRequest
	if err := bindBody(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if _, err := c.disciplineService.Create(ctx.Request.Context(), req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusCreated)
}

// GetAllDisciplines lists disciplines by code
// @Summary List disciplines
// @Tags disciplines
// @Produce json
// @Router /disciplines [get]
func (c *DisciplineController) GetAllDisciplines(ctx *gin.Context) {
	disciplines, err := c.disciplineService.List(ctx.Request.Context(), helpers.ParsePage(ctx, c.pageSize))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MapList(disciplines, dto.NewDisciplineResponse))
}

// GetDiscipline returns the resolved discipline with its prerequisite codes
// @Summary Get a discipline
// @Tags disciplines
// @Produce json
// @Router /disciplines/{discipline} [get]
func (c *DisciplineController) GetDiscipline(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewDisciplineResponse(resolvers.ScopeFrom(ctx).Discipline))
}

// UpdateDiscipline replaces the resolved discipline; a new code is copied
// onto the requirements that name it
// @Summary Replace a discipline
// @Tags disciplines
// @Accept json
// @Security CSRFToken
// @Router /disciplines/{discipline} [put]
func (c *DisciplineController) UpdateDiscipline(ctx *gin.Context) {
	var req dto.DisciplineRequest
	if err := bindBody(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.disciplineService.Replace(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Discipline, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}

// DeleteDiscipline removes the discipline with its offerings and the
// requirements naming it
// @Summary Delete a discipline
// @Tags disciplines
// @Security CSRFToken
// @Router /disciplines/{discipline} [delete]
func (c *DisciplineController) DeleteDiscipline(ctx *gin.Context) {
	if err := c.disciplineService.Delete(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Discipline); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
