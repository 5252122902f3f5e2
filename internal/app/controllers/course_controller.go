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

// CourseController handles course-related operations
type CourseController struct {
	courseService services.CourseService
	pageSize      int
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, pageSize int) *CourseController {
	return &CourseController{courseService: courseService, pageSize: pageSize}
}

// CreateCourse handles course creation
// @Summary Create a course
// @Tags courses
// @Accept json
// @Security CSRFToken
// @Param request body dto.CourseRequest true "Course"
// @Success 201 "Course created"
// @Failure 400 {object} map[string]string "Missing or invalid fields"
// @Failure 403 "Missing changeCourse capability"
// @Failure 409 "Course code already taken"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if err := bindBody(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if _, err := c.courseService.Create(ctx.Request.Context(), req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusCreated)
}

// GetAllCourses lists courses
// @Summary List courses
// @Tags courses
// @Produce json
// @Param page query int false "Zero-based page"
// @Success 200 {array} dto.CourseResponse
// @Router /courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.courseService.List(ctx.Request.Context(), helpers.ParsePage(ctx, c.pageSize))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MapList(courses, dto.NewCourseResponse))
}

// GetCourse returns the resolved course
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param course path string true "Course code"
// @Success 200 {object} dto.CourseResponse
// @Failure 404 "Course not found"
// @Router /courses/{course} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewCourseResponse(resolvers.ScopeFrom(ctx).Course))
}

// UpdateCourse replaces the resolved course
// @Summary Replace a course
// @Tags courses
// @Accept json
// @Security CSRFToken
// @Param course path string true "Course code"
// @Param request body dto.CourseRequest true "Course"
// @Success 200 "Course updated"
// @Router /courses/{course} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if err := bindBody(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.courseService.Replace(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Course, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}

// DeleteCourse removes the resolved course and its modalities
// @Summary Delete a course
// @Tags courses
// @Security CSRFToken
// @Param course path string true "Course code"
// @Success 204 "Course deleted"
// @Router /courses/{course} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	if err := c.courseService.Delete(ctx.Request.Context(), resolvers.ScopeFrom(ctx).Course); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
