package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/unicatalog/internal/app/cascade"
	"github.com/yigit/unicatalog/internal/app/models"
	"github.com/yigit/unicatalog/internal/app/models/dto"
	"github.com/yigit/unicatalog/internal/app/repositories"
	"github.com/yigit/unicatalog/internal/pkg/helpers"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	Create(ctx context.Context, req dto.CourseRequest) (*models.Course, error)
	List(ctx context.Context, page helpers.Page) ([]*models.Course, error)
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	Replace(ctx context.Context, course *models.Course, req dto.CourseRequest) error
	Delete(ctx context.Context, course *models.Course) error
}

type courseServiceImpl struct {
	courseRepo *repositories.CourseRepository
	graph      *cascade.Registry
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo *repositories.CourseRepository, graph *cascade.Registry) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo, graph: graph}
}

func applyCourse(course *models.Course, req dto.CourseRequest) {
	course.Code = helpers.Code(req.Code)
	course.Name = strings.TrimSpace(req.Name)
	course.Level = strings.TrimSpace(req.Level)
}

// Create creates a new course
func (s *courseServiceImpl) Create(ctx context.Context, req dto.CourseRequest) (*models.Course, error) {
	course := &models.Course{}
	applyCourse(course, req)

	if err := s.courseRepo.Insert(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}
	return course, nil
}

func (s *courseServiceImpl) List(ctx context.Context, page helpers.Page) ([]*models.Course, error) {
	courses, err := s.courseRepo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	return courses, nil
}

func (s *courseServiceImpl) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	return s.courseRepo.FindByCode(ctx, code)
}

// Replace rewrites a course. A new code is copied onto the course's
// modalities once the course itself is saved.
func (s *courseServiceImpl) Replace(ctx context.Context, course *models.Course, req dto.CourseRequest) error {
	updated := *course
	applyCourse(&updated, req)

	if err := s.courseRepo.Update(ctx, &updated); err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if updated.Code != course.Code {
		if err := s.graph.Rename(ctx, cascade.Course, updated.ID, updated.Code); err != nil {
			return fmt.Errorf("error propagating course code: %w", err)
		}
	}
	*course = updated
	return nil
}

func (s *courseServiceImpl) Delete(ctx context.Context, course *models.Course) error {
	if err := s.graph.Remove(ctx, cascade.Course, course.ID); err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	return nil
}
