package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/unicatalog/internal/app/cascade"
	"github.com/yigit/unicatalog/internal/app/models"
	"github.com/yigit/unicatalog/internal/app/models/dto"
	"github.com/yigit/unicatalog/internal/app/repositories"
	"github.com/yigit/unicatalog/internal/pkg/apperrors"
	"github.com/yigit/unicatalog/internal/pkg/helpers"
)

// ModalityService handles modality-related operations
type ModalityService struct {
	modalityRepo *repositories.ModalityRepository
	courseRepo   *repositories.CourseRepository
	graph        *cascade.Registry
}

// NewModalityService creates a new modality service instance
func NewModalityService(modalityRepo *repositories.ModalityRepository, courseRepo *repositories.CourseRepository, graph *cascade.Registry) *ModalityService {
	return &ModalityService{modalityRepo: modalityRepo, courseRepo: courseRepo, graph: graph}
}

// apply copies the request onto m. An unknown course leaves the course
// reference empty, which validation reports as "course": "required".
func (s *ModalityService) apply(ctx context.Context, m *models.Modality, req dto.ModalityRequest) error {
	m.Code = helpers.Code(req.Code)
	m.Name = strings.TrimSpace(req.Name)
	m.CreditLimit = req.CreditLimit
	m.CourseID, m.CourseCode, m.Course = "", "", nil

	if code := helpers.Code(req.Course); code != "" {
		course, err := s.courseRepo.FindByCode(ctx, code)
		switch {
		case errors.Is(err, apperrors.ErrResourceNotFound):
		case err != nil:
			return fmt.Errorf("error resolving course: %w", err)
		default:
			m.CourseID, m.CourseCode, m.Course = course.ID, course.Code, course
		}
	}
	return nil
}

func (s *ModalityService) Create(ctx context.Context, catalog *models.Catalog, req dto.ModalityRequest) (*models.Modality, error) {
	m := &models.Modality{CatalogID: catalog.ID}
	if err := s.apply(ctx, m, req); err != nil {
		return nil, err
	}
	if err := s.modalityRepo.Insert(ctx, m); err != nil {
		return nil, fmt.Errorf("error creating modality: %w", err)
	}
	return m, nil
}

func (s *ModalityService) List(ctx context.Context, catalog *models.Catalog, page helpers.Page) ([]*models.Modality, error) {
	ms, err := s.modalityRepo.ListByCatalog(ctx, catalog.ID, page)
	if err != nil {
		return nil, fmt.Errorf("error listing modalities: %w", err)
	}
	if err := s.populate(ctx, ms...); err != nil {
		return nil, err
	}
	return ms, nil
}

// GetByKey resolves "<courseCode>-<code>" within a catalog.
func (s *ModalityService) GetByKey(ctx context.Context, catalog *models.Catalog, courseCode, code string) (*models.Modality, error) {
	m, err := s.modalityRepo.FindByKey(ctx, catalog.ID, courseCode, code)
	if err != nil {
		return nil, err
	}
	if err := s.populate(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *ModalityService) Replace(ctx context.Context, m *models.Modality, req dto.ModalityRequest) error {
	updated := *m
	if err := s.apply(ctx, &updated, req); err != nil {
		return err
	}
	if err := s.modalityRepo.Update(ctx, &updated); err != nil {
		return fmt.Errorf("error updating modality: %w", err)
	}
	*m = updated
	return nil
}

// Delete removes the modality with its blocks and their requirements.
func (s *ModalityService) Delete(ctx context.Context, m *models.Modality) error {
	if err := s.graph.Remove(ctx, cascade.Modality, m.ID); err != nil {
		return fmt.Errorf("error deleting modality: %w", err)
	}
	return nil
}

func (s *ModalityService) populate(ctx context.Context, ms ...*models.Modality) error {
	ids := make([]string, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.CourseID)
	}
	courses, err := s.courseRepo.ByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("error loading modality courses: %w", err)
	}
	for _, m := range ms {
		m.Course = courses[m.CourseID]
	}
	return nil
}
