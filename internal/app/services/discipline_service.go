package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/unicatalog/internal/app/cascade"
	"github.com/yigit/unicatalog/internal/app/models"
	"github.com/yigit/unicatalog/internal/app/models/dto"
	"github.com/yigit/unicatalog/internal/app/repositories"
	"github.com/yigit/unicatalog/internal/pkg/apperrors"
	"github.com/yigit/unicatalog/internal/pkg/helpers"
)

// DisciplineService handles discipline-related operations
type DisciplineService struct {
	disciplineRepo *repositories.DisciplineRepository
	graph          *cascade.Registry
}

// NewDisciplineService creates a new discipline service instance
func NewDisciplineService(disciplineRepo *repositories.DisciplineRepository, graph *cascade.Registry) *DisciplineService {
	return &DisciplineService{disciplineRepo: disciplineRepo, graph: graph}
}

// apply copies the request onto d, resolving prerequisite codes. Any
// unknown prerequisite marks "requirements" as required.
func (s *DisciplineService) apply(ctx context.Context, d *models.Discipline, req dto.DisciplineRequest) error {
	d.Code = helpers.Code(req.Code)
	d.Name = strings.TrimSpace(req.Name)
	d.Credits = req.Credits
	d.Department = strings.TrimSpace(req.Department)
	d.Description = strings.TrimSpace(req.Description)
	d.PrerequisiteIDs, d.PrerequisiteCodes = nil, nil

	codes := make([]string, 0, len(req.Requirements))
	for _, raw := range req.Requirements {
		if code := helpers.Code(raw); code != "" {
			codes = append(codes, code)
		}
	}

	refs := apperrors.NewValidationError()
	if len(codes) > 0 {
		found, err := s.disciplineRepo.FindByCodes(ctx, codes)
		if err != nil {
			return fmt.Errorf("error resolving prerequisites: %w", err)
		}
		for _, code := range codes {
			p, ok := found[code]
			if !ok {
				refs.Add("requirements", apperrors.ReasonRequired)
				continue
			}
			d.PrerequisiteIDs = append(d.PrerequisiteIDs, p.ID)
			d.PrerequisiteCodes = append(d.PrerequisiteCodes, p.Code)
		}
	}
	return withReferences(d, refs)
}

func (s *DisciplineService) Create(ctx context.Context, req dto.DisciplineRequest) (*models.Discipline, error) {
	d := &models.Discipline{}
	if err := s.apply(ctx, d, req); err != nil {
		return nil, err
	}
	if err := s.disciplineRepo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("error creating discipline: %w", err)
	}
	return d, nil
}

func (s *DisciplineService) List(ctx context.Context, page helpers.Page) ([]*models.Discipline, error) {
	ds, err := s.disciplineRepo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("error listing disciplines: %w", err)
	}
	return ds, nil
}

func (s *DisciplineService) GetByCode(ctx context.Context, code string) (*models.Discipline, error) {
	return s.disciplineRepo.FindByCode(ctx, code)
}

// Replace rewrites a discipline. A new code is copied onto the
// requirements pointing at it once the discipline itself is saved.
func (s *DisciplineService) Replace(ctx context.Context, d *models.Discipline, req dto.DisciplineRequest) error {
	updated := *d
	if err := s.apply(ctx, &updated, req); err != nil {
		return err
	}
	if err := s.disciplineRepo.Save(ctx, &updated); err != nil {
		return fmt.Errorf("error updating discipline: %w", err)
	}

	if updated.Code != d.Code {
		if err := s.graph.Rename(ctx, cascade.Discipline, updated.ID, updated.Code); err != nil {
			return fmt.Errorf("error propagating discipline code: %w", err)
		}
	}
	*d = updated
	return nil
}

// Delete removes the discipline together with its offerings and the
// requirements naming it.
func (s *DisciplineService) Delete(ctx context.Context, d *models.Discipline) error {
	if err := s.graph.Remove(ctx, cascade.Discipline, d.ID); err != nil {
		return fmt.Errorf("error deleting discipline: %w", err)
	}
	return nil
}
