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

// RequirementService handles requirement-related operations
type RequirementService struct {
	requirementRepo *repositories.RequirementRepository
	disciplineRepo  *repositories.DisciplineRepository
	graph           *cascade.Registry
}

// NewRequirementService creates a new requirement service instance
func NewRequirementService(requirementRepo *repositories.RequirementRepository, disciplineRepo *repositories.DisciplineRepository, graph *cascade.Registry) *RequirementService {
	return &RequirementService{requirementRepo: requirementRepo, disciplineRepo: disciplineRepo, graph: graph}
}

// apply derives the requirement's code: the discipline's code when one is
// named, the literal mask otherwise.
func (s *RequirementService) apply(ctx context.Context, r *models.Requirement, req dto.RequirementRequest) error {
	r.Mask = strings.TrimSpace(req.Mask)
	r.SuggestedSemester = strings.TrimSpace(req.SuggestedSemester)
	r.DisciplineID, r.Discipline = nil, nil
	r.Code = r.Mask

	refs := apperrors.NewValidationError()
	if code := helpers.Code(req.Discipline); code != "" {
		d, err := s.disciplineRepo.FindByCode(ctx, code)
		switch {
		case errors.Is(err, apperrors.ErrResourceNotFound):
			refs.Add("discipline", apperrors.ReasonRequired)
		case err != nil:
			return fmt.Errorf("error resolving discipline: %w", err)
		default:
			r.DisciplineID, r.Discipline, r.Code = &d.ID, d, d.Code
		}
	}
	return withReferences(r, refs)
}

func (s *RequirementService) Create(ctx context.Context, block *models.Block, req dto.RequirementRequest) (*models.Requirement, error) {
	r := &models.Requirement{BlockID: block.ID}
	if err := s.apply(ctx, r, req); err != nil {
		return nil, err
	}
	if err := s.requirementRepo.Insert(ctx, r); err != nil {
		return nil, fmt.Errorf("error creating requirement: %w", err)
	}
	return r, nil
}

func (s *RequirementService) List(ctx context.Context, block *models.Block, page helpers.Page) ([]*models.Requirement, error) {
	rs, err := s.requirementRepo.ListByBlock(ctx, block.ID, page)
	if err != nil {
		return nil, fmt.Errorf("error listing requirements: %w", err)
	}
	if err := s.populate(ctx, rs...); err != nil {
		return nil, err
	}
	return rs, nil
}

func (s *RequirementService) GetByCode(ctx context.Context, block *models.Block, code string) (*models.Requirement, error) {
	r, err := s.requirementRepo.FindByCode(ctx, block.ID, code)
	if err != nil {
		return nil, err
	}
	if err := s.populate(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RequirementService) Replace(ctx context.Context, r *models.Requirement, req dto.RequirementRequest) error {
	updated := *r
	if err := s.apply(ctx, &updated, req); err != nil {
		return err
	}
	if err := s.requirementRepo.Update(ctx, &updated); err != nil {
		return fmt.Errorf("error updating requirement: %w", err)
	}
	*r = updated
	return nil
}

func (s *RequirementService) Delete(ctx context.Context, r *models.Requirement) error {
	if err := s.graph.Remove(ctx, cascade.Requirement, r.ID); err != nil {
		return fmt.Errorf("error deleting requirement: %w", err)
	}
	return nil
}

func (s *RequirementService) populate(ctx context.Context, rs ...*models.Requirement) error {
	var ids []string
	for _, r := range rs {
		if r.DisciplineID != nil {
			ids = append(ids, *r.DisciplineID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	disciplines, err := s.disciplineRepo.ByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("error loading requirement disciplines: %w", err)
	}
	loaded := make([]*models.Discipline, 0, len(disciplines))
	for _, d := range disciplines {
		loaded = append(loaded, d)
	}
	if err := s.disciplineRepo.Populate(ctx, loaded...); err != nil {
		return fmt.Errorf("error loading prerequisites: %w", err)
	}

	for _, r := range rs {
		if r.DisciplineID != nil {
			r.Discipline = disciplines[*r.DisciplineID]
		}
	}
	return nil
}
