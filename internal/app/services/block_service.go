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

// BlockService handles block-related operations
type BlockService struct {
	blockRepo *repositories.BlockRepository
	graph     *cascade.Registry
}

// NewBlockService creates a new block service instance
func NewBlockService(blockRepo *repositories.BlockRepository, graph *cascade.Registry) *BlockService {
	return &BlockService{blockRepo: blockRepo, graph: graph}
}

func applyBlock(b *models.Block, req dto.BlockRequest) {
	b.Code = helpers.Code(req.Code)
	b.Type = strings.TrimSpace(req.Type)
	b.Credits = req.Credits
}

func (s *BlockService) Create(ctx context.Context, modality *models.Modality, req dto.BlockRequest) (*models.Block, error) {
	b := &models.Block{ModalityID: modality.ID}
	applyBlock(b, req)
	if err := s.blockRepo.Insert(ctx, b); err != nil {
		return nil, fmt.Errorf("error creating block: %w", err)
	}
	return b, nil
}

// List returns one page of the modality's blocks; a non-empty blockType
// keeps only blocks of that type.
func (s *BlockService) List(ctx context.Context, modality *models.Modality, blockType string, page helpers.Page) ([]*models.Block, error) {
	blocks, err := s.blockRepo.ListByModality(ctx, modality.ID, strings.TrimSpace(blockType), page)
	if err != nil {
		return nil, fmt.Errorf("error listing blocks: %w", err)
	}
	return blocks, nil
}

func (s *BlockService) GetByCode(ctx context.Context, modality *models.Modality, code string) (*models.Block, error) {
	return s.blockRepo.FindByCode(ctx, modality.ID, code)
}

func (s *BlockService) Replace(ctx context.Context, b *models.Block, req dto.BlockRequest) error {
	updated := *b
	applyBlock(&updated, req)
	if err := s.blockRepo.Update(ctx, &updated); err != nil {
		return fmt.Errorf("error updating block: %w", err)
	}
	*b = updated
	return nil
}

func (s *BlockService) Delete(ctx context.Context, b *models.Block) error {
	if err := s.graph.Remove(ctx, cascade.Block, b.ID); err != nil {
		return fmt.Errorf("error deleting block: %w", err)
	}
	return nil
}
