package repositories

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/unicatalog/internal/app/models"
	"github.com/yigit/unicatalog/internal/db"
	"github.com/yigit/unicatalog/internal/pkg/helpers"
)

// BlockRepository handles database operations for blocks
type BlockRepository struct {
	*Collection[models.Block]
}

// NewBlockRepository creates a new block repository
func NewBlockRepository(database *db.DB) *BlockRepository {
	return &BlockRepository{NewCollection(database, Schema[models.Block]{
		Table:   "blocks",
		Fields:  []string{"modality_id", "code", "type", "credits"},
		OrderBy: []string{"code"},
		Scan: func(row rowScanner) (*models.Block, error) {
			var b models.Block
			var credits sql.NullInt64
			if err := row.Scan(&b.ID, &b.ModalityID, &b.Code, &b.Type, &credits, &b.CreatedAt, &b.UpdatedAt); err != nil {
				return nil, err
			}
			b.Credits = helpers.IntPtr(credits)
			return &b, nil
		},
		Values: func(b *models.Block) ([]interface{}, error) {
			return []interface{}{b.ModalityID, b.Code, b.Type, helpers.GetNullInt64(b.Credits)}, nil
		},
		Meta: func(b *models.Block) Meta {
			return Meta{ID: &b.ID, CreatedAt: &b.CreatedAt, UpdatedAt: &b.UpdatedAt}
		},
	})}
}

// ListByModality returns one page of a modality's blocks, optionally
// restricted to one block type.
func (r *BlockRepository) ListByModality(ctx context.Context, modalityID, blockType string, page helpers.Page) ([]*models.Block, error) {
	where := squirrel.And{squirrel.Eq{"modality_id": modalityID}}
	if blockType != "" {
		where = append(where, squirrel.Eq{"type": blockType})
	}
	return r.Find(ctx, where, &page)
}

func (r *BlockRepository) FindByCode(ctx context.Context, modalityID, code string) (*models.Block, error) {
	return r.FindOne(ctx, squirrel.And{squirrel.Eq{"modality_id": modalityID}, codeEq("code", code)})
}

func (r *BlockRepository) IDsByModality(ctx context.Context, modalityID string) ([]string, error) {
	return r.IDs(ctx, squirrel.Eq{"modality_id": modalityID})
}
