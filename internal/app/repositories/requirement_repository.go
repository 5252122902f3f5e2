package repositories

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/unicatalog/internal/app/models"
	"github.com/yigit/unicatalog/internal/db"
	"github.com/yigit/unicatalog/internal/pkg/helpers"
)

// RequirementRepository handles database operations for requirements
type RequirementRepository struct {
	*Collection[models.Requirement]
}

// NewRequirementRepository creates a new requirement repository
func NewRequirementRepository(database *db.DB) *RequirementRepository {
	return &RequirementRepository{NewCollection(database, Schema[models.Requirement]{
		Table:   "requirements",
		Fields:  []string{"block_id", "discipline_id", "code", "mask", "suggested_semester"},
		OrderBy: []string{"code"},
		Scan: func(row rowScanner) (*models.Requirement, error) {
			var req models.Requirement
			var disciplineID, mask, semester sql.NullString
			if err := row.Scan(&req.ID, &req.BlockID, &disciplineID, &req.Code, &mask, &semester,
				&req.CreatedAt, &req.UpdatedAt); err != nil {
				return nil, err
			}
			req.DisciplineID = helpers.StringPtr(disciplineID)
			req.Mask = mask.String
			req.SuggestedSemester = semester.String
			return &req, nil
		},
		Values: func(req *models.Requirement) ([]interface{}, error) {
			return []interface{}{
				req.BlockID,
				helpers.GetNullString(req.DisciplineID),
				req.Code,
				nullable(req.Mask),
				nullable(req.SuggestedSemester),
			}, nil
		},
		Meta: func(req *models.Requirement) Meta {
			return Meta{ID: &req.ID, CreatedAt: &req.CreatedAt, UpdatedAt: &req.UpdatedAt}
		},
	})}
}

func (r *RequirementRepository) ListByBlock(ctx context.Context, blockID string, page helpers.Page) ([]*models.Requirement, error) {
	return r.Find(ctx, squirrel.Eq{"block_id": blockID}, &page)
}

func (r *RequirementRepository) FindByCode(ctx context.Context, blockID, code string) (*models.Requirement, error) {
	return r.FindOne(ctx, squirrel.And{squirrel.Eq{"block_id": blockID}, codeEq("code", code)})
}

func (r *RequirementRepository) IDsByBlock(ctx context.Context, blockID string) ([]string, error) {
	return r.IDs(ctx, squirrel.Eq{"block_id": blockID})
}

func (r *RequirementRepository) IDsByDiscipline(ctx context.Context, disciplineID string) ([]string, error) {
	return r.IDs(ctx, squirrel.Eq{"discipline_id": disciplineID})
}

// SetCode rewrites the derived code of one requirement.
func (r *RequirementRepository) SetCode(ctx context.Context, id, code string) error {
	_, err := r.Patch(ctx, squirrel.Eq{"id": id}, map[string]interface{}{"code": code})
	return err
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
