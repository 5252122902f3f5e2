package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/unicatalog/internal/app/models"
	"github.com/yigit/unicatalog/internal/db"
	"github.com/yigit/unicatalog/internal/pkg/helpers"
)

// ModalityRepository handles database operations for modalities
type ModalityRepository struct {
	*Collection[models.Modality]
}

// NewModalityRepository creates a new modality repository
func NewModalityRepository(database *db.DB) *ModalityRepository {
	return &ModalityRepository{NewCollection(database, Schema[models.Modality]{
		Table:   "modalities",
		Fields:  []string{"catalog_id", "course_id", "course_code", "code", "name", "credit_limit"},
		OrderBy: []string{"course_code", "code"},
		Scan: func(row rowScanner) (*models.Modality, error) {
			var m models.Modality
			var limit int
			if err := row.Scan(&m.ID, &m.CatalogID, &m.CourseID, &m.CourseCode, &m.Code, &m.Name, &limit,
				&m.CreatedAt, &m.UpdatedAt); err != nil {
				return nil, err
			}
			m.CreditLimit = &limit
			return &m, nil
		},
		Values: func(m *models.Modality) ([]interface{}, error) {
			return []interface{}{m.CatalogID, m.CourseID, m.CourseCode, m.Code, m.Name, *m.CreditLimit}, nil
		},
		Meta: func(m *models.Modality) Meta {
			return Meta{ID: &m.ID, CreatedAt: &m.CreatedAt, UpdatedAt: &m.UpdatedAt}
		},
	})}
}

// ListByCatalog returns one page of a catalog's modalities ordered by
// course code, then code.
func (r *ModalityRepository) ListByCatalog(ctx context.Context, catalogID string, page helpers.Page) ([]*models.Modality, error) {
	return r.Find(ctx, squirrel.Eq{"catalog_id": catalogID}, &page)
}

// FindByKey resolves a modality by its compound natural key.
func (r *ModalityRepository) FindByKey(ctx context.Context, catalogID, courseCode, code string) (*models.Modality, error) {
	return r.FindOne(ctx, squirrel.And{
		squirrel.Eq{"catalog_id": catalogID},
		codeEq("course_code", courseCode),
		codeEq("code", code),
	})
}

func (r *ModalityRepository) IDsByCatalog(ctx context.Context, catalogID string) ([]string, error) {
	return r.IDs(ctx, squirrel.Eq{"catalog_id": catalogID})
}

func (r *ModalityRepository) IDsByCourse(ctx context.Context, courseID string) ([]string, error) {
	return r.IDs(ctx, squirrel.Eq{"course_id": courseID})
}

// SetCourseCode rewrites the denormalised course code of one modality.
func (r *ModalityRepository) SetCourseCode(ctx context.Context, id, courseCode string) error {
	_, err := r.Patch(ctx, squirrel.Eq{"id": id}, map[string]interface{}{"course_code": courseCode})
	return err
}
