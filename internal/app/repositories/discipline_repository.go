package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/unicatalog/internal/app/models"
	"github.com/yigit/unicatalog/internal/db"
	"github.com/yigit/unicatalog/internal/pkg/helpers"
	"github.com/yigit/unicatalog/internal/pkg/logger"
)

const prerequisitesTable = "discipline_prerequisites"

// DisciplineRepository handles database operations for disciplines and
// their prerequisite links.
type DisciplineRepository struct {
	*Collection[models.Discipline]
}

// NewDisciplineRepository creates a new discipline repository
func NewDisciplineRepository(database *db.DB) *DisciplineRepository {
	return &DisciplineRepository{NewCollection(database, Schema[models.Discipline]{
		Table:   "disciplines",
		Fields:  []string{"code", "name", "credits", "department", "description"},
		OrderBy: []string{"code"},
		Scan: func(row rowScanner) (*models.Discipline, error) {
			var d models.Discipline
			var credits int
			var department, description sql.NullString
			if err := row.Scan(&d.ID, &d.Code, &d.Name, &credits, &department, &description,
				&d.CreatedAt, &d.UpdatedAt); err != nil {
				return nil, err
			}
			d.Credits = &credits
			d.Department = department.String
			d.Description = description.String
			return &d, nil
		},
		Values: func(d *models.Discipline) ([]interface{}, error) {
			return []interface{}{d.Code, d.Name, *d.Credits, nullable(d.Department), nullable(d.Description)}, nil
		},
		Meta: func(d *models.Discipline) Meta {
			return Meta{ID: &d.ID, CreatedAt: &d.CreatedAt, UpdatedAt: &d.UpdatedAt}
		},
	})}
}

// Create stores a discipline and its prerequisite links.
func (r *DisciplineRepository) Create(ctx context.Context, d *models.Discipline) error {
	if err := r.Insert(ctx, d); err != nil {
		return err
	}
	return r.setPrerequisites(ctx, d)
}

// Save rewrites a discipline and replaces its prerequisite links.
func (r *DisciplineRepository) Save(ctx context.Context, d *models.Discipline) error {
	if err := r.Update(ctx, d); err != nil {
		return err
	}
	return r.setPrerequisites(ctx, d)
}

// Remove unlinks a discipline from every prerequisite list, then deletes it.
func (r *DisciplineRepository) Remove(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete(prerequisitesTable).
		Where(squirrel.Or{squirrel.Eq{"discipline_id": id}, squirrel.Eq{"prerequisite_id": id}}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.SQL.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error unlinking prerequisites: %w", err)
	}
	return r.Delete(ctx, id)
}

func (r *DisciplineRepository) List(ctx context.Context, page helpers.Page) ([]*models.Discipline, error) {
	ds, err := r.Find(ctx, nil, &page)
	if err != nil {
		return nil, err
	}
	return ds, r.Populate(ctx, ds...)
}

func (r *DisciplineRepository) FindByCode(ctx context.Context, code string) (*models.Discipline, error) {
	d, err := r.FindOne(ctx, codeEq("code", code))
	if err != nil {
		return nil, err
	}
	return d, r.Populate(ctx, d)
}

// FindByCodes resolves many slugged codes at once, keyed by code.
func (r *DisciplineRepository) FindByCodes(ctx context.Context, codes []string) (map[string]*models.Discipline, error) {
	out := make(map[string]*models.Discipline, len(codes))
	if len(codes) == 0 {
		return out, nil
	}
	ds, err := r.Find(ctx, squirrel.Eq{"code": codes}, nil)
	if err != nil {
		return nil, err
	}
	for _, d := range ds {
		out[d.Code] = d
	}
	return out, nil
}

// Populate fills PrerequisiteCodes, in declaration order, for ds.
func (r *DisciplineRepository) Populate(ctx context.Context, ds ...*models.Discipline) error {
	if len(ds) == 0 {
		return nil
	}
	byID := make(map[string]*models.Discipline, len(ds))
	ids := make([]string, 0, len(ds))
	for _, d := range ds {
		byID[d.ID] = d
		ids = append(ids, d.ID)
		d.PrerequisiteIDs, d.PrerequisiteCodes = nil, nil
	}

	query, args, err := r.sb.Select("dp.discipline_id", "dp.prerequisite_id", "p.code").
		From(prerequisitesTable+" dp").
		Join("disciplines p ON p.id = dp.prerequisite_id").
		Where(squirrel.Eq{"dp.discipline_id": ids}).
		OrderBy("dp.discipline_id", "dp.position").
		ToSql()
	if err != nil {
		return err
	}

	rows, err := r.db.SQL.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error querying prerequisites: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var owner, prereqID, code string
		if err := rows.Scan(&owner, &prereqID, &code); err != nil {
			return err
		}
		d := byID[owner]
		d.PrerequisiteIDs = append(d.PrerequisiteIDs, prereqID)
		d.PrerequisiteCodes = append(d.PrerequisiteCodes, code)
	}
	return rows.Err()
}

func (r *DisciplineRepository) setPrerequisites(ctx context.Context, d *models.Discipline) error {
	query, args, err := r.sb.Delete(prerequisitesTable).Where(squirrel.Eq{"discipline_id": d.ID}).ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.SQL.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error clearing prerequisites: %w", err)
	}
	if len(d.PrerequisiteIDs) == 0 {
		return nil
	}

	insert := r.sb.Insert(prerequisitesTable).Columns("discipline_id", "prerequisite_id", "position")
	seen := make(map[string]bool, len(d.PrerequisiteIDs))
	for i, id := range d.PrerequisiteIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		insert = insert.Values(d.ID, id, i)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building prerequisite insert SQL")
		return err
	}
	if _, err := r.db.SQL.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error linking prerequisites: %w", err)
	}
	return nil
}
