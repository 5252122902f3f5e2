package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/unicatalog/internal/app/models"
	"github.com/yigit/unicatalog/internal/db"
	"github.com/yigit/unicatalog/internal/pkg/helpers"
)

// OfferingFilter narrows an offering listing to one term.
type OfferingFilter struct {
	Year   *int
	Period string
}

// OfferingRepository handles database operations for offerings. Schedules
// and reservations are embedded documents stored as JSON text.
type OfferingRepository struct {
	*Collection[models.Offering]
}

// NewOfferingRepository creates a new offering repository
func NewOfferingRepository(database *db.DB) *OfferingRepository {
	return &OfferingRepository{NewCollection(database, Schema[models.Offering]{
		Table:   "offerings",
		Fields:  []string{"discipline_id", "code", "year", "period", "vacancy", "schedules", "reservations"},
		OrderBy: []string{"year", "period", "code"},
		Scan:    scanOffering,
		Values: func(o *models.Offering) ([]interface{}, error) {
			schedules, err := encodeList(o.Schedules)
			if err != nil {
				return nil, fmt.Errorf("error encoding schedules: %w", err)
			}
			reservations, err := encodeList(o.Reservations)
			if err != nil {
				return nil, fmt.Errorf("error encoding reservations: %w", err)
			}
			return []interface{}{o.DisciplineID, o.Code, o.Year, o.Period, *o.Vacancy, schedules, reservations}, nil
		},
		Meta: func(o *models.Offering) Meta {
			return Meta{ID: &o.ID, CreatedAt: &o.CreatedAt, UpdatedAt: &o.UpdatedAt}
		},
	})}
}

func scanOffering(row rowScanner) (*models.Offering, error) {
	var o models.Offering
	var vacancy int
	var schedules, reservations string
	if err := row.Scan(&o.ID, &o.DisciplineID, &o.Code, &o.Year, &o.Period, &vacancy, &schedules, &reservations,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Vacancy = &vacancy
	if err := json.Unmarshal([]byte(schedules), &o.Schedules); err != nil {
		return nil, fmt.Errorf("error decoding schedules: %w", err)
	}
	if err := json.Unmarshal([]byte(reservations), &o.Reservations); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %w", err)
	}
	return &o, nil
}

func encodeList[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	return string(b), err
}

// ListByDiscipline returns one page of a discipline's offerings ordered by
// year, period and code.
func (r *OfferingRepository) ListByDiscipline(ctx context.Context, disciplineID string, filter OfferingFilter, page helpers.Page) ([]*models.Offering, error) {
	where := squirrel.And{squirrel.Eq{"discipline_id": disciplineID}}
	if filter.Year != nil {
		where = append(where, squirrel.Eq{"year": *filter.Year})
	}
	if filter.Period != "" {
		where = append(where, squirrel.Eq{"period": filter.Period})
	}
	return r.Find(ctx, where, &page)
}

// FindByKey resolves an offering by its compound natural key.
func (r *OfferingRepository) FindByKey(ctx context.Context, disciplineID string, year int, period, code string) (*models.Offering, error) {
	return r.FindOne(ctx, squirrel.And{
		squirrel.Eq{"discipline_id": disciplineID, "year": year},
		codeEq("period", period),
		codeEq("code", code),
	})
}

func (r *OfferingRepository) IDsByDiscipline(ctx context.Context, disciplineID string) ([]string, error) {
	return r.IDs(ctx, squirrel.Eq{"discipline_id": disciplineID})
}
