package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/yigit/unicatalog/internal/db"
	"github.com/yigit/unicatalog/internal/pkg/apperrors"
	"github.com/yigit/unicatalog/internal/pkg/dberrors"
	"github.com/yigit/unicatalog/internal/pkg/helpers"
	"github.com/yigit/unicatalog/internal/pkg/logger"
	"github.com/yigit/unicatalog/internal/pkg/validation"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Meta points at the bookkeeping fields every entity carries.
type Meta struct {
	ID        *string
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// Schema describes how one entity maps onto its table. Scan receives
// columns in the order id, Fields..., created_at, updated_at; Values
// returns Fields only.
type Schema[T any] struct {
	Table   string
	Fields  []string
	OrderBy []string
	Scan    func(rowScanner) (*T, error)
	Values  func(*T) ([]interface{}, error)
	Meta    func(*T) Meta
}

// Collection is the generic store adapter: filtered, ordered and paged
// reads plus validated writes where unique index violations surface as
// apperrors.ErrResourceAlreadyExists.
type Collection[T any] struct {
	db     *db.DB
	sb     squirrel.StatementBuilderType
	schema Schema[T]
	now    func() time.Time
}

// NewCollection binds a schema to a database.
func NewCollection[T any](database *db.DB, schema Schema[T]) *Collection[T] {
	return &Collection[T]{
		db:     database,
		sb:     database.Builder(),
		schema: schema,
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (c *Collection[T]) columns() []string {
	cols := make([]string, 0, len(c.schema.Fields)+3)
	cols = append(cols, "id")
	cols = append(cols, c.schema.Fields...)
	return append(cols, "created_at", "updated_at")
}

// Find returns every record matching where in natural-key order. A nil
// page returns all of them.
func (c *Collection[T]) Find(ctx context.Context, where squirrel.Sqlizer, page *helpers.Page) ([]*T, error) {
	q := c.sb.Select(c.columns()...).From(c.schema.Table).OrderBy(c.schema.OrderBy...)
	if where != nil {
		q = q.Where(where)
	}
	if page != nil {
		q = q.Offset(page.Offset()).Limit(page.Limit())
	}

	query, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", c.schema.Table).Msg("Error building select SQL")
		return nil, err
	}

	rows, err := c.db.SQL.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", c.schema.Table, err)
	}
	defer rows.Close()

	out := make([]*T, 0)
	for rows.Next() {
		entity, err := c.schema.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", c.schema.Table, err)
		}
		out = append(out, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", c.schema.Table, err)
	}
	return out, nil
}

// FindOne returns the single record matching where, or ErrResourceNotFound.
func (c *Collection[T]) FindOne(ctx context.Context, where squirrel.Sqlizer) (*T, error) {
	query, args, err := c.sb.Select(c.columns()...).From(c.schema.Table).Where(where).Limit(1).ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", c.schema.Table).Msg("Error building select SQL")
		return nil, err
	}

	entity, err := c.schema.Scan(c.db.SQL.QueryRowContext(ctx, query, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error reading %s: %w", c.schema.Table, err)
	}
	return entity, nil
}

// IDs returns the ids of every record matching where. The cursor is fully
// drained before returning so callers may issue writes afterwards.
func (c *Collection[T]) IDs(ctx context.Context, where squirrel.Sqlizer) ([]string, error) {
	query, args, err := c.sb.Select("id").From(c.schema.Table).Where(where).OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := c.db.SQL.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying %s ids: %w", c.schema.Table, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Insert validates entity, assigns its id and timestamps, and stores it.
func (c *Collection[T]) Insert(ctx context.Context, entity *T) error {
	if err := validation.Struct(entity); err != nil {
		return err
	}

	meta := c.schema.Meta(entity)
	if *meta.ID == "" {
		*meta.ID = uuid.NewString()
	}
	now := c.now()
	*meta.CreatedAt, *meta.UpdatedAt = now, now

	values, err := c.schema.Values(entity)
	if err != nil {
		return err
	}

	row := make([]interface{}, 0, len(values)+3)
	row = append(row, *meta.ID)
	row = append(row, values...)
	row = append(row, now, now)

	query, args, err := c.sb.Insert(c.schema.Table).Columns(c.columns()...).Values(row...).ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", c.schema.Table).Msg("Error building insert SQL")
		return err
	}

	if _, err := c.db.SQL.ExecContext(ctx, query, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error inserting into %s: %w", c.schema.Table, err)
	}
	return nil
}

// Update validates entity and rewrites every field, stamping UpdatedAt.
func (c *Collection[T]) Update(ctx context.Context, entity *T) error {
	if err := validation.Struct(entity); err != nil {
		return err
	}

	values, err := c.schema.Values(entity)
	if err != nil {
		return err
	}

	meta := c.schema.Meta(entity)
	now := c.now()

	q := c.sb.Update(c.schema.Table)
	for i, field := range c.schema.Fields {
		q = q.Set(field, values[i])
	}
	q = q.Set("updated_at", now).Where(squirrel.Eq{"id": *meta.ID})

	if err := c.exec(ctx, q); err != nil {
		return err
	}
	*meta.UpdatedAt = now
	return nil
}

// Patch sets the given columns on every record matching where and
// stamps updated_at. It returns the number of records touched.
func (c *Collection[T]) Patch(ctx context.Context, where squirrel.Sqlizer, set map[string]interface{}) (int64, error) {
	set["updated_at"] = c.now()
	query, args, err := c.sb.Update(c.schema.Table).SetMap(set).Where(where).ToSql()
	if err != nil {
		return 0, err
	}

	res, err := c.db.SQL.ExecContext(ctx, query, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		return 0, fmt.Errorf("error updating %s: %w", c.schema.Table, err)
	}
	return res.RowsAffected()
}

// ByIDs loads the records with the given ids, keyed by id. Unknown ids
// are absent from the map.
func (c *Collection[T]) ByIDs(ctx context.Context, ids []string) (map[string]*T, error) {
	out := make(map[string]*T, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	found, err := c.Find(ctx, squirrel.Eq{"id": ids}, nil)
	if err != nil {
		return nil, err
	}
	for _, e := range found {
		out[*c.schema.Meta(e).ID] = e
	}
	return out, nil
}

// Delete removes one record by id.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.exec(ctx, c.sb.Delete(c.schema.Table).Where(squirrel.Eq{"id": id}))
}

func (c *Collection[T]) exec(ctx context.Context, q squirrel.Sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", c.schema.Table).Msg("Error building SQL")
		return err
	}

	res, err := c.db.SQL.ExecContext(ctx, query, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error writing %s: %w", c.schema.Table, err)
	}
	return affected(res)
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// codeEq matches a code column case-insensitively.
func codeEq(column, code string) squirrel.Sqlizer {
	return squirrel.Expr("LOWER("+column+") = LOWER(?)", code)
}
