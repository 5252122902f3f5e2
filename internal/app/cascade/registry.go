// Package cascade keeps referential integrity between catalog resources:
// removing a record first removes everything that depends on it, and
// changing a natural key rewrites the copies held by dependents.
package cascade

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/unicatalog/internal/pkg/apperrors"
	"github.com/yigit/unicatalog/internal/pkg/metrics"
)

// Kind names a resource type in the graph.
type Kind string

const (
	Course      Kind = "course"
	Catalog     Kind = "catalog"
	Modality    Kind = "modality"
	Block       Kind = "block"
	Requirement Kind = "requirement"
	Discipline  Kind = "discipline"
	Offering    Kind = "offering"
)

// DependentsFunc lists the ids of the child records of one parent.
type DependentsFunc func(ctx context.Context, parentID string) ([]string, error)

// RemoveFunc deletes a single record, without touching dependents.
type RemoveFunc func(ctx context.Context, id string) error

// RewriteFunc stores a parent's new key on one dependent record.
type RewriteFunc func(ctx context.Context, id, key string) error

type edge struct {
	child      Kind
	dependents DependentsFunc
}

type propagation struct {
	edge
	rewrite RewriteFunc
}

// Registry is the dependency graph. It is configured once at startup and
// read-only afterwards.
type Registry struct {
	removers     map[Kind]RemoveFunc
	edges        map[Kind][]edge
	propagations map[Kind][]propagation

	limit   int
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewRegistry creates an empty graph. limit bounds how many dependents of
// one parent are processed concurrently; m may be nil.
func NewRegistry(limit int, m *metrics.Metrics, logger zerolog.Logger) *Registry {
	if limit <= 0 {
		limit = 1
	}
	return &Registry{
		removers:     make(map[Kind]RemoveFunc),
		edges:        make(map[Kind][]edge),
		propagations: make(map[Kind][]propagation),
		limit:        limit,
		metrics:      m,
		logger:       logger,
	}
}

// Handle registers how records of kind are deleted.
func (r *Registry) Handle(kind Kind, remove RemoveFunc) {
	r.removers[kind] = remove
}

// Cascade declares that removing a parent removes its children first.
// Edges of the same parent run concurrently.
func (r *Registry) Cascade(parent, child Kind, dependents DependentsFunc) {
	r.edges[parent] = append(r.edges[parent], edge{child: child, dependents: dependents})
}

// Propagate declares that a new key of parent is copied onto children.
func (r *Registry) Propagate(parent, child Kind, dependents DependentsFunc, rewrite RewriteFunc) {
	r.propagations[parent] = append(r.propagations[parent], propagation{
		edge:    edge{child: child, dependents: dependents},
		rewrite: rewrite,
	})
}

// Remove deletes the record and, before it, every transitive dependent.
// The first failure stops the cascade and the record itself is kept;
// dependents already removed stay removed.
func (r *Registry) Remove(ctx context.Context, kind Kind, id string) error {
	remove, ok := r.removers[kind]
	if !ok {
		return fmt.Errorf("no remover registered for %s", kind)
	}

	if err := r.removeDependents(ctx, kind, id); err != nil {
		return err
	}

	if err := remove(ctx, id); err != nil {
		if !errors.Is(err, apperrors.ErrResourceNotFound) {
			r.failed(kind, id, err)
		}
		return fmt.Errorf("error removing %s %s: %w", kind, id, err)
	}

	if r.metrics != nil {
		r.metrics.CascadeRemoved.WithLabelValues(string(kind)).Inc()
	}
	return nil
}

func (r *Registry) removeDependents(ctx context.Context, kind Kind, id string) error {
	edges := r.edges[kind]
	if len(edges) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, e := range edges {
		g.Go(func() error {
			ids, err := e.dependents(gctx, id)
			if err != nil {
				r.failed(e.child, id, err)
				return fmt.Errorf("error listing %s of %s %s: %w", e.child, kind, id, err)
			}
			return r.each(gctx, ids, func(ctx context.Context, childID string) error {
				err := r.Remove(ctx, e.child, childID)
				if errors.Is(err, apperrors.ErrResourceNotFound) {
					// already gone through another path
					return nil
				}
				return err
			})
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %s %s: %w", apperrors.ErrCascadeFailed, kind, id, err)
	}
	return nil
}

// Rename copies key onto every dependent declared with Propagate.
func (r *Registry) Rename(ctx context.Context, kind Kind, id, key string) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range r.propagations[kind] {
		g.Go(func() error {
			ids, err := p.dependents(gctx, id)
			if err != nil {
				r.failed(p.child, id, err)
				return fmt.Errorf("error listing %s of %s %s: %w", p.child, kind, id, err)
			}
			return r.each(gctx, ids, func(ctx context.Context, childID string) error {
				err := p.rewrite(ctx, childID, key)
				switch {
				case errors.Is(err, apperrors.ErrResourceNotFound):
					return nil
				case err != nil:
					r.failed(p.child, childID, err)
					return fmt.Errorf("error rewriting %s %s: %w", p.child, childID, err)
				}
				if r.metrics != nil {
					r.metrics.Propagated.WithLabelValues(string(kind)).Inc()
				}
				return nil
			})
		})
	}
	return g.Wait()
}

// each runs fn for every id with at most r.limit in flight.
func (r *Registry) each(ctx context.Context, ids []string, fn func(context.Context, string) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	for _, id := range ids {
		g.Go(func() error { return fn(gctx, id) })
	}
	return g.Wait()
}

func (r *Registry) failed(kind Kind, id string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	r.logger.Error().Err(err).Str("kind", string(kind)).Str("id", id).Msg("Cascade step failed")
	if r.metrics != nil {
		r.metrics.CascadeFailures.WithLabelValues(string(kind)).Inc()
	}
}
