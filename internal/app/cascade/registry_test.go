package cascade

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/yigit/unicatalog/internal/pkg/apperrors"
	"github.com/yigit/unicatalog/internal/pkg/metrics"
)

// store is an in-memory parent->children tree recording removal order.
type store struct {
	mu       sync.Mutex
	children map[string][]string
	removed  []string
	present  map[string]bool
	failOn   string
}

func newStore(tree map[string][]string) *store {
	s := &store{children: tree, present: map[string]bool{}}
	for parent, kids := range tree {
		s.present[parent] = true
		for _, k := range kids {
			s.present[k] = true
		}
	}
	return s
}

func (s *store) dependents(_ context.Context, id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, k := range s.children[id] {
		if s.present[k] {
			out = append(out, k)
		}
	}
	return out, nil
}

func (s *store) remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == s.failOn {
		return errors.New("disk on fire")
	}
	if !s.present[id] {
		return apperrors.ErrResourceNotFound
	}
	delete(s.present, id)
	s.removed = append(s.removed, id)
	return nil
}

func (s *store) indexOf(id string) int {
	for i, r := range s.removed {
		if r == id {
			return i
		}
	}
	return -1
}

func catalogRegistry(s *store, m *metrics.Metrics) *Registry {
	r := NewRegistry(4, m, zerolog.Nop())
	for _, k := range []Kind{Catalog, Modality, Block, Requirement} {
		r.Handle(k, s.remove)
	}
	r.Cascade(Catalog, Modality, s.dependents)
	r.Cascade(Modality, Block, s.dependents)
	r.Cascade(Block, Requirement, s.dependents)
	return r
}

func TestRemoveDeletesDependentsBeforeParent(t *testing.T) {
	s := newStore(map[string][]string{
		"cat": {"m1", "m2"},
		"m1":  {"b1"},
		"m2":  {"b2", "b3"},
		"b1":  {"r1", "r2"},
		"b3":  {"r3"},
	})
	m := metrics.New()

	if err := catalogRegistry(s, m).Remove(context.Background(), Catalog, "cat"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if len(s.present) != 0 {
		t.Errorf("left behind: %v", s.present)
	}
	for child, parent := range map[string]string{"m1": "cat", "m2": "cat", "b1": "m1", "b3": "m2", "r1": "b1", "r3": "b3"} {
		if s.indexOf(child) > s.indexOf(parent) {
			t.Errorf("%s removed after its parent %s: %v", child, parent, s.removed)
		}
	}
	if got := testutil.ToFloat64(m.CascadeRemoved.WithLabelValues("block")); got != 3 {
		t.Errorf("blocks removed metric = %v, want 3", got)
	}
}

func TestRemoveKeepsParentWhenDependentFails(t *testing.T) {
	s := newStore(map[string][]string{
		"cat": {"m1"},
		"m1":  {"b1", "b2"},
	})
	s.failOn = "b2"
	m := metrics.New()

	err := catalogRegistry(s, m).Remove(context.Background(), Catalog, "cat")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, apperrors.ErrCascadeFailed) {
		t.Errorf("error should wrap ErrCascadeFailed: %v", err)
	}
	if !s.present["cat"] || !s.present["m1"] {
		t.Errorf("ancestors of the failing record must survive: %v", s.present)
	}
	if got := testutil.ToFloat64(m.CascadeFailures.WithLabelValues("block")); got != 1 {
		t.Errorf("failures metric = %v, want 1", got)
	}
}

func TestRemoveToleratesDependentsAlreadyGone(t *testing.T) {
	r := NewRegistry(2, nil, zerolog.Nop())
	var removed []string
	var mu sync.Mutex
	r.Handle(Discipline, func(_ context.Context, id string) error {
		mu.Lock()
		defer mu.Unlock()
		removed = append(removed, id)
		return nil
	})
	r.Handle(Requirement, func(context.Context, string) error { return apperrors.ErrResourceNotFound })
	r.Cascade(Discipline, Requirement, func(context.Context, string) ([]string, error) {
		return []string{"r1", "r2"}, nil
	})

	if err := r.Remove(context.Background(), Discipline, "d1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(removed) != 1 || removed[0] != "d1" {
		t.Errorf("removed = %v", removed)
	}
}

func TestRemoveUnknownKind(t *testing.T) {
	r := NewRegistry(1, nil, zerolog.Nop())
	if err := r.Remove(context.Background(), Offering, "x"); err == nil {
		t.Fatal("expected an error for an unregistered kind")
	}
}

func TestFanOutIsBounded(t *testing.T) {
	const limit = 3
	r := NewRegistry(limit, nil, zerolog.Nop())

	var inFlight, peak int32
	r.Handle(Offering, func(context.Context, string) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil
	})
	r.Handle(Discipline, func(context.Context, string) error { return nil })
	r.Cascade(Discipline, Offering, func(context.Context, string) ([]string, error) {
		ids := make([]string, 20)
		for i := range ids {
			ids[i] = string(rune('a' + i))
		}
		return ids, nil
	})

	if err := r.Remove(context.Background(), Discipline, "d"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if peak > limit {
		t.Errorf("peak concurrency %d exceeds limit %d", peak, limit)
	}
}

func TestRenameRewritesEveryDependent(t *testing.T) {
	m := metrics.New()
	r := NewRegistry(2, m, zerolog.Nop())

	var mu sync.Mutex
	got := map[string]string{}
	r.Propagate(Course, Modality,
		func(context.Context, string) ([]string, error) { return []string{"m1", "m2", "m3"}, nil },
		func(_ context.Context, id, key string) error {
			mu.Lock()
			defer mu.Unlock()
			got[id] = key
			return nil
		})

	if err := r.Rename(context.Background(), Course, "c1", "43"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	ids := make([]string, 0, len(got))
	for id, key := range got {
		if key != "43" {
			t.Errorf("%s got key %q", id, key)
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) != 3 {
		t.Errorf("rewritten = %v", ids)
	}
	if v := testutil.ToFloat64(m.Propagated.WithLabelValues("course")); v != 3 {
		t.Errorf("propagated metric = %v", v)
	}
}

func TestRenameWithoutPropagationsIsNoop(t *testing.T) {
	r := NewRegistry(2, nil, zerolog.Nop())
	if err := r.Rename(context.Background(), Catalog, "c", "2015"); err != nil {
		t.Fatalf("rename: %v", err)
	}
}
