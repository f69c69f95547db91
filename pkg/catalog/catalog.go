// Package catalog holds the kernel's two process-local registries (spec.md §4.7):
// GraphCatalog (loaded graphs) and ProcedureRegistry (self-registered algorithms). Both
// are RWMutex-guarded maps, grounded on the teacher's PluginLoader
// (pkg/plugins/loader.go's mutex-guarded slice-plus-map and init-time registration
// idiom), re-themed from .so plugin loading to in-process algorithm/graph lookup.
package catalog

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/patmonardo/gds-kernel/pkg/graphstore"
	"github.com/patmonardo/gds-kernel/pkg/kernelerrors"
	"github.com/patmonardo/gds-kernel/pkg/metrics"
)

// GraphCatalog maps a graph name to a loaded GraphStore (spec.md §4.7: "a GraphCatalog
// maps String -> Arc<dyn GraphStore>... thread-safe (RwLock + HashMap)").
type GraphCatalog struct {
	mu     sync.RWMutex
	stores map[string]*graphstore.GraphStore
}

func NewGraphCatalog() *GraphCatalog {
	return &GraphCatalog{stores: make(map[string]*graphstore.GraphStore)}
}

// Put registers gs under its own GraphName, failing if that name is already taken
// (spec.md §7 CatalogError "graph already exists").
func (c *GraphCatalog) Put(gs *graphstore.GraphStore) error {
	startedAt := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	name := gs.GraphName()
	if _, exists := c.stores[name]; exists {
		metrics.DefaultRegistry().RecordCatalogGraphLoad("error", time.Since(startedAt))
		return kernelerrors.New(kernelerrors.CatalogErrorKind, "Put").
			Stage(kernelerrors.StageLoad).
			Key(name).
			Cause(kernelerrors.ErrGraphExists).
			Build()
	}
	c.stores[name] = gs
	metrics.DefaultRegistry().RecordCatalogGraphLoad("success", time.Since(startedAt))
	metrics.DefaultRegistry().SetCatalogGauges(len(c.stores), len(DefaultRegistry().Names()))
	return nil
}

// LoadGraph satisfies pkg/algorithm.GraphCatalog.
func (c *GraphCatalog) LoadGraph(name string) (*graphstore.GraphStore, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	gs, ok := c.stores[name]
	if !ok {
		return nil, kernelerrors.New(kernelerrors.CatalogErrorKind, "LoadGraph").
			Stage(kernelerrors.StageLoad).
			Key(name).
			Cause(kernelerrors.ErrGraphNotFound).
			Build()
	}
	return gs, nil
}

// Drop removes name from the catalog, releasing the kernel's only reference to its
// GraphStore (spec.md §5 "GraphStore drops release all owned arrays").
func (c *GraphCatalog) Drop(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.stores[name]; !ok {
		return kernelerrors.New(kernelerrors.CatalogErrorKind, "Drop").
			Key(name).Cause(kernelerrors.ErrGraphNotFound).Build()
	}
	delete(c.stores, name)
	return nil
}

func (c *GraphCatalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.stores))
	for n := range c.stores {
		names = append(names, n)
	}
	return names
}

// RunID mints a fresh identifier for one ProcedureExecutor.Run invocation, used to
// correlate log lines and progress events across a single algorithm run.
func RunID() string { return uuid.NewString() }
