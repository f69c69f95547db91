package catalog

import (
	"sort"
	"sync"

	"github.com/patmonardo/gds-kernel/pkg/algorithm"
	"github.com/patmonardo/gds-kernel/pkg/kernelerrors"
)

// ProcedureDescriptor is the registry's metadata about one algorithm (spec.md §4.7:
// "name, category, config type id, supported modes, memory estimator, validators").
type ProcedureDescriptor struct {
	Name           string
	Category       string
	SupportedModes []algorithm.ExecutionMode
	Spec           algorithm.AlgorithmSpec
}

func (d ProcedureDescriptor) supports(mode algorithm.ExecutionMode) bool {
	for _, m := range d.SupportedModes {
		if m == mode {
			return true
		}
	}
	return false
}

// ProcedureRegistry maps an algorithm name to its ProcedureDescriptor (spec.md §4.7).
// Algorithms self-register at module initialization via Register, mirroring the
// teacher's PluginLoader registering an EnterprisePlugin by name.
type ProcedureRegistry struct {
	mu    sync.RWMutex
	procs map[string]ProcedureDescriptor
}

var defaultRegistry = NewProcedureRegistry()

// DefaultRegistry is the process-wide registry that self-registering algorithm
// packages use from their init() functions.
func DefaultRegistry() *ProcedureRegistry { return defaultRegistry }

func NewProcedureRegistry() *ProcedureRegistry {
	return &ProcedureRegistry{procs: make(map[string]ProcedureDescriptor)}
}

// Register adds desc, failing if its name is already taken. Algorithm packages call
// this from init() to self-register (spec.md §4.7 "Algorithm definitions self-register
// at module initialization").
func (r *ProcedureRegistry) Register(desc ProcedureDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.procs[desc.Name]; exists {
		return kernelerrors.New(kernelerrors.CatalogErrorKind, "Register").
			Key(desc.Name).
			Build()
	}
	r.procs[desc.Name] = desc
	return nil
}

// MustRegister panics on a duplicate name — intended for init()-time self-registration,
// where a duplicate is a programming error, not a runtime condition to recover from.
func (r *ProcedureRegistry) MustRegister(desc ProcedureDescriptor) {
	if err := r.Register(desc); err != nil {
		panic(err)
	}
}

func (r *ProcedureRegistry) Lookup(name string) (ProcedureDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.procs[name]
	if !ok {
		return ProcedureDescriptor{}, kernelerrors.New(kernelerrors.CatalogErrorKind, "Lookup").
			Key(name).
			Build()
	}
	return desc, nil
}

// LookupForMode finds name's descriptor and confirms it supports mode, returning a
// ConsumerError if not (spec.md §7 "mode not supported").
func (r *ProcedureRegistry) LookupForMode(name string, mode algorithm.ExecutionMode) (ProcedureDescriptor, error) {
	desc, err := r.Lookup(name)
	if err != nil {
		return ProcedureDescriptor{}, err
	}
	if !desc.supports(mode) {
		return ProcedureDescriptor{}, kernelerrors.New(kernelerrors.ConsumerErrorKind, "LookupForMode").
			Stage(kernelerrors.StageConsume).
			Key(name).
			ValidRange(mode.String()).
			Build()
	}
	return desc, nil
}

// Names returns every registered algorithm name, sorted for deterministic listing.
func (r *ProcedureRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.procs))
	for n := range r.procs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
