// Package kernelerrors defines the kernel-wide error taxonomy (spec.md §7).
//
// Every public kernel function returns a typed error instead of panicking on a
// recoverable condition. Errors are classified by Kind, carry the pipeline Stage at
// which they were detected, and render with enough context (key/index/valid range) to
// diagnose without a debugger.
package kernelerrors

import (
	"errors"
	"fmt"
)

// Kind classifies a kernel error by the taxonomy in spec.md §7.
type Kind string

const (
	IndexOutOfRange      Kind = "IndexOutOfRange"
	TypeMismatch         Kind = "TypeMismatch"
	SchemaViolation      Kind = "SchemaViolation"
	ConfigErrorKind      Kind = "ConfigError"
	ValidationErrorKind  Kind = "ValidationError"
	CatalogErrorKind     Kind = "CatalogError"
	AlgorithmErrorKind   Kind = "AlgorithmError"
	ConsumerErrorKind    Kind = "ConsumerError"
	CancelledKind        Kind = "Cancelled"
	MemoryEstimationKind Kind = "MemoryEstimationError"
)

// Stage identifies which stage of the algorithm execution contract (§4.7) failed.
type Stage string

const (
	StageParse    Stage = "parse"
	StageValidate Stage = "validate"
	StageLoad     Stage = "load"
	StageExecute  Stage = "execute"
	StageConsume  Stage = "consume"
	StageRuntime  Stage = "runtime"
)

// Sentinel errors for simple, context-free cases. Callers that only need Is() checks
// can compare against these directly instead of constructing a KernelError.
var (
	ErrGraphNotFound   = errors.New("graph not found")
	ErrGraphExists     = errors.New("graph already exists")
	ErrGraphEmpty      = errors.New("graph is empty")
	ErrUnknownProperty = errors.New("unknown property key")
	ErrUnknownLabel    = errors.New("unknown node label")
	ErrUnknownType     = errors.New("unknown relationship type")
	ErrModeUnsupported = errors.New("execution mode not supported")
)

// KernelError provides structured error information following the teacher's
// StorageError/ErrorBuilder idiom (pkg/storage/errors.go), generalized across the whole
// kernel instead of just storage operations.
type KernelError struct {
	Kind       Kind
	Stage      Stage
	Op         string // operation that failed, e.g. "AddNodeProperty", "Cursor.Next"
	Key        string // primary key, e.g. property name or algorithm name
	Index      int64  // offending index, when Kind == IndexOutOfRange
	ValidRange string // valid range or expected type description
	Cause      error
}

func (e *KernelError) Error() string {
	msg := fmt.Sprintf("%s[%s] %s", e.Kind, e.Stage, e.Op)
	if e.Key != "" {
		msg += fmt.Sprintf(" key=%q", e.Key)
	}
	if e.ValidRange != "" {
		msg += fmt.Sprintf(" (valid: %s)", e.ValidRange)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *KernelError) Unwrap() error { return e.Cause }

func (e *KernelError) Is(target error) bool {
	if target == nil {
		return false
	}
	if ke, ok := target.(*KernelError); ok {
		return ke.Kind == e.Kind
	}
	return errors.Is(e.Cause, target)
}

// Builder provides a fluent interface for constructing KernelErrors, mirroring
// pkg/storage/errors.go's ErrorBuilder.
type Builder struct {
	err KernelError
}

// New starts building a KernelError for the given kind and operation name.
func New(kind Kind, op string) *Builder {
	return &Builder{err: KernelError{Kind: kind, Op: op, Stage: StageRuntime}}
}

func (b *Builder) Stage(s Stage) *Builder {
	b.err.Stage = s
	return b
}

func (b *Builder) Key(k string) *Builder {
	b.err.Key = k
	return b
}

func (b *Builder) Index(i int64) *Builder {
	b.err.Index = i
	return b
}

func (b *Builder) ValidRange(r string) *Builder {
	b.err.ValidRange = r
	return b
}

func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

func (b *Builder) Build() *KernelError {
	e := b.err
	return &e
}

// IndexRange builds a ready-to-return IndexOutOfRange error.
func IndexRange(op string, idx, length int64) *KernelError {
	return New(IndexOutOfRange, op).
		Index(idx).
		ValidRange(fmt.Sprintf("[0, %d)", length)).
		Build()
}

// Cancelled builds a Cancelled error naming the stage where the TerminationFlag was
// observed (spec.md §7: "a cancelled computation reports Cancelled even if a downstream
// step would have errored").
func Cancelled(stage Stage) *KernelError {
	return New(CancelledKind, "execute").Stage(stage).Build()
}
