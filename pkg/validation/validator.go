// Package validation validates the shapes the kernel accepts at its boundary: property
// keys and relationship-type names going into a GraphStore (spec.md §3.4, §4.4), and
// the Pregel partition batch size an AlgorithmConfig can request (spec.md §4.5). Every
// other package stays strict about types and lets the Go compiler do its job; this
// package exists for the handful of places a bare string or int crosses in from outside
// (a catalog load, a YAML config) and needs shape-checking before it becomes a schema
// entry or a partition bound.
package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// Validate is a singleton validator instance, shared with pkg/algorithm's config
	// decoder so struct-tag validation rules stay in one registry.
	Validate *validator.Validate

	// MaxPropertyKey bounds a node/relationship property key's length (spec.md §3.4).
	MaxPropertyKey = 100
	// MaxLabelLength bounds a single node label or relationship type name's length.
	MaxLabelLength = 50
	// MinPartitionBatch and MaxPartitionBatch are the bounds ValidatePartitionBatch checks
	// a requested partition size against (spec.md §4.5's leaf threshold sits inside this
	// range); the Pregel executor itself splits by its fixed leafThreshold.
	MinPartitionBatch = 1
	MaxPartitionBatch = 1_000_000

	propKeyPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	labelPattern   = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

func init() {
	Validate = validator.New()
}

// ValidatePropertyKey checks a node or relationship property key against the naming
// rule GraphStore.AddNodeProperty/AddRelationshipProperty require: non-empty, bounded
// length, starts with a letter or underscore.
func ValidatePropertyKey(key string) error {
	if key == "" {
		return errors.New("property key cannot be empty")
	}
	if len(key) > MaxPropertyKey {
		return fmt.Errorf("property key %q exceeds maximum length of %d characters", key, MaxPropertyKey)
	}
	if !propKeyPattern.MatchString(key) {
		return fmt.Errorf("property key %q is invalid (must start with a letter or underscore, followed by alphanumeric or underscore)", key)
	}
	return nil
}

// ValidateLabelOrType checks a node label or relationship type name: non-empty,
// bounded length, alphanumeric-and-underscore only.
func ValidateLabelOrType(name string) error {
	if name == "" {
		return errors.New("label or relationship type cannot be empty")
	}
	if len(name) > MaxLabelLength {
		return fmt.Errorf("label/type %q exceeds maximum length of %d characters", name, MaxLabelLength)
	}
	if !labelPattern.MatchString(name) {
		return fmt.Errorf("label/type %q contains invalid characters (only alphanumeric and underscore allowed)", name)
	}
	return nil
}

// ValidatePartitionBatch checks a Pregel partition size an AlgorithmConfig requests for
// its executor (e.g. a custom leaf threshold) against sane bounds.
func ValidatePartitionBatch(size int) error {
	if size < MinPartitionBatch {
		return fmt.Errorf("partition batch size must be at least %d, got %d", MinPartitionBatch, size)
	}
	if size > MaxPartitionBatch {
		return fmt.Errorf("partition batch size must not exceed %d, got %d", MaxPartitionBatch, size)
	}
	return nil
}

// FormatValidationError converts go-playground/validator struct-tag errors (as raised
// by pkg/algorithm.DecodeConfig's Validate.Struct call) into a single user-facing
// message naming the first failing field.
func FormatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "dive":
			return fmt.Errorf("%s: invalid element in array", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
