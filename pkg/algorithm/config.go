package algorithm

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/patmonardo/gds-kernel/pkg/kernelerrors"
	"github.com/patmonardo/gds-kernel/pkg/validation"
)

// DecodeConfig round-trips raw (a JSON-like map, spec.md §6) through YAML into a typed
// struct dst, then runs struct-tag validation against pkg/validation's shared registry.
// Concrete AlgorithmSpecs call this from ParseConfig to get config-shape errors (missing
// or mistyped fields) without hand-writing a decoder per algorithm.
func DecodeConfig(raw map[string]any, dst any, op string) error {
	bytes, err := yaml.Marshal(raw)
	if err != nil {
		return kernelerrors.New(kernelerrors.ConfigErrorKind, op).
			Stage(kernelerrors.StageParse).
			Cause(err).
			Build()
	}
	if err := yaml.Unmarshal(bytes, dst); err != nil {
		return kernelerrors.New(kernelerrors.ConfigErrorKind, op).
			Stage(kernelerrors.StageParse).
			Cause(err).
			Build()
	}
	if err := validation.Validate.Struct(dst); err != nil {
		return kernelerrors.New(kernelerrors.ConfigErrorKind, op).
			Stage(kernelerrors.StageParse).
			Cause(fmt.Errorf("config validation: %w", validation.FormatValidationError(err))).
			Build()
	}
	return nil
}
