package validation

import (
	"testing"
)

// TestValidatePropertyKey exercises the rule GraphStore.AddNodeProperty/
// AddRelationshipProperty enforce on every property key (spec.md §3.4).
func TestValidatePropertyKey(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		expectError bool
	}{
		{name: "valid simple key", key: "name"},
		{name: "valid key with underscore", key: "first_name"},
		{name: "valid key with numbers", key: "address1"},
		{name: "valid key starting with underscore", key: "_private"},
		{name: "invalid key with hyphen", key: "first-name", expectError: true},
		{name: "invalid key with space", key: "first name", expectError: true},
		{name: "invalid key with special char", key: "name!", expectError: true},
		{name: "invalid key starting with number", key: "1name", expectError: true},
		{name: "empty key", key: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePropertyKey(tt.key)
			if tt.expectError && err == nil {
				t.Errorf("ValidatePropertyKey(%q) = nil, want error", tt.key)
			}
			if !tt.expectError && err != nil {
				t.Errorf("ValidatePropertyKey(%q) = %v, want nil", tt.key, err)
			}
		})
	}
}

func TestValidatePropertyKeyLength(t *testing.T) {
	ok := make([]byte, MaxPropertyKey)
	for i := range ok {
		ok[i] = 'a'
	}
	if err := ValidatePropertyKey(string(ok)); err != nil {
		t.Errorf("key at max length: %v", err)
	}

	tooLong := make([]byte, MaxPropertyKey+1)
	for i := range tooLong {
		tooLong[i] = 'a'
	}
	if err := ValidatePropertyKey(string(tooLong)); err == nil {
		t.Error("key over max length: want error, got nil")
	}
}

// TestValidateLabelOrType exercises the naming rule for node labels and relationship
// type names (spec.md §3.1/§3.4).
func TestValidateLabelOrType(t *testing.T) {
	tests := []struct {
		name        string
		label       string
		expectError bool
	}{
		{name: "valid label", label: "Person"},
		{name: "valid type", label: "FOLLOWS"},
		{name: "valid with underscore", label: "Employee_Level2"},
		{name: "empty", label: "", expectError: true},
		{name: "special characters", label: "Person<script>", expectError: true},
		{name: "too long", label: string(make([]byte, MaxLabelLength+1)), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabelOrType(tt.label)
			if tt.expectError && err == nil {
				t.Errorf("ValidateLabelOrType(%q) = nil, want error", tt.label)
			}
			if !tt.expectError && err != nil {
				t.Errorf("ValidateLabelOrType(%q) = %v, want nil", tt.label, err)
			}
		})
	}
}

// TestValidatePartitionBatch exercises the bound a Pregel partition size request is
// checked against (spec.md §4.5).
func TestValidatePartitionBatch(t *testing.T) {
	tests := []struct {
		name        string
		size        int
		expectError bool
	}{
		{name: "single node partition", size: 1},
		{name: "typical partition", size: 1000},
		{name: "at max", size: MaxPartitionBatch},
		{name: "zero", size: 0, expectError: true},
		{name: "negative", size: -1, expectError: true},
		{name: "over max", size: MaxPartitionBatch + 1, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePartitionBatch(tt.size)
			if tt.expectError && err == nil {
				t.Errorf("ValidatePartitionBatch(%d) = nil, want error", tt.size)
			}
			if !tt.expectError && err != nil {
				t.Errorf("ValidatePartitionBatch(%d) = %v, want nil", tt.size, err)
			}
		})
	}
}

// TestFormatValidationError exercises the struct-tag error path pkg/algorithm.DecodeConfig
// drives through this package's shared Validate instance.
func TestFormatValidationError(t *testing.T) {
	type cfg struct {
		DampingFactor float64 `validate:"gt=0,lt=1"`
	}

	err := Validate.Struct(&cfg{DampingFactor: 1.5})
	if err == nil {
		t.Fatal("expected validation error")
	}

	formatted := FormatValidationError(err)
	if formatted == nil {
		t.Fatal("FormatValidationError returned nil for a real error")
	}
}

func TestFormatValidationErrorNil(t *testing.T) {
	if err := FormatValidationError(nil); err != nil {
		t.Errorf("FormatValidationError(nil) = %v, want nil", err)
	}
}
