package normalization

import (
	"errors"
	"testing"
)

type testEnum string

const (
	testEnumAlpha testEnum = "alpha"
	testEnumBeta  testEnum = "beta"
	testEnumGamma testEnum = "gamma"
)

func newTestNormalizer() *Normalizer[testEnum] {
	return NewNormalizer("test enum", map[string]testEnum{
		"alpha": testEnumAlpha,
		"beta":  testEnumBeta,
		"Gamma": testEnumGamma,
	})
}

func TestNormalizer_ParseAcceptsLooseInput(t *testing.T) {
	normalizer := newTestNormalizer()

	tests := []struct {
		name     string
		input    string
		expected testEnum
	}{
		{"exact match", "alpha", testEnumAlpha},
		{"case insensitive", "BETA", testEnumBeta},
		{"with spaces", "  beta  ", testEnumBeta},
		{"mixed case key", "gamma", testEnumGamma},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizer.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}

	if _, err := normalizer.Parse(""); err == nil {
		t.Error("Parse(\"\") should fail")
	}
}

func TestNormalizer_Parse(t *testing.T) {
	normalizer := newTestNormalizer()

	got, err := normalizer.Parse(" Beta ")
	if err != nil {
		t.Fatalf("Parse(valid) returned error: %v", err)
	}
	if got != testEnumBeta {
		t.Errorf("Parse(valid) = %v, want %v", got, testEnumBeta)
	}

	_, err = normalizer.Parse("delta")
	var invalid *InvalidValueError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidValueError, got %v", err)
	}
	if invalid.Value != "delta" || invalid.Name != "test enum" {
		t.Errorf("unexpected error fields: %+v", invalid)
	}
	want := `invalid test enum "delta", valid options: alpha, beta, gamma`
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestNormalizer_ValidKeysIsCopy(t *testing.T) {
	normalizer := newTestNormalizer()
	keys := normalizer.ValidKeys()
	keys[0] = "mutated"
	if normalizer.ValidKeys()[0] != "alpha" {
		t.Error("ValidKeys should return a copy")
	}
}
