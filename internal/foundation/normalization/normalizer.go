package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer maps loosely formatted strings (case, surrounding space) onto a
// closed set of enum values.
type Normalizer[T comparable] struct {
	name        string
	validValues map[string]T
	validKeys   []string // Cached for error messages
}

// NewNormalizer creates a normalizer for the named enum. The keys of values are
// normalized the same way as input.
func NewNormalizer[T comparable](name string, values map[string]T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))

	for k, v := range values {
		key := clean(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)

	return &Normalizer[T]{
		name:        name,
		validValues: normalized,
		validKeys:   validKeys,
	}
}

// InvalidValueError reports input outside the accepted set.
type InvalidValueError struct {
	Name  string
	Value string
	Valid []string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s %q, valid options: %s", e.Name, e.Value, strings.Join(e.Valid, ", "))
}

// Parse returns the enum value for raw, or an *InvalidValueError.
func (n *Normalizer[T]) Parse(raw string) (T, error) {
	if value, exists := n.validValues[clean(raw)]; exists {
		return value, nil
	}
	var zero T
	return zero, &InvalidValueError{Name: n.name, Value: raw, Valid: n.ValidKeys()}
}

// ValidKeys returns all valid normalized keys, sorted.
func (n *Normalizer[T]) ValidKeys() []string {
	result := make([]string, len(n.validKeys))
	copy(result, n.validKeys)
	return result
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
