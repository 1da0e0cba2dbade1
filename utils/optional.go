// utils/optional.go
package utils

import "encoding/json"

// Optional is a JSON field that distinguishes three states: absent from the
// payload, explicitly null, and set to a value. Plain pointers collapse the
// first two, which breaks partial updates where null must clear a field and
// an absent key must leave it untouched.
type Optional[T any] struct {
	Present bool
	Null    bool
	Value   T
}

// UnmarshalJSON is only invoked when the key is present in the payload, so
// Present is true for both null and concrete values.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Get returns the value and whether a non-null value was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Present && !o.Null
}

// Set builds a present Optional, mainly for tests and internal callers.
func Set[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Value: v}
}

// Clear builds an explicit-null Optional.
func Clear[T any]() Optional[T] {
	return Optional[T]{Present: true, Null: true}
}
