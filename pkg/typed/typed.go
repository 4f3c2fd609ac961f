// Package typed materializes strongly-typed records from normalized field
// bags and back, using the JSON tags of the target type.
package typed

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/lectern/pkg/core"
)

// Decode converts fields into a value of type T.
func Decode[T any](fields core.Fields) (T, error) {
	var data T
	raw, err := json.Marshal(fields)
	if err != nil {
		return data, fmt.Errorf("fields marshal failed: %w", err)
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("unmarshal to %T failed: %w", data, err)
	}
	return data, nil
}

// MustDecode is Decode for field bags that already passed normalization,
// where a failure is a programming error.
func MustDecode[T any](fields core.Fields) T {
	data, err := Decode[T](fields)
	if err != nil {
		panic(err)
	}
	return data
}

// Encode converts a typed record into a field bag.
func Encode(v any) (core.Fields, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal typed data: %w", err)
	}
	var fields core.Fields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to convert typed data to fields: %w", err)
	}
	return fields, nil
}
