package helper

import (
	"fmt"
)

// ErrNoValue is returned when a getter succeeds without producing a value.
var ErrNoValue = fmt.Errorf("no value")

// GetTypedValueOf safely asserts the result of a getter function to the expected type T.
// A nil result is reported as ErrNoValue, a value of another type as an error.
func GetTypedValueOf[T any](getFn func() (any, error)) (T, error) {
	var zero T

	res, err := getFn()
	if err != nil {
		return zero, fmt.Errorf("failed to get value: %w", err)
	}
	if res == nil {
		return zero, ErrNoValue
	}

	val, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected type: %T", res)
	}

	return val, nil
}

// CollectTyped drains an iterator of untyped values, asserting each to T.
// next returns nil once exhausted, as memdb result iterators do.
func CollectTyped[T any](next func() any) ([]T, error) {
	var out []T
	for raw := next(); raw != nil; raw = next() {
		val, ok := raw.(T)
		if !ok {
			return nil, fmt.Errorf("unexpected type: %T", raw)
		}
		out = append(out, val)
	}
	return out, nil
}
