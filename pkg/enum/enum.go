package enum

import (
	"fmt"
	"reflect"
)

var registry = map[reflect.Type]map[string]any{}

// New registers a value of a string-backed enum type and returns it. Call it
// only from package-level var blocks; the registry is not synchronized.
func New[T comparable](value T) T {
	t := reflect.TypeOf(value)
	if registry[t] == nil {
		registry[t] = map[string]any{}
	}

	registry[t][reflect.ValueOf(value).String()] = value
	return value
}

// ToEnum parses s into a registered value of T.
func ToEnum[T comparable](s string) (T, error) {
	var zero T
	values, ok := registry[reflect.TypeOf(zero)]
	if !ok {
		return zero, fmt.Errorf("not found enum type %T", zero)
	}

	value, ok := values[s]
	if !ok {
		return zero, fmt.Errorf("not found value %s in enum %T", s, zero)
	}

	return value.(T), nil
}
