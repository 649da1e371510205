package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

type stringType struct{}

func (stringType) Name() string { return "string" }

func (stringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

type intType struct{}

func (intType) Name() string { return "int" }

func (intType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case json.Number:
		if _, err := v.Int64(); err != nil {
			return fmt.Errorf("expected int, got %s", v)
		}
		return nil
	case float64:
		// JSON numbers decode as float64
		if v == float64(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected int, got fractional number %v", v)
	case float32:
		if v == float32(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected int, got fractional number %v", v)
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
}

type floatType struct{}

func (floatType) Name() string { return "float" }

func (floatType) Validate(value any) error {
	switch v := value.(type) {
	case json.Number:
		if _, err := v.Float64(); err != nil {
			return fmt.Errorf("expected number, got %s", v)
		}
		return nil
	case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	default:
		return fmt.Errorf("expected number, got %T", value)
	}
}

type boolType struct{}

func (boolType) Name() string { return "bool" }

func (boolType) Validate(value any) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

type sliceType struct {
	elem Type
}

func (t sliceType) Name() string { return "[" + t.elem.Name() + "]" }

func (t sliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected list, got %T", value)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := t.elem.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

type customType struct {
	name     string
	validate func(any) error
}

func (t customType) Name() string { return t.name }

func (t customType) Validate(value any) error { return t.validate(value) }

// String creates a string type validator.
func String() Type { return stringType{} }

// Int creates an integer type validator. Whole-number floats are accepted.
func Int() Type { return intType{} }

// Float creates a numeric type validator.
func Float() Type { return floatType{} }

// Bool creates a boolean type validator.
func Bool() Type { return boolType{} }

// Slice creates a list type validator for elements of the given type.
func Slice(elem Type) Type { return sliceType{elem: elem} }

// Custom creates a type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return customType{name: name, validate: validate}
}

// And chains a base type with extra constraints; the first failure wins.
func And(base Type, constraints ...func(any) error) Type {
	return Custom(base.Name(), func(v any) error {
		if err := base.Validate(v); err != nil {
			return err
		}
		for _, c := range constraints {
			if err := c(v); err != nil {
				return err
			}
		}
		return nil
	})
}

// NonEmpty rejects empty strings.
func NonEmpty(v any) error {
	if s, _ := v.(string); s == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}

// Positive rejects numbers that are not strictly greater than zero.
func Positive(v any) error {
	f, ok := toFloat(v)
	if !ok {
		return fmt.Errorf("expected number, got %T", v)
	}
	if f <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

// Finite rejects NaN and infinite numbers.
func Finite(v any) error {
	f, ok := toFloat(v)
	if !ok {
		return fmt.Errorf("expected number, got %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("must be a finite number")
	}
	return nil
}

// AtMost returns a constraint rejecting numbers greater than limit.
func AtMost(limit float64) func(any) error {
	return func(v any) error {
		f, ok := toFloat(v)
		if !ok {
			return fmt.Errorf("expected number, got %T", v)
		}
		if f > limit {
			return fmt.Errorf("must be at most %v", limit)
		}
		return nil
	}
}

func toFloat(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
