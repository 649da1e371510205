package schema

import "sort"

// Schema is a map of field names to their expected types.
type Schema map[string]Type

// Validate checks that every schema field is present in data and well typed.
func Validate(s Schema, data map[string]any) error {
	return validate(s, data, true)
}

// ValidatePresent checks only the schema fields that appear in data.
// Absent fields are left to the caller's defaults.
func ValidatePresent(s Schema, data map[string]any) error {
	return validate(s, data, false)
}

// Unknown returns the keys of data that the schema does not define, sorted.
func Unknown(s Schema, data map[string]any) []string {
	var keys []string
	for k := range data {
		if _, ok := s[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func validate(s Schema, data map[string]any, required bool) error {
	if len(s) == 0 {
		return nil
	}

	// Sorted for stable error ordering.
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		value, exists := data[name]
		if !exists {
			if required {
				errs = append(errs, &ValidationError{Key: name, Reason: "required"})
			}
			continue
		}
		if err := s[name].Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: name, Reason: err.Error(), Value: value})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
