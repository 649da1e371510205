package validator

import (
	"reflect"

	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/gauge"
)

// partial is implemented by gauges that can lack operations at runtime (see gauge.Funcs).
type partial interface {
	MissingOperations() []string
}

// CheckGauge asserts that a freshly constructed gauge exposes the operations
// the shell depends on. It runs before the gauge is stored.
func CheckGauge(method string, g gauge.Gauge) error {
	if isNil(g) {
		return &domain.ConfigError{
			Method: method,
			Field:  "constructor",
			Reason: "returned no gauge",
			Err:    domain.ErrMissingOperation,
		}
	}
	if p, ok := g.(partial); ok {
		if missing := p.MissingOperations(); len(missing) > 0 {
			return &domain.ConfigError{
				Method: method,
				Field:  missing[0],
				Reason: "gauge is missing required operation",
				Value:  missing,
				Err:    domain.ErrMissingOperation,
			}
		}
	}
	return nil
}

func isNil(g gauge.Gauge) bool {
	if g == nil {
		return true
	}
	v := reflect.ValueOf(g)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}
