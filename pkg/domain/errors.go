package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfig is the root of every fatal configuration failure raised at construction or init time.
var ErrConfig = errors.New("configuration error")

// ErrUnknownMethod is returned when a method name is not registered.
var ErrUnknownMethod = errors.New("unknown method")

// ErrDuplicateMethod is returned when a method name is registered twice.
var ErrDuplicateMethod = errors.New("method already registered")

// ErrMissingOperation is returned when a gauge does not expose an operation the shell depends on.
var ErrMissingOperation = errors.New("gauge is missing a required operation")

// ErrNotInitialized is returned when a widget is used before Init succeeded.
var ErrNotInitialized = errors.New("widget is not initialized")

// ErrDestroyed is returned when a widget is used after the host destroyed it.
var ErrDestroyed = errors.New("widget was destroyed")

// ErrNotCommitted is returned when an outcome is requested before commit.
var ErrNotCommitted = errors.New("selection is not committed")

// ErrCommitted is returned when a committed gauge is asked to change its selection.
var ErrCommitted = errors.New("selection is already committed")

// ErrDisabled is returned when a disabled gauge receives participant input.
var ErrDisabled = errors.New("gauge is disabled")

// ErrOutOfRange is returned when a selection falls outside the control's range.
var ErrOutOfRange = errors.New("selection out of range")

// ErrNotRestorable is returned when a widget cannot produce a snapshot.
var ErrNotRestorable = errors.New("widget is not restorable")

// ErrUnknownSignal is returned when a host delivers a lifecycle signal the widget does not know.
var ErrUnknownSignal = errors.New("unknown lifecycle signal")

// ErrSessionNotFound is returned when a widget id cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrTreatmentNotFound is returned when a treatment name is not in the catalogue.
var ErrTreatmentNotFound = errors.New("treatment not found")

// ConfigError describes a fatal configuration or contract violation.
// It always names the method involved (when known) and the violated constraint.
type ConfigError struct {
	Method string // Method name, empty when the failure precedes method resolution
	Field  string // Option or operation name
	Reason string // Human-readable constraint
	Value  any    // Offending value, if any
	Err    error  // Specific sentinel or underlying cause
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("bombrisk")
	if e.Method != "" {
		fmt.Fprintf(&b, ": method %q", e.Method)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s", e.Field)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Value != nil {
		fmt.Fprintf(&b, " (got %v)", e.Value)
	}
	if e.Err != nil && e.Reason == "" {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes both ErrConfig and the specific cause to errors.Is / errors.As.
func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConfig}
	}
	return []error{ErrConfig, e.Err}
}

// RangeError reports a selection outside [Min, Max].
type RangeError struct {
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("selection %d out of range [%d, %d]", e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }
