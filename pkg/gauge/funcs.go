package gauge

import (
	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/ports"
)

// Funcs is a gauge assembled from closures, for hosts that add a method
// without declaring a type. Missing required functions are reported by
// MissingOperations and rejected by the shell before the gauge is stored.
type Funcs struct {
	ValuesFunc      func() domain.Values
	EnableFunc      func()
	DisableFunc     func()
	AppendFunc      func(surface ports.Surface) error
	HighlightFunc   func()
	UnhighlightFunc func()
}

// MissingOperations lists the required operations that have no function.
func (f *Funcs) MissingOperations() []string {
	var missing []string
	if f.ValuesFunc == nil {
		missing = append(missing, "Values")
	}
	if f.EnableFunc == nil {
		missing = append(missing, "Enable")
	}
	if f.DisableFunc == nil {
		missing = append(missing, "Disable")
	}
	if f.AppendFunc == nil {
		missing = append(missing, "Append")
	}
	return missing
}

func (f *Funcs) Values() domain.Values {
	if f.ValuesFunc == nil {
		return domain.Values{}
	}
	return f.ValuesFunc()
}

func (f *Funcs) Enable() {
	if f.EnableFunc != nil {
		f.EnableFunc()
	}
}

func (f *Funcs) Disable() {
	if f.DisableFunc != nil {
		f.DisableFunc()
	}
}

func (f *Funcs) Append(surface ports.Surface) error {
	if f.AppendFunc == nil {
		return nil
	}
	return f.AppendFunc(surface)
}

func (f *Funcs) Highlight() {
	if f.HighlightFunc != nil {
		f.HighlightFunc()
	}
}

func (f *Funcs) Unhighlight() {
	if f.UnhighlightFunc != nil {
		f.UnhighlightFunc()
	}
}
