package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/ports"
)

// Loader implements ports.TreatmentLoader over a fixed set of treatments.
type Loader struct {
	treatments map[string]ports.Treatment
}

// NewLoader creates a loader from option maps keyed by treatment name.
func NewLoader(data map[string]map[string]any) *Loader {
	treatments := make(map[string]ports.Treatment, len(data))
	for name, opts := range data {
		treatments[name] = ports.Treatment{Name: name, Options: opts}
	}
	return &Loader{treatments: treatments}
}

// NewFromTreatments creates a loader from complete treatment values.
func NewFromTreatments(ts ...ports.Treatment) (*Loader, error) {
	treatments := make(map[string]ports.Treatment, len(ts))
	for _, t := range ts {
		if t.Name == "" {
			return nil, fmt.Errorf("treatment missing name")
		}
		if _, dup := treatments[t.Name]; dup {
			return nil, fmt.Errorf("duplicate treatment %q", t.Name)
		}
		treatments[t.Name] = t
	}
	return &Loader{treatments: treatments}, nil
}

func (l *Loader) Get(ctx context.Context, name string) (*ports.Treatment, error) {
	t, ok := l.treatments[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTreatmentNotFound, name)
	}
	opts := make(map[string]any, len(t.Options))
	for k, v := range t.Options {
		opts[k] = v
	}
	t.Options = opts
	return &t, nil
}

func (l *Loader) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(l.treatments))
	for name := range l.treatments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
