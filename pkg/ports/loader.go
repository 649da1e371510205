package ports

import "context"

// Treatment is a named, versioned option set handed to Widget.Init.
type Treatment struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Options     map[string]any `json:"options"`
}

// TreatmentLoader resolves treatments from a catalogue (e.g. a Loam vault).
type TreatmentLoader interface {
	// Get returns the treatment with the given name.
	Get(ctx context.Context, name string) (*Treatment, error)

	// List returns the names of all available treatments.
	List(ctx context.Context) ([]string, error)
}
