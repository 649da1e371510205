package loam

// TreatmentMetadata is the front matter of a treatment document.
// The document body, when present, becomes the widget's main text.
type TreatmentMetadata struct {
	Name        string         `json:"name" mapstructure:"name"`
	Description string         `json:"description" mapstructure:"description"`
	Options     map[string]any `json:"options" mapstructure:"options"`
}
