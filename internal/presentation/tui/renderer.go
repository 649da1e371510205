package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// When no renderer can be built, text is returned trimmed and unstyled.
func NewRenderer(wordWrap int) func(string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if wordWrap > 0 {
		opts = append(opts, glamour.WithWordWrap(wordWrap))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return PlainRenderer
	}
	return r.Render
}

// PlainRenderer returns the text unchanged apart from surrounding whitespace.
func PlainRenderer(markdown string) (string, error) {
	return strings.TrimSpace(markdown) + "\n", nil
}
