package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/ports"
	"github.com/muesli/termenv"
)

// DefaultColumns is the number of boxes drawn per grid line.
const DefaultColumns = 10

const (
	glyphClosed = "□"
	glyphOpen   = "■"
	glyphBomb   = "✹"
)

// Surface draws gauges to a terminal: the main text once, then the box grid
// (or lottery rows), the control label, the banner and the button.
type Surface struct {
	out      *termenv.Output
	w        io.Writer
	columns  int
	markdown func(string) (string, error)
	drawn    bool
	last     string
}

var (
	_ ports.Surface = (*Surface)(nil)
	_ ports.Clearer = (*Surface)(nil)
)

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithColumns sets how many boxes fit on one grid line.
func WithColumns(n int) SurfaceOption {
	return func(s *Surface) {
		if n > 0 {
			s.columns = n
		}
	}
}

// WithMarkdown renders the main text through fn (see NewRenderer).
func WithMarkdown(fn func(string) (string, error)) SurfaceOption {
	return func(s *Surface) { s.markdown = fn }
}

// WithProfile forces a colour profile, e.g. termenv.Ascii in tests.
func WithProfile(p termenv.Profile) SurfaceOption {
	return func(s *Surface) { s.out = termenv.NewOutput(s.w, termenv.WithProfile(p)) }
}

// NewSurface creates a Surface writing to w.
func NewSurface(w io.Writer, opts ...SurfaceOption) *Surface {
	s := &Surface{
		w:        w,
		out:      termenv.NewOutput(w),
		columns:  DefaultColumns,
		markdown: PlainRenderer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Render draws v. Identical consecutive frames are skipped.
func (s *Surface) Render(v domain.View) error {
	var b strings.Builder
	if len(v.Rows) > 0 {
		s.drawRows(&b, v)
	} else {
		s.drawGrid(&b, v)
	}
	if v.Control.Label != "" {
		b.WriteString(v.Control.Label)
		b.WriteByte('\n')
	}
	if v.Banner != nil {
		b.WriteString(s.banner(v.Banner))
		b.WriteByte('\n')
	}
	if v.Button.Visible {
		fmt.Fprintf(&b, "[ %s ] (press Enter)\n", v.Button.Label)
	}
	frame := b.String()
	if frame == s.last {
		return nil
	}

	if !s.drawn {
		s.drawn = true
		if v.Title != "" {
			fmt.Fprintln(s.w, s.out.String(v.Title).Bold())
		}
		if v.MainText != "" {
			text, err := s.markdown(v.MainText)
			if err != nil {
				return fmt.Errorf("render main text: %w", err)
			}
			if _, err := io.WriteString(s.w, text); err != nil {
				return err
			}
		}
	}
	s.last = frame
	_, err := io.WriteString(s.w, frame)
	return err
}

// Clear forgets the previous frame so the next render draws everything again.
func (s *Surface) Clear() error {
	s.drawn = false
	s.last = ""
	return nil
}

func (s *Surface) drawGrid(b *strings.Builder, v domain.View) {
	for i, cell := range v.Cells {
		b.WriteString(s.cell(cell))
		if (i+1)%s.columns == 0 || i == len(v.Cells)-1 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
}

func (s *Surface) drawRows(b *strings.Builder, v domain.View) {
	for _, row := range v.Rows {
		mark := func(c domain.Choice) string {
			if row.Chosen == c {
				return s.out.String("(x)").Foreground(s.out.Color("#22c55e")).String()
			}
			return "( )"
		}
		fmt.Fprintf(b, "%2d. A %s %s | B %s %s\n", row.Index, mark(domain.ChoiceA), optionText(row, 0), mark(domain.ChoiceB), optionText(row, 1))
	}
}

func optionText(row domain.Row, i int) string {
	if i < len(row.Options) {
		return row.Options[i]
	}
	return ""
}

func (s *Surface) cell(c domain.CellState) string {
	switch c {
	case domain.CellOpen:
		return s.out.String(glyphOpen).Foreground(s.out.Color("#f59e0b")).String()
	case domain.CellBomb:
		return s.out.String(glyphBomb).Foreground(s.out.Color("#dc2626")).Bold().String()
	}
	return glyphClosed
}

func (s *Surface) banner(bn *domain.Banner) string {
	color := "#eab308"
	switch bn.Kind {
	case domain.BannerWin:
		color = "#22c55e"
	case domain.BannerLose:
		color = "#dc2626"
	}
	return s.out.String(bn.Text).Foreground(s.out.Color(color)).String()
}
