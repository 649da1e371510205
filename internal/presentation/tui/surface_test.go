package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridView(open int, bomb int) domain.View {
	cells := make([]domain.CellState, 12)
	for i := range cells {
		switch {
		case i+1 == bomb:
			cells[i] = domain.CellBomb
		case i < open:
			cells[i] = domain.CellOpen
		default:
			cells[i] = domain.CellClosed
		}
	}
	return domain.View{
		MainText: "# Pick boxes",
		Cells:    cells,
		Control:  domain.Control{Max: 12, Value: open, Label: "label"},
		Button:   domain.Button{Label: "Open Boxes", Visible: open > 0 && bomb == 0},
	}
}

func TestSurface_Grid(t *testing.T) {
	var buf bytes.Buffer
	s := NewSurface(&buf, WithColumns(5), WithProfile(termenv.Ascii))

	require.NoError(t, s.Render(gridView(3, 0)))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Pick boxes\n"))
	assert.Contains(t, out, "■ ■ ■ □ □\n□ □ □ □ □\n□ □\n")
	assert.Contains(t, out, "[ Open Boxes ]")

	buf.Reset()
	require.NoError(t, s.Render(gridView(3, 0)))
	assert.Empty(t, buf.String(), "identical frames are skipped")

	v := gridView(3, 2)
	v.Banner = &domain.Banner{Kind: domain.BannerLose, Text: "boom"}
	require.NoError(t, s.Render(v))
	out = buf.String()
	assert.NotContains(t, out, "# Pick boxes")
	assert.Contains(t, out, "■ ✹ ■ □ □")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "Open Boxes")
}

func TestSurface_ClearRedrawsMainText(t *testing.T) {
	var buf bytes.Buffer
	s := NewSurface(&buf, WithProfile(termenv.Ascii))
	require.NoError(t, s.Render(gridView(1, 0)))
	require.NoError(t, s.Clear())
	buf.Reset()
	require.NoError(t, s.Render(gridView(1, 0)))
	assert.Contains(t, buf.String(), "# Pick boxes")
}

func TestSurface_Rows(t *testing.T) {
	var buf bytes.Buffer
	s := NewSurface(&buf, WithProfile(termenv.Ascii))
	require.NoError(t, s.Render(domain.View{
		Rows: []domain.Row{
			{Index: 1, Options: []string{"1/2 of 2.00", "1/2 of 3.85"}, Chosen: domain.ChoiceA},
			{Index: 2, Options: []string{"2/2 of 2.00", "2/2 of 3.85"}},
		},
	}))
	assert.Contains(t, buf.String(), " 1. A (x) 1/2 of 2.00 | B ( ) 1/2 of 3.85\n")
	assert.Contains(t, buf.String(), " 2. A ( ) 2/2 of 2.00 | B ( ) 2/2 of 3.85\n")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_.__/")
}

func TestPlainRenderer(t *testing.T) {
	out, err := PlainRenderer("  hello \n")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}
