package bombrisk_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/bombrisk"
	"github.com/aretw0/bombrisk/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "plain", input: "42", want: "42"},
		{name: "keeps tabs", input: "a\tb", want: "a\tb"},
		{name: "strips ansi escape", input: "\x1b[31mopen\x1b[0m", want: "[31mopen[0m"},
		{name: "strips nul and bel", input: "1\x000\a", want: "10"},
		{name: "invalid utf8", input: "\xff\xfe", wantErr: bombrisk.ErrInvalidUTF8},
		{name: "too large", input: strings.Repeat("1", bombrisk.MaxInputSize+1), wantErr: bombrisk.ErrInputTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bombrisk.SanitizeInput(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunner_RejectsOversizedLine(t *testing.T) {
	w := newWidget(t, bombrisk.WithRandomSource(testutils.BombAt(37)))
	require.NoError(t, w.Init(nil))

	var out bytes.Buffer
	input := strings.Repeat("9", bombrisk.MaxInputSize+1) + "\n5\n"
	r := &bombrisk.Runner{Input: strings.NewReader(input), Output: &out, Headless: true}

	values, err := r.Run(w)
	require.NoError(t, err)
	assert.Equal(t, 5, values.Selection)
	assert.Contains(t, out.String(), "input exceeds maximum allowed size")
}
