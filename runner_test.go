package bombrisk_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/bombrisk"
	"github.com/aretw0/bombrisk/internal/testutils"
	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/gauge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_CommitFlow(t *testing.T) {
	w := newWidget(t, bombrisk.WithRandomSource(testutils.BombAt(37)))
	require.NoError(t, w.Init(map[string]any{"currency": "$"}))

	var out bytes.Buffer
	r := bombrisk.NewRunner(strings.NewReader("0\n\n10\nopen\n"), &out)

	values, err := r.Run(w)
	require.NoError(t, err)
	assert.True(t, values.Committed)
	assert.Equal(t, 10, values.Selection)

	text := out.String()
	assert.Contains(t, text, "Below you see 100 black boxes")
	assert.Contains(t, text, "[warning] You must open at least one box.")
	assert.Contains(t, text, "Boxes to open: 10")
	assert.Contains(t, text, "[win]")
}

func TestRunner_BadInputAndEOF(t *testing.T) {
	w := newWidget(t, bombrisk.WithRandomSource(testutils.BombAt(37)))
	require.NoError(t, w.Init(nil))

	var out bytes.Buffer
	r := &bombrisk.Runner{Input: strings.NewReader("abc\n500\n7"), Output: &out, Headless: true}

	values, err := r.Run(w)
	require.NoError(t, err)
	assert.False(t, values.Committed, "EOF leaves the widget uncommitted")
	assert.Equal(t, 7, values.Selection)
	assert.Contains(t, out.String(), `! unrecognized command "abc"`)
	assert.Contains(t, out.String(), "out of range")
	assert.NotContains(t, out.String(), "> ")
}

func TestRunner_Exit(t *testing.T) {
	w := newWidget(t, bombrisk.WithRandomSource(testutils.BombAt(37)))
	require.NoError(t, w.Init(nil))

	var out bytes.Buffer
	values, err := bombrisk.NewRunner(strings.NewReader("5\nexit\n9\n"), &out).Run(w)
	require.NoError(t, err)
	assert.False(t, values.Committed)
	assert.Equal(t, 5, values.Selection)
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunner_LotteryRows(t *testing.T) {
	w := newWidget(t,
		bombrisk.WithRandomSource(testutils.NewSeqRand(0, 0)),
		bombrisk.WithMethod(domain.MethodLottery, gauge.NewLotteryGauge))
	require.NoError(t, w.Init(map[string]any{"method": "Lottery"}))

	var out bytes.Buffer
	values, err := bombrisk.NewRunner(strings.NewReader("6\n2 b\nopen\n"), &out).Run(w)
	require.NoError(t, err)
	assert.True(t, values.Committed)
	assert.Equal(t, 5, values.Selection)
}

func TestRunner_RequiresIO(t *testing.T) {
	w := newWidget(t)
	_, err := (&bombrisk.Runner{}).Run(w)
	assert.Error(t, err)
}
