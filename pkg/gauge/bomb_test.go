package gauge_test

import (
	"math"
	"testing"

	"github.com/aretw0/bombrisk/internal/random"
	"github.com/aretw0/bombrisk/internal/testutils"
	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/gauge"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBomb(t *testing.T, position int, mutate func(*domain.Config)) (*gauge.Bomb, *testutils.RecordingSurface) {
	t.Helper()
	cfg := domain.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	b, err := gauge.NewBomb(gauge.Env{ID: "bomb", Rand: testutils.BombAt(position)}, cfg)
	require.NoError(t, err)
	surface := &testutils.RecordingSurface{}
	require.NoError(t, b.Append(surface))
	return b, surface
}

func TestBomb_PositionDrawnOnce(t *testing.T) {
	rnd := testutils.BombAt(37)
	b, err := gauge.NewBomb(gauge.Env{Rand: rnd}, domain.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 37, b.BombPosition())
	assert.Equal(t, 1, rnd.Calls())

	for _, n := range []int{5, 90, 0, 37, 12} {
		require.NoError(t, b.Select(n))
		_ = b.View()
	}
	assert.Equal(t, 37, b.BombPosition())
	assert.Equal(t, 1, rnd.Calls(), "scrubbing must never draw again")
}

func TestBomb_PositionUniformWithSeededSource(t *testing.T) {
	const (
		boxes = 10
		draws = 10000
	)
	rng := random.New(42)
	counts := make([]int, boxes+1)
	for range draws {
		b, err := gauge.NewBomb(gauge.Env{Rand: rng}, domain.Config{BoxCount: boxes, Scale: 1})
		require.NoError(t, err)
		require.GreaterOrEqual(t, b.BombPosition(), 1)
		require.LessOrEqual(t, b.BombPosition(), boxes)
		counts[b.BombPosition()]++
	}

	expected := float64(draws) / boxes
	chi2 := 0.0
	for pos := 1; pos <= boxes; pos++ {
		assert.Positive(t, counts[pos], "box %d never drawn", pos)
		d := float64(counts[pos]) - expected
		chi2 += d * d / expected
	}
	// Critical value for 9 degrees of freedom at p = 0.001.
	assert.Less(t, chi2, 27.88, "counts %v", counts[1:])
}

func TestBomb_RejectsUnboundedConfig(t *testing.T) {
	tests := []struct {
		name  string
		cfg   domain.Config
		field string
	}{
		{"zero boxes", domain.Config{BoxCount: 0, Scale: 1}, "boxCount"},
		{"too many boxes", domain.Config{BoxCount: domain.MaxBoxCount + 1, Scale: 1}, "boxCount"},
		{"nan scale", domain.Config{BoxCount: 10, Scale: math.NaN()}, "scale"},
		{"infinite scale", domain.Config{BoxCount: 10, Scale: math.Inf(-1)}, "scale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b *gauge.Bomb
			var err error
			require.NotPanics(t, func() {
				b, err = gauge.NewBomb(gauge.Env{Rand: testutils.NewSeqRand()}, tt.cfg)
			})
			assert.Nil(t, b)
			require.ErrorIs(t, err, domain.ErrConfig)
			var cfgErr *domain.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestBomb_PositionWithinRange(t *testing.T) {
	for _, draw := range []int{0, 1, 24} {
		b, err := gauge.NewBomb(gauge.Env{Rand: testutils.NewSeqRand(draw)}, domain.Config{BoxCount: 25, Scale: 1})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, b.BombPosition(), 1)
		assert.LessOrEqual(t, b.BombPosition(), 25)
	}
}

func TestBomb_CellsFollowSelection(t *testing.T) {
	b, surface := newBomb(t, 37, nil)

	for _, n := range []int{10, 60, 3, 3, 0, 100} {
		require.NoError(t, b.Select(n))
		v := surface.Last(t)
		require.Len(t, v.Cells, 100)
		assert.Equal(t, n, v.OpenCount())
		for i, c := range v.Cells {
			if i+1 <= n {
				assert.Equal(t, domain.CellOpen, c, "cell %d", i+1)
			} else {
				assert.Equal(t, domain.CellClosed, c, "cell %d", i+1)
			}
		}
	}
	assert.Equal(t, b.View(), b.View(), "view is a pure function of state")
}

func TestBomb_CommitRequiresSelection(t *testing.T) {
	b, surface := newBomb(t, 37, nil)

	res := b.Commit()
	assert.Equal(t, domain.CommitRejected, res.Status)
	assert.NotEmpty(t, res.Warning)
	assert.False(t, b.Values().Committed)

	v := surface.Last(t)
	require.NotNil(t, v.Banner)
	assert.Equal(t, domain.BannerWarning, v.Banner.Kind)
	assert.False(t, v.Button.Visible)

	require.NoError(t, b.Select(1))
	assert.Nil(t, surface.Last(t).Banner, "warning clears on selection")
	assert.True(t, surface.Last(t).Button.Visible)
}

func TestBomb_CommitIsIrreversible(t *testing.T) {
	b, surface := newBomb(t, 37, nil)
	require.NoError(t, b.Select(10))

	assert.Equal(t, domain.CommitAccepted, b.Commit().Status)
	assert.Equal(t, domain.CommitDuplicate, b.Commit().Status)

	assert.ErrorIs(t, b.Select(50), domain.ErrCommitted)
	assert.Equal(t, 10, b.Values().Selection)

	b.Enable()
	assert.ErrorIs(t, b.Select(50), domain.ErrCommitted)

	v := surface.Last(t)
	assert.True(t, v.Committed)
	assert.False(t, v.Control.Enabled)
	assert.False(t, v.Button.Visible)
	assert.Equal(t, domain.CellBomb, v.Cells[36])
}

func TestBomb_Outcome(t *testing.T) {
	tests := []struct {
		name      string
		scale     float64
		selection int
		winner    bool
		payoff    string
	}{
		{"below bomb wins", 1, 10, true, "10"},
		{"above bomb loses", 1, 50, false, "0"},
		{"bomb box itself loses", 1, 37, false, "0"},
		{"one before bomb wins", 1, 36, true, "36"},
		{"scaled payoff", 0.25, 10, true, "2.5"},
		{"zero scale still winner", 0, 10, true, "0"},
		{"negative scale", -2, 10, true, "-20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newBomb(t, 37, func(c *domain.Config) { c.Scale = tt.scale })
			require.NoError(t, b.Select(tt.selection))
			require.Equal(t, domain.CommitAccepted, b.Commit().Status)

			out, err := b.Values().Result()
			require.NoError(t, err)
			assert.Equal(t, tt.selection, out.Selection)
			assert.Equal(t, 37, out.BombPosition)
			assert.Equal(t, tt.winner, out.IsWinner)
			assert.True(t, decimal.RequireFromString(tt.payoff).Equal(out.Payoff), "payoff %s", out.Payoff)
		})
	}
}

func TestBomb_ValuesBeforeCommit(t *testing.T) {
	b, _ := newBomb(t, 37, nil)
	require.NoError(t, b.Select(12))

	v := b.Values()
	assert.False(t, v.Committed)
	assert.Equal(t, 12, v.Selection)
	assert.Nil(t, v.Outcome)

	_, err := v.Result()
	assert.ErrorIs(t, err, domain.ErrNotCommitted)
}

func TestBomb_RangeAndDisable(t *testing.T) {
	b, surface := newBomb(t, 37, nil)

	var rangeErr *domain.RangeError
	require.ErrorAs(t, b.Select(101), &rangeErr)
	assert.Equal(t, 100, rangeErr.Max)
	assert.ErrorIs(t, b.Select(-1), domain.ErrOutOfRange)

	b.Disable()
	assert.False(t, surface.Last(t).Control.Enabled)
	assert.ErrorIs(t, b.Select(3), domain.ErrDisabled)
	assert.Equal(t, domain.CommitRejected, b.Commit().Status)

	b.Enable()
	assert.NoError(t, b.Select(3))

	b.Highlight()
	assert.True(t, surface.Last(t).Highlighted)
	b.Unhighlight()
	assert.False(t, surface.Last(t).Highlighted)
}

func TestBomb_Labels(t *testing.T) {
	b, _ := newBomb(t, 37, func(c *domain.Config) { c.Scale = 0.5; c.Currency = "$" })
	assert.Equal(t, "Boxes to open: 4 | Value per box: $0.50 | Prize if no bomb: $2.00", b.Label(4))

	noPrize, _ := newBomb(t, 37, func(c *domain.Config) { c.WithPrize = false })
	assert.Equal(t, "Boxes to open: 4", noPrize.Label(4))
}

func TestBomb_InvalidConfig(t *testing.T) {
	for _, n := range []int{0, -5} {
		_, err := gauge.NewBomb(gauge.Env{Rand: testutils.NewSeqRand()}, domain.Config{BoxCount: n})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfig)
		assert.Contains(t, err.Error(), "boxCount")
		assert.Contains(t, err.Error(), `"Bomb"`)
	}

	g, err := gauge.NewBombGauge(gauge.Env{}, domain.DefaultConfig())
	assert.ErrorIs(t, err, domain.ErrConfig)
	assert.Nil(t, g)
}

func TestBomb_SetValues(t *testing.T) {
	t.Run("explicit selection with commit", func(t *testing.T) {
		b, _ := newBomb(t, 37, nil)
		n := 20
		require.NoError(t, b.SetValues(domain.Response{Selection: &n, Commit: true}))
		assert.True(t, b.Values().Committed)
		assert.Equal(t, 20, b.Values().Selection)
	})

	t.Run("random selection in range", func(t *testing.T) {
		b, err := gauge.NewBomb(gauge.Env{Rand: testutils.NewSeqRand(36, 41)}, domain.DefaultConfig())
		require.NoError(t, err)
		require.NoError(t, b.SetValues(domain.Response{}))
		assert.Equal(t, 42, b.Values().Selection)
		assert.Equal(t, 37, b.BombPosition())
	})
}

func TestBomb_RestoreAndDestroy(t *testing.T) {
	b, surface := newBomb(t, 37, nil)
	require.NoError(t, b.Select(8))
	require.Equal(t, domain.CommitAccepted, b.Commit().Status)
	state := b.State()

	fresh, err := gauge.NewBomb(gauge.Env{Rand: testutils.BombAt(37)}, domain.DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, fresh.Restore(state))
	assert.Equal(t, b.Values(), fresh.Values())

	assert.Error(t, fresh.Restore(domain.GaugeState{Phase: domain.PhaseCommitted, Selection: 0}))
	assert.Error(t, fresh.Restore(domain.GaugeState{Phase: domain.PhaseActive, Selection: 500}))

	b.Destroy()
	assert.True(t, surface.Cleared)
	n := surface.Count()
	b.Highlight()
	assert.Equal(t, n, surface.Count(), "destroyed gauge must not render")
}
