package gauge_test

import (
	"math"
	"testing"

	"github.com/aretw0/bombrisk/internal/testutils"
	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/gauge"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// payRow and die are zero-based draws.
func newLottery(t *testing.T, payRow, die int, mutate func(*domain.Config)) *gauge.Lottery {
	t.Helper()
	cfg := domain.DefaultConfig()
	cfg.Method = domain.MethodLottery
	if mutate != nil {
		mutate(&cfg)
	}
	l, err := gauge.NewLottery(gauge.Env{Rand: testutils.NewSeqRand(payRow, die)}, cfg)
	require.NoError(t, err)
	return l
}

func TestLottery_Rows(t *testing.T) {
	l := newLottery(t, 0, 0, func(c *domain.Config) { c.Currency = "$"; c.Scale = 2 })
	v := l.View()
	require.Len(t, v.Rows, 10)
	assert.Equal(t, "1. ", v.Rows[0].Label)
	assert.Equal(t, "1/10 chance to win $4.00 and 9/10 chance to win $3.20", v.Rows[0].Options[0])
	assert.Equal(t, "10/10 chance to win $7.70 and 0/10 chance to win $0.20", v.Rows[9].Options[1])
	assert.False(t, v.Button.Visible)
}

func TestLottery_CommitRequiresEveryRow(t *testing.T) {
	l := newLottery(t, 4, 2, nil)

	require.NoError(t, l.Choose(1, domain.ChoiceA))
	res := l.Commit()
	assert.Equal(t, domain.CommitRejected, res.Status)
	assert.Contains(t, res.Warning, "10 rows")

	require.NoError(t, l.Select(4))
	assert.Equal(t, 4, l.Values().Selection)
	assert.Equal(t, domain.CommitAccepted, l.Commit().Status)
	assert.Equal(t, domain.CommitDuplicate, l.Commit().Status)
	assert.ErrorIs(t, l.Choose(2, domain.ChoiceB), domain.ErrCommitted)
}

func TestLottery_Outcome(t *testing.T) {
	tests := []struct {
		name   string
		payRow int // zero-based draw
		die    int // zero-based draw
		safe   int
		winner bool
		payoff string
	}{
		{"safe row high prize", 2, 0, 5, true, "2"},
		{"safe row low prize", 2, 8, 5, false, "1.6"},
		{"risky row high prize", 7, 3, 5, true, "3.85"},
		{"risky row low prize", 7, 9, 5, false, "0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLottery(t, tt.payRow, tt.die, nil)
			require.NoError(t, l.Select(tt.safe))
			require.Equal(t, domain.CommitAccepted, l.Commit().Status)

			out, err := l.Values().Result()
			require.NoError(t, err)
			assert.Equal(t, tt.safe, out.Selection)
			assert.Equal(t, tt.winner, out.IsWinner)
			assert.True(t, decimal.RequireFromString(tt.payoff).Equal(out.Payoff), "payoff %s", out.Payoff)
			assert.Equal(t, tt.payRow+1, out.Details["payingRow"])
		})
	}
}

func TestLottery_InvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		cfg   domain.Config
		field string
	}{
		{"two prizes", domain.Config{Rows: 10, Prizes: []float64{1, 2}}, "values"},
		{"negative rows", domain.Config{Rows: -1}, "rows"},
		{"zero rows", domain.Config{Rows: 0, Scale: 1}, "rows"},
		{"too many rows", domain.Config{Rows: domain.MaxRows + 1, Scale: 1}, "rows"},
		{"nan scale", domain.Config{Rows: 10, Scale: math.NaN()}, "scale"},
		{"infinite prize", domain.Config{Rows: 10, Scale: 1, Prizes: []float64{1, math.Inf(1), 2, 0}}, "values"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l *gauge.Lottery
			var err error
			require.NotPanics(t, func() {
				l, err = gauge.NewLottery(gauge.Env{Rand: testutils.NewSeqRand()}, tt.cfg)
			})
			assert.Nil(t, l)
			require.ErrorIs(t, err, domain.ErrConfig)
			var cfgErr *domain.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestLottery_SetValuesAndRestore(t *testing.T) {
	l := newLottery(t, 0, 0, nil)
	choices := []domain.Choice{"A", "A", "B", "A", "B", "B", "B", "B", "B", "B"}
	require.NoError(t, l.SetValues(domain.Response{Choices: choices, Commit: true}))
	assert.Equal(t, 3, l.Values().Selection)

	fresh := newLottery(t, 0, 0, nil)
	require.NoError(t, fresh.Restore(l.State()))
	assert.Equal(t, l.Values(), fresh.Values())

	assert.Error(t, l.SetValues(domain.Response{Choices: choices[:3]}))
}
