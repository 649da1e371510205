package loam

import (
	"context"
	"testing"

	"github.com/aretw0/bombrisk"
	"github.com/aretw0/bombrisk/internal/testutils"
	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/gauge"
	"github.com/aretw0/bombrisk/pkg/ports/tests"
	"github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	dir, repo := testutils.SetupTestRepo(t, loam.WithStrict(true))
	for name, content := range files {
		testutils.WriteFile(t, dir, name, content)
	}
	return New(loam.NewTypedRepository[TreatmentMetadata](repo))
}

var treatments = map[string]string{
	"baseline.md": `---
name: baseline
description: Default bomb task
options:
  method: Bomb
  boxCount: 100
---
Open as many boxes as you like. One of them hides a bomb.
`,
	"low-scale.md": `---
options:
  method: Bomb
  scale: 0.5
  currency: "$"
  mainText: Explicit text wins
---
Ignored body
`,
	"lottery.md": `---
name: price-list
options:
  method: Lottery
  rows: 5
  values: [2, 1.6, 3.85, 0.1]
---
`,
}

func TestLoader_Contract(t *testing.T) {
	loader := seed(t, treatments)
	tests.TreatmentLoaderContractTest(t, loader, map[string]string{
		"baseline":   "Bomb",
		"low-scale":  "Bomb",
		"price-list": "Lottery",
	})
}

func TestLoader_MainTextFromBody(t *testing.T) {
	loader := seed(t, treatments)
	ctx := context.Background()

	base, err := loader.Get(ctx, "baseline")
	require.NoError(t, err)
	assert.Equal(t, "Default bomb task", base.Description)
	assert.Equal(t, "Open as many boxes as you like. One of them hides a bomb.", base.Options["mainText"])

	low, err := loader.Get(ctx, "low-scale")
	require.NoError(t, err)
	assert.Equal(t, "Explicit text wins", low.Options["mainText"])

	_, err = loader.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrTreatmentNotFound)
}

func TestLoader_OptionsInitWidget(t *testing.T) {
	loader := seed(t, treatments)
	ctx := context.Background()

	for _, name := range []string{"baseline", "low-scale", "price-list"} {
		tr, err := loader.Get(ctx, name)
		require.NoError(t, err)

		w, err := bombrisk.New(
			bombrisk.WithSeed(1),
			bombrisk.WithMethod(domain.MethodLottery, gauge.NewLotteryGauge),
		)
		require.NoError(t, err)
		require.NoError(t, w.Init(tr.Options), name)
	}

	tr, err := loader.Get(ctx, "low-scale")
	require.NoError(t, err)
	cfg, err := bombrisk.ParseOptions(tr.Options)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Scale)
	assert.Equal(t, "$", cfg.Currency)
}

func TestLoader_NameCollision(t *testing.T) {
	loader := seed(t, map[string]string{
		"a.md": "---\nname: same\noptions:\n  method: Bomb\n---\n",
		"b.md": "---\nname: same\noptions:\n  method: Bomb\n---\n",
	})
	_, err := loader.List(context.Background())
	assert.ErrorContains(t, err, "collision detected")
}
