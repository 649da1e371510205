package registry

import (
	"reflect"
	"testing"

	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/gauge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("Bomb", gauge.NewBombGauge))
	require.NoError(t, r.Register("Lottery", gauge.NewLotteryGauge))

	ctor, err := r.Resolve("Lottery")
	require.NoError(t, err)
	assert.Equal(t, reflect.ValueOf(gauge.NewLotteryGauge).Pointer(), reflect.ValueOf(ctor).Pointer())

	assert.True(t, r.Has("Bomb"))
	assert.Equal(t, []string{"Bomb", "Lottery"}, r.Names())
}

func TestRegistry_Errors(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("Bomb", gauge.NewBombGauge))

	err := r.Register("Bomb", gauge.NewLotteryGauge)
	assert.ErrorIs(t, err, domain.ErrConfig)
	assert.ErrorIs(t, err, domain.ErrDuplicateMethod)

	ctor, _ := r.Resolve("Bomb")
	assert.Equal(t, reflect.ValueOf(gauge.NewBombGauge).Pointer(), reflect.ValueOf(ctor).Pointer(), "first registration wins")

	assert.ErrorIs(t, r.Register("", gauge.NewBombGauge), domain.ErrConfig)
	assert.ErrorIs(t, r.Register("Nil", nil), domain.ErrConfig)

	_, err = r.Resolve("Nope")
	assert.ErrorIs(t, err, domain.ErrUnknownMethod)
	assert.Contains(t, err.Error(), `"Nope"`)
}
