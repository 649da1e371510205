package validator

import (
	"testing"

	"github.com/aretw0/bombrisk/internal/testutils"
	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/gauge"
	"github.com/aretw0/bombrisk/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckGauge(t *testing.T) {
	t.Run("complete gauge passes", func(t *testing.T) {
		b, err := gauge.NewBomb(gauge.Env{Rand: testutils.BombAt(1)}, domain.DefaultConfig())
		require.NoError(t, err)
		assert.NoError(t, CheckGauge("Bomb", b))
	})

	t.Run("nil gauge", func(t *testing.T) {
		err := CheckGauge("Custom", nil)
		assert.ErrorIs(t, err, domain.ErrConfig)
		assert.ErrorIs(t, err, domain.ErrMissingOperation)
	})

	t.Run("typed nil gauge", func(t *testing.T) {
		var b *gauge.Bomb
		assert.ErrorIs(t, CheckGauge("Custom", b), domain.ErrMissingOperation)
	})

	t.Run("missing enable names operation and method", func(t *testing.T) {
		g := &gauge.Funcs{
			ValuesFunc:  func() domain.Values { return domain.Values{} },
			DisableFunc: func() {},
			AppendFunc:  func(ports.Surface) error { return nil },
		}
		err := CheckGauge("NoEnable", g)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMissingOperation)
		assert.Contains(t, err.Error(), "Enable")
		assert.Contains(t, err.Error(), `"NoEnable"`)

		var cfgErr *domain.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "Enable", cfgErr.Field)
	})
}
