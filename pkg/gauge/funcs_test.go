package gauge_test

import (
	"testing"

	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/gauge"
	"github.com/aretw0/bombrisk/pkg/ports"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFuncs_MissingOperations(t *testing.T) {
	f := &gauge.Funcs{
		ValuesFunc: func() domain.Values { return domain.Values{} },
		AppendFunc: func(ports.Surface) error { return nil },
	}
	assert.Equal(t, []string{"Enable", "Disable"}, f.MissingOperations())

	// Calling a missing operation is a no-op, never a panic.
	assert.NotPanics(t, func() {
		f.Enable()
		f.Highlight()
	})
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$2.00", gauge.FormatMoney(decimal.NewFromInt(2), "$"))
	assert.Equal(t, "-$1.50", gauge.FormatMoney(decimal.NewFromFloat(-1.5), "$"))
	assert.Equal(t, "3.85 ECU", gauge.FormatMoney(decimal.NewFromFloat(3.85), "ECU"))
	assert.Equal(t, "0.10", gauge.FormatMoney(decimal.NewFromFloat(0.1), ""))
}
