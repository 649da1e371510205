package domain

// Built-in method names.
const (
	MethodBomb    = "Bomb"
	MethodLottery = "Lottery"
)

// Defaults applied when an option is absent.
const (
	DefaultBoxCount = 100
	DefaultScale    = 1.0
	DefaultCurrency = "ECU"
	DefaultRows     = 10
)

// Upper bounds on the sizes a widget renders on every view.
const (
	MaxBoxCount = 10000
	MaxRows     = 100
)

// DefaultPrizes are the lottery values before scaling: A pays v1 or v2, B pays v3 or v4.
var DefaultPrizes = []float64{2, 1.6, 3.85, 0.1}

// Config is the option record a widget is initialized with.
// It is decoded once per widget and never mutated afterwards.
type Config struct {
	Method     string    `json:"method" yaml:"method" mapstructure:"method"`
	MainText   string    `json:"mainText,omitempty" yaml:"mainText,omitempty" mapstructure:"mainText"`
	Title      string    `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	Scale      float64   `json:"scale" yaml:"scale" mapstructure:"scale"`
	Currency   string    `json:"currency" yaml:"currency" mapstructure:"currency"`
	BoxCount   int       `json:"boxCount" yaml:"boxCount" mapstructure:"boxCount"`
	WithPrize  bool      `json:"withPrize" yaml:"withPrize" mapstructure:"withPrize"`
	Identifier string    `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Button     string    `json:"button,omitempty" yaml:"button,omitempty" mapstructure:"button"`
	Rows       int       `json:"rows,omitempty" yaml:"rows,omitempty" mapstructure:"rows"`
	Prizes     []float64 `json:"values,omitempty" yaml:"values,omitempty" mapstructure:"values"`
}

// DefaultConfig returns the configuration used when no option overrides it.
func DefaultConfig() Config {
	prizes := make([]float64, len(DefaultPrizes))
	copy(prizes, DefaultPrizes)
	return Config{
		Method:    MethodBomb,
		Scale:     DefaultScale,
		Currency:  DefaultCurrency,
		BoxCount:  DefaultBoxCount,
		WithPrize: true,
		Rows:      DefaultRows,
		Prizes:    prizes,
	}
}
