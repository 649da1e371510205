package bombrisk

import (
	"log/slog"

	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/gauge"
	"github.com/aretw0/bombrisk/pkg/ports"
	"github.com/aretw0/bombrisk/pkg/schema"
	"github.com/mitchellh/mapstructure"
)

// Option defines a functional option for configuring the Widget.
type Option func(*Widget)

// WithLogger sets a custom structured logger for the widget and its gauge.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Widget) {
		w.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(w *Widget) {
		w.hooks = hooks
	}
}

// WithRandomSource injects the randomness handed to the gauge.
// Widgets built this way cannot produce snapshots.
func WithRandomSource(r ports.RandomSource) Option {
	return func(w *Widget) {
		w.rand = r
	}
}

// WithSeed fixes the seed of the widget's deterministic random source.
func WithSeed(seed int64) Option {
	return func(w *Widget) {
		w.seed = seed
		w.seeded = true
	}
}

// WithSeedSource overrides how a seed is obtained when none is fixed.
func WithSeedSource(fn func() (int64, error)) Option {
	return func(w *Widget) {
		w.seedSource = fn
	}
}

// WithMethod registers an additional method at construction time.
func WithMethod(name string, ctor gauge.Constructor) Option {
	return func(w *Widget) {
		w.pending = append(w.pending, method{name: name, ctor: ctor})
	}
}

// WithID sets the UI id root; the "id" option overrides it.
func WithID(id string) Option {
	return func(w *Widget) {
		w.id = id
	}
}

// WithTexts overrides the gauge label texts.
func WithTexts(t gauge.Texts) Option {
	return func(w *Widget) {
		w.texts = t
	}
}

type method struct {
	name string
	ctor gauge.Constructor
}

// OptionSchema is the type contract of the recognized widget options.
var OptionSchema = schema.Schema{
	"method":    schema.String(),
	"mainText":  schema.String(),
	"title":     schema.String(),
	"scale":     schema.And(schema.Float(), schema.Finite),
	"currency":  schema.String(),
	"boxCount":  schema.And(schema.Int(), schema.AtMost(domain.MaxBoxCount)),
	"withPrize": schema.Bool(),
	"id":        schema.String(),
	"button":    schema.String(),
	"rows":      schema.And(schema.Int(), schema.AtMost(domain.MaxRows)),
	"values":    schema.Slice(schema.And(schema.Float(), schema.Finite)),
}

// ParseOptions type-checks an options map and decodes it over the defaults.
// "methodName" is accepted as an alias of "method".
func ParseOptions(options map[string]any) (domain.Config, error) {
	if alias, ok := options["methodName"]; ok {
		merged := make(map[string]any, len(options))
		for k, v := range options {
			if k != "methodName" {
				merged[k] = v
			}
		}
		if _, set := merged["method"]; !set {
			merged["method"] = alias
		}
		options = merged
	}

	if err := schema.ValidatePresent(OptionSchema, options); err != nil {
		cfgErr := &domain.ConfigError{Reason: err.Error(), Err: err}
		if m, ok := options["method"].(string); ok {
			cfgErr.Method = m
		}
		if errs := schema.ValidationErrors(err); len(errs) > 0 {
			if ve, ok := errs[0].(*schema.ValidationError); ok {
				cfgErr.Field = ve.Key
				cfgErr.Reason = ve.Reason
				cfgErr.Value = ve.Value
			}
		}
		return domain.Config{}, cfgErr
	}

	cfg := domain.DefaultConfig()
	if len(options) == 0 {
		return cfg, nil
	}
	// Decoding into a pre-filled slice would keep stale trailing elements.
	cfg.Prizes = nil

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &cfg,
		TagName: "mapstructure",
	})
	if err != nil {
		return domain.Config{}, err
	}
	if err := dec.Decode(options); err != nil {
		return domain.Config{}, &domain.ConfigError{Reason: "cannot decode options", Err: err}
	}
	if cfg.Prizes == nil {
		cfg.Prizes = append([]float64(nil), domain.DefaultPrizes...)
	}
	if cfg.Method == "" {
		cfg.Method = domain.MethodBomb
	}
	return cfg, nil
}
