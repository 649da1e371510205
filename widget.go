package bombrisk

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/bombrisk/internal/logging"
	"github.com/aretw0/bombrisk/internal/random"
	"github.com/aretw0/bombrisk/internal/validator"
	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/gauge"
	"github.com/aretw0/bombrisk/pkg/ports"
	"github.com/aretw0/bombrisk/pkg/registry"
	"github.com/aretw0/bombrisk/pkg/schema"
)

// Signals a host may deliver to a widget.
const (
	SignalEnabled       = "enabled"
	SignalDisabled      = "disabled"
	SignalHighlighted   = "highlighted"
	SignalUnhighlighted = "unhighlighted"
	SignalDestroyed     = "destroyed"
)

// Lifecycle is the set of events a host platform delivers to a widget.
type Lifecycle interface {
	OnEnable()
	OnDisable()
	OnHighlight()
	OnUnhighlight()
	OnDestroy()
}

var _ Lifecycle = (*Widget)(nil)

// Widget is the shell a host manipulates. It holds the method registry and
// the active gauge; all game state lives in the gauge.
//
// A Widget is owned by a single goroutine at a time. Hosts serving concurrent
// requests serialize access per widget (see pkg/session).
type Widget struct {
	id         string
	registry   *registry.Registry
	pending    []method
	texts      gauge.Texts
	rand       ports.RandomSource
	seed       int64
	seeded     bool
	seedSource func() (int64, error)
	hooks      domain.LifecycleHooks
	logger     *slog.Logger

	cfg       domain.Config
	gauge     gauge.Gauge
	destroyed bool
}

// New constructs a widget shell with the built-in "Bomb" method registered.
func New(opts ...Option) (*Widget, error) {
	w := &Widget{
		registry:   registry.NewRegistry(),
		seedSource: random.NewSeed,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logging.NewNop()
	}

	if err := w.registry.Register(domain.MethodBomb, gauge.NewBombGauge); err != nil {
		return nil, err
	}
	for _, m := range w.pending {
		if err := w.registry.Register(m.name, m.ctor); err != nil {
			return nil, err
		}
	}
	w.pending = nil
	return w, nil
}

// AddMethod registers an elicitation method on this widget.
func (w *Widget) AddMethod(name string, ctor gauge.Constructor) error {
	return w.registry.Register(name, ctor)
}

// Methods lists the registered method names.
func (w *Widget) Methods() []string {
	return w.registry.Names()
}

// Init validates the options map, builds the gauge and stores it.
// Every failure is a *domain.ConfigError and leaves the widget without a gauge.
func (w *Widget) Init(options map[string]any) error {
	cfg, err := ParseOptions(options)
	if err != nil {
		return err
	}
	if unknown := schema.Unknown(OptionSchema, options); len(unknown) > 0 {
		w.logger.Debug("ignoring unknown options", "keys", unknown)
	}
	return w.InitConfig(cfg)
}

// InitConfig builds the gauge from an already decoded configuration.
func (w *Widget) InitConfig(cfg domain.Config) error {
	if err := w.initConfig(cfg); err != nil {
		return err
	}
	w.emit(w.hooks.OnGaugeCreated, domain.EventGaugeCreated, func(*domain.GaugeEvent) {})
	return nil
}

func (w *Widget) initConfig(cfg domain.Config) error {
	if w.destroyed {
		return domain.ErrDestroyed
	}
	if cfg.Method == "" {
		cfg.Method = domain.MethodBomb
	}
	if w.gauge != nil {
		return &domain.ConfigError{Method: w.cfg.Method, Reason: "widget is already initialized"}
	}

	ctor, err := w.registry.Resolve(cfg.Method)
	if err != nil {
		return err
	}

	rnd := w.rand
	if rnd == nil {
		if !w.seeded {
			seed, err := w.seedSource()
			if err != nil {
				return fmt.Errorf("bombrisk: seed random source: %w", err)
			}
			w.seed, w.seeded = seed, true
		}
		rnd = random.New(w.seed)
	}

	id := w.id
	if cfg.Identifier != "" {
		id = cfg.Identifier
	}
	logger := w.logger.With("method", cfg.Method)
	env := gauge.Env{
		ID:       id,
		MainText: cfg.MainText,
		Texts:    w.texts,
		Rand:     rnd,
		Logger:   logger,
	}

	g, err := ctor(env, cfg)
	if err != nil {
		var cfgErr *domain.ConfigError
		if errors.As(err, &cfgErr) {
			return err
		}
		return &domain.ConfigError{Method: cfg.Method, Field: "constructor", Reason: err.Error(), Err: err}
	}
	if err := validator.CheckGauge(cfg.Method, g); err != nil {
		return err
	}

	w.id = id
	w.cfg = cfg
	w.gauge = g
	logger.Debug("widget initialized", "id", id)
	return nil
}

// Config returns the configuration the gauge was built with.
func (w *Widget) Config() domain.Config { return w.cfg }

// ID returns the UI id root.
func (w *Widget) ID() string { return w.id }

// Gauge returns the active gauge, or nil before Init.
func (w *Widget) Gauge() gauge.Gauge { return w.gauge }

func (w *Widget) active() error {
	switch {
	case w.destroyed:
		return domain.ErrDestroyed
	case w.gauge == nil:
		return domain.ErrNotInitialized
	}
	return nil
}

func (w *Widget) unsupported(op string) error {
	return fmt.Errorf("%w: method %q does not support %s", domain.ErrMissingOperation, w.cfg.Method, op)
}

// Append renders the gauge into a host-provided surface.
func (w *Widget) Append(surface ports.Surface) error {
	if err := w.active(); err != nil {
		return err
	}
	return w.gauge.Append(surface)
}

// Values is the sole channel through which the host retrieves the task result.
func (w *Widget) Values() (domain.Values, error) {
	if err := w.active(); err != nil {
		return domain.Values{}, err
	}
	return w.gauge.Values(), nil
}

// SetValues injects a simulated participant response.
func (w *Widget) SetValues(resp domain.Response) error {
	if err := w.active(); err != nil {
		return err
	}
	s, ok := w.gauge.(gauge.Setter)
	if !ok {
		return w.unsupported("SetValues")
	}
	wasCommitted := w.gauge.Values().Committed
	if err := s.SetValues(resp); err != nil {
		return err
	}
	w.emitSelect()
	if !wasCommitted && w.gauge.Values().Committed {
		w.emitCommit()
	}
	return nil
}

// Select moves the selection control.
func (w *Widget) Select(n int) error {
	if err := w.active(); err != nil {
		return err
	}
	in, ok := w.gauge.(gauge.Interactive)
	if !ok {
		return w.unsupported("Select")
	}
	if err := in.Select(n); err != nil {
		return err
	}
	w.emitSelect()
	return nil
}

// Choose sets one row of a choice-list gauge.
func (w *Widget) Choose(row int, choice domain.Choice) error {
	if err := w.active(); err != nil {
		return err
	}
	c, ok := w.gauge.(gauge.Chooser)
	if !ok {
		return w.unsupported("Choose")
	}
	if err := c.Choose(row, choice); err != nil {
		return err
	}
	w.emitSelect()
	return nil
}

// Commit attempts the irreversible commit. A rejection is reported in the
// result, not as an error.
func (w *Widget) Commit() (domain.CommitResult, error) {
	if err := w.active(); err != nil {
		return domain.CommitResult{}, err
	}
	in, ok := w.gauge.(gauge.Interactive)
	if !ok {
		return domain.CommitResult{}, w.unsupported("Commit")
	}
	res := in.Commit()
	switch res.Status {
	case domain.CommitAccepted:
		w.emitCommit()
	case domain.CommitRejected:
		w.emit(w.hooks.OnWarning, domain.EventWarning, func(e *domain.GaugeEvent) {
			e.Message = res.Warning
		})
	}
	return res, nil
}

// View describes the gauge without rendering it.
func (w *Widget) View() (domain.View, error) {
	if err := w.active(); err != nil {
		return domain.View{}, err
	}
	v, ok := w.gauge.(gauge.Viewer)
	if !ok {
		return domain.View{}, w.unsupported("View")
	}
	return v.View(), nil
}

// OnEnable forwards the "enabled" signal.
func (w *Widget) OnEnable() {
	w.forward(SignalEnabled, func(g gauge.Gauge) { g.Enable() })
}

// OnDisable forwards the "disabled" signal.
func (w *Widget) OnDisable() {
	w.forward(SignalDisabled, func(g gauge.Gauge) { g.Disable() })
}

// OnHighlight forwards the "highlighted" signal when the gauge supports it.
func (w *Widget) OnHighlight() {
	w.forward(SignalHighlighted, func(g gauge.Gauge) {
		if h, ok := g.(gauge.Highlighter); ok {
			h.Highlight()
		}
	})
}

// OnUnhighlight forwards the "unhighlighted" signal when the gauge supports it.
func (w *Widget) OnUnhighlight() {
	w.forward(SignalUnhighlighted, func(g gauge.Gauge) {
		if h, ok := g.(gauge.Highlighter); ok {
			h.Unhighlight()
		}
	})
}

// OnDestroy discards the gauge. It is safe at any point, including before Init.
func (w *Widget) OnDestroy() {
	if w.destroyed {
		return
	}
	if d, ok := w.gauge.(gauge.Destroyer); ok {
		d.Destroy()
	}
	w.emit(w.hooks.OnSignal, domain.EventSignal, func(e *domain.GaugeEvent) {
		e.Signal = SignalDestroyed
	})
	w.gauge = nil
	w.destroyed = true
}

// Signal delivers a lifecycle signal by name.
func (w *Widget) Signal(name string) error {
	switch name {
	case SignalEnabled:
		w.OnEnable()
	case SignalDisabled:
		w.OnDisable()
	case SignalHighlighted:
		w.OnHighlight()
	case SignalUnhighlighted:
		w.OnUnhighlight()
	case SignalDestroyed:
		w.OnDestroy()
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownSignal, name)
	}
	return nil
}

func (w *Widget) forward(signal string, fn func(gauge.Gauge)) {
	if w.active() != nil {
		w.logger.Debug("dropping signal", "signal", signal, "initialized", w.gauge != nil)
		return
	}
	fn(w.gauge)
	w.emit(w.hooks.OnSignal, domain.EventSignal, func(e *domain.GaugeEvent) {
		e.Signal = signal
	})
}

// Snapshot captures the widget so it can be rebuilt with Restore.
func (w *Widget) Snapshot() (*domain.Snapshot, error) {
	if err := w.active(); err != nil {
		return nil, err
	}
	r, ok := w.gauge.(gauge.Restorer)
	if !ok || w.rand != nil || !w.seeded {
		return nil, fmt.Errorf("%w: method %q", domain.ErrNotRestorable, w.cfg.Method)
	}
	return &domain.Snapshot{
		ID:        w.id,
		Config:    w.cfg,
		Seed:      w.seed,
		State:     r.State(),
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// Restore rebuilds a widget from a snapshot. The gauge is reconstructed with
// the stored seed, so its hidden draws are identical, and the participant
// state is replayed without emitting events.
func Restore(snap *domain.Snapshot, opts ...Option) (*Widget, error) {
	if snap == nil {
		return nil, fmt.Errorf("bombrisk: restore: nil snapshot")
	}
	// Clip so the caller's backing array is never written.
	opts = append(slices.Clip(opts), WithSeed(snap.Seed), WithID(snap.ID))
	w, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := w.initConfig(snap.Config); err != nil {
		return nil, err
	}
	r, ok := w.gauge.(gauge.Restorer)
	if !ok {
		return nil, fmt.Errorf("%w: method %q", domain.ErrNotRestorable, w.cfg.Method)
	}
	if err := r.Restore(snap.State); err != nil {
		return nil, fmt.Errorf("bombrisk: restore %s: %w", snap.ID, err)
	}
	return w, nil
}

func (w *Widget) emitSelect() {
	w.emit(w.hooks.OnSelect, domain.EventSelect, func(*domain.GaugeEvent) {})
}

func (w *Widget) emitCommit() {
	w.emit(w.hooks.OnCommit, domain.EventCommit, func(e *domain.GaugeEvent) {
		e.Outcome = w.gauge.Values().Outcome
	})
}

func (w *Widget) emit(hook func(*domain.GaugeEvent), typ domain.EventType, fill func(*domain.GaugeEvent)) {
	if hook == nil {
		return
	}
	e := &domain.GaugeEvent{
		Timestamp: time.Now(),
		Type:      typ,
		WidgetID:  w.id,
		Method:    w.cfg.Method,
	}
	if w.gauge != nil {
		e.Selection = w.gauge.Values().Selection
	}
	fill(e)
	hook(e)
}
