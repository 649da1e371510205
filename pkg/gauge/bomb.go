package gauge

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/ports"
	"github.com/shopspring/decimal"
)

// Bomb is the box-opening gauge. The bomb position is drawn once in
// NewBomb and never reassigned; every visual state is re-derived from the
// current selection.
type Bomb struct {
	id        string
	method    string
	title     string
	mainText  string
	currency  string
	button    string
	withPrize bool
	boxCount  int
	factor    decimal.Decimal
	texts     Texts
	rand      ports.RandomSource
	logger    *slog.Logger

	bombPosition int

	phase       domain.Phase
	selection   int
	enabled     bool
	highlighted bool
	warning     string
	destroyed   bool
	surface     ports.Surface
}

// NewBombGauge is the Constructor registered under domain.MethodBomb.
func NewBombGauge(env Env, cfg domain.Config) (Gauge, error) {
	b, err := NewBomb(env, cfg)
	if err != nil {
		// Never return a typed nil inside the interface.
		return nil, err
	}
	return b, nil
}

// NewBomb builds a bomb gauge and draws the bomb position.
func NewBomb(env Env, cfg domain.Config) (*Bomb, error) {
	method := methodOf(cfg, domain.MethodBomb)
	if cfg.BoxCount <= 0 || cfg.BoxCount > domain.MaxBoxCount {
		return nil, &domain.ConfigError{
			Method: method,
			Field:  "boxCount",
			Reason: fmt.Sprintf("must be an integer in [1, %d]", domain.MaxBoxCount),
			Value:  cfg.BoxCount,
		}
	}
	if !finite(cfg.Scale) {
		return nil, &domain.ConfigError{Method: method, Field: "scale", Reason: "must be a finite number", Value: cfg.Scale}
	}
	if env.Rand == nil {
		return nil, &domain.ConfigError{
			Method: method,
			Field:  "random source",
			Reason: "is required",
		}
	}

	texts := env.Texts.withDefaults()
	b := &Bomb{
		id:        env.ID,
		method:    method,
		title:     cfg.Title,
		currency:  cfg.Currency,
		button:    texts.Button,
		withPrize: cfg.WithPrize,
		boxCount:  cfg.BoxCount,
		factor:    decimal.NewFromFloat(cfg.Scale),
		texts:     texts,
		rand:      env.Rand,
		logger:    env.logger(),
		phase:     domain.PhaseActive,
		enabled:   true,
	}
	if cfg.Button != "" {
		b.button = cfg.Button
	}

	// The only nondeterminism in the gauge; it precedes any rendering.
	b.bombPosition = env.Rand.IntN(cfg.BoxCount) + 1

	b.mainText = env.MainText
	if b.mainText == "" {
		b.mainText = cfg.MainText
	}
	if b.mainText == "" {
		b.mainText = texts.MainText(b.boxCount, b.money(b.factor))
	}

	b.logger.Debug("bomb gauge created", "id", b.id, "box_count", b.boxCount, "scale", b.factor.String())
	return b, nil
}

// BombPosition returns the 1-based index of the box hiding the bomb.
func (b *Bomb) BombPosition() int { return b.bombPosition }

// Values reports the in-progress selection, or the outcome once committed.
func (b *Bomb) Values() domain.Values {
	v := domain.Values{
		Method:    b.method,
		Committed: b.phase == domain.PhaseCommitted,
		Selection: b.selection,
	}
	if v.Committed {
		out := b.outcome()
		v.Outcome = &out
	}
	return v
}

func (b *Bomb) outcome() domain.Outcome {
	isWinner := b.selection < b.bombPosition
	payoff := decimal.Zero
	if isWinner {
		payoff = b.factor.Mul(decimal.NewFromInt(int64(b.selection)))
	}
	return domain.Outcome{
		Selection:    b.selection,
		BombPosition: b.bombPosition,
		IsWinner:     isWinner,
		Payoff:       payoff,
	}
}

// Select moves the control to n boxes.
func (b *Bomb) Select(n int) error {
	if err := b.checkInput(); err != nil {
		return err
	}
	if n < 0 || n > b.boxCount {
		return &domain.RangeError{Value: n, Min: 0, Max: b.boxCount}
	}
	b.selection = n
	b.warning = ""
	b.render()
	return nil
}

func (b *Bomb) checkInput() error {
	switch {
	case b.destroyed:
		return domain.ErrDestroyed
	case b.phase == domain.PhaseCommitted:
		return domain.ErrCommitted
	case !b.enabled:
		return domain.ErrDisabled
	}
	return nil
}

// Commit freezes the selection and reveals the bomb. A zero selection is
// refused with a warning; a second commit is a no-op.
func (b *Bomb) Commit() domain.CommitResult {
	if b.phase == domain.PhaseCommitted {
		return domain.CommitResult{Status: domain.CommitDuplicate}
	}
	if err := b.checkInput(); err != nil {
		return domain.CommitResult{Status: domain.CommitRejected, Warning: err.Error()}
	}
	if b.selection == 0 {
		b.warning = b.texts.Warning
		b.render()
		return domain.CommitResult{Status: domain.CommitRejected, Warning: b.warning}
	}

	b.phase = domain.PhaseCommitted
	b.enabled = false
	b.warning = ""
	b.render()

	out := b.outcome()
	b.logger.Info("bomb gauge committed",
		"id", b.id,
		"selection", out.Selection,
		"bomb", out.BombPosition,
		"winner", out.IsWinner,
		"payoff", out.Payoff.String())
	return domain.CommitResult{Status: domain.CommitAccepted}
}

// SetValues injects a participant response. Without an explicit selection
// a random one in [1, boxCount] is drawn.
func (b *Bomb) SetValues(resp domain.Response) error {
	n := 0
	if resp.Selection != nil {
		n = *resp.Selection
	} else {
		n = b.rand.IntN(b.boxCount) + 1
	}
	if err := b.Select(n); err != nil {
		return err
	}
	if !resp.Commit {
		return nil
	}
	if res := b.Commit(); res.Status == domain.CommitRejected {
		return fmt.Errorf("set values: commit rejected: %s", res.Warning)
	}
	return nil
}

// Enable re-opens the control. It has no effect after commit.
func (b *Bomb) Enable() {
	if b.phase == domain.PhaseCommitted || b.enabled {
		return
	}
	b.enabled = true
	b.render()
}

func (b *Bomb) Disable() {
	if !b.enabled {
		return
	}
	b.enabled = false
	b.render()
}

func (b *Bomb) Highlight() {
	b.highlighted = true
	b.render()
}

func (b *Bomb) Unhighlight() {
	b.highlighted = false
	b.render()
}

// Append attaches the gauge to a surface and draws it once.
func (b *Bomb) Append(surface ports.Surface) error {
	if surface == nil {
		return fmt.Errorf("bomb: append: nil surface")
	}
	if b.destroyed {
		return domain.ErrDestroyed
	}
	b.surface = surface
	return surface.Render(b.View())
}

// Destroy detaches the surface. The gauge rejects input afterwards.
func (b *Bomb) Destroy() {
	if c, ok := b.surface.(ports.Clearer); ok {
		if err := c.Clear(); err != nil {
			b.logger.Warn("failed to clear surface", "id", b.id, "err", err)
		}
	}
	b.surface = nil
	b.destroyed = true
}

// State captures the participant-driven state.
func (b *Bomb) State() domain.GaugeState {
	return domain.GaugeState{
		Phase:       b.phase,
		Selection:   b.selection,
		Enabled:     b.enabled,
		Highlighted: b.highlighted,
	}
}

// Restore replays a captured state onto a freshly constructed gauge.
func (b *Bomb) Restore(state domain.GaugeState) error {
	if state.Selection < 0 || state.Selection > b.boxCount {
		return &domain.RangeError{Value: state.Selection, Min: 0, Max: b.boxCount}
	}
	switch state.Phase {
	case domain.PhaseActive:
	case domain.PhaseCommitted:
		if state.Selection == 0 {
			return fmt.Errorf("bomb: restore: committed state with empty selection")
		}
	default:
		return fmt.Errorf("bomb: restore: unexpected phase %q", state.Phase)
	}
	b.phase = state.Phase
	b.selection = state.Selection
	b.enabled = state.Enabled && state.Phase != domain.PhaseCommitted
	b.highlighted = state.Highlighted
	b.warning = ""
	return nil
}

// View derives the full visual state from the current selection.
func (b *Bomb) View() domain.View {
	committed := b.phase == domain.PhaseCommitted
	cells := make([]domain.CellState, b.boxCount)
	for i := 1; i <= b.boxCount; i++ {
		switch {
		case committed && i == b.bombPosition:
			cells[i-1] = domain.CellBomb
		case i <= b.selection:
			cells[i-1] = domain.CellOpen
		default:
			cells[i-1] = domain.CellClosed
		}
	}

	v := domain.View{
		ID:       b.id,
		Method:   b.method,
		Title:    b.title,
		MainText: b.mainText,
		Cells:    cells,
		Control: domain.Control{
			Min:     0,
			Max:     b.boxCount,
			Value:   b.selection,
			Enabled: b.enabled && !committed,
			Label:   b.Label(b.selection),
		},
		Button: domain.Button{
			Label:   b.button,
			Visible: b.selection > 0 && !committed,
		},
		Enabled:     b.enabled,
		Highlighted: b.highlighted,
		Committed:   committed,
	}

	switch {
	case committed:
		out := b.outcome()
		if out.IsWinner {
			v.Banner = &domain.Banner{Kind: domain.BannerWin, Text: b.texts.Win(b.money(out.Payoff), out.BombPosition)}
		} else {
			v.Banner = &domain.Banner{Kind: domain.BannerLose, Text: b.texts.Lose(out.BombPosition)}
		}
	case b.warning != "":
		v.Banner = &domain.Banner{Kind: domain.BannerWarning, Text: b.warning}
	}
	return v
}

// Label is the control's label callback for a given selection.
func (b *Bomb) Label(selection int) string {
	parts := []string{b.texts.Amount(selection)}
	if b.withPrize {
		parts = append(parts,
			b.texts.PerBox(b.money(b.factor)),
			b.texts.Prize(b.money(b.factor.Mul(decimal.NewFromInt(int64(selection))))))
	}
	return strings.Join(parts, " | ")
}

func (b *Bomb) money(d decimal.Decimal) string {
	return FormatMoney(d, b.currency)
}

func (b *Bomb) render() {
	if b.surface == nil {
		return
	}
	if err := b.surface.Render(b.View()); err != nil {
		b.logger.Warn("failed to render gauge", "id", b.id, "err", err)
	}
}
