package gauge

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/ports"
	"github.com/shopspring/decimal"
)

// Lottery is a multiple price list. Row j offers lottery A (j/rows chance of
// v1, else v2) against lottery B (j/rows chance of v3, else v4). The paying
// row and the die are drawn once at construction.
type Lottery struct {
	id       string
	method   string
	title    string
	mainText string
	currency string
	button   string
	rows     int
	prizes   [4]decimal.Decimal
	texts    Texts
	rand     ports.RandomSource
	logger   *slog.Logger

	payRow int
	die    int

	phase       domain.Phase
	choices     []domain.Choice
	enabled     bool
	highlighted bool
	warning     string
	destroyed   bool
	surface     ports.Surface
}

// NewLotteryGauge is a Constructor for the multiple price list method.
func NewLotteryGauge(env Env, cfg domain.Config) (Gauge, error) {
	l, err := NewLottery(env, cfg)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// NewLottery builds a lottery gauge and draws its paying row and die.
func NewLottery(env Env, cfg domain.Config) (*Lottery, error) {
	method := methodOf(cfg, domain.MethodLottery)
	rows := cfg.Rows
	if rows <= 0 || rows > domain.MaxRows {
		return nil, &domain.ConfigError{
			Method: method,
			Field:  "rows",
			Reason: fmt.Sprintf("must be an integer in [1, %d]", domain.MaxRows),
			Value:  cfg.Rows,
		}
	}
	values := cfg.Prizes
	if len(values) == 0 {
		values = domain.DefaultPrizes
	}
	if len(values) != 4 {
		return nil, &domain.ConfigError{Method: method, Field: "values", Reason: "must hold exactly four prizes", Value: values}
	}
	for _, v := range values {
		if !finite(v) {
			return nil, &domain.ConfigError{Method: method, Field: "values", Reason: "must be finite numbers", Value: values}
		}
	}
	if !finite(cfg.Scale) {
		return nil, &domain.ConfigError{Method: method, Field: "scale", Reason: "must be a finite number", Value: cfg.Scale}
	}
	if env.Rand == nil {
		return nil, &domain.ConfigError{Method: method, Field: "random source", Reason: "is required"}
	}

	texts := env.Texts.withDefaults()
	l := &Lottery{
		id:       env.ID,
		method:   method,
		title:    cfg.Title,
		currency: cfg.Currency,
		button:   texts.Button,
		rows:     rows,
		texts:    texts,
		rand:     env.Rand,
		logger:   env.logger(),
		phase:    domain.PhaseActive,
		choices:  make([]domain.Choice, rows),
		enabled:  true,
	}
	if cfg.Button != "" {
		l.button = cfg.Button
	}
	scale := decimal.NewFromFloat(cfg.Scale)
	for i, v := range values {
		l.prizes[i] = decimal.NewFromFloat(v).Mul(scale).Round(2)
	}

	l.payRow = env.Rand.IntN(rows) + 1
	l.die = env.Rand.IntN(rows) + 1

	l.mainText = env.MainText
	if l.mainText == "" {
		l.mainText = cfg.MainText
	}
	if l.mainText == "" {
		l.mainText = texts.LotteryText
	}

	l.logger.Debug("lottery gauge created", "id", l.id, "rows", l.rows)
	return l, nil
}

func (l *Lottery) safeChoices() int {
	n := 0
	for _, c := range l.choices {
		if c == domain.ChoiceA {
			n++
		}
	}
	return n
}

func (l *Lottery) complete() bool {
	for _, c := range l.choices {
		if c == domain.ChoiceNone {
			return false
		}
	}
	return true
}

func (l *Lottery) Values() domain.Values {
	v := domain.Values{
		Method:    l.method,
		Committed: l.phase == domain.PhaseCommitted,
		Selection: l.safeChoices(),
	}
	if v.Committed {
		out := l.outcome()
		v.Outcome = &out
	}
	return v
}

func (l *Lottery) outcome() domain.Outcome {
	chosen := l.choices[l.payRow-1]
	high := l.die <= l.payRow
	var payoff decimal.Decimal
	switch {
	case chosen == domain.ChoiceA && high:
		payoff = l.prizes[0]
	case chosen == domain.ChoiceA:
		payoff = l.prizes[1]
	case high:
		payoff = l.prizes[2]
	default:
		payoff = l.prizes[3]
	}
	return domain.Outcome{
		Selection: l.safeChoices(),
		IsWinner:  high,
		Payoff:    payoff,
		Details: map[string]any{
			"payingRow": l.payRow,
			"die":       l.die,
			"choice":    string(chosen),
		},
	}
}

func (l *Lottery) checkInput() error {
	switch {
	case l.destroyed:
		return domain.ErrDestroyed
	case l.phase == domain.PhaseCommitted:
		return domain.ErrCommitted
	case !l.enabled:
		return domain.ErrDisabled
	}
	return nil
}

// Select sets the switch point: rows 1..n choose A, the remaining rows choose B.
func (l *Lottery) Select(n int) error {
	if err := l.checkInput(); err != nil {
		return err
	}
	if n < 0 || n > l.rows {
		return &domain.RangeError{Value: n, Min: 0, Max: l.rows}
	}
	for i := range l.choices {
		if i < n {
			l.choices[i] = domain.ChoiceA
		} else {
			l.choices[i] = domain.ChoiceB
		}
	}
	l.warning = ""
	l.render()
	return nil
}

// Choose sets a single 1-based row.
func (l *Lottery) Choose(row int, choice domain.Choice) error {
	if err := l.checkInput(); err != nil {
		return err
	}
	if row < 1 || row > l.rows {
		return &domain.RangeError{Value: row, Min: 1, Max: l.rows}
	}
	if choice != domain.ChoiceA && choice != domain.ChoiceB {
		return fmt.Errorf("lottery: row %d: invalid choice %q", row, choice)
	}
	l.choices[row-1] = choice
	l.warning = ""
	l.render()
	return nil
}

// Commit requires a choice in every row.
func (l *Lottery) Commit() domain.CommitResult {
	if l.phase == domain.PhaseCommitted {
		return domain.CommitResult{Status: domain.CommitDuplicate}
	}
	if err := l.checkInput(); err != nil {
		return domain.CommitResult{Status: domain.CommitRejected, Warning: err.Error()}
	}
	if !l.complete() {
		l.warning = fmt.Sprintf("Please choose a lottery in each of the %d rows.", l.rows)
		l.render()
		return domain.CommitResult{Status: domain.CommitRejected, Warning: l.warning}
	}

	l.phase = domain.PhaseCommitted
	l.enabled = false
	l.warning = ""
	l.render()

	out := l.outcome()
	l.logger.Info("lottery gauge committed", "id", l.id, "safe_choices", out.Selection, "payoff", out.Payoff.String())
	return domain.CommitResult{Status: domain.CommitAccepted}
}

// SetValues applies explicit choices, an explicit switch point, or a random one.
func (l *Lottery) SetValues(resp domain.Response) error {
	switch {
	case len(resp.Choices) > 0:
		if len(resp.Choices) != l.rows {
			return fmt.Errorf("lottery: expected %d choices, got %d", l.rows, len(resp.Choices))
		}
		for i, c := range resp.Choices {
			if err := l.Choose(i+1, c); err != nil {
				return err
			}
		}
	case resp.Selection != nil:
		if err := l.Select(*resp.Selection); err != nil {
			return err
		}
	default:
		if err := l.Select(l.rand.IntN(l.rows + 1)); err != nil {
			return err
		}
	}
	if !resp.Commit {
		return nil
	}
	if res := l.Commit(); res.Status == domain.CommitRejected {
		return fmt.Errorf("set values: commit rejected: %s", res.Warning)
	}
	return nil
}

func (l *Lottery) Enable() {
	if l.phase == domain.PhaseCommitted || l.enabled {
		return
	}
	l.enabled = true
	l.render()
}

func (l *Lottery) Disable() {
	if !l.enabled {
		return
	}
	l.enabled = false
	l.render()
}

func (l *Lottery) Highlight() {
	l.highlighted = true
	l.render()
}

func (l *Lottery) Unhighlight() {
	l.highlighted = false
	l.render()
}

func (l *Lottery) Append(surface ports.Surface) error {
	if surface == nil {
		return fmt.Errorf("lottery: append: nil surface")
	}
	if l.destroyed {
		return domain.ErrDestroyed
	}
	l.surface = surface
	return surface.Render(l.View())
}

func (l *Lottery) Destroy() {
	if c, ok := l.surface.(ports.Clearer); ok {
		if err := c.Clear(); err != nil {
			l.logger.Warn("failed to clear surface", "id", l.id, "err", err)
		}
	}
	l.surface = nil
	l.destroyed = true
}

func (l *Lottery) State() domain.GaugeState {
	choices := make([]domain.Choice, len(l.choices))
	copy(choices, l.choices)
	return domain.GaugeState{
		Phase:       l.phase,
		Selection:   l.safeChoices(),
		Choices:     choices,
		Enabled:     l.enabled,
		Highlighted: l.highlighted,
	}
}

func (l *Lottery) Restore(state domain.GaugeState) error {
	if len(state.Choices) != 0 && len(state.Choices) != l.rows {
		return fmt.Errorf("lottery: restore: expected %d choices, got %d", l.rows, len(state.Choices))
	}
	if state.Phase != domain.PhaseActive && state.Phase != domain.PhaseCommitted {
		return fmt.Errorf("lottery: restore: unexpected phase %q", state.Phase)
	}
	choices := make([]domain.Choice, l.rows)
	copy(choices, state.Choices)
	l.choices = choices
	if state.Phase == domain.PhaseCommitted && !l.complete() {
		return fmt.Errorf("lottery: restore: committed state with unanswered rows")
	}
	l.phase = state.Phase
	l.enabled = state.Enabled && state.Phase != domain.PhaseCommitted
	l.highlighted = state.Highlighted
	return nil
}

func (l *Lottery) View() domain.View {
	committed := l.phase == domain.PhaseCommitted
	rows := make([]domain.Row, l.rows)
	for i := range rows {
		j := i + 1
		p1 := fmt.Sprintf("%d/%d", j, l.rows)
		p2 := fmt.Sprintf("%d/%d", l.rows-j, l.rows)
		rows[i] = domain.Row{
			Index: j,
			Label: fmt.Sprintf("%d. ", j),
			Options: []string{
				l.texts.Odds(p1, l.money(l.prizes[0]), p2, l.money(l.prizes[1])),
				l.texts.Odds(p1, l.money(l.prizes[2]), p2, l.money(l.prizes[3])),
			},
			Chosen: l.choices[i],
		}
	}

	safe := l.safeChoices()
	v := domain.View{
		ID:       l.id,
		Method:   l.method,
		Title:    l.title,
		MainText: l.mainText,
		Rows:     rows,
		Control: domain.Control{
			Min:     0,
			Max:     l.rows,
			Value:   safe,
			Enabled: l.enabled && !committed,
			Label:   l.texts.SafeChoices(safe),
		},
		Button: domain.Button{
			Label:   l.button,
			Visible: l.complete() && !committed,
		},
		Enabled:     l.enabled,
		Highlighted: l.highlighted,
		Committed:   committed,
	}

	switch {
	case committed:
		out := l.outcome()
		v.Banner = &domain.Banner{
			Kind: domain.BannerWin,
			Text: fmt.Sprintf("Row %d was drawn. You win %s.", l.payRow, l.money(out.Payoff)),
		}
	case l.warning != "":
		v.Banner = &domain.Banner{Kind: domain.BannerWarning, Text: l.warning}
	}
	return v
}

func (l *Lottery) money(d decimal.Decimal) string {
	return FormatMoney(d, l.currency)
}

func (l *Lottery) render() {
	if l.surface == nil {
		return
	}
	if err := l.surface.Render(l.View()); err != nil {
		l.logger.Warn("failed to render gauge", "id", l.id, "err", err)
	}
}
