package gauge

import (
	"log/slog"
	"math"

	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/ports"
)

// Gauge is the minimal operation set the shell and its host depend on.
type Gauge interface {
	Values() domain.Values
	Enable()
	Disable()
	Append(surface ports.Surface) error
}

// Highlighter is implemented by gauges with a visual highlight state.
type Highlighter interface {
	Highlight()
	Unhighlight()
}

// Interactive is implemented by gauges driven by a selection control and a commit action.
type Interactive interface {
	Select(n int) error
	Commit() domain.CommitResult
}

// Chooser is implemented by gauges made of per-row choices.
type Chooser interface {
	Choose(row int, choice domain.Choice) error
}

// Setter is implemented by gauges that accept a simulated participant response.
type Setter interface {
	SetValues(resp domain.Response) error
}

// Destroyer is implemented by gauges that hold on to a surface.
type Destroyer interface {
	Destroy()
}

// Restorer is implemented by gauges whose participant state can be captured and replayed.
type Restorer interface {
	State() domain.GaugeState
	Restore(state domain.GaugeState) error
}

// Viewer is implemented by gauges that can describe themselves without a surface.
type Viewer interface {
	View() domain.View
}

// Constructor builds a gauge from the shell environment and the decoded configuration.
type Constructor func(env Env, cfg domain.Config) (Gauge, error)

// Env is what the shell hands to a method constructor.
type Env struct {
	ID       string             // UI id root
	MainText string             // Shell-level instructional text override
	Texts    Texts              // Label texts; zero fields fall back to defaults
	Rand     ports.RandomSource // Only source of randomness a gauge may use
	Logger   *slog.Logger
}

func (e Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func methodOf(cfg domain.Config, fallback string) string {
	if cfg.Method != "" {
		return cfg.Method
	}
	return fallback
}
