package observability

import (
	"log/slog"

	"github.com/aretw0/bombrisk/pkg/domain"
)

// LoggingHooks logs every widget event with structured attributes.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	attrs := func(e *domain.GaugeEvent) []any {
		return []any{"widget_id", e.WidgetID, "method", e.Method, "selection", e.Selection}
	}
	return domain.LifecycleHooks{
		OnGaugeCreated: func(e *domain.GaugeEvent) {
			logger.Info("gauge_created", attrs(e)...)
		},
		OnSelect: func(e *domain.GaugeEvent) {
			logger.Debug("select", attrs(e)...)
		},
		OnCommit: func(e *domain.GaugeEvent) {
			args := attrs(e)
			if e.Outcome != nil {
				args = append(args,
					"bomb", e.Outcome.BombPosition,
					"winner", e.Outcome.IsWinner,
					"payoff", e.Outcome.Payoff.String())
			}
			logger.Info("commit", args...)
		},
		OnWarning: func(e *domain.GaugeEvent) {
			logger.Info("commit_rejected", append(attrs(e), "warning", e.Message)...)
		},
		OnSignal: func(e *domain.GaugeEvent) {
			logger.Debug("signal", append(attrs(e), "signal", e.Signal)...)
		},
	}
}
