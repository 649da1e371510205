package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventGaugeCreated EventType = "gauge_created"
	EventSelect       EventType = "select"
	EventCommit       EventType = "commit"
	EventWarning      EventType = "warning"
	EventSignal       EventType = "signal"
)

// GaugeEvent describes something that happened to a widget's gauge.
type GaugeEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	WidgetID  string    `json:"widget_id"`
	Method    string    `json:"method"`
	Selection int       `json:"selection"`
	Signal    string    `json:"signal,omitempty"`
	Message   string    `json:"message,omitempty"`
	Outcome   *Outcome  `json:"outcome,omitempty"`
}

// LifecycleHooks defines callbacks for widget observability.
// Hooks run synchronously inside the handler that caused them.
type LifecycleHooks struct {
	OnGaugeCreated func(*GaugeEvent)
	OnSelect       func(*GaugeEvent)
	OnCommit       func(*GaugeEvent)
	OnWarning      func(*GaugeEvent)
	OnSignal       func(*GaugeEvent)
}

// CombineHooks fans each event out to every non-nil hook in order.
func CombineHooks(all ...LifecycleHooks) LifecycleHooks {
	fan := func(pick func(LifecycleHooks) func(*GaugeEvent)) func(*GaugeEvent) {
		var fns []func(*GaugeEvent)
		for _, h := range all {
			if fn := pick(h); fn != nil {
				fns = append(fns, fn)
			}
		}
		if len(fns) == 0 {
			return nil
		}
		return func(e *GaugeEvent) {
			for _, fn := range fns {
				fn(e)
			}
		}
	}
	return LifecycleHooks{
		OnGaugeCreated: fan(func(h LifecycleHooks) func(*GaugeEvent) { return h.OnGaugeCreated }),
		OnSelect:       fan(func(h LifecycleHooks) func(*GaugeEvent) { return h.OnSelect }),
		OnCommit:       fan(func(h LifecycleHooks) func(*GaugeEvent) { return h.OnCommit }),
		OnWarning:      fan(func(h LifecycleHooks) func(*GaugeEvent) { return h.OnWarning }),
		OnSignal:       fan(func(h LifecycleHooks) func(*GaugeEvent) { return h.OnSignal }),
	}
}
