package domain

import "time"

// Phase is the gauge state machine position.
type Phase string

const (
	PhaseUninitialized Phase = "uninitialized"
	PhaseActive        Phase = "active"
	PhaseCommitted     Phase = "committed"
)

// GaugeState is the participant-driven part of a gauge. Everything else is
// re-derived from the configuration and the construction seed.
type GaugeState struct {
	Phase       Phase    `json:"phase"`
	Selection   int      `json:"selection"`
	Choices     []Choice `json:"choices,omitempty"`
	Enabled     bool     `json:"enabled"`
	Highlighted bool     `json:"highlighted"`
}

// Snapshot captures a live widget so a stateless host can rebuild it between requests.
// The seed determines the hidden draws, so whoever reads it knows the bomb position.
type Snapshot struct {
	ID        string     `json:"id"`
	Config    Config     `json:"config"`
	Seed      int64      `json:"seed"`
	State     GaugeState `json:"state"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Sealed carries the encrypted snapshot when a sealing store wraps the
	// backend; the other fields are then left empty.
	Sealed []byte `json:"sealed,omitempty"`
}
