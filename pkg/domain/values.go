package domain

import (
	"github.com/shopspring/decimal"
)

// Outcome is the read-only result of a committed gauge.
type Outcome struct {
	Selection    int             `json:"selection"`
	BombPosition int             `json:"bombPosition,omitempty"`
	IsWinner     bool            `json:"isWinner"`
	Payoff       decimal.Decimal `json:"payoff"`
	Details      map[string]any  `json:"details,omitempty"`
}

// Values is what a gauge reports to its host.
// Before commit only the in-progress Selection is set and Outcome is nil.
type Values struct {
	Method    string   `json:"method"`
	Committed bool     `json:"committed"`
	Selection int      `json:"selection"`
	Outcome   *Outcome `json:"outcome,omitempty"`
}

// Result returns the committed outcome, or ErrNotCommitted for the in-progress variant.
func (v Values) Result() (Outcome, error) {
	if !v.Committed || v.Outcome == nil {
		return Outcome{}, ErrNotCommitted
	}
	return *v.Outcome, nil
}

// Choice is a participant's pick in one lottery row.
type Choice string

const (
	ChoiceNone Choice = ""
	ChoiceA    Choice = "A"
	ChoiceB    Choice = "B"
)

// Response is a simulated participant answer injected through SetValues.
// A nil Selection lets the gauge draw one from its random source.
type Response struct {
	Selection *int     `json:"selection,omitempty"`
	Choices   []Choice `json:"choices,omitempty"`
	Commit    bool     `json:"commit,omitempty"`
}

// CommitStatus tells the host what a commit attempt did.
type CommitStatus string

const (
	CommitAccepted  CommitStatus = "committed"
	CommitRejected  CommitStatus = "rejected"
	CommitDuplicate CommitStatus = "already_committed"
)

// CommitResult is returned by every commit attempt. A rejection carries the
// warning shown to the participant; it is an expected state, not an error.
type CommitResult struct {
	Status  CommitStatus `json:"status"`
	Warning string       `json:"warning,omitempty"`
}

// Committed reports whether this attempt moved the gauge to the committed phase.
func (r CommitResult) Committed() bool {
	return r.Status == CommitAccepted
}
