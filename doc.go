/*
Package bombrisk implements the "bomb risk" elicitation task as an embeddable widget.

A participant sees a fixed number of opaque boxes, exactly one of which hides a
bomb. They choose how many boxes to open with a continuous control and then
commit. If the bomb is not among the opened boxes they earn the value of every
opened box; otherwise they earn nothing.

# Concept

The Widget is a thin shell around a pluggable gauge. The shell validates the
options, resolves the named method from its own registry, checks the produced
gauge against the operation set it depends on and then forwards lifecycle
signals (enable, disable, highlight, unhighlight, destroy) to it. The gauge
owns every game-relevant state: the hidden bomb position, the selection and the
commit transition. It draws itself into a ports.Surface from a declarative
domain.View, so the same widget runs in a terminal, behind HTTP or inside an
MCP tool call.

# Usage

	w, err := bombrisk.New(bombrisk.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	if err := w.Init(map[string]any{"boxCount": 100, "scale": 0.1, "currency": "$"}); err != nil {
		log.Fatal(err) // always a *domain.ConfigError
	}
	_ = w.Append(surface)

	_ = w.Select(12)
	if res, _ := w.Commit(); res.Committed() {
		values, _ := w.Values()
		outcome, _ := values.Result()
		fmt.Println(outcome.IsWinner, outcome.Payoff)
	}

Additional elicitation methods are registered per widget with AddMethod or the
WithMethod option; the only built-in method is "Bomb".
*/
package bombrisk
