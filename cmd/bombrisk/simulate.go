package main

import (
	"fmt"
	"io"

	"github.com/aretw0/bombrisk"
	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/observability"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// simulation aggregates the outcomes of random participants.
type simulation struct {
	Method        string  `json:"method" yaml:"method"`
	Runs          int     `json:"runs" yaml:"runs"`
	Winners       int     `json:"winners" yaml:"winners"`
	WinRate       float64 `json:"winRate" yaml:"winRate"`
	MeanSelection float64 `json:"meanSelection" yaml:"meanSelection"`
	MeanPayoff    string  `json:"meanPayoff" yaml:"meanPayoff"`
	TotalPayoff   string  `json:"totalPayoff" yaml:"totalPayoff"`
}

// simulate plays n widgets with random responses. With a base seed, run i uses seed+i.
func simulate(options map[string]any, n int, seed *int64, opts []bombrisk.Option) (simulation, error) {
	sim := simulation{Runs: n}
	total := decimal.Zero
	selections := 0

	for i := 0; i < n; i++ {
		runOpts := opts
		if seed != nil {
			runOpts = append(append([]bombrisk.Option(nil), opts...), bombrisk.WithSeed(*seed+int64(i)))
		}
		w, err := bombrisk.New(runOpts...)
		if err != nil {
			return simulation{}, err
		}
		if err := w.Init(options); err != nil {
			return simulation{}, err
		}
		if err := w.SetValues(domain.Response{Commit: true}); err != nil {
			return simulation{}, fmt.Errorf("run %d: %w", i, err)
		}
		values, err := w.Values()
		if err != nil {
			return simulation{}, err
		}
		out, err := values.Result()
		if err != nil {
			return simulation{}, fmt.Errorf("run %d: %w", i, err)
		}

		sim.Method = values.Method
		selections += out.Selection
		total = total.Add(out.Payoff)
		if out.IsWinner {
			sim.Winners++
		}
	}

	sim.TotalPayoff = total.StringFixed(2)
	sim.MeanPayoff = decimal.Zero.StringFixed(2)
	if n > 0 {
		sim.WinRate = float64(sim.Winners) / float64(n)
		sim.MeanSelection = float64(selections) / float64(n)
		sim.MeanPayoff = total.Div(decimal.NewFromInt(int64(n))).StringFixed(2)
	}
	return sim, nil
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate random participants",
	Long: `Creates --runs widgets, answers each with a random response and commits it,
then prints the win rate and payoffs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		options, err := collectOptions(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		runs, _ := cmd.Flags().GetInt("runs")
		if runs < 1 {
			return fmt.Errorf("--runs must be positive")
		}
		var seed *int64
		if cmd.Flags().Changed("seed") {
			s, _ := cmd.Flags().GetInt64("seed")
			seed = &s
		}

		metrics := observability.NewMetrics()
		sim, err := simulate(options, runs, seed, widgetOptions(logger, bombrisk.WithLifecycleHooks(metrics.Hooks())))
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("output")
		return writeResult(cmd.OutOrStdout(), format, sim, func(w io.Writer) {
			fmt.Fprintf(w, "Method:         %s\n", sim.Method)
			fmt.Fprintf(w, "Runs:           %d\n", sim.Runs)
			fmt.Fprintf(w, "Winners:        %d (%.1f%%)\n", sim.Winners, sim.WinRate*100)
			fmt.Fprintf(w, "Mean selection: %.2f\n", sim.MeanSelection)
			fmt.Fprintf(w, "Mean payoff:    %s\n", sim.MeanPayoff)
			fmt.Fprintf(w, "Total payoff:   %s\n", sim.TotalPayoff)
		})
	},
}

func init() {
	addOptionFlags(simulateCmd)
	addOutputFlag(simulateCmd)
	simulateCmd.Flags().IntP("runs", "n", 1000, "Number of simulated participants")
	rootCmd.AddCommand(simulateCmd)
}
