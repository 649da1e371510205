package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/bombrisk"
	"github.com/aretw0/bombrisk/internal/presentation/tui"
	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/observability"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// playResult is the printed task result.
type playResult struct {
	Method       string         `json:"method" yaml:"method"`
	Committed    bool           `json:"committed" yaml:"committed"`
	Selection    int            `json:"selection" yaml:"selection"`
	BombPosition int            `json:"bombPosition,omitempty" yaml:"bombPosition,omitempty"`
	IsWinner     bool           `json:"isWinner" yaml:"isWinner"`
	Payoff       string         `json:"payoff,omitempty" yaml:"payoff,omitempty"`
	Details      map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

func newPlayResult(v domain.Values) playResult {
	res := playResult{Method: v.Method, Committed: v.Committed, Selection: v.Selection}
	if out, err := v.Result(); err == nil {
		res.BombPosition = out.BombPosition
		res.IsWinner = out.IsWinner
		res.Payoff = out.Payoff.String()
		res.Details = out.Details
	}
	return res
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the task in the terminal",
	Long: `Plays one task in the terminal. Type a number to move the control, "3A" to
choose a lottery row, Enter (or "open") to commit and "exit" to leave.
When stdin is not a terminal, commands are read line by line without prompts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		options, err := collectOptions(cmd.Context(), cmd)
		if err != nil {
			return err
		}

		opts := widgetOptions(logger, bombrisk.WithLifecycleHooks(observability.LoggingHooks(logger)))
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetInt64("seed")
			opts = append(opts, bombrisk.WithSeed(seed))
		}
		w, err := bombrisk.New(opts...)
		if err != nil {
			return err
		}
		if err := w.Init(options); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		renderer := tui.PlainRenderer
		if interactive {
			tui.PrintBanner(out)
			width, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil {
				width = 80
			}
			renderer = tui.NewRenderer(width)
		}

		runner := bombrisk.NewRunner(cmd.InOrStdin(), out)
		runner.Headless = !interactive
		runner.Surface = tui.NewSurface(out, tui.WithMarkdown(renderer))

		values, err := runner.Run(w)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("output")
		res := newPlayResult(values)
		return writeResult(out, format, res, func(w io.Writer) {
			if !res.Committed {
				fmt.Fprintln(w, "No commitment made.")
				return
			}
			fmt.Fprintf(w, "Selection: %d, winner: %t, payoff: %s\n", res.Selection, res.IsWinner, res.Payoff)
		})
	},
}

func init() {
	addOptionFlags(playCmd)
	addOutputFlag(playCmd)
	rootCmd.AddCommand(playCmd)
}
