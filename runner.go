package bombrisk

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/ports"
)

// Runner drives a widget from line-based input.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
//
// Commands:
//
//	<n>        move the control to n
//	<row><A|B> choose a lottery in one row (e.g. "3A")
//	open       commit the selection (an empty line does the same)
//	exit       leave without committing
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Surface  ports.Surface
}

// NewRunner creates a Runner over the given IO.
func NewRunner(in io.Reader, out io.Writer) *Runner {
	return &Runner{Input: in, Output: out}
}

// Run appends the widget to the runner's surface and processes commands until
// the widget commits, the input ends or the participant exits. The returned
// values are uncommitted in the last two cases.
func (r *Runner) Run(w *Widget) (domain.Values, error) {
	if r.Input == nil {
		return domain.Values{}, fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return domain.Values{}, fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	surface := r.Surface
	if surface == nil {
		surface = &textSurface{out: r.Output}
	}
	if err := w.Append(surface); err != nil {
		return domain.Values{}, err
	}

	lines := bufio.NewReader(r.Input)
	for {
		if !r.Headless {
			fmt.Fprint(r.Output, "> ")
		}
		text, readErr := lines.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return domain.Values{}, fmt.Errorf("input error: %w", readErr)
		}
		eof := errors.Is(readErr, io.EOF)
		input, err := SanitizeInput(strings.TrimRight(text, "\r\n"))
		if err != nil {
			fmt.Fprintf(r.Output, "! %v\n", err)
			if eof {
				return w.Values()
			}
			continue
		}
		input = strings.TrimSpace(input)
		if eof && input == "" {
			// Graceful exit on EOF
			return w.Values()
		}

		done, err := r.handle(w, input)
		if err != nil {
			if isFatal(err) {
				return domain.Values{}, err
			}
			fmt.Fprintf(r.Output, "! %v\n", err)
		}
		if done || eof {
			return w.Values()
		}
	}
}

func (r *Runner) handle(w *Widget, input string) (bool, error) {
	switch strings.ToLower(input) {
	case "exit", "quit":
		if !r.Headless {
			fmt.Fprintln(r.Output, "Bye!")
		}
		return true, nil
	case "", "open", "commit":
		res, err := w.Commit()
		if err != nil {
			return false, err
		}
		return res.Status != domain.CommitRejected, nil
	}

	if n, err := strconv.Atoi(input); err == nil {
		return false, w.Select(n)
	}

	// "<row><choice>", e.g. "3A" or "10 b"
	last := rune(input[len(input)-1])
	head := strings.TrimSpace(input[:len(input)-1])
	if row, err := strconv.Atoi(head); err == nil && unicode.IsLetter(last) {
		return false, w.Choose(row, domain.Choice(strings.ToUpper(string(last))))
	}
	return false, fmt.Errorf("unrecognized command %q", input)
}

func isFatal(err error) bool {
	return errors.Is(err, domain.ErrNotInitialized) || errors.Is(err, domain.ErrDestroyed)
}

// textSurface prints the control label and banners, one line per render.
type textSurface struct {
	out  io.Writer
	last string
}

func (s *textSurface) Render(v domain.View) error {
	line := v.Control.Label
	if v.Banner != nil {
		line = fmt.Sprintf("%s\n[%s] %s", line, v.Banner.Kind, v.Banner.Text)
	}
	if line == s.last {
		return nil
	}
	if s.last == "" && v.MainText != "" {
		if _, err := fmt.Fprintln(s.out, v.MainText); err != nil {
			return err
		}
	}
	s.last = line
	_, err := fmt.Fprintln(s.out, line)
	return err
}
