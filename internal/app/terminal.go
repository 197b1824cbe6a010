package app

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/agbru/progressrace/internal/config"
)

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// resolveDisplay turns the configured display mode into a concrete one.
// Quiet always wins; auto draws bars on a terminal and a single aggregate
// bar when the output is redirected.
func (a *Application) resolveDisplay(out io.Writer) string {
	if a.Config.Quiet {
		return config.DisplayNone
	}
	if a.Config.Display != config.DisplayAuto {
		return a.Config.Display
	}
	if a.isTerminal(out) {
		return config.DisplayBars
	}
	return config.DisplayAggregate
}
