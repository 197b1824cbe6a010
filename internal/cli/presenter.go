package cli

import (
	"fmt"
	"io"

	apperrors "github.com/agbru/progressrace/internal/errors"
	"github.com/agbru/progressrace/internal/format"
	"github.com/agbru/progressrace/internal/orchestration"
	"github.com/agbru/progressrace/internal/ui"
	"github.com/agbru/progressrace/internal/worker"
)

// CLIResultPresenter implements orchestration.ResultPresenter for terminal
// output: a completion message followed by a per-worker table, or a single
// line in quiet mode.
type CLIResultPresenter struct {
	Quiet bool
}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentSummary prints the completion message and, unless quiet, the table.
func (p CLIResultPresenter) PresentSummary(s orchestration.Summary, out io.Writer) {
	if p.Quiet {
		fmt.Fprintln(out, FormatQuietSummary(s))
		return
	}

	if s.AllCompleted() {
		fmt.Fprintf(out, "%sAll workers completed!%s\n", ui.ColorGreen(), ui.ColorReset())
	} else {
		fmt.Fprintf(out, "%sRace interrupted: %d of %d workers completed.%s\n",
			ui.ColorYellow(), s.Completed, s.Workers, ui.ColorReset())
	}
	PresentSummaryTable(s, out)
}

// PresentSummaryTable prints one row per worker with its steps, duration and
// outcome. Padding is computed on the raw text so ANSI codes do not skew
// the columns.
func PresentSummaryTable(s orchestration.Summary, out io.Writer) {
	fmt.Fprintf(out, "\n--- Race Summary ---\n")

	nameWidth := len("Worker")
	for _, r := range s.Results {
		nameWidth = max(nameWidth, len(r.Name))
	}
	stepsWidth := max(len("Steps"), len(fmt.Sprintf("%d/%d", s.Steps, s.Steps)))
	durationWidth := len("Duration")

	fmt.Fprintf(out, "%sWorker%s%s   %sSteps%s%s   %sDuration%s   %sOutcome%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", nameWidth-len("Worker")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", stepsWidth-len("Steps")),
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset())

	for _, r := range s.Results {
		steps := fmt.Sprintf("%d/%d", r.Steps, s.Steps)
		duration := "-"
		if r.Finished {
			duration = format.FormatSeconds(r.Duration) + "s"
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), r.Name, ui.ColorReset(), padRight("", nameWidth-len(r.Name)),
			steps, padRight("", stepsWidth-len(steps)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", durationWidth-len(duration)),
			formatOutcome(r))
	}

	if best, ok := s.Fastest(); ok {
		fmt.Fprintf(out, "\nWinner: %s%s%s in %ss\n", ui.ColorBold(), best.Name, ui.ColorReset(), format.FormatSeconds(best.Duration))
	}
	fmt.Fprintf(out, "Elapsed: %s (run %s, seed %d)\n", format.FormatExecutionDuration(s.Elapsed), s.RunID, s.Seed)
}

func formatOutcome(r orchestration.WorkerResult) string {
	switch r.Outcome {
	case worker.OutcomeCompleted:
		return ui.ColorGreen() + r.Outcome.String() + ui.ColorReset()
	case worker.OutcomeCancelled:
		return ui.ColorYellow() + r.Outcome.String() + ui.ColorReset()
	default:
		if r.Err != nil {
			return fmt.Sprintf("%s%s (%v)%s", ui.ColorRed(), r.Outcome, r.Err, ui.ColorReset())
		}
		return ui.ColorRed() + r.Outcome.String() + ui.ColorReset()
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// CLIColorProvider implements apperrors.ColorProvider with the current theme.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

// Red returns the error color.
func (CLIColorProvider) Red() string { return ui.ColorRed() }

// Yellow returns the warning color.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Reset returns the reset sequence.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }
