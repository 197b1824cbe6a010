package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/progressrace/internal/config"
	"github.com/agbru/progressrace/internal/ui"
)

// BannerText is the first line printed before a race.
const BannerText = "Starting progress race..."

// PrintRunConfig describes the race about to run.
func PrintRunConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Race Configuration ---\n")
	fmt.Fprintf(out, "Racing %s%d%s workers over %s%d%s steps, target %s%s%s.\n",
		ui.ColorBlue(), cfg.Workers, ui.ColorReset(),
		ui.ColorBlue(), cfg.Steps, ui.ColorReset(),
		ui.ColorYellow(), cfg.Duration, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorGrey(), runtime.NumCPU(), ui.ColorReset(), ui.ColorGrey(), runtime.Version(), ui.ColorReset())
}

// PrintBanner prints the banner followed by workers+2 blank lines. The first
// frame moves the cursor up into these lines, so the bars never overwrite
// anything printed before the race.
func PrintBanner(out io.Writer, workers int) {
	fmt.Fprintf(out, "%s\n\n%s", BannerText, strings.Repeat("\n", workers+2))
}
