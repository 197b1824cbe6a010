// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Present* and Print* functions write formatted output to an [io.Writer].
//     Examples: [PresentSummaryTable], [PrintBanner].
//
//   - Format* and Render* functions return a string without performing I/O.
//     Examples: [FormatLine], [FormatQuietSummary], [RenderBar].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteSummaryToFile].

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/progressrace/internal/format"
	"github.com/agbru/progressrace/internal/orchestration"
	"github.com/agbru/progressrace/internal/progress"
)

// FormatQuietSummary formats a run as a single line suitable for scripting.
func FormatQuietSummary(s orchestration.Summary) string {
	return fmt.Sprintf("completed=%d cancelled=%d failed=%d elapsed=%ss",
		s.Completed, s.Cancelled, s.Failed, format.FormatSeconds(s.Elapsed))
}

// WriteSummaryToFile writes the final bars and the run metadata to path.
// An empty path is a no-op.
//
// Parameters:
//   - s: The summary of the finished race.
//   - path: The destination file. Missing parent directories are created.
//   - nameWidth: The padding width of worker names.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteSummaryToFile(s orchestration.Summary, path string, nameWidth int) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Progress Race Summary\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Run: %s\n", s.RunID)
	fmt.Fprintf(file, "# Seed: %d\n", s.Seed)
	fmt.Fprintf(file, "# Workers: %d\n", s.Workers)
	fmt.Fprintf(file, "# Steps: %d\n", s.Steps)
	fmt.Fprintf(file, "# Elapsed: %s\n", s.Elapsed)
	fmt.Fprintf(file, "# %s\n", FormatQuietSummary(s))
	fmt.Fprintf(file, "\n")

	for _, r := range s.Results {
		e := progress.Entry{
			Name:          r.Name,
			Step:          r.Steps,
			FinalDuration: r.Duration,
			Finished:      r.Finished,
		}
		fmt.Fprintln(file, FormatLine(e, s.Steps, nameWidth))
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
