package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agbru/progressrace/internal/config"
)

func TestPrintBanner_ReservesLines(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintBanner(&buf, 12)
	out := buf.String()
	if !strings.HasPrefix(out, BannerText+"\n") {
		t.Errorf("expected banner first, got %q", out)
	}
	// The banner line itself plus workers+2 reserved lines and one spacer.
	if got := strings.Count(out, "\n"); got != 16 {
		t.Errorf("expected 16 newlines, got %d", got)
	}
}

func TestPrintRunConfig(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	var buf bytes.Buffer
	PrintRunConfig(cfg, &buf)
	if !strings.Contains(buf.String(), "Racing 12 workers over 50 steps, target 2s.") {
		t.Errorf("unexpected config output %q", buf.String())
	}
}
