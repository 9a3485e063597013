package report

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"autoresolve-sim/internal/telemetry"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

var phasePalette = map[string]string{
	"initiative": colorBlue,
	"deployment": colorCyan,
	"movement":   colorGreen,
	"firing":     colorRed,
	"end":        colorYellow,
	"victory":    colorMagenta,
}

var titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

// ColorStdoutWriter prints report entries using ANSI colors.
type ColorStdoutWriter struct {
	title string
	out   io.Writer
	width int
	once  sync.Once
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
// Entries longer than width are wrapped; width <= 0 disables wrapping.
func NewColorStdoutWriter(title string, width int) *ColorStdoutWriter {
	return &ColorStdoutWriter{title: title, out: os.Stdout, width: width}
}

func (w *ColorStdoutWriter) printBanner() {
	if w.title == "" {
		return
	}
	fmt.Fprintln(w.out, titleStyle.Render(w.title))
	fmt.Fprintln(w.out)
}

// WriteEvent prints a report entry.
func (w *ColorStdoutWriter) WriteEvent(e telemetry.EventRow) error {
	w.once.Do(w.printBanner)
	c, ok := phasePalette[e.Phase]
	if !ok {
		c = colorGray
	}
	text := e.Text
	if w.width > 0 {
		text = wordwrap.String(text, w.width)
	}
	fmt.Fprintf(w.out, "%s[round %d]%s %s%-10s%s %s\n",
		colorGray, e.Round, colorReset, c, e.Phase, colorReset, text)
	return nil
}

// WriteUnitState prints a compact unit line. Intact units are skipped.
func (w *ColorStdoutWriter) WriteUnitState(u telemetry.UnitStateRow) error {
	w.once.Do(w.printBanner)
	if !u.Destroyed && u.Armor == u.MaxArmor && u.Internal == u.MaxInternal {
		return nil
	}
	status := colorYellow + "damaged" + colorReset
	if u.Destroyed {
		status = colorRed + u.Removal + colorReset
	}
	fmt.Fprintf(w.out, "%s[round %d]%s %sunit=%d%s %s armor=%d/%d internal=%d/%d crew=%d %s\n",
		colorGray, u.Round, colorReset, colorBlue, u.UnitID, colorReset, u.Name,
		u.Armor, u.MaxArmor, u.Internal, u.MaxInternal, u.CrewHits, status)
	return nil
}

// WriteSummary prints the verdict and per-team losses.
func (w *ColorStdoutWriter) WriteSummary(s telemetry.SummaryRow) error {
	w.once.Do(w.printBanner)
	verdict := fmt.Sprintf("%steam %d wins%s", colorGreen, s.Winner, colorReset)
	if s.Winner < 0 {
		verdict = colorYellow + "draw" + colorReset
	}
	forced := ""
	if s.Forced {
		forced = " (round limit)"
	}
	fmt.Fprintf(w.out, "\n%sVICTORY%s %s after %d rounds%s at %s\n",
		colorMagenta, colorReset, verdict, s.Rounds, forced, s.Timestamp.Format(time.RFC3339))
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Team\tStarting\tRemaining\tCasualties\n")
	for _, t := range s.Teams {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.0f%%\n", t.Team, t.StartingUnits, t.Remaining, t.CasualtyPct)
	}
	return tw.Flush()
}
