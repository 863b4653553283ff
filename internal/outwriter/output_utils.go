package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/pkgpulse/pkgpulse/internal/contract"
)

// writeWithFile handles the common pattern of opening a file, writing
// to it, and cleaning up. It accepts a writer function that takes an
// io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation
// consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV
// writer, writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	return writeRows(csvWriter)
}

// getTerminalWidth resolves the table width: an explicit override wins,
// then the detected terminal size, then a conservative default for
// narrow terminals and CI.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80
	}
	return detectedWidth
}

// getMaxBadgeWidth calculates the space left for the badges column
// after the fixed comparison columns are accounted for.
func getMaxBadgeWidth(cfg *contract.Config) int {
	// Rank + Package + Score + Label + Downloads + Bundle + Updated
	// with borders and padding.
	baseWidth := 75
	if cfg.Explain {
		baseWidth += 40
	}

	available := getTerminalWidth(cfg) - baseWidth
	if available < 12 {
		return 12
	}
	if available > 48 {
		return 48
	}
	return available
}

// truncateText shortens a string to max runes with an ellipsis.
func truncateText(text string, max int) string {
	if len(text) <= max {
		return text
	}
	if max <= 1 {
		return "…"
	}
	return text[:max-1] + "…"
}

// formatCount renders large counts compactly (45.2M, 13.5k).
func formatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// formatBytes renders a byte count as kB with one decimal.
func formatBytes(n int) string {
	if n <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f kB", float64(n)/1000.0)
}

// formatDays renders a day count as a coarse age.
func formatDays(days int) string {
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "1 day ago"
	case days < 60:
		return fmt.Sprintf("%d days ago", days)
	case days < 365:
		return fmt.Sprintf("%d months ago", days/30)
	default:
		return fmt.Sprintf("%.1f years ago", float64(days)/365.0)
	}
}

// formatBool renders a feature flag as a compact check.
func formatBool(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// joinBadges renders a badge list for a table cell.
func joinBadges(badges []string, max int) string {
	if len(badges) == 0 {
		return "-"
	}
	return truncateText(strings.Join(badges, ", "), max)
}
