package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/schema"
)

// WriteHealthResult outputs a package health report, dispatching based
// on the output format configured.
func WriteHealthResult(result schema.PackageHealth, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHealthCSV(w, result)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHealthText(w, result, cfg)
		}, "Wrote report")
	}
}

// writeHealthText renders the human-readable health report.
func writeHealthText(w io.Writer, result schema.PackageHealth, cfg *contract.Config) error {
	label := string(result.Status)
	if cfg.UseColors {
		label = contract.GetColorStatusLabel(result.Status)
	}
	if _, err := fmt.Fprintf(w, "%s: %d/100 (%s)\n", result.Name, result.Score, label); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Signal", "Value"})

	var data [][]string
	s := result.Signals
	if s.WeeklyDownloads != nil {
		data = append(data, []string{"Weekly downloads", formatCount(*s.WeeklyDownloads)})
	}
	if s.DownloadTrend != nil {
		row := []string{"Download trend", string(*s.DownloadTrend)}
		if s.DownloadChange != nil {
			row[1] = fmt.Sprintf("%s (%+.1f%%)", *s.DownloadTrend, *s.DownloadChange)
		}
		data = append(data, row)
	}
	if s.LastCommit != nil {
		data = append(data, []string{"Last commit", s.LastCommit.Format("2006-01-02")})
	}
	if s.MaintainerActivity != nil {
		data = append(data, []string{"Maintainer activity", string(*s.MaintainerActivity)})
	}
	if s.RecentReleases != nil {
		data = append(data, []string{"Recent releases", strconv.Itoa(*s.RecentReleases)})
	}
	if s.OpenIssues != nil {
		data = append(data, []string{"Open issues", strconv.Itoa(*s.OpenIssues)})
	}
	if s.OpenPRs != nil {
		data = append(data, []string{"Open PRs", strconv.Itoa(*s.OpenPRs)})
	}
	if s.Vulnerabilities != nil {
		data = append(data, []string{"Known vulnerabilities", strconv.Itoa(*s.Vulnerabilities)})
	}
	if s.Stars != nil {
		data = append(data, []string{"Stars", formatCount(*s.Stars)})
	}
	if s.Contributors != nil {
		data = append(data, []string{"Contributors", strconv.Itoa(*s.Contributors)})
	}
	if s.Deprecated {
		notice := "yes"
		if s.DeprecatedMessage != "" {
			notice = truncateText(s.DeprecatedMessage, 60)
		}
		data = append(data, []string{"Deprecated", notice})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if result.Recommendation != "" {
		if _, err := fmt.Fprintf(w, "Recommendation: %s\n", result.Recommendation); err != nil {
			return err
		}
	}
	if len(result.Alternatives) > 0 {
		if _, err := fmt.Fprintf(w, "Alternatives: %s\n", strings.Join(result.Alternatives, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// writeHealthCSV writes the health report as a single CSV row.
func writeHealthCSV(w io.Writer, result schema.PackageHealth) error {
	header := []string{
		"package",
		"score",
		"status",
		"weekly_downloads",
		"download_trend",
		"open_issues",
		"vulnerabilities",
		"deprecated",
		"recommendation",
		"alternatives",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		s := result.Signals
		rec := []string{
			result.Name,
			strconv.Itoa(result.Score),
			string(result.Status),
			optionalInt(s.WeeklyDownloads),
			optionalTrend(s.DownloadTrend),
			optionalInt(s.OpenIssues),
			optionalInt(s.Vulnerabilities),
			formatBool(s.Deprecated),
			result.Recommendation,
			strings.Join(result.Alternatives, "|"),
		}
		return cw.Write(rec)
	})
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optionalTrend(v *schema.DownloadTrend) string {
	if v == nil {
		return ""
	}
	return string(*v)
}
