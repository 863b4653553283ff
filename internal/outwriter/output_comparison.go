package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pkgpulse/pkgpulse/core"
	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/schema"
)

// WriteComparisonResult outputs a generated comparison, dispatching
// based on the output format configured.
func WriteComparisonResult(result *schema.GeneratedComparison, cfg *contract.Config, duration time.Duration) error {
	if result == nil {
		return fmt.Errorf("comparison has no results: fewer than two packages could be fetched")
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schema.BuildComparisonResponse(result))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonCSV(w, result)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonTable(w, result, cfg, duration)
		}, "Wrote table")
	}
}

// writeComparisonTable generates and writes the human-readable table.
func writeComparisonTable(w io.Writer, result *schema.GeneratedComparison, cfg *contract.Config, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "%s (%s)\n", result.CategoryName, result.Category); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)

	headers := []string{"Rank", "Package", "Score", "Label", "Downloads", "Bundle", "Updated", "Badges"}
	if cfg.Explain {
		headers = append(headers, "Why")
	}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, p := range result.Packages {
		row := []string{
			strconv.Itoa(i + 1),
			p.Name,
			strconv.Itoa(p.Score),
			scoreLabel(p.Score, cfg),
			formatCount(p.Metrics.WeeklyDownloads),
			formatBytes(p.Metrics.BundleSize),
			formatDays(p.Metrics.LastCommitDays),
			joinBadges(p.Badges, getMaxBadgeWidth(cfg)),
		}
		if cfg.Explain {
			row = append(row, truncateText(strings.Join(core.ExplainScore(p.Metrics), "; "), 120))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Recommended: %s. Smallest bundle: %s. Most popular: %s.\n",
		result.Recommendation, result.SmallestBundle, result.MostPopular); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Compared %d packages in %v. Cache backend: %s\n",
		len(result.Packages), duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeComparisonCSV writes the comparison in CSV format.
func writeComparisonCSV(w io.Writer, result *schema.GeneratedComparison) error {
	header := []string{
		"rank",
		"package",
		"score",
		"label",
		"weekly_downloads",
		"bundle_size_bytes",
		"last_commit_days",
		"stars",
		"security_issues",
		"has_types",
		"is_esm",
		"deprecated",
		"badges",
		"category",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, p := range result.Packages {
			rec := []string{
				strconv.Itoa(i + 1),
				p.Name,
				strconv.Itoa(p.Score),
				string(contract.GetScoreStatusForLabel(p.Score)),
				strconv.Itoa(p.Metrics.WeeklyDownloads),
				strconv.Itoa(p.Metrics.BundleSize),
				strconv.Itoa(p.Metrics.LastCommitDays),
				strconv.Itoa(p.Metrics.Stars),
				strconv.Itoa(p.Metrics.SecurityIssues),
				formatBool(p.Metrics.HasTypes),
				formatBool(p.Metrics.IsESM),
				formatBool(p.Metrics.Deprecated),
				strings.Join(p.Badges, "|"),
				result.Category,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// scoreLabel maps a composite score to its status label, colored when
// the config asks for it.
func scoreLabel(score int, cfg *contract.Config) string {
	status := contract.GetScoreStatusForLabel(score)
	if cfg.UseColors {
		return contract.GetColorStatusLabel(status)
	}
	return contract.GetPlainStatusLabel(status)
}
