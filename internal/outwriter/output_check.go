package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/schema"
)

// WriteCheckResult outputs the result of a health gate run, dispatching
// based on the output format configured. The exit decision stays with
// the caller; this only reports.
func WriteCheckResult(result schema.CheckResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, buildCheckJSON(result))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckCSV(w, result)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckText(w, result, cfg)
		}, "Wrote report")
	}
}

func writeCheckText(w io.Writer, result schema.CheckResult, cfg *contract.Config) error {
	if result.Passed {
		_, err := fmt.Fprintf(w, "✅ All %d packages scored at or above %d\n",
			result.TotalPackages, result.Threshold)
		return err
	}

	if _, err := fmt.Fprintf(w, "❌ %d of %d packages scored below %d:\n",
		len(result.FailedPackages), result.TotalPackages, result.Threshold); err != nil {
		return err
	}
	for _, p := range result.FailedPackages {
		label := string(p.Status)
		if cfg.UseColors {
			label = contract.GetColorStatusLabel(p.Status)
		}
		if _, err := fmt.Fprintf(w, "  %s: %d (%s)\n", p.Name, p.Score, label); err != nil {
			return err
		}
	}
	return nil
}

func writeCheckCSV(w io.Writer, result schema.CheckResult) error {
	header := []string{"package", "score", "status", "threshold"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range result.FailedPackages {
			rec := []string{
				p.Name,
				strconv.Itoa(p.Score),
				string(p.Status),
				strconv.Itoa(result.Threshold),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// checkJSON is the stable JSON shape for gate results.
type checkJSON struct {
	Passed         bool              `json:"passed"`
	Threshold      int               `json:"threshold"`
	TotalPackages  int               `json:"total_packages"`
	FailedPackages []checkFailedJSON `json:"failed_packages"`
}

type checkFailedJSON struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Status string `json:"status"`
}

func buildCheckJSON(result schema.CheckResult) checkJSON {
	failed := make([]checkFailedJSON, 0, len(result.FailedPackages))
	for _, p := range result.FailedPackages {
		failed = append(failed, checkFailedJSON{
			Name:   p.Name,
			Score:  p.Score,
			Status: string(p.Status),
		})
	}
	return checkJSON{
		Passed:         result.Passed,
		Threshold:      result.Threshold,
		TotalPackages:  result.TotalPackages,
		FailedPackages: failed,
	}
}
