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

// WriteAlternativeGroups outputs discovered alternative groups,
// dispatching based on the output format configured.
func WriteAlternativeGroups(groups []schema.AlternativeGroup, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, groups)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAlternativesCSV(w, groups)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAlternativesTable(w, groups)
		}, "Wrote table")
	}
}

func writeAlternativesTable(w io.Writer, groups []schema.AlternativeGroup) error {
	if len(groups) == 0 {
		_, err := fmt.Fprintln(w, "No alternative groups found.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "Packages", "Size", "Confidence", "Via"})

	var data [][]string
	for _, g := range groups {
		data = append(data, []string{
			g.CategoryName,
			truncateText(strings.Join(g.Packages, ", "), 70),
			strconv.Itoa(len(g.Packages)),
			fmt.Sprintf("%.1f", g.Confidence),
			string(g.DiscoveredVia),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Found %d alternative groups\n", len(groups))
	return err
}

func writeAlternativesCSV(w io.Writer, groups []schema.AlternativeGroup) error {
	header := []string{"category", "category_name", "packages", "size", "confidence", "discovered_via"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, g := range groups {
			rec := []string{
				g.Category,
				g.CategoryName,
				strings.Join(g.Packages, "|"),
				strconv.Itoa(len(g.Packages)),
				fmt.Sprintf("%.2f", g.Confidence),
				string(g.DiscoveredVia),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
