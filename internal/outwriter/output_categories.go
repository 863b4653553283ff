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

// WriteCategoryCatalog outputs the merged category catalog, dispatching
// based on the output format configured.
func WriteCategoryCatalog(categories []schema.ExtendedCategory, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, categories)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCategoriesCSV(w, categories)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCategoriesTable(w, categories)
		}, "Wrote table")
	}
}

func writeCategoriesTable(w io.Writer, categories []schema.ExtendedCategory) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Name", "Keywords", "Source"})

	var data [][]string
	for _, c := range categories {
		data = append(data, []string{
			c.ID,
			c.Name,
			truncateText(strings.Join(c.Keywords, ", "), 60),
			string(c.Source),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d categories\n", len(categories))
	return err
}

func writeCategoriesCSV(w io.Writer, categories []schema.ExtendedCategory) error {
	header := []string{"id", "name", "keywords", "min_matches", "source"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range categories {
			rec := []string{
				c.ID,
				c.Name,
				strings.Join(c.Keywords, "|"),
				strconv.Itoa(c.MinMatches),
				string(c.Source),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
