// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API
// for the command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteComparison prints a generated comparison using the configured
// output format.
func (ow *OutWriter) WriteComparison(result *schema.GeneratedComparison, cfg *contract.Config, duration time.Duration) error {
	return WriteComparisonResult(result, cfg, duration)
}

// WriteHealth prints a package health report using the configured
// output format.
func (ow *OutWriter) WriteHealth(result schema.PackageHealth, cfg *contract.Config) error {
	return WriteHealthResult(result, cfg)
}

// WriteAlternatives prints alternative groups using the configured
// output format.
func (ow *OutWriter) WriteAlternatives(groups []schema.AlternativeGroup, cfg *contract.Config) error {
	return WriteAlternativeGroups(groups, cfg)
}

// WriteCategories prints the merged category catalog using the
// configured output format.
func (ow *OutWriter) WriteCategories(categories []schema.ExtendedCategory, cfg *contract.Config) error {
	return WriteCategoryCatalog(categories, cfg)
}

// WriteCheck prints a health gate result using the configured output
// format.
func (ow *OutWriter) WriteCheck(result schema.CheckResult, cfg *contract.Config) error {
	return WriteCheckResult(result, cfg)
}
