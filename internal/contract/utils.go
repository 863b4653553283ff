package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/pkgpulse/pkgpulse/schema"
)

// Color variables for console output.
var (
	HealthyColor     = color.New(color.FgCyan)                // healthy is informational, nothing to do
	StableColor      = color.New(color.FgGreen)               // stable is a mild positive signal
	MaintenanceColor = color.New(color.FgYellow)              // maintenance-only warrants caution
	AtRiskColor      = color.New(color.FgMagenta, color.Bold) // at-risk is a strong, distinct warning
	DeprecatedColor  = color.New(color.FgRed, color.Bold)     // deprecated is standard danger
)

// GetPlainStatusLabel returns the plain text label for a health status.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainStatusLabel(status schema.HealthStatus) string {
	return string(status)
}

// GetColorStatusLabel returns a colored status label for console output.
func GetColorStatusLabel(status schema.HealthStatus) string {
	text := GetPlainStatusLabel(status)
	switch status {
	case schema.StatusHealthy:
		return HealthyColor.Sprint(text)
	case schema.StatusStable:
		return StableColor.Sprint(text)
	case schema.StatusMaintenance:
		return MaintenanceColor.Sprint(text)
	case schema.StatusAtRisk:
		return AtRiskColor.Sprint(text)
	default: // deprecated
		return DeprecatedColor.Sprint(text)
	}
}

// GetScoreStatusForLabel maps a composite package score onto the health
// status scale, so score tables can reuse the status colors.
func GetScoreStatusForLabel(score int) schema.HealthStatus {
	switch {
	case score >= 80:
		return schema.StatusHealthy
	case score >= 60:
		return schema.StatusStable
	case score >= 40:
		return schema.StatusMaintenance
	default:
		return schema.StatusAtRisk
	}
}

// LogWarn logs a warning with its underlying error.
func LogWarn(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  %s: %v\n", msg, err)
		return
	}
	fmt.Fprintf(os.Stderr, "⚠️  %s\n", msg)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}

// SelectOutputFile returns the appropriate file handle for output, based
// on the provided file path. An empty path selects stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache
// storage, under the user cache directory when available.
func GetCacheDBFilePath() string {
	return dbFilePath("cache.db")
}

// GetSnapshotDBFilePath returns the path to the SQLite DB file for
// snapshot storage.
func GetSnapshotDBFilePath() string {
	return dbFilePath("snapshots.db")
}

// GetCategoryDBFilePath returns the path to the SQLite DB file for
// discovered-category storage.
func GetCategoryDBFilePath() string {
	return dbFilePath("categories.db")
}

func dbFilePath(name string) string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "pkgpulse-"+name)
	}
	dir := filepath.Join(base, "pkgpulse")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return filepath.Join(os.TempDir(), "pkgpulse-"+name)
	}
	return filepath.Join(dir, name)
}
