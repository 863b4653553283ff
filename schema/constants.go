package schema

// Custom string types for type safety.
type (
	// DownloadTrend represents the direction of a package's download volume.
	DownloadTrend string

	// HealthStatus represents the graded health of a package.
	HealthStatus string

	// MaintainerActivity represents how actively a package is maintained.
	MaintainerActivity string

	// DiscoverySource represents how an alternative group was produced.
	DiscoverySource string

	// CategorySource represents where a category definition came from.
	CategorySource string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// All download trends supported.
const (
	TrendGrowing   DownloadTrend = "growing"
	TrendStable    DownloadTrend = "stable" // default
	TrendDeclining DownloadTrend = "declining"
)

// All health statuses supported, from best to worst.
const (
	StatusHealthy     HealthStatus = "healthy"
	StatusStable      HealthStatus = "stable"
	StatusMaintenance HealthStatus = "maintenance-only"
	StatusAtRisk      HealthStatus = "at-risk"
	StatusDeprecated  HealthStatus = "deprecated"
)

// All maintainer activity levels supported.
const (
	ActivityHigh   MaintainerActivity = "high"
	ActivityMedium MaintainerActivity = "medium"
	ActivityLow    MaintainerActivity = "low"
	ActivityNone   MaintainerActivity = "none"
)

// All discovery sources supported.
const (
	DiscoveredViaKeywords DiscoverySource = "keywords"
	DiscoveredViaManual   DiscoverySource = "manual"
)

// All category sources supported. Seed categories always win over
// discovered categories on an id collision.
const (
	SourceSeed       CategorySource = "seed"
	SourceDiscovered CategorySource = "discovered"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Badge labels attached to scored packages.
const (
	BadgeDeprecated     = "Deprecated"
	BadgeTypeScript     = "TypeScript"
	BadgeESM            = "ESM"
	BadgeTreeShakeable  = "Tree-shakeable"
	BadgeTrendingUp     = "Trending Up"
	BadgeDeclining      = "Declining"
	BadgeTinyBundle     = "Tiny (<5kb)"
	BadgeSmallBundle    = "Small (<15kb)"
	BadgeLargeBundle    = "Large (>100kb)"
	BadgeSecurityIssues = "Security Issues"
	BadgeInactive       = "Inactive"
	BadgeActive         = "Active"
	BadgeVeryPopular    = "Very Popular"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
