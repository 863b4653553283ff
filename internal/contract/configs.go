package contract

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/pkgpulse/pkgpulse/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit       = 25
	MaxResultLimit           = 100
	DefaultPrecision         = 1
	DefaultCacheTTL          = time.Hour
	DefaultHTTPTimeout       = 15 * time.Second
	DefaultMinDownloads      = 1000
	DefaultMinGroupSize      = 2
	DefaultMaxGroupSize      = 20
	DefaultAlternativesLimit = 10
	DefaultCorpusSize        = 50
	DefaultHealthThreshold   = 40
	DefaultServeAddr         = ":8080"
)

// Default upstream endpoints. Overridable for tests and mirrors.
const (
	DefaultRegistryURL  = "https://registry.npmjs.org"
	DefaultDownloadsURL = "https://api.npmjs.org"
	DefaultGitHubURL    = "https://api.github.com"
	DefaultOSVURL       = "https://api.osv.dev"
	DefaultBundleURL    = "https://bundlephobia.com"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for pkgpulse.
// This struct remains the "final, validated" config.
type Config struct {
	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Detail      bool
	Explain     bool
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	RegistryURL  string
	DownloadsURL string
	GitHubURL    string
	OSVURL       string
	BundleURL    string
	GitHubToken  string // Please use env var as this is plaintext
	HTTPTimeout  time.Duration

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheTTL       time.Duration

	SnapshotBackend   schema.DatabaseBackend
	SnapshotDBConnect string
	Track             bool

	MinDownloads      int
	MinGroupSize      int
	MaxGroupSize      int
	AlternativesLimit int
	CorpusSize        int

	HealthThreshold int

	ServeAddr string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env,
// config file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	Limit      int    `mapstructure:"limit"`
	Workers    int    `mapstructure:"workers"`
	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Detail     bool   `mapstructure:"detail"`
	Explain    bool   `mapstructure:"explain"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	RegistryURL  string `mapstructure:"registry-url"`
	DownloadsURL string `mapstructure:"downloads-url"`
	GitHubURL    string `mapstructure:"github-url"`
	OSVURL       string `mapstructure:"osv-url"`
	BundleURL    string `mapstructure:"bundle-url"`
	GitHubToken  string `mapstructure:"github-token"`
	HTTPTimeout  string `mapstructure:"http-timeout"`

	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	CacheTTL       string `mapstructure:"cache-ttl"`

	SnapshotBackend   string `mapstructure:"snapshot-backend"`
	SnapshotDBConnect string `mapstructure:"snapshot-db-connect"`
	Track             bool   `mapstructure:"track"`

	MinDownloads      int `mapstructure:"min-downloads"`
	MinGroupSize      int `mapstructure:"min-group-size"`
	MaxGroupSize      int `mapstructure:"max-group-size"`
	AlternativesLimit int `mapstructure:"alternatives-limit"`
	CorpusSize        int `mapstructure:"corpus-size"`

	HealthThreshold int `mapstructure:"health-threshold"`

	ServeAddr string `mapstructure:"addr"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate converts the raw input into the final validated
// config, applying defaults where the input left gaps.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 1 and %d, got %d", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 0 || input.Precision > 6 {
		return fmt.Errorf("precision must be between 0 and 6, got %d", input.Precision)
	}
	cfg.Precision = input.Precision

	output := schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode %q: must be text, csv or json", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Width = input.Width
	cfg.UseColors = parseBoolish(input.Color, true)

	cfg.RegistryURL = defaultString(input.RegistryURL, DefaultRegistryURL)
	cfg.DownloadsURL = defaultString(input.DownloadsURL, DefaultDownloadsURL)
	cfg.GitHubURL = defaultString(input.GitHubURL, DefaultGitHubURL)
	cfg.OSVURL = defaultString(input.OSVURL, DefaultOSVURL)
	cfg.BundleURL = defaultString(input.BundleURL, DefaultBundleURL)
	cfg.GitHubToken = input.GitHubToken

	timeout, err := parseDurationDefault(input.HTTPTimeout, DefaultHTTPTimeout)
	if err != nil {
		return fmt.Errorf("invalid http-timeout: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cacheBackend := schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend %q: must be sqlite, mysql, postgresql or none", input.CacheBackend)
	}
	cfg.CacheBackend = cacheBackend
	cfg.CacheDBConnect = input.CacheDBConnect

	ttl, err := parseDurationDefault(input.CacheTTL, DefaultCacheTTL)
	if err != nil {
		return fmt.Errorf("invalid cache-ttl: %w", err)
	}
	cfg.CacheTTL = ttl

	// Snapshot tracking is opt-in; an empty backend disables it.
	if input.SnapshotBackend != "" {
		snapBackend := schema.DatabaseBackend(strings.ToLower(input.SnapshotBackend))
		if _, ok := schema.ValidDatabaseBackends[snapBackend]; !ok {
			return fmt.Errorf("invalid snapshot backend %q: must be sqlite, mysql, postgresql or none", input.SnapshotBackend)
		}
		cfg.SnapshotBackend = snapBackend
	}
	cfg.SnapshotDBConnect = input.SnapshotDBConnect
	cfg.Track = input.Track

	if input.MinDownloads < 0 {
		return fmt.Errorf("min-downloads must not be negative, got %d", input.MinDownloads)
	}
	cfg.MinDownloads = input.MinDownloads

	if input.MinGroupSize < 2 {
		return fmt.Errorf("min-group-size must be at least 2, got %d", input.MinGroupSize)
	}
	cfg.MinGroupSize = input.MinGroupSize

	if input.MaxGroupSize < input.MinGroupSize {
		return fmt.Errorf("max-group-size must be at least min-group-size, got %d", input.MaxGroupSize)
	}
	cfg.MaxGroupSize = input.MaxGroupSize

	if input.AlternativesLimit < 1 {
		return fmt.Errorf("alternatives-limit must be at least 1, got %d", input.AlternativesLimit)
	}
	cfg.AlternativesLimit = input.AlternativesLimit

	if input.CorpusSize < input.MinGroupSize {
		return fmt.Errorf("corpus-size must be at least min-group-size, got %d", input.CorpusSize)
	}
	cfg.CorpusSize = input.CorpusSize

	if input.HealthThreshold < 0 || input.HealthThreshold > 100 {
		return fmt.Errorf("health-threshold must be between 0 and 100, got %d", input.HealthThreshold)
	}
	cfg.HealthThreshold = input.HealthThreshold

	cfg.ServeAddr = defaultString(input.ServeAddr, DefaultServeAddr)

	return nil
}

// defaultString returns value, or fallback when value is empty.
func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// parseDurationDefault parses a duration string, returning fallback for
// empty input.
func parseDurationDefault(value string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", d)
	}
	return d, nil
}

// parseBoolish interprets yes/no style flag values.
func parseBoolish(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return fallback
	}
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
