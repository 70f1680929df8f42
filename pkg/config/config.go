// Package config provides configuration management for wpdb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Wiki: api_url, rest_url, site_url, project, user_agent, batch_size,
//     page_limit, request_delay, timeout
//   - Graph: sparql_url, chunk_size, timeout
//   - Geocoder: url, email, min_interval
//   - Sync: pageviews_start, pageviews_end, dedup_threshold
//   - Search: fuzzy_threshold, rerank_depth
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Sync.Categories, Sync.Limit, Sync.Force (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use WPDB_ prefix with underscores for nesting:
//
//	WPDB_DATABASE_HOST=localhost
//	WPDB_DATABASE_PORT=5432
//	WPDB_WIKI_API_URL=https://en.wikipedia.org/w/api.php
//	WPDB_LOG_LEVEL=info
//	WPDB_JOBS_NUMBER=8
package config

import (
	"runtime"
	"time"
)

// Config represents the complete wpdb configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Wiki contains encyclopedia API settings.
	Wiki WikiConfig `mapstructure:"wiki" yaml:"wiki"`

	// Graph contains knowledge-graph query service settings.
	Graph GraphConfig `mapstructure:"graph" yaml:"graph"`

	// Geocoder contains geocoding service settings.
	Geocoder GeocoderConfig `mapstructure:"geocoder" yaml:"geocoder"`

	// Sync contains settings specific to the sync command.
	Sync SyncConfig `mapstructure:"sync" yaml:"sync"`

	// Search contains ranking settings for fuzzy search.
	Search SearchConfig `mapstructure:"search" yaml:"search"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel
	// database-local operations (index builds). External API calls are
	// always sequential regardless of this value.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of records per batch for bulk lookups
	// and inserts. Person rows are wide (summary, metadata), so the default
	// is much smaller than for narrow key/value tables.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// WikiConfig contains encyclopedia API parameters.
type WikiConfig struct {
	// APIURL is the MediaWiki Action API endpoint.
	APIURL string `mapstructure:"api_url" yaml:"api_url"`

	// RestURL is the Wikimedia REST API root used for pageview metrics.
	RestURL string `mapstructure:"rest_url" yaml:"rest_url"`

	// SiteURL is the wiki site root used for rendered-page HTML fetches.
	SiteURL string `mapstructure:"site_url" yaml:"site_url"`

	// Project is the project domain used in pageview metric paths,
	// for example "en.wikipedia.org".
	Project string `mapstructure:"project" yaml:"project"`

	// UserAgent identifies wpdb to Wikimedia services. The services
	// require a descriptive agent with a contact reference.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`

	// BatchSize is the number of page IDs per batch details request.
	// The Action API caps prop queries at 50 titles for anonymous clients.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// PageLimit is the page size for paginated category listings.
	PageLimit int `mapstructure:"page_limit" yaml:"page_limit"`

	// RequestDelay is the fixed pause inserted after rate-sensitive calls
	// (listings, pageview fetches), on top of any retry backoff.
	RequestDelay time.Duration `mapstructure:"request_delay" yaml:"request_delay"`

	// Timeout is the per-request deadline for encyclopedia calls.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// GraphConfig contains knowledge-graph query service parameters.
type GraphConfig struct {
	// SPARQLURL is the SPARQL endpoint of the knowledge graph.
	SPARQLURL string `mapstructure:"sparql_url" yaml:"sparql_url"`

	// ChunkSize is the number of entity IDs per SPARQL VALUES batch.
	// Keeps queries under the service's size and time limits.
	ChunkSize int `mapstructure:"chunk_size" yaml:"chunk_size"`

	// Timeout is the per-request deadline for graph queries. Longer than
	// the encyclopedia timeout because structured queries are heavier.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// GeocoderConfig contains geocoding service parameters.
type GeocoderConfig struct {
	// URL is the geocoding service root.
	URL string `mapstructure:"url" yaml:"url"`

	// Email is sent with geocoding requests as a courtesy contact,
	// per the service's usage policy. Optional.
	Email string `mapstructure:"email" yaml:"email"`

	// MinInterval is the minimum spacing between geocoder calls.
	// The public service allows at most one request per second.
	MinInterval time.Duration `mapstructure:"min_interval" yaml:"min_interval"`
}

// SyncConfig contains settings specific to the sync command.
type SyncConfig struct {
	// PageviewsStart is the start of the fixed pageview window,
	// in YYYYMMDDHH form.
	PageviewsStart string `mapstructure:"pageviews_start" yaml:"pageviews_start"`

	// PageviewsEnd is the end of the fixed pageview window,
	// in YYYYMMDDHH form.
	PageviewsEnd string `mapstructure:"pageviews_end" yaml:"pageviews_end"`

	// DedupThreshold is the trigram similarity above which a candidate
	// is considered the same person as a stored record.
	DedupThreshold float64 `mapstructure:"dedup_threshold" yaml:"dedup_threshold"`

	// Categories is the list of category names to sync.
	// Empty slice means discover and sync all categories.
	// Runtime-only field - not in ToOptions().
	Categories []string `mapstructure:"categories" yaml:"categories"`

	// Limit caps the number of records ingested per category.
	// Zero means no cap. Runtime-only field - not in ToOptions().
	Limit int `mapstructure:"limit" yaml:"limit"`

	// Force reprocesses candidates that already have stored records.
	// Runtime-only field - not in ToOptions().
	Force bool `mapstructure:"force" yaml:"force"`
}

// SearchConfig contains ranking parameters for search.
type SearchConfig struct {
	// FuzzyThreshold is the low trigram similarity bound for fuzzy
	// candidate selection. It sits below Sync.DedupThreshold:
	// search needs recall, dedup needs precision.
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold" yaml:"fuzzy_threshold"`

	// RerankDepth is how many top fuzzy candidates get the additional
	// edit-distance ranking. Bounds the client-side cost.
	RerankDepth int `mapstructure:"rerank_depth" yaml:"rerank_depth"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "wikipeople",
			SSLMode:   "disable",
			BatchSize: 500,
		},
		Wiki: WikiConfig{
			APIURL:       "https://en.wikipedia.org/w/api.php",
			RestURL:      "https://wikimedia.org/api/rest_v1",
			SiteURL:      "https://en.wikipedia.org",
			Project:      "en.wikipedia.org",
			UserAgent:    "wpdb/1.0 (https://github.com/wikipeople/wpdb)",
			BatchSize:    50,
			PageLimit:    500,
			RequestDelay: 300 * time.Millisecond,
			Timeout:      15 * time.Second,
		},
		Graph: GraphConfig{
			SPARQLURL: "https://query.wikidata.org/sparql",
			ChunkSize: 50,
			Timeout:   60 * time.Second,
		},
		Geocoder: GeocoderConfig{
			URL:         "https://nominatim.openstreetmap.org",
			MinInterval: 1100 * time.Millisecond,
		},
		Sync: SyncConfig{
			PageviewsStart: "2015070100",
			PageviewsEnd:   "2025070100",
			DedupThreshold: 0.85,
		},
		Search: SearchConfig{
			FuzzyThreshold: 0.3,
			RerankDepth:    50,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
