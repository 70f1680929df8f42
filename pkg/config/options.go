package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of records per batch for bulk
// lookups and inserts.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptWikiAPIURL sets the MediaWiki Action API endpoint.
func OptWikiAPIURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Wiki API URL", s) {
			c.Wiki.APIURL = s
		}
	}
}

// OptWikiRestURL sets the Wikimedia REST API root.
func OptWikiRestURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Wiki REST URL", s) {
			c.Wiki.RestURL = s
		}
	}
}

// OptWikiSiteURL sets the wiki site root for rendered-page fetches.
func OptWikiSiteURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Wiki Site URL", s) {
			c.Wiki.SiteURL = s
		}
	}
}

// OptWikiProject sets the project domain used in pageview metric paths.
func OptWikiProject(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Wiki Project", s) {
			c.Wiki.Project = s
		}
	}
}

// OptWikiUserAgent sets the User-Agent header for Wikimedia requests.
func OptWikiUserAgent(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Wiki User-Agent", s) {
			c.Wiki.UserAgent = s
		}
	}
}

// OptWikiBatchSize sets the number of page IDs per details request.
func OptWikiBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Wiki Batch Size", i) {
			c.Wiki.BatchSize = i
		}
	}
}

// OptWikiPageLimit sets the page size for category listings.
func OptWikiPageLimit(i int) Option {
	return func(c *Config) {
		if isValidInt("Wiki Page Limit", i) {
			c.Wiki.PageLimit = i
		}
	}
}

// OptWikiRequestDelay sets the pause after rate-sensitive calls.
func OptWikiRequestDelay(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Wiki Request Delay", d) {
			c.Wiki.RequestDelay = d
		}
	}
}

// OptWikiTimeout sets the per-request deadline for encyclopedia calls.
func OptWikiTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Wiki Timeout", d) {
			c.Wiki.Timeout = d
		}
	}
}

// OptGraphSPARQLURL sets the knowledge-graph SPARQL endpoint.
func OptGraphSPARQLURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Graph SPARQL URL", s) {
			c.Graph.SPARQLURL = s
		}
	}
}

// OptGraphChunkSize sets the number of entity IDs per SPARQL batch.
func OptGraphChunkSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Graph Chunk Size", i) {
			c.Graph.ChunkSize = i
		}
	}
}

// OptGraphTimeout sets the per-request deadline for graph queries.
func OptGraphTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Graph Timeout", d) {
			c.Graph.Timeout = d
		}
	}
}

// OptGeocoderURL sets the geocoding service root.
func OptGeocoderURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Geocoder URL", s) {
			c.Geocoder.URL = s
		}
	}
}

// OptGeocoderEmail sets the courtesy contact for geocoding requests.
func OptGeocoderEmail(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Geocoder Email", s) {
			c.Geocoder.Email = s
		}
	}
}

// OptGeocoderMinInterval sets the minimum spacing between geocoder calls.
func OptGeocoderMinInterval(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Geocoder Min Interval", d) {
			c.Geocoder.MinInterval = d
		}
	}
}

// OptSyncPageviewsStart sets the start of the pageview window (YYYYMMDDHH).
func OptSyncPageviewsStart(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Pageviews Start", s) {
			c.Sync.PageviewsStart = s
		}
	}
}

// OptSyncPageviewsEnd sets the end of the pageview window (YYYYMMDDHH).
func OptSyncPageviewsEnd(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Pageviews End", s) {
			c.Sync.PageviewsEnd = s
		}
	}
}

// OptSyncDedupThreshold sets the trigram similarity for deduplication.
func OptSyncDedupThreshold(f float64) Option {
	return func(c *Config) {
		if isValidRatio("Dedup Threshold", f) {
			c.Sync.DedupThreshold = f
		}
	}
}

// OptSyncCategories sets the list of category names to sync.
// Empty slice means discover and sync all categories.
// Runtime-only field - not in ToOptions().
func OptSyncCategories(ss []string) Option {
	return func(c *Config) {
		if len(ss) > 0 {
			c.Sync.Categories = ss
		}
	}
}

// OptSyncLimit caps the number of records ingested per category.
// Runtime-only field - not in ToOptions().
func OptSyncLimit(i int) Option {
	return func(c *Config) {
		if isValidInt("Sync Limit", i) {
			c.Sync.Limit = i
		}
	}
}

// OptSyncForce enables reprocessing of already-stored candidates.
// Runtime-only field - not in ToOptions().
func OptSyncForce(b bool) Option {
	return func(c *Config) {
		c.Sync.Force = b
	}
}

// OptSearchFuzzyThreshold sets the trigram bound for fuzzy search.
func OptSearchFuzzyThreshold(f float64) Option {
	return func(c *Config) {
		if isValidRatio("Fuzzy Threshold", f) {
			c.Search.FuzzyThreshold = f
		}
	}
}

// OptSearchRerankDepth sets how many top candidates get edit-distance
// re-ranking.
func OptSearchRerankDepth(i int) Option {
	return func(c *Config) {
		if isValidInt("Rerank Depth", i) {
			c.Search.RerankDepth = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel
// database-local operations. Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
