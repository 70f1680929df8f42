package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Sync.Categories, Sync.Limit,
// Sync.Force).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	var f float64
	var d time.Duration

	s = c.Database.Host
	if s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	i = c.Database.Port
	if i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	s = c.Database.User
	if s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	s = c.Database.Password
	if s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	s = c.Database.Database
	if s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	s = c.Database.SSLMode
	if s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}
	i = c.Database.BatchSize
	if i > 0 {
		res = append(res, OptDatabaseBatchSize(i))
	}

	s = c.Wiki.APIURL
	if s != "" {
		res = append(res, OptWikiAPIURL(s))
	}
	s = c.Wiki.RestURL
	if s != "" {
		res = append(res, OptWikiRestURL(s))
	}
	s = c.Wiki.SiteURL
	if s != "" {
		res = append(res, OptWikiSiteURL(s))
	}
	s = c.Wiki.Project
	if s != "" {
		res = append(res, OptWikiProject(s))
	}
	s = c.Wiki.UserAgent
	if s != "" {
		res = append(res, OptWikiUserAgent(s))
	}
	i = c.Wiki.BatchSize
	if i > 0 {
		res = append(res, OptWikiBatchSize(i))
	}
	i = c.Wiki.PageLimit
	if i > 0 {
		res = append(res, OptWikiPageLimit(i))
	}
	d = c.Wiki.RequestDelay
	if d > 0 {
		res = append(res, OptWikiRequestDelay(d))
	}
	d = c.Wiki.Timeout
	if d > 0 {
		res = append(res, OptWikiTimeout(d))
	}

	s = c.Graph.SPARQLURL
	if s != "" {
		res = append(res, OptGraphSPARQLURL(s))
	}
	i = c.Graph.ChunkSize
	if i > 0 {
		res = append(res, OptGraphChunkSize(i))
	}
	d = c.Graph.Timeout
	if d > 0 {
		res = append(res, OptGraphTimeout(d))
	}

	s = c.Geocoder.URL
	if s != "" {
		res = append(res, OptGeocoderURL(s))
	}
	s = c.Geocoder.Email
	if s != "" {
		res = append(res, OptGeocoderEmail(s))
	}
	d = c.Geocoder.MinInterval
	if d > 0 {
		res = append(res, OptGeocoderMinInterval(d))
	}

	s = c.Sync.PageviewsStart
	if s != "" {
		res = append(res, OptSyncPageviewsStart(s))
	}
	s = c.Sync.PageviewsEnd
	if s != "" {
		res = append(res, OptSyncPageviewsEnd(s))
	}
	f = c.Sync.DedupThreshold
	if f > 0 {
		res = append(res, OptSyncDedupThreshold(f))
	}

	f = c.Search.FuzzyThreshold
	if f > 0 {
		res = append(res, OptSearchFuzzyThreshold(f))
	}
	i = c.Search.RerankDepth
	if i > 0 {
		res = append(res, OptSearchRerankDepth(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidDuration(name string, d time.Duration) bool {
	res := d > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive duration, ignoring %s", name, d)
	}
	return res
}

func isValidRatio(name string, f float64) bool {
	res := f > 0 && f <= 1
	if !res {
		gn.Warn("<em>%s</em> has to be in (0, 1], ignoring %f", name, f)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	} else {
		gn.Warn(
			"<em>%s</em> does not support '%s' as a value. "+
				"Valid values are: \n%s\nIgnoring...",
			[]string{name, val, strings.Join(lines, "\n")},
		)
		return false
	}
}
