/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wikipeople/wpdb/internal/iofs"
	"github.com/wikipeople/wpdb/internal/iologger"
	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/wpdb"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", wpdb.Version, wpdb.Build),
		Use:     "wpdb",
		Short:   "WPDB manages the lifecycle of the wikipeople database",
		Long: `WPDB is a CLI tool for managing the complete lifecycle of the
wikipeople PostgreSQL database: biographical records of notable people
collected from a Wikipedia language edition and enriched with Wikidata
facts, pageview counts and birthplace coordinates.

Features:
  - Schema Management: create and migrate tables and extensions
  - Category Discovery: find people categories worth ingesting
  - Data Sync: ingest, enrich and deduplicate person records
  - Optimization: popularity ratings, search and spatial indexes
  - Search: fuzzy, full-text, geographic and metadata queries

Configuration precedence (highest to lowest):
  1. CLI flags (--force, --limit, etc.)
  2. Environment variables (WPDB_*)
  3. Config file (~/.config/wpdb/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (database.host → WPDB_DATABASE_HOST).

  Examples:
    WPDB_DATABASE_HOST              PostgreSQL host
    WPDB_DATABASE_PASSWORD          PostgreSQL password
    WPDB_WIKI_API_URL               MediaWiki Action API endpoint
    WPDB_LOG_LEVEL                  Log level (debug/info/warn/error)

  See 'go doc github.com/wikipeople/wpdb/pkg/config' for complete list.`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "wpdb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for wpdb")

	rootCmd.AddCommand(getCreateCmd())
	rootCmd.AddCommand(getMigrateCmd())
	rootCmd.AddCommand(getDiscoverCmd())
	rootCmd.AddCommand(getSyncCmd())
	rootCmd.AddCommand(getOptimizeCmd())
	rootCmd.AddCommand(getSearchCmd())
	rootCmd.AddCommand(getClearCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureVocabFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, appending so the
	// bootstrap entries above survive
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are
	// allowed. These match the fields included in config.ToOptions() -
	// i.e., persistent configuration that can be stored in config.yaml.
	v.SetEnvPrefix("WPDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.database", "DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")
	v.BindEnv("database.batch_size", "DATABASE_BATCH_SIZE")

	// Encyclopedia configuration
	v.BindEnv("wiki.api_url", "WIKI_API_URL")
	v.BindEnv("wiki.rest_url", "WIKI_REST_URL")
	v.BindEnv("wiki.site_url", "WIKI_SITE_URL")
	v.BindEnv("wiki.project", "WIKI_PROJECT")
	v.BindEnv("wiki.user_agent", "WIKI_USER_AGENT")
	v.BindEnv("wiki.batch_size", "WIKI_BATCH_SIZE")
	v.BindEnv("wiki.page_limit", "WIKI_PAGE_LIMIT")
	v.BindEnv("wiki.request_delay", "WIKI_REQUEST_DELAY")
	v.BindEnv("wiki.timeout", "WIKI_TIMEOUT")

	// Knowledge graph configuration
	v.BindEnv("graph.sparql_url", "GRAPH_SPARQL_URL")
	v.BindEnv("graph.chunk_size", "GRAPH_CHUNK_SIZE")
	v.BindEnv("graph.timeout", "GRAPH_TIMEOUT")

	// Geocoder configuration
	v.BindEnv("geocoder.url", "GEOCODER_URL")
	v.BindEnv("geocoder.email", "GEOCODER_EMAIL")
	v.BindEnv("geocoder.min_interval", "GEOCODER_MIN_INTERVAL")

	// Sync configuration
	v.BindEnv("sync.pageviews_start", "SYNC_PAGEVIEWS_START")
	v.BindEnv("sync.pageviews_end", "SYNC_PAGEVIEWS_END")
	v.BindEnv("sync.dedup_threshold", "SYNC_DEDUP_THRESHOLD")

	// Search configuration
	v.BindEnv("search.fuzzy_threshold", "SEARCH_FUZZY_THRESHOLD")
	v.BindEnv("search.rerank_depth", "SEARCH_RERANK_DEPTH")

	// Log configuration
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "JOBS_NUMBER")

	v.AutomaticEnv()
}
