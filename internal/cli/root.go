package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/foundyear/internal/logging"
	"github.com/ppiankov/foundyear/internal/model"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "v0.1.0-dev"

var (
	cfgFile string
	verbose bool
	noCache bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "foundyear",
	Short: "Foundyear - estimate company founding years from Wikipedia",
	Long: `Foundyear looks companies up on Wikipedia and estimates the year each one
was founded.

For every company it scans the article for four-digit years between 1600 and
1913 in three nested scopes: the whole article, sentences naming the company,
and those of them that say "founded" or "established". The narrowest scope
with a year wins and sets the confidence (0 to 3) of the guess.

The result is a heuristic, not a fact check.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of foundyear.`,
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "foundyear %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.foundyear/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	flags.BoolVar(&noCache, "no-cache", false, "disable the lookup cache")
	flags.String("backend", "api", "lookup backend (api, html)")
	flags.String("lang", "en", "Wikipedia language subdomain")
	flags.String("base-url", "", "wiki root URL (overrides --lang)")
	flags.String("segmenter", "punkt", "sentence segmenter (punkt, rules)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("log-file", "", "write logs to a rotating file instead of stderr")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("lookup.backend", flags.Lookup("backend"))
	_ = viper.BindPFlag("lookup.language", flags.Lookup("lang"))
	_ = viper.BindPFlag("lookup.base_url", flags.Lookup("base-url"))
	_ = viper.BindPFlag("extract.segmenter", flags.Lookup("segmenter"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("log.file", flags.Lookup("log-file"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".foundyear"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match FOUNDYEAR_* (FOUNDYEAR_HTTP_TIMEOUT=10s)
	viper.SetEnvPrefix("FOUNDYEAR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so that env variables are seen by Unmarshal
func setDefaults(cfg *model.Config) {
	viper.SetDefault("lookup.backend", cfg.Lookup.Backend)
	viper.SetDefault("lookup.language", cfg.Lookup.Language)
	viper.SetDefault("lookup.base_url", cfg.Lookup.BaseURL)

	viper.SetDefault("http.timeout", cfg.HTTP.Timeout)
	viper.SetDefault("http.user_agent", cfg.HTTP.UserAgent)
	viper.SetDefault("http.max_body_bytes", cfg.HTTP.MaxBodyBytes)
	viper.SetDefault("http.http_proxy", cfg.HTTP.HTTPProxy)
	viper.SetDefault("http.https_proxy", cfg.HTTP.HTTPSProxy)
	viper.SetDefault("http.no_proxy", cfg.HTTP.NoProxy)
	viper.SetDefault("http.respect_robots", cfg.HTTP.RespectRobots)

	viper.SetDefault("rate_limiting.requests_per_second", cfg.RateLimiting.RequestsPerSecond)
	viper.SetDefault("rate_limiting.burst_size", cfg.RateLimiting.BurstSize)

	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.memory_ttl", cfg.Cache.MemoryTTL)
	viper.SetDefault("cache.dir", cfg.Cache.Dir)
	viper.SetDefault("cache.disk_ttl", cfg.Cache.DiskTTL)
	viper.SetDefault("cache.search_ttl", cfg.Cache.SearchTTL)

	viper.SetDefault("extract.segmenter", cfg.Extract.Segmenter)
	viper.SetDefault("extract.min_year", cfg.Extract.MinYear)
	viper.SetDefault("extract.max_year", cfg.Extract.MaxYear)
	viper.SetDefault("extract.founding_keywords", cfg.Extract.FoundingKeywords)

	viper.SetDefault("input.encoding", cfg.Input.Encoding)

	viper.SetDefault("output.path", cfg.Output.Path)
	viper.SetDefault("output.legacy_lists", cfg.Output.LegacyLists)
	viper.SetDefault("output.echo", cfg.Output.Echo)

	viper.SetDefault("log.level", cfg.Log.Level)
	viper.SetDefault("log.format", cfg.Log.Format)
	viper.SetDefault("log.file", cfg.Log.File)
	viper.SetDefault("log.max_size_mb", cfg.Log.MaxSizeMB)
	viper.SetDefault("log.max_backups", cfg.Log.MaxBackups)

	viper.SetDefault("metrics.textfile", cfg.Metrics.Textfile)
}

// loadConfig merges defaults, config file, environment and flags into a
// validated configuration
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if noCache {
		cfg.Cache.Enabled = false
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the command logger; logs go to stderr unless a log file is set
func newLogger(cfg *model.Config, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	logger, closer, err := logging.New(cfg.Log, stderr)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logging: %w", err)
	}
	return logger, closer, nil
}
