package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/optimade/optimade-go/pkg/constants"
	"github.com/optimade/optimade-go/pkg/errors"
)

// EnvPrefix prefixes every environment variable read into Config.
const EnvPrefix = "OPTIMADE"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Server configuration
	Host         string
	Port         int
	BaseURL      string
	RootPath     string
	PageLimit    int
	PageLimitMax int
	RateLimit    int
	CORSOrigins  []string

	// Query parameters
	ValidateQueryParameters bool
	ProviderPrefix          string

	// Provider list
	ProviderListURLs     []string
	ProviderCacheTTL     time.Duration
	ProviderFetchTimeout time.Duration
	UseBundledProviders  bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (OPTIMADE_*)
// 3. .env files
// 4. Config file (./.optimade.yaml or ~/.optimade.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(os.Getenv(EnvPrefix + "_CONFIG"))
}

func loadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".optimade")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "reading "+configFile, err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Host:         v.GetString("host"),
		Port:         v.GetInt("port"),
		BaseURL:      v.GetString("base_url"),
		RootPath:     v.GetString("root_path"),
		PageLimit:    v.GetInt("page_limit"),
		PageLimitMax: v.GetInt("page_limit_max"),
		RateLimit:    v.GetInt("rate_limit"),
		CORSOrigins:  splitList(v.GetStringSlice("cors_origins")),

		ValidateQueryParameters: v.GetBool("validate_query_parameters"),
		ProviderPrefix:          v.GetString("provider_prefix"),

		ProviderListURLs:     splitList(v.GetStringSlice("provider_list_urls")),
		ProviderCacheTTL:     v.GetDuration("provider_cache_ttl"),
		ProviderFetchTimeout: v.GetDuration("provider_fetch_timeout"),
		UseBundledProviders:  v.GetBool("use_bundled_providers"),

		// LOG_LEVEL stays empty unless set so the flag precedence in NewLogger applies
		LogLevel:  getEnvOrDefault("LOG_LEVEL", v.GetString("log_level")),
		LogFormat: getEnvOrDefault("LOG_FORMAT", v.GetString("log_format")),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", v.GetString("log_output")),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "localhost")
	v.SetDefault("port", 5000)
	v.SetDefault("root_path", constants.DefaultRootPath)
	v.SetDefault("page_limit", constants.DefaultPageLimit)
	v.SetDefault("page_limit_max", constants.MaxPageLimit)
	v.SetDefault("rate_limit", constants.DefaultRateLimit)
	v.SetDefault("validate_query_parameters", false)
	v.SetDefault("provider_prefix", constants.DefaultProviderPrefix)
	v.SetDefault("provider_list_urls", constants.ProviderListURLs())
	v.SetDefault("provider_cache_ttl", constants.ProviderCacheTTL)
	v.SetDefault("provider_fetch_timeout", constants.ProviderFetchTimeout)
	v.SetDefault("use_bundled_providers", false)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.PageLimit < 0 {
		return errors.NewConfigError("page_limit", "must not be negative", nil)
	}
	if c.PageLimitMax < c.PageLimit {
		return errors.NewConfigError("page_limit_max", "must be at least page_limit", nil)
	}
	if c.ProviderFetchTimeout < 0 {
		return errors.NewConfigError("provider_fetch_timeout", "must not be negative", nil)
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags so flag values take
// precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local does not override values already set by .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// splitList accepts both YAML lists and comma-separated environment values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
