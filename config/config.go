// Package config loads [client] settings from a YAML file, a .env file and
// the environment.
//
// Environment variables take precedence over the file and use the
// APICLIENT_ prefix with dots replaced by underscores, so throttle.rps is
// read from APICLIENT_THROTTLE_RPS.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/adamwoolhether/apiclient/client"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by [Load].
const EnvPrefix = "APICLIENT"

// Config holds the settings of the default HTTP transport.
type Config struct {
	BaseURL           string   `mapstructure:"base_url" validate:"omitempty,url"`
	UserAgent         string   `mapstructure:"user_agent"`
	NoFollowRedirects bool     `mapstructure:"no_follow_redirects"`
	JSONNumber        bool     `mapstructure:"json_number"`
	Throttle          Throttle `mapstructure:"throttle"`
}

// Throttle enables rate limiting when RPS and Burst are both set.
type Throttle struct {
	RPS   int `mapstructure:"rps" validate:"required_with=Burst,gte=0"`
	Burst int `mapstructure:"burst" validate:"required_with=RPS,gte=0"`
}

// Enabled reports whether rate limiting is configured.
func (t Throttle) Enabled() bool {
	return t.RPS > 0 && t.Burst > 0
}

// Options converts the configuration into client options.
func (c Config) Options() []client.Option {
	var opts []client.Option

	if c.BaseURL != "" {
		opts = append(opts, client.WithBaseURL(c.BaseURL))
	}
	if c.UserAgent != "" {
		opts = append(opts, client.WithUserAgent(c.UserAgent))
	}
	if c.NoFollowRedirects {
		opts = append(opts, client.WithNoFollowRedirects())
	}
	if c.JSONNumber {
		opts = append(opts, client.WithJSONNumber())
	}
	if c.Throttle.Enabled() {
		opts = append(opts, client.WithThrottle(c.Throttle.RPS, c.Throttle.Burst))
	}

	return opts
}

// LoaderOption is a functional option for [Load].
type LoaderOption func(*loaderOpts)

type loaderOpts struct {
	configFile string
	envFile    string
}

// WithConfigFile reads settings from the YAML file at path.
func WithConfigFile(path string) LoaderOption {
	return func(o *loaderOpts) { o.configFile = path }
}

// WithEnvFile loads the .env file at path into the process environment
// before reading it. Variables already set are not overwritten.
func WithEnvFile(path string) LoaderOption {
	return func(o *loaderOpts) { o.envFile = path }
}

// keys lists every setting so viper binds it to the environment.
var keys = []string{
	"base_url",
	"user_agent",
	"no_follow_redirects",
	"json_number",
	"throttle.rps",
	"throttle.burst",
}

// Load reads and validates the configuration.
func Load(optFns ...LoaderOption) (Config, error) {
	var opts loaderOpts
	for _, opt := range optFns {
		opt(&opts)
	}

	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil {
			return Config{}, fmt.Errorf("loading env file %s: %w", opts.envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	if opts.configFile != "" {
		if _, err := os.Stat(opts.configFile); err != nil {
			return Config{}, fmt.Errorf("config file: %w", err)
		}

		v.SetConfigFile(opts.configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", opts.configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := client.Validate(cfg); err != nil {
		var fields client.FieldErrors
		if errors.As(err, &fields) {
			return Config{}, fmt.Errorf("invalid config: %w", fields)
		}
		return Config{}, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
