package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so "30s"-style values parse from YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped standard-library duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ServerConfig holds the HTTP server settings. RateLimit is requests per
// second per API key; 0 disables limiting.
type ServerConfig struct {
	Port      int    `yaml:"port" validate:"gte=0,lte=65535"`
	Env       string `yaml:"env" validate:"omitempty,oneof=test development production"`
	RateLimit int    `yaml:"rate_limit" validate:"gte=0"`
}

// ScheduleConfig holds the schedule snapshot source settings. Exactly one of
// ProviderURL (bulk JSON endpoints) or GtfsSource (GTFS zip URL or local path)
// must be set.
type ScheduleConfig struct {
	ProviderURL     string   `yaml:"provider_url" validate:"omitempty,url"`
	GtfsSource      string   `yaml:"gtfs_source"`
	FetchTimeout    Duration `yaml:"fetch_timeout"`
	RefreshInterval Duration `yaml:"refresh_interval"`
	CachePath       string   `yaml:"cache_path"`
	WarmStart       bool     `yaml:"warm_start"`
}

// PlannerConfig holds the tunable search constants. Zero values mean "use the
// engine default"; the caps are empirically tuned, not derived.
type PlannerConfig struct {
	MaxCandidatesPerSide     int     `yaml:"max_candidates_per_side" validate:"gte=0"`
	MaxResults               int     `yaml:"max_results" validate:"gte=0"`
	MaxWalkingDistanceMeters float64 `yaml:"max_walking_distance_meters" validate:"gte=0"`
	TransferPenaltyMinutes   float64 `yaml:"transfer_penalty_minutes" validate:"gte=0"`
	WalkingWeight            float64 `yaml:"walking_weight" validate:"gte=0"`
}

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	APIKeys  []string       `yaml:"api_keys"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Planner  PlannerConfig  `yaml:"planner"`
}

const (
	defaultPort            = 4000
	defaultFetchTimeout    = 60 * time.Second
	defaultRefreshInterval = 24 * time.Hour
)

// Load reads configuration from an optional YAML file, applies environment
// variable overrides (a .env file is honored if present), fills defaults and
// validates the result.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return Config{}, fmt.Errorf("invalid server config: %w", err)
	}
	if err := v.Struct(cfg.Schedule); err != nil {
		return Config{}, fmt.Errorf("invalid schedule config: %w", err)
	}
	if err := v.Struct(cfg.Planner); err != nil {
		return Config{}, fmt.Errorf("invalid planner config: %w", err)
	}

	if cfg.Schedule.ProviderURL == "" && cfg.Schedule.GtfsSource == "" {
		return Config{}, fmt.Errorf("schedule source required: set schedule.provider_url or schedule.gtfs_source")
	}
	if cfg.Schedule.ProviderURL != "" && cfg.Schedule.GtfsSource != "" {
		return Config{}, fmt.Errorf("schedule.provider_url and schedule.gtfs_source are mutually exclusive")
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimit = limit
		}
	}
	if v := os.Getenv("PROVIDER_URL"); v != "" {
		cfg.Schedule.ProviderURL = v
	}
	if v := os.Getenv("GTFS_SOURCE"); v != "" {
		cfg.Schedule.GtfsSource = v
	}
	if v := os.Getenv("SCHEDULE_CACHE_PATH"); v != "" {
		cfg.Schedule.CachePath = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Schedule.FetchTimeout == 0 {
		cfg.Schedule.FetchTimeout = Duration(defaultFetchTimeout)
	}
	if cfg.Schedule.RefreshInterval == 0 {
		cfg.Schedule.RefreshInterval = Duration(defaultRefreshInterval)
	}
}
