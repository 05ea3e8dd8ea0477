// Package config loads the server configuration from a YAML file, an
// optional .env file and ROSTER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultListen       = ":8080"
	defaultDBPath       = "./data/attendance.db"
	defaultMirrorPath   = "./data/mirror.json"
	defaultTimezone     = "Europe/Warsaw"
	defaultPollInterval = 3 * time.Second
	minPollInterval     = time.Second
	defaultSessionTTL   = 24 * time.Hour
)

// DefaultGroups are the class groups offered when none are configured.
var DefaultGroups = []string{
	"NAUKA 1 PON/ŚR 15:45",
	"NAUKA 2 PON/ŚR 15:45",
	"NAUKA 3 PON/ŚR 19:00",
	"NAUKA 4 WT/CZW 15:45",
	"DOSKONALĄCY ŚREDNI PN/ŚR 17:15",
	"DOSKONALĄCY STARSI WT/CZW 19:00",
	"KONTYNUACJA NAUKI 1 PN/ŚR 16:30",
	"KONTYNUACJA NAUKI 2 WT/CZW 16:30",
	"DOSKONALĄCY MŁODSI 2 WT/CZW 18:00",
	"DOSKONALĄCY MŁODSI 1 WT/CZW 17:15",
}

// DatabaseConfig selects the group store backend.
type DatabaseConfig struct {
	// Driver is "sqlite" (default) or "postgres".
	Driver string `yaml:"driver"`
	// DSN is a file path for SQLite or a connection URL for Postgres.
	DSN string `yaml:"dsn"`
}

// RemoteConfig points at another server's group store. When URL is set the
// server syncs through it instead of opening a database.
type RemoteConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// AuthConfig holds the single operator login.
type AuthConfig struct {
	Username string `yaml:"username"`
	// PasswordHash is a bcrypt hash (see "rosterctl hash-password").
	PasswordHash string `yaml:"password_hash"`
	// Password is hashed at startup when PasswordHash is empty. Prefer PasswordHash.
	Password   string        `yaml:"password"`
	JWTSecret  string        `yaml:"jwt_secret"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// FeaturesConfig switches optional roster features.
type FeaturesConfig struct {
	Notes          bool `yaml:"notes"`
	TimedResults   bool `yaml:"timed_results"`
	RecurringDates bool `yaml:"recurring_dates"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	Database DatabaseConfig `yaml:"database"`
	Remote   RemoteConfig   `yaml:"remote"`

	// SyncToken, if set, exposes GroupStoreService to other servers that
	// present it as a bearer token.
	SyncToken string `yaml:"sync_token"`

	// MirrorPath is the local JSON mirror of all groups. Empty disables it.
	MirrorPath string `yaml:"mirror_path"`

	// StaticPath is an optional directory of browser assets to serve at /.
	StaticPath string `yaml:"static_path"`

	PollInterval time.Duration `yaml:"poll_interval"`

	// Timezone is the IANA zone that decides what "today" is.
	Timezone string `yaml:"timezone"`

	Groups   []string       `yaml:"groups"`
	Auth     AuthConfig     `yaml:"auth"`
	Features FeaturesConfig `yaml:"features"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:       defaultListen,
		Database:     DatabaseConfig{Driver: "sqlite", DSN: defaultDBPath},
		MirrorPath:   defaultMirrorPath,
		PollInterval: defaultPollInterval,
		Timezone:     defaultTimezone,
		Groups:       append([]string(nil), DefaultGroups...),
		Auth:         AuthConfig{Username: "admin", SessionTTL: defaultSessionTTL},
		Features:     FeaturesConfig{Notes: true, TimedResults: true, RecurringDates: true},
	}
}

// Normalize fills in missing/zero values with defaults so that partially
// filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.DSN == "" && c.Database.Driver == "sqlite" {
		c.Database.DSN = defaultDBPath
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.PollInterval < minPollInterval {
		c.PollInterval = minPollInterval
	}
	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}
	if c.Auth.SessionTTL <= 0 {
		c.Auth.SessionTTL = defaultSessionTTL
	}

	groups := make([]string, 0, len(c.Groups))
	seen := make(map[string]bool, len(c.Groups))
	for _, g := range c.Groups {
		g = strings.TrimSpace(g)
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		groups = append(groups, g)
	}
	if len(groups) == 0 {
		groups = append(groups, DefaultGroups...)
	}
	c.Groups = groups
}

// Validate reports configuration errors that would prevent the server from starting.
func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.Database.Driver))
	}
	if c.Remote.URL == "" && c.Database.DSN == "" {
		errs = append(errs, errors.New("database dsn is required"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if c.Auth.Username == "" {
		errs = append(errs, errors.New("auth username is required"))
	}
	if c.Auth.PasswordHash == "" && c.Auth.Password == "" {
		errs = append(errs, errors.New("auth password_hash or password is required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth jwt_secret is required"))
	}
	return errors.Join(errs...)
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load reads the YAML file at path on top of the defaults, then applies a
// .env file (if dotEnvPath exists) and ROSTER_* environment overrides.
// An empty or missing path yields the defaults plus overrides.
func Load(path, dotEnvPath string) (*Config, error) {
	if dotEnvPath != "" {
		if err := godotenv.Load(dotEnvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", dotEnvPath, err)
		}
	}

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Listen = getEnv("ROSTER_LISTEN", c.Listen)
	c.Database.Driver = getEnv("ROSTER_DB_DRIVER", c.Database.Driver)
	c.Database.DSN = getEnv("ROSTER_DB_DSN", c.Database.DSN)
	c.Remote.URL = getEnv("ROSTER_REMOTE_URL", c.Remote.URL)
	c.Remote.Token = getEnv("ROSTER_REMOTE_TOKEN", c.Remote.Token)
	c.SyncToken = getEnv("ROSTER_SYNC_TOKEN", c.SyncToken)
	c.MirrorPath = getEnv("ROSTER_MIRROR_PATH", c.MirrorPath)
	c.StaticPath = getEnv("ROSTER_STATIC_PATH", c.StaticPath)
	c.Timezone = getEnv("ROSTER_TIMEZONE", c.Timezone)
	c.Auth.Username = getEnv("ROSTER_AUTH_USERNAME", c.Auth.Username)
	c.Auth.PasswordHash = getEnv("ROSTER_AUTH_PASSWORD_HASH", c.Auth.PasswordHash)
	c.Auth.Password = getEnv("ROSTER_AUTH_PASSWORD", c.Auth.Password)
	c.Auth.JWTSecret = getEnv("ROSTER_JWT_SECRET", c.Auth.JWTSecret)

	if v := os.Getenv("ROSTER_GROUPS"); v != "" {
		c.Groups = strings.Split(v, ";")
	}
	if v := os.Getenv("ROSTER_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ROSTER_POLL_INTERVAL: %w", err)
		}
		c.PollInterval = d
	}
	if v := os.Getenv("ROSTER_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ROSTER_SESSION_TTL: %w", err)
		}
		c.Auth.SessionTTL = d
	}

	flags := map[string]*bool{
		"ROSTER_FEATURE_NOTES":           &c.Features.Notes,
		"ROSTER_FEATURE_TIMED_RESULTS":   &c.Features.TimedResults,
		"ROSTER_FEATURE_RECURRING_DATES": &c.Features.RecurringDates,
	}
	for key, dst := range flags {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = b
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
