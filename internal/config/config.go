// Package config loads the process configuration of the sitemode binary.
//
// Values come from a YAML file, SITEMODE_* environment variables and
// command-line flags bound by the caller, in increasing priority. Nested
// keys map to environment variables with dots replaced by underscores:
// site.debug_response_file is SITEMODE_SITE_DEBUG_RESPONSE_FILE.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/map-framework/addon-mode-site/pkg/db"
	"github.com/map-framework/addon-mode-site/pkg/logger"
	"github.com/map-framework/addon-mode-site/pkg/page"
	"github.com/map-framework/addon-mode-site/pkg/redis"
	"github.com/map-framework/addon-mode-site/pkg/sitemode"
	"github.com/map-framework/addon-mode-site/pkg/storage"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SITEMODE"

// Session store backends.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// ErrInvalid is returned when the loaded configuration cannot be used.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the complete process configuration.
type Config struct {
	Server    ServerConfig        `mapstructure:"server" yaml:"server"`
	Logger    logger.Config       `mapstructure:"logger" yaml:"logger"`
	Sentry    logger.SentryConfig `mapstructure:"sentry" yaml:"sentry"`
	Session   SessionConfig       `mapstructure:"session" yaml:"session"`
	Database  db.Config           `mapstructure:"database" yaml:"database"`
	Redis     redis.Config        `mapstructure:"redis" yaml:"redis"`
	Storage   storage.Config      `mapstructure:"storage" yaml:"storage"`
	Site      SiteConfig          `mapstructure:"site" yaml:"site"`
	Templates TemplatesConfig     `mapstructure:"templates" yaml:"templates"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address" yaml:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	StaticDir       string        `mapstructure:"static_dir" yaml:"static_dir"`
}

type SessionConfig struct {
	// Store is memory, redis or postgres.
	Store      string `mapstructure:"store" yaml:"store"`
	CookieName string `mapstructure:"cookie_name" yaml:"cookie_name"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Secure     bool   `mapstructure:"secure" yaml:"secure"`

	// PurgeSchedule is the cron schedule of the expired session purge.
	// It only runs with the postgres store.
	PurgeSchedule string `mapstructure:"purge_schedule" yaml:"purge_schedule"`
}

// SiteConfig is the site mode group.
type SiteConfig struct {
	sitemode.Config `mapstructure:",squash" yaml:",inline"`

	// Prefix mounts the site pages under a path.
	Prefix string `mapstructure:"prefix" yaml:"prefix"`

	// XMLView answers ?xml=true with the response document.
	XMLView bool `mapstructure:"xml_view" yaml:"xml_view"`

	// DebugDir is where the last response is written. Empty means the
	// system temp dir.
	DebugDir string `mapstructure:"debug_dir" yaml:"debug_dir"`

	// DebugStorageKey uploads the last response to object storage instead
	// of the local file when storage is configured.
	DebugStorageKey string `mapstructure:"debug_storage_key" yaml:"debug_storage_key"`
}

type TemplatesConfig struct {
	// Dir holds area templates. Empty means the templates embedded in the binary.
	Dir      string        `mapstructure:"dir" yaml:"dir"`
	Pattern  string        `mapstructure:"pattern" yaml:"pattern"`
	Partials []string      `mapstructure:"partials" yaml:"partials"`
	Watch    bool          `mapstructure:"watch" yaml:"watch"`
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// SetDefaults registers every key with its default value. Keys must be
// known to viper for environment overrides to apply.
func SetDefaults(v *viper.Viper) {
	dbDefaults := db.DefaultConfig("")
	redisDefaults := redis.DefaultConfig("")

	defaults := map[string]any{
		"server.address":          ":8080",
		"server.shutdown_timeout": 30 * time.Second,
		"server.static_dir":       "",

		"logger.level":  "info",
		"logger.format": "json",

		"sentry.dsn":         "",
		"sentry.environment": "",
		"sentry.only_errors": false,

		"session.store":          StoreMemory,
		"session.cookie_name":    "__sid",
		"session.max_age":        86400,
		"session.secure":         false,
		"session.purge_schedule": "*/15 * * * *",

		"database.url":                 "",
		"database.migrations_table":    dbDefaults.MigrationsTable,
		"database.max_conns":           dbDefaults.MaxConns,
		"database.min_conns":           dbDefaults.MinConns,
		"database.health_check_period": dbDefaults.HealthCheckPeriod,
		"database.max_conn_idle_time":  dbDefaults.MaxConnIdleTime,
		"database.max_conn_lifetime":   dbDefaults.MaxConnLifetime,
		"database.retry_attempts":      dbDefaults.RetryAttempts,
		"database.retry_interval":      dbDefaults.RetryInterval,

		"redis.url":            "",
		"redis.pool_size":      redisDefaults.PoolSize,
		"redis.min_idle_conns": redisDefaults.MinIdleConns,
		"redis.dial_timeout":   redisDefaults.DialTimeout,
		"redis.read_timeout":   redisDefaults.ReadTimeout,
		"redis.write_timeout":  redisDefaults.WriteTimeout,
		"redis.retry_attempts": redisDefaults.RetryAttempts,
		"redis.retry_interval": redisDefaults.RetryInterval,

		"storage.bucket":      "",
		"storage.access_key":  "",
		"storage.secret_key":  "",
		"storage.endpoint":    "",
		"storage.region":      storage.DefaultRegion,
		"storage.default_acl": "",
		"storage.path_style":  false,

		"site.mode":                  sitemode.DefaultMode,
		"site.session_into_response": []string{},
		"site.debug_response_file":   false,
		"site.prefix":                "",
		"site.xml_view":              false,
		"site.debug_dir":             "",
		"site.debug_storage_key":     "",

		"templates.dir":       "",
		"templates.pattern":   page.DefaultPattern,
		"templates.partials":  []string{},
		"templates.watch":     false,
		"templates.cache_ttl": time.Duration(0),
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}

// New returns a viper instance with defaults and environment overrides
// enabled. When file is set it is read as YAML.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}
	return v, nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch c.Session.Store {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("%w: session store redis needs redis.url", ErrInvalid)
		}
	case StorePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("%w: session store postgres needs database.url", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown session store %q", ErrInvalid, c.Session.Store)
	}

	if c.Site.DebugStorageKey != "" && !c.Storage.Enabled() {
		return fmt.Errorf("%w: site.debug_storage_key needs storage.bucket", ErrInvalid)
	}
	if !strings.Contains(c.Templates.Pattern, "{page}") {
		return fmt.Errorf("%w: templates.pattern must contain {page}", ErrInvalid)
	}
	if c.Templates.Watch && c.Templates.Dir == "" {
		return fmt.Errorf("%w: templates.watch needs templates.dir", ErrInvalid)
	}
	if slices.Contains(c.Site.SessionIntoResponse, "") {
		return fmt.Errorf("%w: site.session_into_response has an empty group", ErrInvalid)
	}
	return nil
}

// YAML renders the effective configuration with connection passwords masked.
func (c *Config) YAML() ([]byte, error) {
	out := *c
	out.Database.URL = redactURL(c.Database.URL)
	out.Redis.URL = redactURL(c.Redis.URL)
	if out.Sentry.DSN != "" {
		out.Sentry.DSN = redactURL(c.Sentry.DSN)
	}
	return yaml.Marshal(&out)
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	} else {
		u.User = url.User("xxxxx")
	}
	return u.String()
}
