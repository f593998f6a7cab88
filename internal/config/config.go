package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

// Config holds all runtime configuration values.  Each field (or nested
// section) corresponds to one or more environment variables.
type Config struct {
	Env             string        // application environment (e.g. "dev", "prod")
	Port            string        // HTTP port to listen on
	APIPrefix       string        // prefix shared by every API route
	CORSOrigins     []string      // allowed origins; "*" allows all
	ShutdownTimeout time.Duration // upper bound for graceful shutdown

	Store     StoreConfig
	Log       LogConfig
	Admin     AdminConfig
	Events    EventsConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

// StoreConfig selects and parameterizes the document store backend.
type StoreConfig struct {
	Driver   string // mongo | mysql | memory
	MongoURL string // mongodb connection string
	DBName   string // database name (mongo and mysql)
	DBUser   string // mysql user
	DBPass   string // mysql password (optional)
	DBHost   string // mysql host
	DBPort   string // mysql port
}

// LogConfig controls the slog logger and its optional rotated file output.
type LogConfig struct {
	Level      string
	Format     string // json | text
	File       string // empty disables file output
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// AdminConfig guards the admin listing when JWTSecret is non-empty.
type AdminConfig struct {
	JWTSecret   string
	TokenTTLMin int
}

const defaultAdminTTLMin = 60

// TokenTTL is TokenTTLMin as a duration.
func (a AdminConfig) TokenTTL() time.Duration { return time.Duration(a.TokenTTLMin) * time.Minute }

// AdminTokenTTL reads ADMIN_TOKEN_TTL_MIN on its own, for tools that do not
// load the full server configuration. Values below one minute fall back to
// the default.
func AdminTokenTTL() time.Duration {
	n := envInt("ADMIN_TOKEN_TTL_MIN", defaultAdminTTLMin)
	if n < 1 {
		n = defaultAdminTTLMin
	}
	return AdminConfig{TokenTTLMin: n}.TokenTTL()
}

// Guarded reports whether admin routes require a token.
func (a AdminConfig) Guarded() bool { return a.JWTSecret != "" }

// EventsConfig configures contact submission events over RabbitMQ.
type EventsConfig struct {
	URL     string // amqp url; empty disables events
	Queue   string
	LogPath string // file the consumer appends to
}

// Enabled reports whether a broker URL was configured.
func (e EventsConfig) Enabled() bool { return e.URL != "" }

// Load reads configuration values from environment variables and returns a
// Config.  Variables required by the selected store driver are enforced and
// reported together.
func Load() (Config, error) {
	cfg := Config{
		Env:             getenv("APP_ENV", "dev"),
		Port:            getenv("APP_PORT", "8001"),
		APIPrefix:       normalizePrefix(getenv("API_PREFIX", "/api")),
		CORSOrigins:     parseList(getenv("CORS_ORIGINS", "*")),
		ShutdownTimeout: envDur("SHUTDOWN_TIMEOUT", 10*time.Second),
		Store: StoreConfig{
			Driver:   strings.ToLower(getenv("STORE_DRIVER", DriverMongo)),
			MongoURL: os.Getenv("MONGO_URL"),
			DBName:   os.Getenv("DB_NAME"),
			DBUser:   os.Getenv("DB_USER"),
			DBPass:   os.Getenv("DB_PASS"),
			DBHost:   os.Getenv("DB_HOST"),
			DBPort:   getenv("DB_PORT", "3306"),
		},
		Log: LogConfig{
			Level:      getenv("LOG_LEVEL", "info"),
			Format:     getenv("LOG_FORMAT", "json"),
			File:       os.Getenv("LOG_FILE"),
			MaxSizeMB:  envInt("LOG_FILE_MAX_SIZE_MB", 10),
			MaxBackups: envInt("LOG_FILE_MAX_BACKUPS", 5),
			MaxAgeDays: envInt("LOG_FILE_MAX_AGE_DAYS", 28),
			Compress:   envBool("LOG_FILE_COMPRESS", false),
		},
		Admin: AdminConfig{
			JWTSecret:   os.Getenv("ADMIN_JWT_SECRET"),
			TokenTTLMin: envInt("ADMIN_TOKEN_TTL_MIN", defaultAdminTTLMin),
		},
		Events: EventsConfig{
			URL:     firstNonEmpty(os.Getenv("RABBITMQ_URL"), os.Getenv("AMQP_URL")),
			Queue:   getenv("CONTACT_EVENTS_QUEUE", "contact.submitted"),
			LogPath: getenv("CONTACT_EVENTS_LOG", "logs/contact.log"),
		},
		Redis:     LoadRedisConfig(),
		RateLimit: LoadRateLimitConfig(),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	required := func(key, v string) {
		if v == "" {
			errs = append(errs, fmt.Errorf("missing required env var: %s", key))
		}
	}
	switch c.Store.Driver {
	case DriverMongo:
		required("MONGO_URL", c.Store.MongoURL)
		required("DB_NAME", c.Store.DBName)
	case DriverMySQL:
		required("DB_USER", c.Store.DBUser)
		required("DB_HOST", c.Store.DBHost)
		required("DB_NAME", c.Store.DBName)
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver))
	}
	if c.Admin.TokenTTLMin < 1 {
		errs = append(errs, fmt.Errorf("invalid ADMIN_TOKEN_TTL_MIN: %d", c.Admin.TokenTTLMin))
	}
	return errors.Join(errs...)
}

func normalizePrefix(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func parseList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = []string{"*"}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
