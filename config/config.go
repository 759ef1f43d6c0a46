package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/emzola/biblioteca/internal/jsonlog"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config defines the app configuration. Defaults live in Default rather than
// env-default tags, which cleanenv would reapply over a false or zero read
// from the file.
type Config struct {
	Server struct {
		Port int    `yaml:"port" env:"PORT" env-description:"API server port"`
		Env  string `yaml:"env" env:"ENV" env-description:"Environment(development|staging|production)"`
	} `yaml:"server"`
	Storage struct {
		Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-description:"Storage driver(postgres|memory)"`
	} `yaml:"storage"`
	Database struct {
		DSN          string `yaml:"dsn" env:"DSN" env-description:"PostgreSQL DSN"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-description:"PostgreSQL max open connections"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-description:"PostgreSQL max idle connections"`
		MaxIdleTime  string `yaml:"max_idle_time" env:"DB_MAX_IDLE_TIME" env-description:"PostgreSQL max connection idle time"`
		QueryTimeout string `yaml:"query_timeout" env:"DB_QUERY_TIMEOUT" env-description:"PostgreSQL per-query timeout"`
	} `yaml:"database"`
	Limiter struct {
		RPS     float64 `yaml:"rps" env:"LIMITER_RPS" env-description:"Rate limiter maximum requests per second"`
		Burst   int     `yaml:"burst" env:"LIMITER_BURST" env-description:"Rate limiter maximum burst"`
		Enabled bool    `yaml:"enabled" env:"LIMITER_ENABLED" env-description:"Enable rate limiter"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"CORS_TRUSTED_ORIGINS" env-separator:" " env-description:"Trusted CORS origins (space separated)"`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"METRICS_ENABLED" env-description:"Expose /debug/vars metrics"`
	} `yaml:"metrics"`
	BasicAuth struct {
		Username string `yaml:"username" env:"BASIC_AUTH_USERNAME" env-description:"Basic auth username for metrics"`
		Password string `yaml:"password" env:"BASIC_AUTH_PASSWORD" env-description:"Basic auth password for metrics"`
	} `yaml:"basic_auth"`
	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL" env-description:"Minimum log level(debug|info|error|fatal|off)"`
	} `yaml:"log"`
}

// Default returns the configuration used when nothing else is provided.
func Default() Config {
	var cfg Config
	cfg.Server.Port = 4000
	cfg.Server.Env = "development"
	cfg.Storage.Driver = DriverPostgres
	cfg.Database.MaxOpenConns = 25
	cfg.Database.MaxIdleConns = 25
	cfg.Database.MaxIdleTime = "15m"
	cfg.Database.QueryTimeout = "3s"
	cfg.Limiter.RPS = 4
	cfg.Limiter.Burst = 8
	cfg.Limiter.Enabled = true
	cfg.Log.Level = "info"
	return cfg
}

// Load builds the configuration from defaults, .env files, an optional YAML file,
// environment variables and finally command-line flags, each layer overriding the
// previous one. args excludes the program name.
func Load(args []string) (Config, error) {
	cfg := Default()

	// Values already present in the environment always win over .env files.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// ReadConfig reads the file and then the environment on top of it.
	if path := configPath(args); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.parseFlags(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("biblioteca", flag.ContinueOnError)
	header := "Environment variables (overridden by flags):"
	fs.Usage = cleanenv.FUsage(fs.Output(), c, &header, fs.PrintDefaults)
	fs.String("config", "", "Path to a YAML configuration file")

	fs.IntVar(&c.Server.Port, "port", c.Server.Port, "API server port")
	fs.StringVar(&c.Server.Env, "env", c.Server.Env, "Environment(development|staging|production)")

	fs.StringVar(&c.Storage.Driver, "storage", c.Storage.Driver, "Storage driver(postgres|memory)")

	// Read the database connection pool settings into the config
	fs.StringVar(&c.Database.DSN, "db-dsn", c.Database.DSN, "PostgreSQL DSN")
	fs.IntVar(&c.Database.MaxOpenConns, "db-max-open-conns", c.Database.MaxOpenConns, "PostgreSQL max open connections")
	fs.IntVar(&c.Database.MaxIdleConns, "db-max-idle-conns", c.Database.MaxIdleConns, "PostgreSQL max idle connections")
	fs.StringVar(&c.Database.MaxIdleTime, "db-max-idle-time", c.Database.MaxIdleTime, "PostgreSQL max connection idle time")
	fs.StringVar(&c.Database.QueryTimeout, "db-query-timeout", c.Database.QueryTimeout, "PostgreSQL per-query timeout")

	// Read the rate limiter settings into the config
	fs.Float64Var(&c.Limiter.RPS, "limiter-rps", c.Limiter.RPS, "Rate limiter maximum requests per second")
	fs.IntVar(&c.Limiter.Burst, "limiter-burst", c.Limiter.Burst, "Rate limiter maximum burst")
	fs.BoolVar(&c.Limiter.Enabled, "limiter-enabled", c.Limiter.Enabled, "Enable rate limiter")

	// Process the -cors-trusted-origins command line flag
	fs.Func("cors-trusted-origins", "Trusted CORS origins (space separated)", func(s string) error {
		c.Cors.TrustedOrigins = strings.Fields(s)
		return nil
	})

	fs.BoolVar(&c.Metrics.Enabled, "metrics-enabled", c.Metrics.Enabled, "Expose /debug/vars metrics")
	fs.StringVar(&c.BasicAuth.Username, "basic-auth-username", c.BasicAuth.Username, "Basic auth username for metrics")
	fs.StringVar(&c.BasicAuth.Password, "basic-auth-password", c.BasicAuth.Password, "Basic auth password for metrics")

	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "Minimum log level(debug|info|error|fatal|off)")

	return fs.Parse(args)
}

// configPath returns the value of -config/--config, falling back to BIBLIOTECA_CONFIG.
func configPath(args []string) string {
	for i, arg := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("BIBLIOTECA_CONFIG")
}

// Validate checks the configuration for values the application cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Server.Port < 1 || c.Server.Port > 65535:
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Server.Port)
	case c.Server.Env != "development" && c.Server.Env != "staging" && c.Server.Env != "production":
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidConfig, c.Server.Env)
	case c.Storage.Driver != DriverPostgres && c.Storage.Driver != DriverMemory:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	case c.Storage.Driver == DriverPostgres && c.Database.DSN == "":
		return fmt.Errorf("%w: db-dsn is required for the postgres driver", ErrInvalidConfig)
	case c.Limiter.Enabled && (c.Limiter.RPS <= 0 || c.Limiter.Burst < 1):
		return fmt.Errorf("%w: limiter rps and burst must be positive", ErrInvalidConfig)
	}
	for name, value := range map[string]string{
		"db-max-idle-time": c.Database.MaxIdleTime,
		"db-query-timeout": c.Database.QueryTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
		}
	}
	if _, err := jsonlog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// QueryTimeout returns the parsed per-query storage timeout.
func (c Config) QueryTimeout() time.Duration {
	d, err := time.ParseDuration(c.Database.QueryTimeout)
	if err != nil {
		return 3 * time.Second
	}
	return d
}

// LogLevel returns the parsed minimum log level.
func (c Config) LogLevel() jsonlog.Level {
	level, _ := jsonlog.ParseLevel(c.Log.Level)
	return level
}
