package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env       string          `mapstructure:"env"`
	Server    ServerConfig    `mapstructure:"http_server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Holidays  HolidaysConfig  `mapstructure:"holidays"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	OpenAPI   OpenAPIConfig   `mapstructure:"openapi"`
	Seed      SeedConfig      `mapstructure:"seed"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"required,min=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Source          string        `mapstructure:"source"`
	LogQueries      bool          `mapstructure:"log_queries"`
}

// HolidaysConfig configures the external public-holiday source.
type HolidaysConfig struct {
	SourceURL  string        `mapstructure:"source_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
}

type SchedulerConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Interval   time.Duration `mapstructure:"interval"`
	WindowDays int           `mapstructure:"window_days"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

type OpenAPIConfig struct {
	SpecPath        string `mapstructure:"spec_path"`
	ValidateRequest bool   `mapstructure:"validate_requests"`
}

type SeedConfig struct {
	HolidaysFile  string `mapstructure:"holidays_file"`
	EmployeesFile string `mapstructure:"employees_file"`
}

const (
	DefaultPort              = 3000
	DefaultHolidaySourceURL  = "https://date.nager.at/api/v3/PublicHolidays"
	DefaultHolidayTimeout    = 5 * time.Second
	DefaultHolidayMaxRetries = 2
	DefaultSchedulerInterval = 60 * time.Second
	DefaultWindowDays        = 7
)

// ApplyDefaults fills zero values with the documented defaults.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Holidays.SourceURL == "" {
		c.Holidays.SourceURL = DefaultHolidaySourceURL
	}
	if c.Holidays.Timeout <= 0 {
		c.Holidays.Timeout = DefaultHolidayTimeout
	}
	if c.Holidays.MaxRetries < 0 {
		c.Holidays.MaxRetries = 0
	}
	if c.Scheduler.Interval == 0 {
		c.Scheduler.Interval = DefaultSchedulerInterval
	}
	if c.Scheduler.WindowDays == 0 {
		c.Scheduler.WindowDays = DefaultWindowDays
	}
	if c.OpenAPI.SpecPath == "" {
		c.OpenAPI.SpecPath = "./api/openapi.yml"
	}
	if c.Seed.HolidaysFile == "" {
		c.Seed.HolidaysFile = "holidays.json"
	}
	if c.Seed.EmployeesFile == "" {
		c.Seed.EmployeesFile = "employees.json"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// LoadConfigFromEnv builds the configuration from plain environment variables (container deployments).
func LoadConfigFromEnv() *Config {
	cfg := &Config{
		Env: getEnv("APP_ENV", "production"),
		Server: ServerConfig{
			Port:              getEnvAsInt("PORT", DefaultPort),
			BaseURL:           getEnv("BASE_URL", ""),
			ReadHeaderTimeout: getEnvAsDuration("READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:       getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
			RequestTimeout:    getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Source:          getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			LogQueries:      getEnvAsBool("DB_LOG_QUERIES", false),
		},
		Holidays: HolidaysConfig{
			SourceURL:  getEnv("HOLIDAYS_SOURCE_URL", DefaultHolidaySourceURL),
			Timeout:    getEnvAsDuration("HOLIDAYS_TIMEOUT", DefaultHolidayTimeout),
			MaxRetries: getEnvAsInt("HOLIDAYS_MAX_RETRIES", DefaultHolidayMaxRetries),
		},
		Scheduler: SchedulerConfig{
			Enabled:    getEnvAsBool("SCHEDULER_ENABLED", true),
			Interval:   getEnvAsDuration("SCHEDULER_INTERVAL", DefaultSchedulerInterval),
			WindowDays: getEnvAsInt("SCHEDULER_WINDOW_DAYS", DefaultWindowDays),
			Timeout:    getEnvAsDuration("SCHEDULER_TIMEOUT", 30*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		OpenAPI: OpenAPIConfig{
			SpecPath:        getEnv("OPENAPI_SPEC_PATH", "./api/openapi.yml"),
			ValidateRequest: getEnvAsBool("OPENAPI_VALIDATE_REQUESTS", false),
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Holidays.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("holidays config: %v", err))
	}

	if err := c.Scheduler.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("scheduler config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *HolidaysConfig) Validate() error {
	u, err := url.Parse(c.SourceURL)
	if err != nil {
		return fmt.Errorf("invalid source_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("source_url must be http(s), got %q", c.SourceURL)
	}
	return nil
}

func (c *SchedulerConfig) Validate() error {
	if c.Interval <= 0 {
		return errors.New("interval must be positive")
	}
	if c.WindowDays <= 0 {
		return errors.New("window_days must be positive")
	}
	return nil
}
