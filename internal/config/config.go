// Package config provides YAML-based configuration loading for flightdesk.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// PasswordEnv is consulted when no password is configured.
const PasswordEnv = "FLIGHTDESK_PASSWORD"

// Config is the top-level flightdesk configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Limits   Limits         `yaml:"limits"`
}

// DatabaseConfig holds connection settings for the operations database.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// LogConfig controls the session log. An empty File disables logging; a
// config file that omits it therefore logs nothing unless --log-file is set.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Limits are the field bounds enforced by the data-entry workflows.
type Limits struct {
	PlaneYearMin    int `yaml:"plane_year_min"`
	PlaneYearMax    int `yaml:"plane_year_max"`
	MaxSeats        int `yaml:"max_seats"`
	DateWindowYears int `yaml:"date_window_years"`
	MaxMakeLen      int `yaml:"max_make_len"`
	MaxNameLen      int `yaml:"max_name_len"`
	MaxCountryLen   int `yaml:"max_country_len"`
	MaxAirportLen   int `yaml:"max_airport_len"`
}

// Default returns a Config with every default applied and no database name.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyArgs overrides the connection target with the positional
// <dbname> <port> <user> arguments and fills the password from the
// environment when none is configured.
func (c *Config) ApplyArgs(dbname, port, user string) error {
	var errs []string
	if strings.TrimSpace(dbname) == "" {
		errs = append(errs, "database name is required")
	}
	p, err := strconv.Atoi(port)
	if err != nil || p <= 0 || p > 65535 {
		errs = append(errs, fmt.Sprintf("port %q is not a valid TCP port", port))
	}
	if strings.TrimSpace(user) == "" && c.Database.Driver != DriverSQLite {
		errs = append(errs, "user is required")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid arguments: %s", strings.Join(errs, "; "))
	}

	c.Database.Name = dbname
	c.Database.Port = p
	c.Database.User = user
	if c.Database.Password == "" {
		c.Database.Password = os.Getenv(PasswordEnv)
	}
	return nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	c.Database.Driver = strings.ToLower(c.Database.Driver)
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		switch c.Database.Driver {
		case DriverMySQL:
			c.Database.Port = 3306
		case DriverPostgres:
			c.Database.Port = 5432
		}
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	l := &c.Limits
	if l.PlaneYearMin == 0 {
		l.PlaneYearMin = 1970
	}
	if l.PlaneYearMax == 0 {
		l.PlaneYearMax = 2020
	}
	if l.MaxSeats == 0 {
		l.MaxSeats = 499
	}
	if l.DateWindowYears == 0 {
		l.DateWindowYears = 2
	}
	if l.MaxMakeLen == 0 {
		l.MaxMakeLen = 32
	}
	if l.MaxNameLen == 0 {
		l.MaxNameLen = 128
	}
	if l.MaxCountryLen == 0 {
		l.MaxCountryLen = 24
	}
	if l.MaxAirportLen == 0 {
		l.MaxAirportLen = 5
	}
}

// validate checks that all fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.Database.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not one of postgres, mysql, sqlite", c.Database.Driver))
	}
	if c.Database.Port < 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port %d is out of range", c.Database.Port))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if c.Limits.PlaneYearMin > c.Limits.PlaneYearMax {
		errs = append(errs, "limits.plane_year_min must not exceed limits.plane_year_max")
	}
	if c.Limits.MaxSeats < 1 {
		errs = append(errs, "limits.max_seats must be positive")
	}
	if c.Limits.DateWindowYears < 0 {
		errs = append(errs, "limits.date_window_years must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
