package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Config is the full application configuration.
type Config struct {
	AppName   string          `mapstructure:"appName"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	API       APIConfig       `mapstructure:"api"`
	UI        UIConfig        `mapstructure:"ui"`
	Export    ExportConfig    `mapstructure:"export"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"readTimeout"`
	WriteTimeout    time.Duration `mapstructure:"writeTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

// DatabaseConfig describes the connection to the opportunities database.
// Path is only used by the sqlite driver.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbName"`
	SSLMode         string        `mapstructure:"sslMode"`
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
}

type APIConfig struct {
	MaxPageSize int `mapstructure:"maxPageSize"`
}

type UIConfig struct {
	Title    string `mapstructure:"title"`
	PageSize int    `mapstructure:"pageSize"`
}

type ExportConfig struct {
	Path    string `mapstructure:"path"`
	MaxRows int    `mapstructure:"maxRows"`
}

type SchedulerConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ReportCronSpec string `mapstructure:"reportCronSpec"`
}

// envBindings maps config keys to the conventional DB_* environment variables.
var envBindings = map[string]string{
	"database.driver":   "DB_DRIVER",
	"database.host":     "DB_HOST",
	"database.port":     "DB_PORT",
	"database.dbName":   "DB_NAME",
	"database.user":     "DB_USER",
	"database.password": "DB_PASSWORD",
	"database.sslMode":  "DB_SSLMODE",
	"database.path":     "DB_PATH",
}

// Load reads configPath/configName.yaml when present, then applies defaults
// and environment overrides. A missing file is not an error.
func Load(configPath string, configName string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(configPath)
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding env %s: %w", env, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("WARN: config file not found, using defaults and environment variables.")
		} else {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	if cfg.Database.Driver != DriverSQLite && cfg.Database.Password == "" {
		log.Println("WARN: database password is empty.")
	}
	log.Printf("INFO: config loaded (driver: %s, addr: %s).", cfg.Database.Driver, cfg.Server.Addr)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("appName", "Opportunity Finder")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.readTimeout", 15*time.Second)
	v.SetDefault("server.writeTimeout", 60*time.Second)
	v.SetDefault("server.shutdownTimeout", 30*time.Second)

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.dbName", "neven_scraper")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.path", "opportunities.db")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 5*time.Minute)

	v.SetDefault("api.maxPageSize", 1000)

	v.SetDefault("ui.title", "Opportunity Finder")
	v.SetDefault("ui.pageSize", 25)

	v.SetDefault("export.path", "./exports")
	v.SetDefault("export.maxRows", 1000)

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.reportCronSpec", "0 */15 * * * *")
}

// normalize validates the driver and fills values that depend on it.
func (c *Config) normalize() error {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	switch c.Database.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}
	// port has no viper default since it depends on the driver
	if c.Database.Port == 0 {
		c.Database.Port = DefaultPort(c.Database.Driver)
	}
	if c.API.MaxPageSize <= 0 {
		c.API.MaxPageSize = 1000
	}
	if c.UI.PageSize <= 0 {
		c.UI.PageSize = 25
	}
	if c.Export.MaxRows <= 0 {
		c.Export.MaxRows = 1000
	}
	return nil
}

// DefaultPort returns the conventional server port for a driver.
func DefaultPort(driver string) int {
	switch driver {
	case DriverMySQL:
		return 3306
	case DriverPostgres:
		return 5432
	}
	return 0
}
