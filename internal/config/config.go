package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level YAML configuration.
type Config struct {
	Input            string     `yaml:"input"`
	Output           string     `yaml:"output"`
	Strict           bool       `yaml:"strict"`
	RenderNotNull    bool       `yaml:"render_not_null"`
	QuoteIdentifiers bool       `yaml:"quote_identifiers"`
	FKChecksGuard    bool       `yaml:"fk_checks_guard"`
	Connection       Connection `yaml:"connection"`
}

// Connection holds MySQL connection parameters used by apply.
type Connection struct {
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Database string            `yaml:"database"`
	User     string            `yaml:"user"`
	Password string            `yaml:"password"`
	Params   map[string]string `yaml:"params"`
}

// DSN builds a go-sql-driver/mysql data source name.
func (c *Connection) DSN() string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.Database
	if len(c.Params) > 0 {
		mc.Params = make(map[string]string, len(c.Params))
		for k, v := range c.Params {
			mc.Params[k] = v
		}
	}
	return mc.FormatDSN()
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyEnv fills in empty Connection fields from environment variables.
// YAML values take precedence; env vars are used only as fallback.
func (c *Config) applyEnv() {
	conn := &c.Connection
	if conn.Host == "" {
		conn.Host = envOr("MYSQL_HOST", "DB_HOST")
	}
	if conn.Port == 0 {
		if s := envOr("MYSQL_PORT", "DB_PORT"); s != "" {
			if p, err := strconv.Atoi(s); err == nil {
				conn.Port = p
			}
		}
	}
	if conn.Database == "" {
		conn.Database = envOr("MYSQL_DATABASE", "DB_DATABASE")
	}
	if conn.User == "" {
		conn.User = envOr("MYSQL_USER", "DB_USER")
	}
	if conn.Password == "" {
		conn.Password = envOr("MYSQL_PASSWORD", "DB_PASSWORD")
	}
}

// envOr returns the first non-empty value from the given env var names.
func envOr(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

func (c *Config) applyDefaults() {
	if c.Connection.Host == "" {
		c.Connection.Host = "127.0.0.1"
	}
	if c.Connection.Port == 0 {
		c.Connection.Port = 3306
	}
}

// validate checks values that are wrong regardless of the command.
func (c *Config) validate() error {
	if c.Connection.Port < 0 || c.Connection.Port > 65535 {
		return fmt.Errorf("connection.port %d out of range", c.Connection.Port)
	}
	return nil
}

// ValidateForApply checks the fields required to reach a database.
func (c *Config) ValidateForApply() error {
	if c.Connection.Database == "" {
		return fmt.Errorf("connection.database is required")
	}
	if c.Connection.User == "" {
		return fmt.Errorf("connection.user is required")
	}
	return nil
}
