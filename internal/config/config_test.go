package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"MYSQL_HOST", "DB_HOST", "MYSQL_PORT", "DB_PORT", "MYSQL_DATABASE", "DB_DATABASE",
	"MYSQL_USER", "DB_USER", "MYSQL_PASSWORD", "DB_PASSWORD",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, n := range envVars {
		t.Setenv(n, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
input: docs/schema.puml
output: build/schema.sql
strict: true
render_not_null: true
quote_identifiers: true
fk_checks_guard: true
connection:
  host: db.internal
  port: 3307
  database: shop
  user: app
  password: secret
  params:
    charset: utf8mb4
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	want := &Config{
		Input:            "docs/schema.puml",
		Output:           "build/schema.sql",
		Strict:           true,
		RenderNotNull:    true,
		QuoteIdentifiers: true,
		FKChecksGuard:    true,
		Connection: Connection{
			Host:     "db.internal",
			Port:     3307,
			Database: "shop",
			User:     "app",
			Password: "secret",
			Params:   map[string]string{"charset": "utf8mb4"},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	assert.NoError(t, cfg.ValidateForApply())
}

func TestLoadEnvFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("MYSQL_HOST", "env-host")
	t.Setenv("DB_PORT", "3310")
	t.Setenv("DB_DATABASE", "envdb")
	t.Setenv("MYSQL_USER", "envuser")
	t.Setenv("MYSQL_PASSWORD", "envpass")

	cfg, err := Load(writeConfig(t, "connection:\n  user: yamluser\n"))
	require.NoError(t, err)

	assert.Equal(t, "env-host", cfg.Connection.Host)
	assert.Equal(t, 3310, cfg.Connection.Port)
	assert.Equal(t, "envdb", cfg.Connection.Database)
	assert.Equal(t, "yamluser", cfg.Connection.User)
	assert.Equal(t, "envpass", cfg.Connection.Password)
}

func TestDefault(t *testing.T) {
	clearEnv(t)
	cfg := Default()
	assert.Equal(t, "127.0.0.1", cfg.Connection.Host)
	assert.Equal(t, 3306, cfg.Connection.Port)
	assert.False(t, cfg.Strict)
	assert.EqualError(t, cfg.ValidateForApply(), "connection.database is required")

	cfg.Connection.Database = "shop"
	assert.EqualError(t, cfg.ValidateForApply(), "connection.user is required")
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config file")

	_, err = Load(writeConfig(t, "strict: [not, a, bool"))
	assert.ErrorContains(t, err, "parsing config file")

	_, err = Load(writeConfig(t, "connection:\n  port: 70000\n"))
	assert.EqualError(t, err, "invalid config: connection.port 70000 out of range")
}

func TestDSN(t *testing.T) {
	conn := Connection{Host: "db", Port: 3307, Database: "shop", User: "root", Password: "secret"}
	assert.Equal(t, "root:secret@tcp(db:3307)/shop", conn.DSN())

	conn.Params = map[string]string{"autocommit": "true"}
	parsed, err := mysql.ParseDSN(conn.DSN())
	require.NoError(t, err)
	assert.Equal(t, "db:3307", parsed.Addr)
	assert.Equal(t, "shop", parsed.DBName)
	assert.Equal(t, "true", parsed.Params["autocommit"])
}
