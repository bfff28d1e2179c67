package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  host: "0.0.0.0"

database:
  url: "postgres://outreach:pw@localhost:5432/outreach?sslmode=disable"
  max_open_conns: 40

ses:
  region: "us-east-1"
  from_name: "Outreach Team"
  from_addresses:
    - "a@outreach.example"
    - "b@outreach.example"

sending:
  page_size: 25
  tick_interval_seconds: 30
  default_daily_cap: 150

audit:
  enabled: true
  bucket: "outreach-decision-audit"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
	assert.Equal(t, 40, cfg.Database.MaxOpenConns)
	assert.Equal(t, "us-east-1", cfg.SES.Region)
	assert.Len(t, cfg.SES.FromAddresses, 2)
	assert.Equal(t, 25, cfg.Sending.PageSize)
	assert.Equal(t, int64(30), int64(cfg.Sending.Interval().Seconds()))
	assert.Equal(t, 150, cfg.Sending.DefaultDailyCap)
	assert.True(t, cfg.Audit.Enabled)

	// Audit region inherits the SES region when unset.
	assert.Equal(t, "us-east-1", cfg.Audit.Region)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `server: {}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 50, cfg.Sending.PageSize)
	assert.Equal(t, 5, cfg.Sending.NumWorkers)
	assert.Equal(t, 60, cfg.Sending.TickIntervalSeconds)
	assert.Equal(t, "us-west-2", cfg.SES.Region)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://local"
`)

	t.Setenv("DATABASE_URL", "postgres://from-env")
	t.Setenv("AUDIT_S3_BUCKET", "env-bucket")

	cfg, err := LoadFromEnv(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://from-env", cfg.Database.URL)
	assert.Equal(t, "env-bucket", cfg.Audit.Bucket)
	assert.True(t, cfg.Audit.Enabled)
}
