package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfigFromFile 测试从配置文件加载配置
func TestLoadConfigFromFile(t *testing.T) {
	configContent := `
server:
  host: "0.0.0.0"
  port: 9090
database:
  host: "db.internal"
  port: 5432
  user: "postgres"
  dbname: "clearance"
auth:
  issuer: "clearance-portal"
  secret: "file-secret"
rate_limit:
  rps: 50
  burst: 100
`

	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString(configContent)
	require.NoError(t, err)
	tmpFile.Close()

	cfg, err := Load(tmpFile.Name())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "clearance", cfg.Database.DBName)
	assert.Equal(t, "file-secret", cfg.Auth.Secret)
	assert.Equal(t, float64(50), cfg.RateLimit.RPS)
	assert.Equal(t, 100, cfg.RateLimit.Burst)
}

// TestLoadConfigDefaults 测试默认值
func TestLoadConfigDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "clearance", cfg.Database.DBName)
	assert.Equal(t, "clearance-portal", cfg.Auth.Issuer)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, float64(100), cfg.RateLimit.RPS)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

// TestLoadConfigFromEnv 测试从环境变量加载配置
func TestLoadConfigFromEnv(t *testing.T) {
	os.Setenv("APP_SERVER_PORT", "7070")
	os.Setenv("APP_DATABASE_HOST", "db.example.com")
	defer func() {
		os.Unsetenv("APP_SERVER_PORT")
		os.Unsetenv("APP_DATABASE_HOST")
	}()

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "db.example.com", cfg.Database.Host)
}

// TestIsProduction 测试生产环境判断
func TestIsProduction(t *testing.T) {
	assert.False(t, IsProduction(nil))
	assert.False(t, IsProduction(&Config{Env: "development"}))
	assert.True(t, IsProduction(&Config{Env: "production"}))
}
