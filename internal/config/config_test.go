package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(writeConfigFile(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "staffdesk", cfg.Database.DBName)
	assert.Equal(t, "1h", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "local", cfg.Storage.Driver)
}

func TestLoadConfig_FileValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(writeConfigFile(t, `
server:
  port: "9090"
database:
  dbname: staffdesk_test
jwt:
  access_token_expiration: 30m
`))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "staffdesk_test", cfg.Database.DBName)
	assert.Equal(t, "30m", cfg.JWT.AccessTokenExpiration)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("ADMIN_PASSWORD", "env-password")

	cfg, err := LoadConfig(writeConfigFile(t, `
server:
  port: "9090"
`))
	require.NoError(t, err)

	// Environment wins over the file.
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "env-password", cfg.Admin.Password)
}

func TestLoadConfig_MissingJWTSecret(t *testing.T) {
	_, err := LoadConfig(writeConfigFile(t, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret")
}

func TestLoadConfig_InvalidExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := LoadConfig(writeConfigFile(t, `
jwt:
  access_token_expiration: not-a-duration
`))
	assert.Error(t, err)
}

func TestLoadConfig_S3DriverValidation(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	// s3 driver without a bucket is rejected.
	_, err := LoadConfig(writeConfigFile(t, `
storage:
  driver: s3
`))
	require.Error(t, err)

	cfg, err := LoadConfig(writeConfigFile(t, `
storage:
  driver: s3
  s3:
    bucket: staffdesk-uploads
    region: eu-central-1
    base_url: https://cdn.example.com/uploads
`))
	require.NoError(t, err)
	assert.Equal(t, "staffdesk-uploads", cfg.Storage.S3.Bucket)
}

func TestLoadConfig_UnknownStorageDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := LoadConfig(writeConfigFile(t, `
storage:
  driver: ftp
`))
	assert.Error(t, err)
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.Password = "pw"

	assert.Equal(t,
		"postgres://postgres:pw@localhost:5432/staffdesk?sslmode=disable",
		cfg.GetPostgresConnectionString(),
	)
}
