package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, ":8080", cfg.App.Addr())
	assert.Equal(t, StorageDynamoDB, cfg.Storage.Driver)
	assert.Equal(t, "users", cfg.DynamoDB.UsersTable)
	assert.Equal(t, "templates", cfg.DynamoDB.TemplatesTable)
	assert.Equal(t, "estimates", cfg.DynamoDB.EstimatesTable)
	assert.Equal(t, "devsessionsecret", cfg.Auth.JWTSecret)
	assert.Equal(t, 8*time.Hour, cfg.Auth.TokenTTL())
	assert.True(t, cfg.Server.EnableSwagger)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("STORAGE_SQLITEPATH", "/tmp/x.db")
	t.Setenv("ESTIMATES_TABLE", "estimates-prod")
	t.Setenv("DYNAMODB_ENDPOINT", "http://dynamodb:8000")
	t.Setenv("AWS_REGION", "sa-east-1")
	t.Setenv("AUTH_TOKENTTLMINUTES", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "estimates-prod", cfg.DynamoDB.EstimatesTable)
	assert.Equal(t, "http://dynamodb:8000", cfg.DynamoDB.Endpoint)
	assert.Equal(t, "sa-east-1", cfg.DynamoDB.Region)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	body := `{"app": {"port": 9090}, "bootstrap": {"adminUsername": "root", "adminPassword": "s3cret"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "root", cfg.Bootstrap.AdminUsername)
	assert.Equal(t, "s3cret", cfg.Bootstrap.AdminPassword)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_ENVIRONMENT", "production")

	_, err := Load()
	assert.ErrorContains(t, err, "auth.jwtSecret")
}

func TestValidate(t *testing.T) {
	valid := Config{
		App:      AppConfig{Port: 8080},
		Storage:  StorageConfig{Driver: StorageDynamoDB},
		DynamoDB: DynamoDBConfig{UsersTable: "u", TemplatesTable: "t", EstimatesTable: "e"},
		Auth:     AuthConfig{JWTSecret: "x", TokenTTLMinutes: 1},
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "mongo" }, want: "unknown storage driver"},
		{name: "missing table", mutate: func(c *Config) { c.DynamoDB.TemplatesTable = "" }, want: "table names"},
		{name: "sqlite without path", mutate: func(c *Config) { c.Storage.Driver = StorageSQLite }, want: "sqlitePath"},
		{name: "zero ttl", mutate: func(c *Config) { c.Auth.TokenTTLMinutes = 0 }, want: "tokenTTLMinutes"},
		{name: "zero port", mutate: func(c *Config) { c.App.Port = 0 }, want: "app.port"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			assert.ErrorContains(t, c.Validate(), tc.want)
		})
	}
}
