package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `{"jwt_secret":"s","database":{"host":"db"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, 24, cfg.JWTTTLHours)
	require.Equal(t, 5432, cfg.Database.Port)
	require.Equal(t, "info", cfg.LogConfig.Level)
	require.Equal(t, "local", cfg.CatalogSource.Type)
	require.Equal(t, "*/5 * * * *", cfg.HealthCheckCron)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PORT", "8081")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/volcano")
	path := writeConfig(t, `{"jwt_secret":"from-file","port":9000}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.JWTSecret)
	require.Equal(t, 8081, cfg.Port)
	require.Equal(t, "postgres://u:p@localhost/volcano", cfg.Database.DSN)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("JWT_SECRET=dotenv\nDB_HOST=pg\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("JWT_SECRET")
		_ = os.Unsetenv("DB_HOST")
	})
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "dotenv", cfg.JWTSecret)
	require.Equal(t, "pg", cfg.Database.Host)
}

func TestLoadRequiresSecretAndDatabase(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load(writeConfig(t, `{"database":{"host":"db"}}`))
	require.ErrorContains(t, err, "jwt_secret")

	_, err = Load(writeConfig(t, `{"jwt_secret":"s"}`))
	require.ErrorContains(t, err, "database")
}

func TestLoadValidatesS3Source(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load(writeConfig(t, `{"jwt_secret":"s","database":{"host":"db"},"catalog_source":{"type":"s3"}}`))
	require.ErrorContains(t, err, "catalog_source.s3")

	_, err = Load(writeConfig(t, `{"jwt_secret":"s","database":{"host":"db"},"catalog_source":{"type":"ftp"}}`))
	require.ErrorContains(t, err, "local or s3")
}
