package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.ListenAddr())
	assert.Equal(t, 800, cfg.CanvasSize)
	assert.Equal(t, "local", cfg.DesignArchive)
	assert.Equal(t, "https://api.telegram.org", cfg.TelegramAPIURL)
	assert.Empty(t, cfg.DatabaseDSN())
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.AutoMigrate)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("PORT", ":9000")
	t.Setenv("CANVAS_SIZE", "1024")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "koon7r")
	t.Setenv("DB_NAME", "store")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.ListenAddr())
	assert.Equal(t, 1024, cfg.CanvasSize)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, "host=localhost port=5432 user=koon7r password=pw dbname=store sslmode=disable", cfg.DatabaseDSN())

	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/store")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/store", cfg.DatabaseDSN())
}

func TestValidate(t *testing.T) {
	cfg := Config{DesignArchive: "s3"}
	assert.ErrorContains(t, cfg.Validate(), "DESIGN_ARCHIVE")

	cfg = Config{DesignArchive: "drive"}
	assert.ErrorContains(t, cfg.Validate(), "DRIVE_FOLDER_ID")

	cfg = Config{DesignArchive: "drive", GoogleCredentialsPath: "creds.json", DriveFolderID: "folder"}
	assert.NoError(t, cfg.Validate())
}

func TestTrustedProxyPrefixes(t *testing.T) {
	cfg := Config{DesignArchive: "none", TrustedProxies: " 10.0.0.0/8 , 192.0.2.10,::1"}
	require.NoError(t, cfg.Validate())

	prefixes, err := cfg.TrustedProxyPrefixes()
	require.NoError(t, err)
	require.Len(t, prefixes, 3)
	assert.Equal(t, "10.0.0.0/8", prefixes[0].String())
	assert.Equal(t, "192.0.2.10/32", prefixes[1].String())
	assert.Equal(t, "::1/128", prefixes[2].String())

	cfg.TrustedProxies = "10.0.0.0/8,not-an-ip"
	assert.ErrorContains(t, cfg.Validate(), "TRUSTED_PROXIES")

	cfg.TrustedProxies = ""
	prefixes, err = cfg.TrustedProxyPrefixes()
	require.NoError(t, err)
	assert.Empty(t, prefixes)
}
