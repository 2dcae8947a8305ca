package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := LoadFile(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "labomak-dashboard", cfg.App.Name)
	assert.Equal(t, 100*time.Millisecond, cfg.Gateway.WaitInterval)
	assert.Equal(t, 50, cfg.Gateway.WaitAttempts)
	assert.Equal(t, "webhook", cfg.Notifier.Driver)
	assert.Equal(t, 5*time.Second, cfg.Image.ProbeTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadFileReadsEnvFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "test.env")
	content := "DB_HOST=db.example.co\nNOTIFIER_DRIVER=Both\nCORS_ALLOWED_ORIGINS=https://a.io, https://b.io\nREDIS_ADDR=localhost:6379\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := LoadFile(path)

	assert.Equal(t, "db.example.co", cfg.Database.Host)
	assert.Equal(t, "both", cfg.Notifier.Driver)
	assert.Equal(t, []string{"https://a.io", "https://b.io"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: "5432", Name: "n", User: "u", Password: "p", SSLMode: "require", Timezone: "Europe/Istanbul"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=5432 sslmode=require TimeZone=Europe/Istanbul", db.DSN())
}
