package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8190), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, 2, cfg.Global.ShutdownTimeoutInSeconds)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.False(t, cfg.Database.LogQueries)
	assert.Empty(t, cfg.Export.Dir)
	assert.Equal(t, DefaultExportFileName, cfg.Export.FileName)
	assert.False(t, cfg.ExportSync.Enabled)
	assert.Equal(t, "0 * * * *", cfg.ExportSync.Schedule)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 1, cfg.Tasks.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.Tasks.CleanupInterval)
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/tmp/words.db")
	t.Setenv("EXPORT_DIR", "/tmp/export")
	t.Setenv("EXPORT_SYNC_ENABLED", "true")
	t.Setenv("EXPORT_SYNC_SCHEDULE", "*/5 * * * *")
	t.Setenv("TASK_RELEASE_AFTER", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://example.com ,")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/words.db", cfg.Database.Path)
	assert.Equal(t, "/tmp/export", cfg.Export.Dir)
	assert.True(t, cfg.ExportSync.Enabled)
	assert.Equal(t, "*/5 * * * *", cfg.ExportSync.Schedule)
	assert.Equal(t, 30*time.Second, cfg.Tasks.ReleaseAfter)
	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, cfg.HTTP.CORSAllowedOrigins)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList(" , "))
	assert.Equal(t, []string{"a", "b"}, splitList("a,b"))
}
