package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("WIKI_SESSION_SECRET", "")

	cfg := LoadConfig()

	assert.Equal(t, "4001", cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, 100, cfg.PageSize)
	assert.Equal(t, "wiki-session", cfg.SessionName)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Len(t, cfg.SessionSecret, 32)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("WIKI_HTTP_PORT", "9000")
	t.Setenv("WIKI_API_PAGE_SIZE", "5")
	t.Setenv("WIKI_ADMIN_USERNAME", "root")
	t.Setenv("WIKI_ADMIN_PASSWORD", "secret")
	t.Setenv("WIKI_STORAGE_COMPRESSION", "gzip")

	cfg := LoadConfig()

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, "root", cfg.AdminUsername)
	assert.Equal(t, "secret", cfg.AdminPassword)
	assert.Equal(t, "gzip", cfg.StorageCompression)
}

func TestOpenDb(t *testing.T) {
	cfg := &Config{DBType: "sqlite", DBPath: filepath.Join(t.TempDir(), "db", "wiki.db")}
	db, err := OpenDb(cfg)
	require.NoError(t, err)
	assert.NotNil(t, db)

	_, err = OpenDb(&Config{DBType: "postgres"})
	assert.Error(t, err)

	_, err = OpenDb(&Config{DBType: "oracle"})
	assert.Error(t, err)
}
