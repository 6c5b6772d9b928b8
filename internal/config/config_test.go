package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("OUTBOX_PERIOD", "250ms")

	cfg, err := loadConfig(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 250*time.Millisecond, cfg.OutboxPeriod)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 20, cfg.PageDefaultTake)
	assert.Equal(t, 100, cfg.PageMaxTake)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_ReadsYamlFromSearchPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hexasocial.yaml"), []byte("page_default_take: 15\n"), 0o600))

	cfg, err := loadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, 15, cfg.PageDefaultTake)
}

func TestLoadConfig_MalformedYamlIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hexasocial.yaml"), []byte("db_driver: [sqlite\n  : :\n"), 0o600))

	cfg, err := loadConfig(dir)

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexasocial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_driver: postgres\npost_store: mongo\npage_max_take: 50\n"), 0o600))

	cfg, err := LoadConfigFile(path)

	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "mongo", cfg.PostStore)
	assert.Equal(t, 50, cfg.PageMaxTake)
}

func TestValidate_Errors(t *testing.T) {
	cfg := &Config{DBDriver: "oracle", PostStore: "sql", PageDefaultTake: 30, PageMaxTake: 10}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db_driver")
	assert.Contains(t, err.Error(), "page_default_take")

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
