package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.ServerAddress)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "urlMappings", cfg.StorageKey)
	assert.Equal(t, 1500*time.Millisecond, cfg.SubmitDelay)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, ModeMemory, cfg.Mode)
}

func TestLoad_EnvAndFlags(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9000")
	t.Setenv("SUBMIT_DELAY", "250ms")
	t.Setenv("FILE_STORAGE_PATH", "/tmp/env.json")

	cfg, err := Load([]string{"-a", ":7000", "-b", "http://short.local"}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.ServerAddress, "flag wins over env")
	assert.Equal(t, "http://short.local", cfg.BaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.SubmitDelay)
	assert.Equal(t, "/tmp/env.json", cfg.FileStoragePath)
	assert.Equal(t, ModeFile, cfg.Mode)
}

func TestLoad_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"base_url": "http://from-file.local",
		"sqlite_path": "/tmp/links.db",
		"submit_delay": "2s",
		"storage_key": "links"
	}`), 0644))
	t.Setenv("BASE_URL", "http://from-env.local")

	cfg, err := Load([]string{"-c", path}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "http://from-env.local", cfg.BaseURL, "env wins over file")
	assert.Equal(t, "/tmp/links.db", cfg.SQLitePath)
	assert.Equal(t, 2*time.Second, cfg.SubmitDelay)
	assert.Equal(t, "links", cfg.StorageKey)
	assert.Equal(t, ModeSQLite, cfg.Mode)
}

func TestLoad_BrokenJSONFileIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))
	t.Setenv("CONFIG", path)

	cfg, err := Load(nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	_, err := Load([]string{"-b", "localhost:8080"}, zap.NewNop())
	assert.Error(t, err)
}

func TestLoad_UnknownFlag(t *testing.T) {
	_, err := Load([]string{"-unknown"}, zap.NewNop())
	assert.Error(t, err)
}

func TestDetectMode(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "everything set", cfg: Config{DatabaseDSN: "postgres://", RedisAddr: "r", SQLitePath: "s", FileStoragePath: "f"}, want: ModeDatabase},
		{name: "redis over sqlite", cfg: Config{RedisAddr: "r", SQLitePath: "s", FileStoragePath: "f"}, want: ModeRedis},
		{name: "sqlite over file", cfg: Config{SQLitePath: "s", FileStoragePath: "f"}, want: ModeSQLite},
		{name: "file", cfg: Config{FileStoragePath: "f"}, want: ModeFile},
		{name: "nothing", cfg: Config{}, want: ModeMemory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.detectMode())
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		ServerAddress: ":8080",
		BaseURL:       "http://localhost:8080",
		StorageKey:    "urlMappings",
		SessionSecret: "secret",
	}
	assert.NoError(t, valid.Validate())

	broken := valid
	broken.SubmitDelay = -time.Second
	assert.Error(t, broken.Validate())

	broken = valid
	broken.StorageKey = ""
	assert.Error(t, broken.Validate())
}
