package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/gyazo/gyazo"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GYAZO_COOKIE", "GYAZO_DEVICE", "GYAZO_KEY"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		timeout time.Duration
		wantErr bool
	}{
		{name: "defaults", level: "info", format: "console"},
		{name: "json debug", level: "debug", format: "json"},
		{name: "trace", level: "trace", format: "console"},
		{name: "invalid level", level: "verbose", format: "console", wantErr: true},
		{name: "invalid format", level: "info", format: "xml", wantErr: true},
		{name: "negative timeout", level: "info", format: "console", timeout: -time.Second, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				HTTP:    HTTPConfig{Timeout: tt.timeout},
				Logging: LoggingConfig{Level: tt.level, Format: tt.format},
			}

			err := validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Key)
	assert.Equal(t, gyazo.DefaultApp, cfg.Upload.App)
	assert.False(t, cfg.Upload.PublicMetadata)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "gyazo.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
key = "file-key"
device = "file-device"

[upload]
public_metadata = true

[http]
timeout = "45s"

[logging]
level = "debug"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.Key)
	assert.Equal(t, "file-device", cfg.Device)
	assert.Empty(t, cfg.Cookie)
	assert.True(t, cfg.Upload.PublicMetadata)
	assert.Equal(t, gyazo.DefaultApp, cfg.Upload.App)
	assert.Equal(t, 45*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("GYAZO_KEY", "env-key")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "env-key", cfg.Key)
	})
}

func TestLoadInvalidFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "gyazo.toml")
	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"loud\"\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "gyazo.toml")
	cfg := &Config{
		Device:  "saved-device",
		Upload:  UploadConfig{App: "tester", PublicMetadata: true},
		Logging: LoggingConfig{Level: "warn", Format: "json"},
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestCredentials(t *testing.T) {
	cfg := &Config{Cookie: "cfg-cookie", Device: "cfg-device", Key: "cfg-key"}

	tests := []struct {
		name      string
		overrides Overrides
		expected  gyazo.Credentials
	}{
		{
			name:      "configured values",
			overrides: Overrides{},
			expected:  gyazo.Credentials{Cookie: "cfg-cookie", Device: "cfg-device", Key: "cfg-key"},
		},
		{
			name:      "explicit values win",
			overrides: Overrides{Device: "flag-device", Key: "flag-key"},
			expected:  gyazo.Credentials{Cookie: "cfg-cookie", Device: "flag-device", Key: "flag-key"},
		},
		{
			name:      "disabled credentials are dropped",
			overrides: Overrides{NoCookie: true, NoDevice: true},
			expected:  gyazo.Credentials{Key: "cfg-key"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cfg.Credentials(tt.overrides))
		})
	}
}

func TestUploadDefaults(t *testing.T) {
	cfg := &Config{Upload: UploadConfig{PublicMetadata: true}}
	assert.Equal(t, gyazo.Upload{App: gyazo.DefaultApp, PublicMetadata: true}, cfg.UploadDefaults())

	cfg.Upload.App = "tester"
	assert.Equal(t, "tester", cfg.UploadDefaults().App)
}

func TestSetDevice(t *testing.T) {
	clearEnv(t)

	t.Run("keeps existing keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gyazo.toml")
		require.NoError(t, os.WriteFile(path, []byte("key = \"file-key\"\n\n[logging]\nlevel = \"debug\"\n"), 0o600))

		require.NoError(t, SetDevice(path, "new-device"))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "new-device", cfg.Device)
		assert.Equal(t, "file-key", cfg.Key)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("creates missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "gyazo.toml")

		require.NoError(t, SetDevice(path, "new-device"))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "new-device", cfg.Device)
	})
}
