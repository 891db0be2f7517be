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
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfigFile(t, `{
		"database_url": "postgres://localhost/letters",
		"storage_dir": "/var/lib/letters",
		"render_timeout": 90,
		"asset_timeout": 10,
		"disable_overlay": true,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/letters", cfg.DatabaseURL)
	assert.Equal(t, "/var/lib/letters", cfg.StorageDir)
	assert.Equal(t, 90, cfg.RenderTimeout)
	assert.Equal(t, 10, cfg.AssetTimeout)
	assert.True(t, cfg.DisableOverlay)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_EmptyFileIsAllZero(t *testing.T) {
	path := writeConfigFile(t, `{}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{}, *cfg)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_MalformedJSON(t *testing.T) {
	path := writeConfigFile(t, `{"database_url": `)

	cfg, err := LoadConfig(path)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "zero config is valid",
			cfg:  Config{},
		},
		{
			name: "positive timeouts",
			cfg:  Config{RenderTimeout: 60, AssetTimeout: 15},
		},
		{
			name:    "negative render timeout",
			cfg:     Config{RenderTimeout: -1},
			wantErr: "render_timeout",
		},
		{
			name:    "negative asset timeout",
			cfg:     Config{AssetTimeout: -5},
			wantErr: "asset_timeout",
		},
		{
			name:    "missing chrome executable",
			cfg:     Config{ChromePath: "/nonexistent/chrome"},
			wantErr: "chrome executable not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate_ExistingChromePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chrome")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))

	cfg := Config{ChromePath: path}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		DatabaseURL:   "postgres://localhost/letters",
		StorageDir:    "storage",
		ChromePath:    "/usr/bin/chromium",
		RenderTimeout: 60,
		AssetTimeout:  15,
	}

	t.Run("empty config takes all defaults", func(t *testing.T) {
		cfg := Config{}
		merged := cfg.MergeWithDefaults(defaults)
		assert.Equal(t, defaults, merged)
	})

	t.Run("set fields win over defaults", func(t *testing.T) {
		cfg := Config{DatabaseURL: "postgres://db.internal/hrm", RenderTimeout: 120}
		merged := cfg.MergeWithDefaults(defaults)
		assert.Equal(t, "postgres://db.internal/hrm", merged.DatabaseURL)
		assert.Equal(t, 120, merged.RenderTimeout)
		assert.Equal(t, "storage", merged.StorageDir)
		assert.Equal(t, 15, merged.AssetTimeout)
	})

	t.Run("bool fields are never merged", func(t *testing.T) {
		cfg := Config{}
		merged := cfg.MergeWithDefaults(Config{DisableOverlay: true, Verbose: true})
		assert.False(t, merged.DisableOverlay)
		assert.False(t, merged.Verbose)
	})
}
