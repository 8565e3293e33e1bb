package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess(t *testing.T) {
	// Default config
	defaults, err := Process([]string{})
	require.NoError(t, err)
	assert.Equal(t, ".cache", defaults.Build.CacheDirectory)
	assert.Equal(t, "data", defaults.Build.DataDirectory)
	assert.Equal(t, 4, defaults.Build.DownloadsPerSecond)

	dir := t.TempDir()

	// yaml config
	{
		yaml := filepath.Join(dir, "config.yaml")
		err = os.WriteFile(yaml, []byte(`
build:
  dataDirectory: /srv/mcdata
  compress: true
`), 0644)
		require.NoError(t, err)
		config, err := Process([]string{yaml})
		require.NoError(t, err)
		assert.Equal(t, "/srv/mcdata", config.Build.DataDirectory)
		assert.True(t, config.Build.Compress)
	}

	// json config
	{
		json := filepath.Join(dir, "config.json")
		err = os.WriteFile(json, []byte(`{
  "build": {
    "redis": "localhost:6379"
  }
}`), 0644)
		require.NoError(t, err)
		config, err := Process([]string{json})
		require.NoError(t, err)
		assert.Equal(t, "localhost:6379", config.Build.Redis)
	}

	// multiple yaml
	{
		yaml1 := filepath.Join(dir, "config1.yaml")
		err = os.WriteFile(yaml1, []byte(`
build:
  cacheDirectory: /var/cache/mcdump
`), 0644)
		require.NoError(t, err)

		yaml2 := filepath.Join(dir, "config2.yaml")
		err = os.WriteFile(yaml2, []byte(`
build:
  dbPath: builds.db
`), 0644)
		require.NoError(t, err)
		config, err := Process([]string{yaml1, yaml2})
		require.NoError(t, err)
		assert.Equal(t, "/var/cache/mcdump", config.Build.CacheDirectory)
		assert.Equal(t, "builds.db", config.Build.DBPath)
	}

	// Invalid config
	{
		bad := filepath.Join(dir, "bad.yaml")
		err = os.WriteFile(bad, []byte(`
build:
  downloadsPerSecond: 0
`), 0644)
		require.NoError(t, err)
		_, err = Process([]string{bad})
		assert.Error(t, err)
	}
}
