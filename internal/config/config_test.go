package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(wd) }()

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, 20*time.Second, cfg.Fetch.Timeout)
	assert.NotEmpty(t, cfg.Fetch.UserAgent)
	assert.Empty(t, cfg.Database.Path)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subxray.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output_dir: /tmp/configs
fetch:
  timeout: 5s
  user_agent: custom-agent
  proxy: socks5://127.0.0.1:1080
database:
  path: history.db
geoip:
  country_path: GeoLite2-Country.mmdb
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/configs", cfg.OutputDir)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "custom-agent", cfg.Fetch.UserAgent)
	assert.Equal(t, "socks5://127.0.0.1:1080", cfg.Fetch.Proxy)
	assert.Equal(t, "history.db", cfg.Database.Path)
	assert.Equal(t, "GeoLite2-Country.mmdb", cfg.GeoIP.CountryPath)
}

func TestLoadInvalidYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRepairsZeroValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subxray.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: \"\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, 20*time.Second, cfg.Fetch.Timeout)
}
