package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
time_zone: Europe/Paris
log_dir: /var/log/hue
timeout: 5s
insecure_skip_verify: true
kerberos:
  ccache: /tmp/krb5cc_hue
  krb5_conf: /etc/krb5-test.conf
services:
  solr:
    url: http://solr.example.com:8983/solr/
  Oozie:
    url: " https://oozie.example.com:11443/oozie "
    security_enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Europe/Paris", cfg.TimeZone)
	assert.Equal(t, "/var/log/hue", cfg.LogDir)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.InsecureSkipVerify)
	assert.Equal(t, "/tmp/krb5cc_hue", cfg.Kerberos.CCache)
	assert.Equal(t, "/etc/krb5-test.conf", cfg.Kerberos.Krb5Conf)
	assert.Equal(t, path, cfg.File)

	solr, ok := cfg.Service("SOLR")
	require.True(t, ok)
	assert.Equal(t, "http://solr.example.com:8983/solr/", solr.URL)
	assert.False(t, solr.SecurityEnabled)

	oozie, ok := cfg.Service("oozie")
	require.True(t, ok)
	assert.Equal(t, "https://oozie.example.com:11443/oozie", oozie.URL)
	assert.True(t, oozie.SecurityEnabled)
	assert.True(t, cfg.AnySecure())

	_, ok = cfg.Service("rm")
	assert.False(t, ok)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DESKTOP_LOG_DIR", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "America/Los_Angeles", cfg.TimeZone)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.InsecureSkipVerify)
	assert.Empty(t, cfg.File)
	assert.False(t, cfg.AnySecure())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
services:
  solr:
    url: http://file-solr:8983/solr
`)
	t.Setenv("HUE_PROBE_TIME_ZONE", "UTC")
	t.Setenv("HUE_PROBE_SERVICES_SOLR_URL", "http://env-solr:8983/solr")
	t.Setenv("HUE_PROBE_SERVICES_RM_URL", "http://env-rm:8088")
	t.Setenv("HUE_PROBE_SERVICES_RM_SECURITY_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.TimeZone)
	solr, _ := cfg.Service("solr")
	assert.Equal(t, "http://env-solr:8983/solr", solr.URL)
	rm, ok := cfg.Service("rm")
	require.True(t, ok)
	assert.Equal(t, "http://env-rm:8088", rm.URL)
	assert.True(t, rm.SecurityEnabled)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "services: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_NegativeTimeout(t *testing.T) {
	path := writeConfig(t, "timeout: -1s\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadDefault_NoFile(t *testing.T) {
	paths := NewPaths(t.TempDir())

	cfg, err := LoadDefault(paths)
	require.NoError(t, err)
	assert.Empty(t, cfg.File)
}

func TestLoadDefault_WithFile(t *testing.T) {
	paths := NewPaths(t.TempDir())
	require.NoError(t, os.WriteFile(paths.ConfigFile(), []byte("time_zone: Asia/Tokyo\n"), 0644))

	cfg, err := LoadDefault(paths)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", cfg.TimeZone)
	assert.Equal(t, paths.ConfigFile(), cfg.File)
}
