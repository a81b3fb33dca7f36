package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "inventory", cfg.Storage.Bucket)
	assert.Equal(t, 50, cfg.Storage.ReportRetention)
	assert.Equal(t, "api", cfg.Device42.Source)
	assert.True(t, cfg.Device42.VerifySSL)
	assert.Equal(t, "Active", cfg.Sync.Defaults.SiteStatus)
	assert.Equal(t, "sitecode-", cfg.Sync.FacilityPrepend)
	assert.False(t, cfg.Sync.UseDNS)
	assert.Empty(t, cfg.Sync.HostnameMapping)
	assert.False(t, cfg.Reconcile.DeleteOnSync)
	assert.Equal(t, 30, cfg.Reconcile.OperationTimeoutSeconds)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("DEVICE42_HOST", "https://d42.example.com")
	t.Setenv("DEVICE42_VERIFY_SSL", "false")
	t.Setenv("SYNC_DEFAULTS_DEVICE_ROLE", "Switch")
	t.Setenv("SYNC_CUSTOMER_IS_FACILITY", "true")
	t.Setenv("SYNC_HOSTNAME_MAPPING", "^lon-=LON1,^nyc-=NYC1")
	t.Setenv("RECONCILE_DELETE_ON_SYNC", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://d42.example.com", cfg.Device42.Host)
	assert.False(t, cfg.Device42.VerifySSL)
	assert.Equal(t, "Switch", cfg.Sync.Defaults.DeviceRole)
	assert.True(t, cfg.Sync.CustomerIsFacility)
	assert.Equal(t, []string{"^lon-=LON1", "^nyc-=NYC1"}, cfg.Sync.HostnameMapping)
	assert.True(t, cfg.Reconcile.DeleteOnSync)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	yaml := `
sync:
  role_prepend: "role-"
  hostname_mapping:
    - "^ams-=AMS1"
storage:
  report_retention: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("STORAGE_REPORT_RETENTION", "7")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "role-", cfg.Sync.RolePrepend)
	assert.Equal(t, []string{"^ams-=AMS1"}, cfg.Sync.HostnameMapping)
	assert.Equal(t, 7, cfg.Storage.ReportRetention)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("sync: [unclosed"), 0o600))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
