package providers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitscore/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Persistence: structures.Persistence{
			FilePath:     "/tmp/fitscore.dat",
			SaveInterval: 30 * time.Second,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Store: structures.StoreConfig{Driver: "memory"},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_UnknownStoreDriver(t *testing.T) {
	c := validConfig()
	c.Store.Driver = "postgres"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_SqliteNeedsDSN(t *testing.T) {
	c := validConfig()
	c.Store.Driver = "sqlite"
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Store.DSN = "/tmp/fitscore.db"
	assert.NoError(t, NewCnfValidator(c).Validate())
}

const testConfigYaml = `
webServer:
  host: 127.0.0.1
  port: 8090
persistence:
  enabled: true
  filePath: /tmp/fitscore.dat
  saveInterval: 15s
logger:
  level: info
  mode: 420
  dir: /tmp
cache:
  enabled: true
  size: 8
  ttl: 30s
metrics:
  enabled: true
compliance:
  timezone: Europe/Berlin
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYaml), 0644))
	return path
}

func TestNewConfigProvider_LoadsYaml(t *testing.T) {
	path := writeTestConfig(t)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, AppName, conf.AppName)
	assert.Equal(t, path, conf.Path)
	assert.True(t, conf.Debug)
	assert.Equal(t, 8090, conf.WebServer.Port)
	assert.Equal(t, 15*time.Second, conf.Persistence.SaveInterval)
	assert.Equal(t, 30*time.Second, conf.Cache.TTL)
	assert.Equal(t, "memory", conf.Store.Driver)
	assert.Equal(t, "Europe/Berlin", conf.Compliance.Timezone)
}

func TestNewConfigProvider_EnvOverrides(t *testing.T) {
	path := writeTestConfig(t)
	t.Setenv("FITSCORE_LOG_LEVEL", "debug")
	t.Setenv("FITSCORE_CACHE_SIZE", "16")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "debug", conf.Logger.Level)
	assert.Equal(t, 16, conf.Cache.Size)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}

func TestConfigValidator_InvalidTimezone(t *testing.T) {
	c := validConfig()
	c.Compliance.Timezone = "Mars/Olympus"
	assert.Error(t, NewCnfValidator(c).Validate())
}
