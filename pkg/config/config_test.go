package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, "memory", c.Cache.Backend)
	assert.Equal(t, "none", c.Alerts.Backend)
	assert.Equal(t, 15*time.Second, c.Market.TTL.Prices)
	assert.Equal(t, 180*time.Second, c.Market.TTL.Indicators)
	assert.Equal(t, 800, c.SOC.DefaultRows)
	assert.Equal(t, uint64(42), c.SOC.DetectorSeed)
	assert.Equal(t, int64(5<<20), c.Fraud.MaxUploadBytes)
}

func TestParseOverridesDefaults(t *testing.T) {
	c, err := Parse([]byte(`
server:
  port: 9090
market:
  ttl:
    prices: 30s
`))
	require.NoError(t, err)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 30*time.Second, c.Market.TTL.Prices)
	assert.Equal(t, 60*time.Second, c.Market.TTL.Candles)
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"cache backend":   "cache:\n  backend: memcached\n",
		"kafka brokers":   "alerts:\n  backend: kafka\n",
		"clickhouse host": "alerts:\n  backend: clickhouse\n",
		"port":            "server:\n  port: 0\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestParseDetectorSeedIndependentOfDemoSeed(t *testing.T) {
	c, err := Parse([]byte("soc:\n  seed: 7\n"))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), c.SOC.Seed)
	assert.Equal(t, uint64(42), c.SOC.DetectorSeed)
}

func TestLoadWithEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: staging\n"), 0o600))

	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("ALERTS_BACKEND", "kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	c, err := LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "staging", c.Environment)
	assert.Equal(t, 7070, c.Server.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
}

func TestLoadWithEnvMissingFile(t *testing.T) {
	c, err := LoadWithEnv(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "development", c.Environment)
}

func TestDefaultPoolAndClientSettings(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Equal(t, 10, c.Cache.Redis.PoolSize)
	assert.Equal(t, 5, c.Cache.Redis.MinIdleConns)
	assert.Equal(t, 30*time.Second, c.Cache.Redis.PoolTimeout)
	assert.Equal(t, time.Minute, c.Cache.MemoryCleanup)
	assert.Equal(t, "cloudlab/1.0", c.Market.UserAgent)
}
