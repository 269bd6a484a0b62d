package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdminIDs(t *testing.T) {
	ids := ParseAdminIDs(" 123456789, 42 ,,7")
	assert.Len(t, ids, 3)
	assert.Contains(t, ids, "123456789")
	assert.Contains(t, ids, "42")
	assert.Contains(t, ids, "7")

	assert.Empty(t, ParseAdminIDs(""))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("ADMIN_IDS", "1,2")
	t.Setenv("LEADERBOARD_SIZE", "5")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "3")

	// An empty STORE_DRIVER is rejected, a set one is lower-cased.
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("STORE_DRIVER", "SQLite")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Contains(t, cfg.AdminIDs, "1")
	assert.NotContains(t, cfg.AdminIDs, "3")
	assert.Equal(t, 5, cfg.LeaderboardSize)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoadConfigRedisDriverNeedsHost(t *testing.T) {
	t.Setenv("STORE_DRIVER", DriverRedis)
	t.Setenv("REDIS_HOST", "")

	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("REDIS_HOST", "localhost")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.RedisFullAddr())
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("GROWSTAT_TEST_INT", "abc")
	assert.Equal(t, 9, getEnvAsInt("GROWSTAT_TEST_INT", 9))
	t.Setenv("GROWSTAT_TEST_BOOL", "false")
	assert.False(t, getEnvAsBool("GROWSTAT_TEST_BOOL", true))
}
