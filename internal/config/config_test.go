package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "cayyap-test")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "cayyap-test", cfg.FirebaseProjectID)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, "cayyap_notifications", cfg.AndroidChannelID)
	assert.Equal(t, "waiter", cfg.StaffRole)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.True(t, cfg.FirestoreListen)
	assert.Equal(t, time.Minute, cfg.DirectoryCacheTTL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "@hourly", cfg.SummaryCron)
	assert.Equal(t, []string{"notifications", "orders", "relations"}, cfg.Collections())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "cayyap-test")
	t.Setenv("LOCALE", "tr")
	t.Setenv("STAFF_ROLE", "cashier")
	t.Setenv("FIRESTORE_LISTEN", "false")
	t.Setenv("DIRECTORY_CACHE_TTL", "5m")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("ORDERS_COLLECTION", "siparisler")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "tr", cfg.Locale)
	assert.Equal(t, "cashier", cfg.StaffRole)
	assert.False(t, cfg.FirestoreListen)
	assert.Equal(t, 5*time.Minute, cfg.DirectoryCacheTTL)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "siparisler", cfg.OrdersCollection)
}

func TestFromEnvRequiresProject(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "")

	_, err := FromEnv()
	assert.Error(t, err)
}
