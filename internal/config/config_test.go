package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "TRANSFER_LOCK_MODE", "REDIS_ENABLED", "NOTIFY_TIMEOUT", "SEED_ACCOUNTS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, LockModeGlobal, cfg.LockMode)
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, 2*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Empty(t, cfg.SeedAccounts)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("TRANSFER_LOCK_MODE", "ACCOUNT")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("NOTIFY_TIMEOUT", "500ms")
	t.Setenv("SEED_ACCOUNTS", "id1:1, id2:10.50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, LockModeAccount, cfg.LockMode)
	assert.True(t, cfg.RedisEnabled)
	assert.Equal(t, 500*time.Millisecond, cfg.NotifyTimeout)
	require.Len(t, cfg.SeedAccounts, 2)
	assert.True(t, cfg.SeedAccounts["id2"].Equal(decimal.RequireFromString("10.5")))
}

func TestLoad_InvalidLockMode(t *testing.T) {
	t.Setenv("TRANSFER_LOCK_MODE", "optimistic")

	_, err := Load()
	assert.ErrorContains(t, err, "TRANSFER_LOCK_MODE")
}

func TestParseSeedAccounts(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "empty", raw: "", want: 0},
		{name: "single", raw: "acc:100", want: 1},
		{name: "missing balance", raw: "acc", wantErr: true},
		{name: "blank id", raw: ":10", wantErr: true},
		{name: "not a number", raw: "acc:ten", wantErr: true},
		{name: "negative", raw: "acc:-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeedAccounts(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	t.Setenv("SOME_BOOL", "nope")
	t.Setenv("SOME_DURATION", "5s")

	assert.Equal(t, 7, GetIntEnv("SOME_INT", 7))
	assert.True(t, GetBoolEnv("SOME_BOOL", true))
	assert.Equal(t, 5*time.Second, GetDurationEnv("SOME_DURATION", time.Second))
	assert.Equal(t, "fallback", GetEnv("SOME_UNSET_KEY_FOR_TEST", "fallback"))
}
