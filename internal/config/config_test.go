package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "data/companion.json", cfg.StoragePath)
	assert.Equal(t, "companion", cfg.CompanionID)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.ClassifyTimeout)
	assert.Equal(t, 30*time.Second, cfg.TickInterval)
	assert.Equal(t, 6*time.Hour, cfg.PostInterval)
	assert.Equal(t, 0.5, cfg.TraitExtraversion)
}

func TestNew_EnvironmentOverrides(t *testing.T) {
	t.Setenv("COMPANION_ID", "ava")
	t.Setenv("TRAIT_EXTRAVERSION", "0.9")
	t.Setenv("POST_INTERVAL", "90m")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "ava", cfg.CompanionID)
	assert.Equal(t, 0.9, cfg.TraitExtraversion)
	assert.Equal(t, 90*time.Minute, cfg.PostInterval)
}

func TestNew_RejectsMalformedValues(t *testing.T) {
	t.Setenv("TICK_INTERVAL", "not-a-duration")
	_, err := New()
	require.Error(t, err)
}
