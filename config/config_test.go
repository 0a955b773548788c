package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DOMAIN_NAME", "https://example.net")
	t.Setenv("BOARD_URL", "{domain}/b/catalog.json")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.EnableTwitter)
	assert.False(t, cfg.EnableBluesky)
	assert.Equal(t, DefaultPostFormat, cfg.PostFormat)
	assert.Equal(t, 3*time.Hour, cfg.MinThreadAge)
	assert.Equal(t, 150, cfg.BodyLimit)
	assert.Equal(t, "https://bsky.social", cfg.Bluesky.Host)
}

func TestLoadExpandsDomainInBoardUrl(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.net/b/catalog.json", cfg.BoardUrl)
}

func TestLoadMissingDomain(t *testing.T) {
	t.Setenv("BOARD_URL", "https://example.net/b/catalog.json")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadEnabledPlatformNeedsCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENABLE_TWITTER", "true")
	t.Setenv("HASHTAG_NAME", "boards")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("API_KEY", "k")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadEnabledPlatformNeedsHashtag(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENABLE_BLUESKY", "true")
	t.Setenv("BLUESKY_HANDLE", "bot.example.net")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("HASHTAG_NAME", "boards")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadMinAgeFromHours(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TIME_INTERVAL_HOURS", "0.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.MinThreadAge)
}
