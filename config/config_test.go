package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `downloadDir: /tmp/music
spotify:
  clientID: test-id
  clientSecret: test-secret
telegram:
  maxTracks: 10
match:
  toleranceMS: 15000
  policy: strict
ports:
  downloader: 9090
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/music", cfg.DownloadDir)
	assert.Equal(t, "test-id", cfg.Spotify.ClientID)
	assert.Equal(t, "test-secret", cfg.Spotify.ClientSecret)
	assert.Equal(t, 10, cfg.Telegram.MaxTracks)
	assert.Equal(t, 15000, cfg.Match.ToleranceMS)
	assert.Equal(t, "strict", cfg.Match.Policy)
	assert.Equal(t, 9090, cfg.Ports.Downloader)

	// Unset fields get defaults.
	assert.Equal(t, "temp", cfg.TempDir)
	assert.Equal(t, "ffmpeg", cfg.FFMPEGPath)
	assert.Equal(t, "yt-dlp", cfg.YTDLPPath)
}

func TestLoadConfigFromFileMissing(t *testing.T) {
	_, err := LoadConfigFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, "downloads", cfg.DownloadDir)
	assert.Equal(t, "temp", cfg.TempDir)
	assert.Equal(t, "spotgrab.db", cfg.DBPath)
	assert.Equal(t, "https://api.telegram.org", cfg.Telegram.APIBaseURL)
	assert.Equal(t, 50, cfg.Telegram.MaxTracks)
	assert.Equal(t, 20000, cfg.Match.ToleranceMS)
	assert.Equal(t, "lenient", cfg.Match.Policy)
	assert.Equal(t, 5, cfg.Match.SearchResults)
	assert.Equal(t, 2000, cfg.Batch.ItemDelayMS)
	assert.Equal(t, 8080, cfg.Ports.Downloader)
}

func TestApplyDefaultsEnvFallback(t *testing.T) {
	t.Setenv("SPOTIFY_CLIENT_ID", "env-id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "env-secret")
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")

	cfg := &Config{}
	cfg.ApplyDefaults()
	assert.Equal(t, "env-id", cfg.Spotify.ClientID)
	assert.Equal(t, "env-secret", cfg.Spotify.ClientSecret)
	assert.Equal(t, "env-token", cfg.Telegram.BotToken)

	// File values win over the environment.
	cfg = &Config{}
	cfg.Spotify.ClientID = "file-id"
	cfg.ApplyDefaults()
	assert.Equal(t, "file-id", cfg.Spotify.ClientID)
}
