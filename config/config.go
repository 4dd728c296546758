package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DownloadDir string `yaml:"downloadDir"`
	TempDir     string `yaml:"tempDir"`
	DBPath      string `yaml:"dbPath"`
	FFMPEGPath  string `yaml:"ffmpegPath"`
	YTDLPPath   string `yaml:"ytdlpPath"`
	CookieFile  string `yaml:"cookieFile"`
	Spotify     struct {
		ClientID     string `yaml:"clientID"`
		ClientSecret string `yaml:"clientSecret"`
	} `yaml:"spotify"`
	Telegram struct {
		BotToken       string  `yaml:"botToken"`
		APIBaseURL     string  `yaml:"apiBaseURL"`
		MaxTracks      int     `yaml:"maxTracks"`
		AllowedChatIDs []int64 `yaml:"allowedChatIDs"`
	} `yaml:"telegram"`
	Match struct {
		ToleranceMS   int    `yaml:"toleranceMS"`
		Policy        string `yaml:"policy"`
		SearchResults int    `yaml:"searchResults"`
	} `yaml:"match"`
	Batch struct {
		ItemDelayMS int `yaml:"itemDelayMS"`
	} `yaml:"batch"`
	Ports struct {
		Downloader int `yaml:"downloader"`
	} `yaml:"ports"`
}

func LoadConfigFromFile(path string) (*Config, error) {
	if path == "" {
		path = "config/config.yaml"
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	dec := yaml.NewDecoder(file)
	if err := dec.Decode(&config); err != nil {
		return nil, err
	}
	config.ApplyDefaults()
	return &config, nil
}

// ApplyDefaults fills unset fields with working defaults and pulls secrets
// from the environment when the file leaves them blank.
func (c *Config) ApplyDefaults() {
	if c.DownloadDir == "" {
		c.DownloadDir = "downloads"
	}
	if c.TempDir == "" {
		c.TempDir = "temp"
	}
	if c.DBPath == "" {
		c.DBPath = "spotgrab.db"
	}
	if c.FFMPEGPath == "" {
		c.FFMPEGPath = "ffmpeg"
	}
	if c.YTDLPPath == "" {
		c.YTDLPPath = "yt-dlp"
	}
	if c.Spotify.ClientID == "" {
		c.Spotify.ClientID = os.Getenv("SPOTIFY_CLIENT_ID")
	}
	if c.Spotify.ClientSecret == "" {
		c.Spotify.ClientSecret = os.Getenv("SPOTIFY_CLIENT_SECRET")
	}
	if c.Telegram.BotToken == "" {
		c.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	if c.Telegram.APIBaseURL == "" {
		c.Telegram.APIBaseURL = "https://api.telegram.org"
	}
	if c.Telegram.MaxTracks <= 0 {
		c.Telegram.MaxTracks = 50
	}
	if c.Match.ToleranceMS <= 0 {
		c.Match.ToleranceMS = 20000
	}
	if c.Match.Policy == "" {
		c.Match.Policy = "lenient"
	}
	if c.Match.SearchResults <= 0 {
		c.Match.SearchResults = 5
	}
	if c.Batch.ItemDelayMS <= 0 {
		c.Batch.ItemDelayMS = 2000
	}
	if c.Ports.Downloader <= 0 {
		c.Ports.Downloader = 8080
	}
}
