package main

import (
	"context"
	"errors"

	"github.com/gcottom/go-zaplog"

	"spotgrab/config"
	"spotgrab/pkg/fsutil"
	"spotgrab/pkg/http_client"
	"spotgrab/services/download"
	"spotgrab/services/telegram"
	"spotgrab/track_sql"
)

func main() {
	config, err := config.LoadConfigFromFile("")
	if err != nil {
		panic(err)
	}
	if err := RunBot(config); err != nil {
		panic(err)
	}
}

func RunBot(cfg *config.Config) error {
	ctx := zaplog.CreateAndInject(context.Background())
	zaplog.InfoC(ctx, "starting spotgrab telegram bot")

	if cfg.Telegram.BotToken == "" {
		return errors.New("telegram bot token is not configured")
	}
	if err := fsutil.EnsureDir(cfg.DownloadDir); err != nil {
		return err
	}
	if err := fsutil.EnsureDir(cfg.TempDir); err != nil {
		return err
	}

	zaplog.InfoC(ctx, "creating http client")
	httpClient, err := newHTTPClient(cfg)
	if err != nil {
		return err
	}

	zaplog.InfoC(ctx, "creating track sql client")
	trackSQL, err := track_sql.NewClient(cfg)
	if err != nil {
		return err
	}

	zaplog.InfoC(ctx, "creating download service")
	downloadService := download.NewDownloadService(cfg, httpClient, trackSQL)

	zaplog.InfoC(ctx, "creating telegram bot")
	bot := telegram.NewBot(cfg, downloadService, trackSQL)

	bot.Run(ctx)
	return nil
}

func newHTTPClient(cfg *config.Config) (*http_client.HTTPClient, error) {
	if cfg.CookieFile == "" {
		return http_client.NewHTTPClient(), nil
	}
	return http_client.NewHTTPClientWithCookies(cfg.CookieFile)
}
