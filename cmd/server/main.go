package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gcottom/go-zaplog"

	"spotgrab/config"
	"spotgrab/handlers"
	"spotgrab/pkg/fsutil"
	"spotgrab/pkg/gin_middleware"
	"spotgrab/pkg/http_client"
	"spotgrab/services/download"
	"spotgrab/track_sql"
)

func main() {
	config, err := config.LoadConfigFromFile("")
	if err != nil {
		panic(err)
	}
	if err := RunServer(config); err != nil {
		panic(err)
	}
}

func RunServer(cfg *config.Config) error {
	ctx := zaplog.CreateAndInject(context.Background())
	zaplog.InfoC(ctx, "starting spotgrab server")

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

	zaplog.InfoC(ctx, "starting queue processor")
	go downloadService.QueueProcessor(ctx)

	zaplog.InfoC(ctx, "creating gin engine")
	ginws := gin_middleware.NewGinEngine(ctx)

	zaplog.InfoC(ctx, "setting up routes")
	handlers.SetupRoutes(ginws, downloadService)

	zaplog.InfoC(ctx, fmt.Sprintf("serving on port %d", cfg.Ports.Downloader))
	return http.ListenAndServe(fmt.Sprintf(":%d", cfg.Ports.Downloader), ginws)
}

func newHTTPClient(cfg *config.Config) (*http_client.HTTPClient, error) {
	if cfg.CookieFile == "" {
		return http_client.NewHTTPClient(), nil
	}
	return http_client.NewHTTPClientWithCookies(cfg.CookieFile)
}
