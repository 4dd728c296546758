package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gcottom/go-zaplog"
	"go.uber.org/zap"

	"spotgrab/config"
	"spotgrab/entity"
	"spotgrab/pkg/fsutil"
	"spotgrab/pkg/http_client"
	"spotgrab/services/download"
	"spotgrab/track_sql"
)

func main() {
	config, err := config.LoadConfigFromFile("")
	if err != nil {
		panic(err)
	}
	if err := RunCLI(config); err != nil {
		panic(err)
	}
}

func RunCLI(cfg *config.Config) error {
	ctx := zaplog.CreateAndInject(context.Background())

	if err := fsutil.EnsureDir(cfg.DownloadDir); err != nil {
		return err
	}
	if err := fsutil.EnsureDir(cfg.TempDir); err != nil {
		return err
	}

	httpClient, err := newHTTPClient(cfg)
	if err != nil {
		return err
	}
	trackSQL, err := track_sql.NewClient(cfg)
	if err != nil {
		return err
	}
	downloadService := download.NewDownloadService(cfg, httpClient, trackSQL)

	fmt.Println("spotgrab - paste a Spotify URL (track/album/playlist), or 'exit' to quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			return nil
		}
		runDownload(ctx, downloadService, input)
	}
}

func runDownload(ctx context.Context, downloadService download.DownloadService, url string) {
	link, ok := entity.ParseLink(url)
	if !ok {
		fmt.Println("unrecognized spotify url, expected a track, album, or playlist link")
		return
	}
	collection, err := downloadService.Resolve(ctx, link)
	if err != nil {
		zaplog.ErrorC(ctx, "failed to resolve collection", zap.String("url", url), zap.Error(err))
		fmt.Printf("failed to resolve %s: %v\n", link.Kind, err)
		return
	}
	fmt.Printf("downloading %s %q (%d tracks)\n", collection.Kind, collection.Name, len(collection.Tracks))
	report := downloadService.DownloadCollection(ctx, collection, func(current, total int, title string) {
		fmt.Printf("[%d/%d] %s\n", current, total, title)
	})
	fmt.Printf("done: %d succeeded, %d failed\n", report.Succeeded, report.Failed)
	for _, result := range report.Results {
		if result.Status != entity.StatusSuccess {
			fmt.Printf("  %s - %s: %s\n", result.Track.Title, result.Track.Artist, result.Status)
		}
	}
}

func newHTTPClient(cfg *config.Config) (*http_client.HTTPClient, error) {
	if cfg.CookieFile == "" {
		return http_client.NewHTTPClient(), nil
	}
	return http_client.NewHTTPClientWithCookies(cfg.CookieFile)
}
