package youtube

import (
	"context"

	ytclient "github.com/kkdai/youtube/v2"

	"spotgrab/config"
	"spotgrab/entity"
	"spotgrab/pkg/http_client"
)

// YoutubeService is the video-platform collaborator: query search and
// audio acquisition by video locator.
type YoutubeService interface {
	Search(ctx context.Context, query string, limit int) ([]entity.Candidate, error)
	Download(ctx context.Context, locator string) ([]byte, error)
}

type Service struct {
	Config     *config.Config
	HTTPClient *http_client.HTTPClient
	YTClient   *ytclient.Client
}

func NewYoutubeService(cfg *config.Config, httpClient *http_client.HTTPClient) *Service {
	return &Service{
		Config:     cfg,
		HTTPClient: httpClient,
		YTClient:   &ytclient.Client{HTTPClient: httpClient.Client},
	}
}
