package download

import (
	"context"

	"spotgrab/config"
	"spotgrab/entity"
	"spotgrab/pkg/http_client"
	"spotgrab/services/converter"
	"spotgrab/services/spotify"
	"spotgrab/services/tagger"
	"spotgrab/services/youtube"
	"spotgrab/track_sql"
)

type DownloadService interface {
	InitiateDownload(ctx context.Context, url string) error
	Resolve(ctx context.Context, link entity.Link) (entity.Collection, error)
	DownloadTrack(ctx context.Context, track entity.Track) entity.Result
	DownloadCollection(ctx context.Context, collection entity.Collection, progress ProgressFunc) entity.BatchReport
	GetStatus(ctx context.Context, id string) (string, error)
}

// ProgressFunc receives a progress signal after each batch item. It is
// invoked synchronously and must not block.
type ProgressFunc func(current, total int, title string)

// TrackStore is the idempotency store mapping source IDs to produced
// files and terminal statuses.
type TrackStore interface {
	UpsertTrack(ctx context.Context, record track_sql.Record) error
	GetTrack(ctx context.Context, id string) (track_sql.Record, bool, error)
}

type Service struct {
	Config     *config.Config
	HTTPClient *http_client.HTTPClient
	Catalog    spotify.CatalogService
	Youtube    youtube.YoutubeService
	Converter  converter.ConverterService
	Tagger     tagger.TagService
	Store      TrackStore
	URLQueue   chan string
}

func NewDownloadService(cfg *config.Config, httpClient *http_client.HTTPClient, store TrackStore) *Service {
	return &Service{
		Config:     cfg,
		HTTPClient: httpClient,
		Catalog:    spotify.NewService(cfg),
		Youtube:    youtube.NewYoutubeService(cfg, httpClient),
		Converter:  &converter.Service{Config: cfg},
		Tagger:     &tagger.Service{},
		Store:      store,
		URLQueue:   make(chan string, 100),
	}
}
