package spotify

import (
	"context"

	spotifyapi "github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2/clientcredentials"

	"spotgrab/config"
	"spotgrab/entity"
)

// CatalogService resolves Spotify identifiers into canonical records.
type CatalogService interface {
	Track(ctx context.Context, id string) (entity.Track, error)
	Album(ctx context.Context, id string) (entity.Collection, error)
	Playlist(ctx context.Context, id string) (entity.Collection, error)
}

type Service struct {
	Config        *config.Config
	SpotifyConfig *clientcredentials.Config
	Client        *spotifyapi.Client
}
