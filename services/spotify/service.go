package spotify

import (
	"context"
	"errors"
	"fmt"

	"github.com/gcottom/go-zaplog"
	"github.com/gcottom/retry"
	spotifyapi "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"

	"spotgrab/config"
	"spotgrab/entity"
)

// NewService builds the shared Spotify client once per run. The
// clientcredentials transport fetches and refreshes its own token, so the
// handle stays valid for the life of the process and is reused read-only
// across all sequential calls.
func NewService(cfg *config.Config) *Service {
	spotifyConfig := &clientcredentials.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	return &Service{
		Config:        cfg,
		SpotifyConfig: spotifyConfig,
		Client:        spotifyapi.New(spotifyConfig.Client(context.Background())),
	}
}

func (s *Service) Track(ctx context.Context, id string) (entity.Track, error) {
	res, err := retry.Retry(retry.NewAlgFibonacciDefault(), 3, s.getTrack, ctx, id)
	if err != nil {
		zaplog.ErrorC(ctx, "failed to get track", zap.String("id", id), zap.Error(err))
		return entity.Track{}, err
	}
	return res[0].(entity.Track), nil
}

func (s *Service) getTrack(ctx context.Context, id string) (entity.Track, error) {
	full, err := s.Client.GetTrack(ctx, spotifyapi.ID(id))
	if err != nil {
		return entity.Track{}, fmt.Errorf("failed to get track %s: %w", id, err)
	}
	return FromFullTrack(full), nil
}

func (s *Service) Album(ctx context.Context, id string) (entity.Collection, error) {
	res, err := retry.Retry(retry.NewAlgFibonacciDefault(), 3, s.getAlbum, ctx, id)
	if err != nil {
		zaplog.ErrorC(ctx, "failed to get album", zap.String("id", id), zap.Error(err))
		return entity.Collection{}, err
	}
	return res[0].(entity.Collection), nil
}

func (s *Service) getAlbum(ctx context.Context, id string) (entity.Collection, error) {
	album, err := s.Client.GetAlbum(ctx, spotifyapi.ID(id))
	if err != nil {
		return entity.Collection{}, fmt.Errorf("failed to get album %s: %w", id, err)
	}
	tracks := make([]entity.Track, 0, len(album.Tracks.Tracks))
	for {
		for _, simple := range album.Tracks.Tracks {
			tracks = append(tracks, FromSimpleTrack(simple, &album.SimpleAlbum))
		}
		err = s.Client.NextPage(ctx, &album.Tracks)
		if errors.Is(err, spotifyapi.ErrNoMorePages) {
			break
		}
		if err != nil {
			return entity.Collection{}, fmt.Errorf("failed to page album tracks: %w", err)
		}
	}
	zaplog.InfoC(ctx, "resolved album", zap.String("id", id), zap.Int("tracks", len(tracks)))
	return entity.Collection{Kind: entity.KindAlbum, Name: album.Name, Tracks: tracks}, nil
}

func (s *Service) Playlist(ctx context.Context, id string) (entity.Collection, error) {
	res, err := retry.Retry(retry.NewAlgFibonacciDefault(), 3, s.getPlaylist, ctx, id)
	if err != nil {
		zaplog.ErrorC(ctx, "failed to get playlist", zap.String("id", id), zap.Error(err))
		return entity.Collection{}, err
	}
	return res[0].(entity.Collection), nil
}

func (s *Service) getPlaylist(ctx context.Context, id string) (entity.Collection, error) {
	playlist, err := s.Client.GetPlaylist(ctx, spotifyapi.ID(id))
	if err != nil {
		return entity.Collection{}, fmt.Errorf("failed to get playlist %s: %w", id, err)
	}
	page, err := s.Client.GetPlaylistItems(ctx, spotifyapi.ID(id))
	if err != nil {
		return entity.Collection{}, fmt.Errorf("failed to get playlist items %s: %w", id, err)
	}
	var tracks []entity.Track
	// All pages are consumed before the collection is surfaced; a partial
	// playlist is never returned.
	for {
		tracks = AppendPlaylistItems(tracks, page.Items)
		err = s.Client.NextPage(ctx, page)
		if errors.Is(err, spotifyapi.ErrNoMorePages) {
			break
		}
		if err != nil {
			return entity.Collection{}, fmt.Errorf("failed to page playlist items: %w", err)
		}
	}
	zaplog.InfoC(ctx, "resolved playlist", zap.String("id", id), zap.Int("tracks", len(tracks)))
	return entity.Collection{
		Kind:   entity.KindPlaylist,
		Name:   playlist.Name,
		Owner:  playlist.Owner.DisplayName,
		Tracks: tracks,
	}, nil
}
