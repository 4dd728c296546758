package spotify

import (
	"strings"

	spotifyapi "github.com/zmb3/spotify/v2"

	"spotgrab/entity"
)

// FromFullTrack projects a full Spotify track record into the canonical
// Track shape used by the rest of the pipeline.
func FromFullTrack(track *spotifyapi.FullTrack) entity.Track {
	return entity.Track{
		SourceID:    string(track.ID),
		Title:       track.Name,
		Artist:      joinArtists(track.Artists),
		Album:       track.Album.Name,
		ReleaseDate: track.Album.ReleaseDate,
		Number:      int(track.TrackNumber),
		DurationMS:  int(track.Duration),
		CoverArtURL: firstImageURL(track.Album.Images),
	}
}

// FromSimpleTrack projects an album-embedded track record. Album tracks
// carry no album block of their own, so name, release date and artwork
// come from the surrounding album.
func FromSimpleTrack(track spotifyapi.SimpleTrack, album *spotifyapi.SimpleAlbum) entity.Track {
	return entity.Track{
		SourceID:    string(track.ID),
		Title:       track.Name,
		Artist:      joinArtists(track.Artists),
		Album:       album.Name,
		ReleaseDate: album.ReleaseDate,
		Number:      int(track.TrackNumber),
		DurationMS:  int(track.Duration),
		CoverArtURL: firstImageURL(album.Images),
	}
}

// AppendPlaylistItems appends the tracks of one playlist page to dst in
// page order. Entries whose underlying track was removed catalog-side are
// skipped without failing the projection.
func AppendPlaylistItems(dst []entity.Track, items []spotifyapi.PlaylistItem) []entity.Track {
	for _, item := range items {
		if item.Track.Track == nil {
			continue
		}
		dst = append(dst, FromFullTrack(item.Track.Track))
	}
	return dst
}

func joinArtists(artists []spotifyapi.SimpleArtist) string {
	names := make([]string, 0, len(artists))
	for _, artist := range artists {
		names = append(names, artist.Name)
	}
	return strings.Join(names, ", ")
}

func firstImageURL(images []spotifyapi.Image) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}
