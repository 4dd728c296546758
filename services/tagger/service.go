package tagger

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bogem/id3v2/v2"
	"github.com/gcottom/go-zaplog"
	"go.uber.org/zap"

	"spotgrab/entity"
)

// Embed writes title, artist, album, release date and track number frames
// into the MP3 at path, attaching artwork as the front cover when present.
// A file without an existing tag container gets a fresh one; the absence
// of a tag is never an error.
func (s *Service) Embed(ctx context.Context, path string, track entity.Track, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		zaplog.ErrorC(ctx, "failed to open mp3 for tagging", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to open mp3 for tagging: %w", err)
	}
	defer tag.Close()

	tag.SetTitle(track.Title)
	tag.SetArtist(track.Artist)
	tag.SetAlbum(track.Album)
	if track.ReleaseDate != "" {
		tag.AddTextFrame("TDRC", tag.DefaultEncoding(), track.ReleaseDate)
	}
	if track.Number > 0 {
		tag.AddTextFrame("TRCK", tag.DefaultEncoding(), strconv.Itoa(track.Number))
	}

	if len(artwork) > 0 {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    http.DetectContentType(artwork),
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     artwork,
		})
	}

	if err := tag.Save(); err != nil {
		zaplog.ErrorC(ctx, "failed to save tag", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to save tag: %w", err)
	}
	return nil
}
