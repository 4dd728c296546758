package tagger

import (
	"context"

	"spotgrab/entity"
)

// TagService embeds canonical metadata into a produced audio file.
type TagService interface {
	Embed(ctx context.Context, path string, track entity.Track, artwork []byte) error
}

type Service struct{}
