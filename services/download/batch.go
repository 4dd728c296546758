package download

import (
	"context"
	"time"

	"github.com/gcottom/go-zaplog"
	"go.uber.org/zap"

	"spotgrab/entity"
)

// DownloadCollection processes a collection strictly sequentially. A
// failing track is recorded and the batch moves on; cancellation is
// honored between items, never mid-item. The fixed inter-item delay is a
// politeness measure against the video platform.
func (s *Service) DownloadCollection(ctx context.Context, collection entity.Collection, progress ProgressFunc) entity.BatchReport {
	report := entity.BatchReport{}
	total := len(collection.Tracks)
	delay := time.Duration(s.Config.Batch.ItemDelayMS) * time.Millisecond
	zaplog.InfoC(ctx, "starting batch",
		zap.String("kind", string(collection.Kind)), zap.String("name", collection.Name), zap.Int("tracks", total))

	for i, track := range collection.Tracks {
		if ctx.Err() != nil {
			zaplog.WarnC(ctx, "batch interrupted", zap.Int("completed", i), zap.Int("total", total))
			break
		}
		result := s.DownloadTrack(ctx, track)
		report.Add(result)
		logResult(ctx, result)
		if progress != nil {
			progress(i+1, total, track.Title)
		}
		if i < total-1 {
			select {
			case <-ctx.Done():
			case <-time.After(delay):
			}
		}
	}

	zaplog.InfoC(ctx, "batch complete", zap.String("name", collection.Name),
		zap.Int("attempted", report.Attempted), zap.Int("succeeded", report.Succeeded), zap.Int("failed", report.Failed))
	return report
}

// logResult emits exactly one human-readable status line per terminal
// outcome; failures are never silent.
func logResult(ctx context.Context, result entity.Result) {
	switch result.Status {
	case entity.StatusSuccess:
		zaplog.InfoC(ctx, "track complete", zap.String("title", result.Track.Title), zap.String("path", result.Path))
	case entity.StatusNotFound:
		zaplog.WarnC(ctx, "track not found", zap.String("title", result.Track.Title), zap.String("artist", result.Track.Artist))
	case entity.StatusDownloadFailed:
		zaplog.ErrorC(ctx, "track download failed", zap.String("title", result.Track.Title), zap.Error(result.Err))
	case entity.StatusTagFailed:
		zaplog.ErrorC(ctx, "track tagging failed, audio kept", zap.String("title", result.Track.Title), zap.Error(result.Err))
	}
}
