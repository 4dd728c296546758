package download

import (
	"context"
	"fmt"

	"github.com/gcottom/go-zaplog"
	"go.uber.org/zap"

	"spotgrab/entity"
)

// InitiateDownload validates the URL and queues it for the processor.
func (s *Service) InitiateDownload(ctx context.Context, url string) error {
	if _, ok := entity.ParseLink(url); !ok {
		return fmt.Errorf("unrecognized spotify url: %s", url)
	}
	s.URLQueue <- url
	return nil
}

// GetStatus reads the stored terminal state for a source ID.
func (s *Service) GetStatus(ctx context.Context, id string) (string, error) {
	record, found, err := s.Store.GetTrack(ctx, id)
	if err != nil {
		return "", err
	}
	if !found {
		return "unknown", nil
	}
	return record.Status, nil
}

// QueueProcessor drains the URL queue one batch at a time. Catalog-level
// failures abort that batch and are logged; the processor keeps running.
func (s *Service) QueueProcessor(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case url := <-s.URLQueue:
			s.processURL(ctx, url)
		}
	}
}

func (s *Service) processURL(ctx context.Context, url string) {
	link, ok := entity.ParseLink(url)
	if !ok {
		zaplog.WarnC(ctx, "dropping unrecognized url", zap.String("url", url))
		return
	}
	collection, err := s.Resolve(ctx, link)
	if err != nil {
		zaplog.ErrorC(ctx, "failed to resolve collection", zap.String("url", url), zap.Error(err))
		return
	}
	s.DownloadCollection(ctx, collection, func(current, total int, title string) {
		zaplog.InfoC(ctx, "batch progress", zap.Int("current", current), zap.Int("total", total), zap.String("track", title))
	})
}
