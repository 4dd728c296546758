package youtube

import (
	"context"
	"fmt"
	"io"

	"github.com/gcottom/go-zaplog"
	ytclient "github.com/kkdai/youtube/v2"
	"go.uber.org/zap"
)

// Download fetches the best available audio stream for a video locator
// (watch URL or bare video ID) and returns the raw stream bytes.
func (s *Service) Download(ctx context.Context, locator string) ([]byte, error) {
	zaplog.InfoC(ctx, "fetching video info", zap.String("locator", locator))
	videoInfo, err := s.YTClient.GetVideoContext(ctx, locator)
	if err != nil {
		zaplog.ErrorC(ctx, "failed to get video info", zap.String("locator", locator), zap.Error(err))
		return nil, fmt.Errorf("failed to get video info: %w", err)
	}
	bestFormat := getBestAudioFormat(videoInfo.Formats.Type("audio"))
	if bestFormat == nil {
		zaplog.ErrorC(ctx, "no audio format available", zap.String("locator", locator))
		return nil, fmt.Errorf("no audio format available")
	}
	zaplog.InfoC(ctx, "best audio format found", zap.String("locator", locator), zap.Int("bitrate", bestFormat.Bitrate))

	stream, _, err := s.YTClient.GetStreamContext(ctx, videoInfo, bestFormat)
	if err != nil {
		zaplog.ErrorC(ctx, "failed to get stream", zap.String("locator", locator), zap.Error(err))
		return nil, fmt.Errorf("failed to get stream: %w", err)
	}
	defer stream.Close()
	streamBytes, err := io.ReadAll(stream)
	if err != nil {
		zaplog.ErrorC(ctx, "failed to read stream", zap.String("locator", locator), zap.Error(err))
		return nil, fmt.Errorf("failed to read stream: %w", err)
	}
	zaplog.InfoC(ctx, "downloaded youtube stream", zap.String("locator", locator), zap.Int("bytes", len(streamBytes)))
	return streamBytes, nil
}

func getBestAudioFormat(formats ytclient.FormatList) *ytclient.Format {
	var bestFormat *ytclient.Format
	maxBitrate := 0
	for _, format := range formats {
		if format.Bitrate > maxBitrate {
			best := format
			bestFormat = &best
			maxBitrate = format.Bitrate
		}
	}
	return bestFormat
}
