package converter

import (
	"context"
	"os"
	"os/exec"

	"github.com/gcottom/go-zaplog"
	"go.uber.org/zap"
)

// Convert transcodes the raw audio stream at inPath into a 256kbps MP3 at
// outPath and removes inPath on success.
func (s *Service) Convert(ctx context.Context, inPath, outPath string) error {
	cmd := exec.CommandContext(ctx, s.Config.FFMPEGPath, buildArgs(inPath, outPath)...)

	zaplog.InfoC(ctx, "converting file", zap.String("in", inPath), zap.String("out", outPath))
	if err := cmd.Start(); err != nil {
		zaplog.ErrorC(ctx, "conversion error", zap.Error(err))
		return err
	}
	if err := cmd.Wait(); err != nil {
		zaplog.ErrorC(ctx, "conversion error", zap.Error(err))
		return err
	}
	zaplog.InfoC(ctx, "conversion complete", zap.String("out", outPath))
	if err := os.Remove(inPath); err != nil {
		zaplog.ErrorC(ctx, "failed to remove temp file", zap.Error(err))
		return err
	}
	return nil
}

func buildArgs(inPath, outPath string) []string {
	return []string{"-i", inPath, "-c:a", "libmp3lame", "-b:a", "256k", "-f", "mp3", "-y", outPath}
}
