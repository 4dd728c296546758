package youtube

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/gcottom/go-zaplog"
	"go.uber.org/zap"

	"spotgrab/entity"
)

// searchEntry is one flat-playlist line of yt-dlp --dump-json output.
type searchEntry struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Duration *float64 `json:"duration"`
	URL      string   `json:"url"`
}

// Search runs a yt-dlp flat search and returns the candidates in result
// order. yt-dlp is the only collaborator in the stack that can search by
// free-text query.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]entity.Candidate, error) {
	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, s.Config.YTDLPPath,
		"--dump-json",
		"--flat-playlist",
		"--no-warnings",
		fmt.Sprintf("ytsearch%d:%s", limit, query),
	)
	cmd.Stdout = &output
	zaplog.InfoC(ctx, "searching youtube", zap.String("query", query), zap.Int("limit", limit))
	if err := cmd.Run(); err != nil {
		zaplog.ErrorC(ctx, "youtube search failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("failed to search youtube: %w", err)
	}
	candidates, err := parseSearchOutput(output.Bytes())
	if err != nil {
		return nil, err
	}
	zaplog.InfoC(ctx, "youtube search complete", zap.String("query", query), zap.Int("count", len(candidates)))
	return candidates, nil
}

// parseSearchOutput decodes the newline-delimited JSON entries yt-dlp
// emits, one candidate per line. Entries without a duration are kept; the
// scorer excludes them from duration matching.
func parseSearchOutput(data []byte) ([]entity.Candidate, error) {
	candidates := make([]entity.Candidate, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry searchEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("failed to parse search result: %w", err)
		}
		candidate := entity.Candidate{Title: entry.Title, URL: entry.URL}
		if candidate.URL == "" {
			candidate.URL = entry.ID
		}
		if entry.Duration != nil {
			candidate.DurationMS = int(*entry.Duration * 1000)
		}
		candidates = append(candidates, candidate)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read search output: %w", err)
	}
	return candidates, nil
}
