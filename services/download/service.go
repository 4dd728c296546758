package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gcottom/go-zaplog"
	"github.com/gcottom/retry"
	"go.uber.org/zap"

	"spotgrab/entity"
	"spotgrab/pkg/fsutil"
	"spotgrab/services/youtube"
	"spotgrab/track_sql"
)

// Resolve turns a parsed link into the collection of tracks it names. A
// bare track becomes a one-element collection so single and batch flows
// share the same path.
func (s *Service) Resolve(ctx context.Context, link entity.Link) (entity.Collection, error) {
	switch link.Kind {
	case entity.KindTrack:
		track, err := s.Catalog.Track(ctx, link.ID)
		if err != nil {
			return entity.Collection{}, err
		}
		return entity.Collection{Kind: entity.KindTrack, Name: track.Title, Tracks: []entity.Track{track}}, nil
	case entity.KindAlbum:
		return s.Catalog.Album(ctx, link.ID)
	case entity.KindPlaylist:
		return s.Catalog.Playlist(ctx, link.ID)
	default:
		return entity.Collection{}, fmt.Errorf("unknown link kind %q", link.Kind)
	}
}

// DownloadTrack drives the per-track state machine: idempotency pre-check,
// search, artwork, acquisition, tag embedding, cleanup. Every outcome is a
// terminal Result; errors never propagate past this boundary.
func (s *Service) DownloadTrack(ctx context.Context, track entity.Track) entity.Result {
	zaplog.InfoC(ctx, "processing track", zap.String("id", track.SourceID), zap.String("title", track.Title), zap.String("artist", track.Artist))

	outPath := filepath.Join(s.Config.DownloadDir, fsutil.TrackFilename(track.Title, track.Artist))
	if existing, ok := s.alreadyDownloaded(ctx, track, outPath); ok {
		zaplog.InfoC(ctx, "track already downloaded, skipping", zap.String("id", track.SourceID), zap.String("path", existing))
		return s.finish(ctx, entity.Result{Track: track, Status: entity.StatusSuccess, Path: existing})
	}

	candidate, ok := s.findCandidate(ctx, track)
	if !ok {
		zaplog.WarnC(ctx, "no match found", zap.String("id", track.SourceID), zap.String("title", track.Title))
		return s.finish(ctx, entity.Result{Track: track, Status: entity.StatusNotFound, Err: ErrNoMatch})
	}

	coverPath := s.fetchArtwork(ctx, track)
	defer s.cleanupArtwork(ctx, coverPath)

	if err := s.acquire(ctx, track, candidate, outPath); err != nil {
		zaplog.ErrorC(ctx, "failed to acquire audio", zap.String("id", track.SourceID), zap.Error(err))
		return s.finish(ctx, entity.Result{Track: track, Status: entity.StatusDownloadFailed, Err: fmt.Errorf("%w: %w", ErrAcquisition, err)})
	}
	// Never trust the collaborator's success flag alone.
	if !fsutil.FileExists(outPath) {
		zaplog.ErrorC(ctx, "output file missing after acquisition", zap.String("id", track.SourceID), zap.String("path", outPath))
		return s.finish(ctx, entity.Result{Track: track, Status: entity.StatusDownloadFailed, Err: fmt.Errorf("%w: output file missing", ErrAcquisition)})
	}

	var artwork []byte
	if coverPath != "" {
		data, err := os.ReadFile(coverPath)
		if err != nil {
			zaplog.WarnC(ctx, "failed to read artwork file", zap.String("path", coverPath), zap.Error(err))
		} else {
			artwork = data
		}
	}
	if err := s.Tagger.Embed(ctx, outPath, track, artwork); err != nil {
		zaplog.ErrorC(ctx, "failed to embed metadata", zap.String("id", track.SourceID), zap.Error(err))
		return s.finish(ctx, entity.Result{Track: track, Status: entity.StatusTagFailed, Path: outPath, Err: fmt.Errorf("%w: %w", ErrTagging, err)})
	}

	zaplog.InfoC(ctx, "track downloaded", zap.String("id", track.SourceID), zap.String("path", outPath))
	return s.finish(ctx, entity.Result{Track: track, Status: entity.StatusSuccess, Path: outPath})
}

// alreadyDownloaded reports whether a usable output already exists for
// this track, preferring the store's by-ID mapping over the derived path
// so that two tracks sanitizing to the same filename cannot shadow each
// other.
func (s *Service) alreadyDownloaded(ctx context.Context, track entity.Track, outPath string) (string, bool) {
	record, found, err := s.Store.GetTrack(ctx, track.SourceID)
	if err != nil {
		zaplog.WarnC(ctx, "track store lookup failed", zap.String("id", track.SourceID), zap.Error(err))
	}
	if found && record.Status == string(entity.StatusSuccess) && record.Path != "" && fsutil.FileExists(record.Path) {
		return record.Path, true
	}
	if !found && fsutil.FileExists(outPath) {
		return outPath, true
	}
	return "", false
}

func (s *Service) findCandidate(ctx context.Context, track entity.Track) (entity.Candidate, bool) {
	query := fmt.Sprintf("%s %s audio", track.Title, track.Artist)
	candidates, err := s.Youtube.Search(ctx, query, s.Config.Match.SearchResults)
	if err != nil {
		zaplog.ErrorC(ctx, "candidate search failed", zap.String("id", track.SourceID), zap.Error(err))
		return entity.Candidate{}, false
	}
	policy := youtube.MatchPolicy(s.Config.Match.Policy)
	best, ok := youtube.SelectBest(track.DurationMS, candidates, s.Config.Match.ToleranceMS, policy)
	if !ok {
		if closest, diff, found := youtube.Closest(track.DurationMS, candidates); found {
			zaplog.InfoC(ctx, "closest candidate rejected",
				zap.String("candidate", closest.Title), zap.Int("durationDiffMS", diff))
		}
		return entity.Candidate{}, false
	}
	zaplog.InfoC(ctx, "candidate selected", zap.String("id", track.SourceID), zap.String("candidate", best.Title))
	return best, true
}

// fetchArtwork downloads cover art to a transient sibling file. Failures
// only disable embedding; they never fail the track and never count
// against the batch.
func (s *Service) fetchArtwork(ctx context.Context, track entity.Track) string {
	if track.CoverArtURL == "" {
		return ""
	}
	res, err := retry.Retry(retry.NewAlgSimpleDefault(), 3, s.HTTPClient.Get, track.CoverArtURL)
	if err != nil {
		zaplog.WarnC(ctx, "failed to fetch artwork", zap.String("id", track.SourceID), zap.Error(err))
		return ""
	}
	data := res[0].([]byte)
	if err := fsutil.EnsureDir(s.Config.DownloadDir); err != nil {
		zaplog.WarnC(ctx, "failed to create download directory", zap.Error(err))
		return ""
	}
	coverPath := filepath.Join(s.Config.DownloadDir, fsutil.CoverFilename(track.Title, track.Artist))
	if err := os.WriteFile(coverPath, data, 0644); err != nil {
		zaplog.WarnC(ctx, "failed to write artwork file", zap.String("path", coverPath), zap.Error(err))
		return ""
	}
	return coverPath
}

func (s *Service) cleanupArtwork(ctx context.Context, coverPath string) {
	if coverPath == "" {
		return
	}
	if err := os.Remove(coverPath); err != nil && !os.IsNotExist(err) {
		zaplog.WarnC(ctx, "failed to remove artwork file", zap.String("path", coverPath), zap.Error(err))
	}
}

// acquire streams the candidate's audio to a temp file and transcodes it
// to MP3 at outPath.
func (s *Service) acquire(ctx context.Context, track entity.Track, candidate entity.Candidate, outPath string) error {
	streamBytes, err := s.Youtube.Download(ctx, candidate.URL)
	if err != nil {
		return err
	}
	if err := fsutil.EnsureDir(s.Config.TempDir); err != nil {
		return err
	}
	if err := fsutil.EnsureDir(s.Config.DownloadDir); err != nil {
		return err
	}
	tempPath := filepath.Join(s.Config.TempDir, track.SourceID+".temp")
	if err := os.WriteFile(tempPath, streamBytes, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	return s.Converter.Convert(ctx, tempPath, outPath)
}

// finish records the terminal state in the track store and returns the
// result unchanged.
func (s *Service) finish(ctx context.Context, result entity.Result) entity.Result {
	record := track_sql.Record{
		ID:     result.Track.SourceID,
		Title:  result.Track.Title,
		Artist: result.Track.Artist,
		Album:  result.Track.Album,
		Path:   result.Path,
		Status: string(result.Status),
	}
	if result.Err != nil {
		record.ErrorMessage = result.Err.Error()
	}
	if err := s.Store.UpsertTrack(ctx, record); err != nil {
		zaplog.WarnC(ctx, "failed to record track state", zap.String("id", record.ID), zap.Error(err))
	}
	return result
}
