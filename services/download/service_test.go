package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gcottom/go-zaplog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spotgrab/config"
	"spotgrab/entity"
	"spotgrab/track_sql"
)

type fakeCatalog struct {
	track      entity.Track
	collection entity.Collection
	err        error
}

func (f *fakeCatalog) Track(ctx context.Context, id string) (entity.Track, error) {
	return f.track, f.err
}

func (f *fakeCatalog) Album(ctx context.Context, id string) (entity.Collection, error) {
	return f.collection, f.err
}

func (f *fakeCatalog) Playlist(ctx context.Context, id string) (entity.Collection, error) {
	return f.collection, f.err
}

type fakeYoutube struct {
	searchFn      func(query string) ([]entity.Candidate, error)
	downloadFn    func(locator string) ([]byte, error)
	searchCalls   int
	downloadCalls int
}

func (f *fakeYoutube) Search(ctx context.Context, query string, limit int) ([]entity.Candidate, error) {
	f.searchCalls++
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(query)
}

func (f *fakeYoutube) Download(ctx context.Context, locator string) ([]byte, error) {
	f.downloadCalls++
	if f.downloadFn == nil {
		return []byte("audio"), nil
	}
	return f.downloadFn(locator)
}

type fakeConverter struct {
	convertFn func(inPath, outPath string) error
	calls     int
}

func (f *fakeConverter) Convert(ctx context.Context, inPath, outPath string) error {
	f.calls++
	if f.convertFn == nil {
		os.Remove(inPath)
		return os.WriteFile(outPath, []byte("mp3"), 0644)
	}
	return f.convertFn(inPath, outPath)
}

type fakeTagger struct {
	err   error
	calls int
}

func (f *fakeTagger) Embed(ctx context.Context, path string, track entity.Track, artwork []byte) error {
	f.calls++
	return f.err
}

type fakeStore struct {
	records map[string]track_sql.Record
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]track_sql.Record)}
}

func (f *fakeStore) UpsertTrack(ctx context.Context, record track_sql.Record) error {
	f.records[record.ID] = record
	return nil
}

func (f *fakeStore) GetTrack(ctx context.Context, id string) (track_sql.Record, bool, error) {
	record, found := f.records[id]
	return record, found, nil
}

func testService(t *testing.T) (*Service, *fakeYoutube, *fakeConverter, *fakeTagger, *fakeStore) {
	t.Helper()
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.DownloadDir = t.TempDir()
	cfg.TempDir = t.TempDir()
	cfg.Match.Policy = "strict"
	cfg.Batch.ItemDelayMS = 1

	yt := &fakeYoutube{searchFn: func(query string) ([]entity.Candidate, error) {
		return []entity.Candidate{{Title: "match", DurationMS: 180000, URL: "https://yt/watch?v=a"}}, nil
	}}
	conv := &fakeConverter{}
	tag := &fakeTagger{}
	store := newFakeStore()

	service := &Service{
		Config:    cfg,
		Catalog:   &fakeCatalog{},
		Youtube:   yt,
		Converter: conv,
		Tagger:    tag,
		Store:     store,
		URLQueue:  make(chan string, 10),
	}
	return service, yt, conv, tag, store
}

func testTrack() entity.Track {
	return entity.Track{SourceID: "src1", Title: "Song", Artist: "Artist", Album: "Album", DurationMS: 180000}
}

func TestDownloadTrackSuccess(t *testing.T) {
	ctx := zaplog.CreateAndInject(context.Background())
	service, yt, conv, tag, store := testService(t)

	result := service.DownloadTrack(ctx, testTrack())

	assert.Equal(t, entity.StatusSuccess, result.Status)
	assert.Equal(t, filepath.Join(service.Config.DownloadDir, "Song - Artist.mp3"), result.Path)
	assert.NoError(t, result.Err)
	assert.Equal(t, 1, yt.searchCalls)
	assert.Equal(t, 1, yt.downloadCalls)
	assert.Equal(t, 1, conv.calls)
	assert.Equal(t, 1, tag.calls)

	record, found, err := store.GetTrack(ctx, "src1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, string(entity.StatusSuccess), record.Status)
	assert.Equal(t, result.Path, record.Path)
}

func TestDownloadTrackSkipsWhenStoreHasSuccess(t *testing.T) {
	ctx := zaplog.CreateAndInject(context.Background())
	service, yt, conv, tag, store := testService(t)

	existing := filepath.Join(service.Config.DownloadDir, "previous.mp3")
	require.NoError(t, os.WriteFile(existing, []byte("mp3"), 0644))
	store.records["src1"] = track_sql.Record{ID: "src1", Path: existing, Status: string(entity.StatusSuccess)}

	result := service.DownloadTrack(ctx, testTrack())

	assert.Equal(t, entity.StatusSuccess, result.Status)
	assert.Equal(t, existing, result.Path)
	assert.Zero(t, yt.searchCalls)
	assert.Zero(t, yt.downloadCalls)
	assert.Zero(t, conv.calls)
	assert.Zero(t, tag.calls)
}

func TestDownloadTrackRetriesWhenRecordedFileIsGone(t *testing.T) {
	ctx := zaplog.CreateAndInject(context.Background())
	service, yt, _, _, store := testService(t)

	store.records["src1"] = track_sql.Record{
		ID: "src1", Path: filepath.Join(service.Config.DownloadDir, "deleted.mp3"),
		Status: string(entity.StatusSuccess),
	}

	result := service.DownloadTrack(ctx, testTrack())

	assert.Equal(t, entity.StatusSuccess, result.Status)
	assert.Equal(t, 1, yt.searchCalls)
}

func TestDownloadTrackSkipsWhenDerivedPathExists(t *testing.T) {
	ctx := zaplog.CreateAndInject(context.Background())
	service, yt, _, _, _ := testService(t)

	outPath := filepath.Join(service.Config.DownloadDir, "Song - Artist.mp3")
	require.NoError(t, os.WriteFile(outPath, []byte("mp3"), 0644))

	result := service.DownloadTrack(ctx, testTrack())

	assert.Equal(t, entity.StatusSuccess, result.Status)
	assert.Equal(t, outPath, result.Path)
	assert.Zero(t, yt.searchCalls)
}

func TestDownloadTrackNotFound(t *testing.T) {
	ctx := zaplog.CreateAndInject(context.Background())
	service, yt, conv, _, store := testService(t)
	yt.searchFn = func(query string) ([]entity.Candidate, error) {
		return []entity.Candidate{{Title: "way off", DurationMS: 400000, URL: "a"}}, nil
	}

	result := service.DownloadTrack(ctx, testTrack())

	assert.Equal(t, entity.StatusNotFound, result.Status)
	assert.ErrorIs(t, result.Err, ErrNoMatch)
	assert.Zero(t, conv.calls)

	record, found, _ := store.GetTrack(ctx, "src1")
	require.True(t, found)
	assert.Equal(t, string(entity.StatusNotFound), record.Status)
	assert.NotEmpty(t, record.ErrorMessage)
}

func TestDownloadTrackSearchErrorIsNotFound(t *testing.T) {
	ctx := zaplog.CreateAndInject(context.Background())
	service, yt, _, _, _ := testService(t)
	yt.searchFn = func(query string) ([]entity.Candidate, error) {
		return nil, errors.New("yt-dlp exploded")
	}

	result := service.DownloadTrack(ctx, testTrack())
	assert.Equal(t, entity.StatusNotFound, result.Status)
}

func TestDownloadTrackAcquisitionFailure(t *testing.T) {
	ctx := zaplog.CreateAndInject(context.Background())
	service, yt, _, tag, store := testService(t)
	yt.downloadFn = func(locator string) ([]byte, error) {
		return nil, errors.New("stream refused")
	}

	result := service.DownloadTrack(ctx, testTrack())

	assert.Equal(t, entity.StatusDownloadFailed, result.Status)
	assert.ErrorIs(t, result.Err, ErrAcquisition)
	assert.Zero(t, tag.calls)

	record, _, _ := store.GetTrack(ctx, "src1")
	assert.Equal(t, string(entity.StatusDownloadFailed), record.Status)
}

func TestDownloadTrackMissingOutputIsFailure(t *testing.T) {
	ctx := zaplog.CreateAndInject(context.Background())
	service, _, conv, tag, _ := testService(t)
	conv.convertFn = func(inPath, outPath string) error {
		return nil
	}

	result := service.DownloadTrack(ctx, testTrack())

	assert.Equal(t, entity.StatusDownloadFailed, result.Status)
	assert.ErrorIs(t, result.Err, ErrAcquisition)
	assert.Zero(t, tag.calls)
}

func TestDownloadTrackTagFailureKeepsAudio(t *testing.T) {
	ctx := zaplog.CreateAndInject(context.Background())
	service, _, _, tag, store := testService(t)
	tag.err = errors.New("corrupt frame")

	result := service.DownloadTrack(ctx, testTrack())

	assert.Equal(t, entity.StatusTagFailed, result.Status)
	assert.ErrorIs(t, result.Err, ErrTagging)
	assert.NotEmpty(t, result.Path)
	assert.FileExists(t, result.Path)

	record, _, _ := store.GetTrack(ctx, "src1")
	assert.Equal(t, string(entity.StatusTagFailed), record.Status)
	assert.Equal(t, result.Path, record.Path)
}

func TestResolveTrackLink(t *testing.T) {
	ctx := zaplog.CreateAndInject(context.Background())
	service, _, _, _, _ := testService(t)
	service.Catalog = &fakeCatalog{track: testTrack()}

	collection, err := service.Resolve(ctx, entity.Link{Kind: entity.KindTrack, ID: "src1"})
	require.NoError(t, err)
	assert.Equal(t, entity.KindTrack, collection.Kind)
	assert.Equal(t, "Song", collection.Name)
	require.Len(t, collection.Tracks, 1)
	assert.Equal(t, "src1", collection.Tracks[0].SourceID)
}

func TestResolveUnknownKind(t *testing.T) {
	ctx := zaplog.CreateAndInject(context.Background())
	service, _, _, _, _ := testService(t)

	_, err := service.Resolve(ctx, entity.Link{Kind: "artist", ID: "x"})
	assert.Error(t, err)
}

func TestInitiateDownload(t *testing.T) {
	service, _, _, _, _ := testService(t)
	ctx := zaplog.CreateAndInject(context.Background())

	require.NoError(t, service.InitiateDownload(ctx, "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC"))
	assert.Len(t, service.URLQueue, 1)

	assert.Error(t, service.InitiateDownload(ctx, "https://example.com/nothing"))
	assert.Len(t, service.URLQueue, 1)
}

func TestGetStatus(t *testing.T) {
	service, _, _, _, store := testService(t)
	ctx := zaplog.CreateAndInject(context.Background())

	status, err := service.GetStatus(ctx, "unknown-id")
	require.NoError(t, err)
	assert.Equal(t, "unknown", status)

	store.records["src1"] = track_sql.Record{ID: "src1", Status: string(entity.StatusSuccess)}
	status, err = service.GetStatus(ctx, "src1")
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusSuccess), status)
}
