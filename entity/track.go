package entity

// Track is the canonical, provider-independent metadata record used
// throughout the pipeline. It is never mutated after normalization.
type Track struct {
	SourceID    string
	Title       string
	Artist      string
	Album       string
	ReleaseDate string
	Number      int
	DurationMS  int
	CoverArtURL string
}

type CollectionKind string

const (
	KindTrack    CollectionKind = "track"
	KindAlbum    CollectionKind = "album"
	KindPlaylist CollectionKind = "playlist"
)

// Collection is an ordered set of tracks (an album or a playlist).
// Track order is catalog order and is preserved through batch processing.
type Collection struct {
	Kind   CollectionKind
	Name   string
	Owner  string
	Tracks []Track
}

// Candidate is a prospective audio source returned by a search against
// the video platform. Candidates are never persisted.
type Candidate struct {
	Title      string
	DurationMS int
	URL        string
}

type Status string

const (
	StatusSuccess        Status = "success"
	StatusNotFound       Status = "not_found"
	StatusDownloadFailed Status = "download_failed"
	StatusTagFailed      Status = "tag_failed"
)

// Result is the terminal outcome of one track acquisition. Path is set
// for StatusSuccess and StatusTagFailed (the audio file stays on disk
// even when tagging fails).
type Result struct {
	Track  Track
	Status Status
	Path   string
	Err    error
}

// BatchReport aggregates per-track results for a collection run.
type BatchReport struct {
	Attempted int
	Succeeded int
	Failed    int
	Results   []Result
}

func (r *BatchReport) Add(res Result) {
	r.Attempted++
	if res.Status == StatusSuccess {
		r.Succeeded++
	} else {
		r.Failed++
	}
	r.Results = append(r.Results, res)
}
