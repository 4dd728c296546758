package download

import "errors"

var (
	// ErrNoMatch means the search produced no acceptable candidate.
	ErrNoMatch = errors.New("no acceptable candidate found")
	// ErrAcquisition covers search/stream/transcode failures, including a
	// missing output file after a collaborator reported success.
	ErrAcquisition = errors.New("audio acquisition failed")
	// ErrTagging means the tag container could not be opened or written;
	// the audio file itself stays on disk.
	ErrTagging = errors.New("tag embedding failed")
	// ErrDelivery means the produced file could not be handed off.
	ErrDelivery = errors.New("delivery failed")
)
