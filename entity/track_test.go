package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchReportAdd(t *testing.T) {
	report := BatchReport{}
	report.Add(Result{Track: Track{Title: "a"}, Status: StatusSuccess, Path: "a.mp3"})
	report.Add(Result{Track: Track{Title: "b"}, Status: StatusNotFound, Err: errors.New("no match")})
	report.Add(Result{Track: Track{Title: "c"}, Status: StatusDownloadFailed, Err: errors.New("boom")})
	report.Add(Result{Track: Track{Title: "d"}, Status: StatusTagFailed, Path: "d.mp3", Err: errors.New("bad tag")})

	assert.Equal(t, 4, report.Attempted)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 3, report.Failed)
	assert.Len(t, report.Results, 4)
	assert.Equal(t, "a", report.Results[0].Track.Title)
	assert.Equal(t, "d", report.Results[3].Track.Title)
}
