package fsutil

import (
	"fmt"
	"os"
	"regexp"
)

const maxFilenameLen = 200

var illegalChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// Sanitize strips characters that are illegal in common filesystem paths
// and truncates the result to 200 runes. It is total: empty input yields
// empty output, overlong input is cut, never rejected.
func Sanitize(raw string) string {
	clean := illegalChars.ReplaceAllString(raw, "")
	runes := []rune(clean)
	if len(runes) > maxFilenameLen {
		return string(runes[:maxFilenameLen])
	}
	return clean
}

// TrackFilename derives the stable output filename for a track.
func TrackFilename(title, artist string) string {
	return fmt.Sprintf("%s - %s.mp3", Sanitize(title), Sanitize(artist))
}

// CoverFilename derives the transient artwork sibling for a track.
func CoverFilename(title, artist string) string {
	return fmt.Sprintf("%s - %s_cover.jpg", Sanitize(title), Sanitize(artist))
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return os.MkdirAll(dir, 0755)
		}
		return err
	}
	return nil
}
