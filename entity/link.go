package entity

import "regexp"

// Link identifies a single catalog resource extracted from a Spotify URL.
type Link struct {
	Kind CollectionKind
	ID   string
}

var linkRegex = regexp.MustCompile(`(track|album|playlist)/([a-zA-Z0-9]{22})`)

// ParseLink extracts the resource kind and 22-character identifier from a
// Spotify URL. It is a pure pattern match, no normalization of the
// surrounding URL is attempted.
func ParseLink(url string) (Link, bool) {
	match := linkRegex.FindStringSubmatch(url)
	if match == nil {
		return Link{}, false
	}
	return Link{Kind: CollectionKind(match[1]), ID: match[2]}, true
}
