package pipeline

import (
	"net/url"
	"strings"
)

// placeholderSignatures are substrings identifying known generic or filler
// image URLs. A stored image matching any of these is treated as missing
// and re-resolved. The photo-ID entries are stock assets that earlier data
// imports assigned to dozens of unrelated cities.
var placeholderSignatures = []string{
	"placeholder",
	"default",
	"no-image",
	"noimage",
	"data:image/",
	"picsum.photos",
	"photo-1502602898657", // generic European street scene
	"photo-1477959858617", // generic night skyline
}

// UsableImageURL reports whether an existing image URL should be kept:
// it must parse as an absolute http(s) URL and carry no placeholder
// signature. Anything else means the city needs resolution; a malformed
// URL is a trigger, not an error.
func UsableImageURL(raw string) bool {
	if raw == "" {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" {
		return false
	}

	lower := strings.ToLower(raw)
	for _, sig := range placeholderSignatures {
		if strings.Contains(lower, sig) {
			return false
		}
	}
	return true
}
