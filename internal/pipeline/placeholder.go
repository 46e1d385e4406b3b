package pipeline

import (
	"fmt"
	"hash/fnv"

	"github.com/tripfolio/cityscout/internal/city"
)

// placeholderPhotoIDs is a curated set of neutral travel-themed Picsum
// photo IDs. The identity hash indexes into this list, so the catalog
// must never be reordered or shrunk: doing so would reassign placeholder
// images for every city already resolved through the fallback.
var placeholderPhotoIDs = []int{
	1015, // river valley
	1016, // canyon
	1018, // mountain lake
	1019, // coastal cliffs
	1036, // snowy peaks
	1039, // waterfall
	1043, // old town alley
	1050, // city lights
	1057, // dunes
	1067, // harbor
	1074, // hills at dusk
	1080, // rooftops
}

const (
	placeholderThumbWidth  = 1200
	placeholderThumbHeight = 800
	placeholderHeroWidth   = 1920
	placeholderHeroHeight  = 1080
)

// identityHash computes a stable FNV-1a 64 hash of the city's identity
// fields. Only name, country and id participate: mutable fields like tags
// or the summary must not shift the fallback selection.
func identityHash(c *city.City) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(c.Name))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write([]byte(c.Country))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write([]byte(c.ID))
	return h.Sum64()
}

// PlaceholderURLs derives the deterministic fallback image pair for a
// city. The low bits of the identity hash pick a photo from the fixed
// catalog; a second fold of the same hash becomes a seed parameter so two
// cities that collide on the catalog index still get distinct URLs.
func PlaceholderURLs(c *city.City) (thumb, hero string) {
	sum := identityHash(c)
	photoID := placeholderPhotoIDs[sum%uint64(len(placeholderPhotoIDs))]
	seed := (sum >> 32) ^ (sum & 0xffffffff)

	thumb = fmt.Sprintf("https://picsum.photos/id/%d/%d/%d?s=%d",
		photoID, placeholderThumbWidth, placeholderThumbHeight, seed)
	hero = fmt.Sprintf("https://picsum.photos/id/%d/%d/%d?s=%d",
		photoID, placeholderHeroWidth, placeholderHeroHeight, seed)
	return thumb, hero
}
