// Package storage abstracts the object store holding uploaded photos and
// documents. Keys follow the scheme {user_id}/{unix_ms}-{random}.{ext},
// with a "_thumb" variant for photo thumbnails.
package storage

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"
)

// Storage saves uploaded binary content and returns a publicly resolvable
// URL for each stored object.
type Storage interface {
	// Save writes the object under key and returns its public URL.
	Save(key string, r io.Reader) (string, error)

	// Remove deletes stored objects. Missing keys are not an error;
	// removal is best-effort cleanup.
	Remove(keys ...string) error

	// KeyFromURL recovers the object key from a public URL issued by
	// Save, or returns an empty string for foreign URLs.
	KeyFromURL(url string) string
}

const randAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewObjectKey builds a storage key for an upload by the given user.
func NewObjectKey(userID, ext string) string {
	suffix := make([]byte, 11)
	for i := range suffix {
		suffix[i] = randAlphabet[rand.Intn(len(randAlphabet))]
	}
	key := fmt.Sprintf("%s/%d-%s", userID, time.Now().UnixMilli(), suffix)
	if ext != "" {
		key += "." + strings.TrimPrefix(ext, ".")
	}
	return key
}

// ThumbnailKey derives the thumbnail key for a photo object key.
func ThumbnailKey(key string) string {
	if idx := strings.LastIndex(key, "."); idx >= 0 {
		return key[:idx] + "_thumb" + key[idx:]
	}
	return key + "_thumb"
}
