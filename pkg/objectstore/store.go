// Package objectstore is the bucket side of the gallery: upload, remove and
// public URL derivation for object paths.
package objectstore

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
)

var ErrObjectExists = errors.New("object already exists")

// Store is the subset of bucket operations the gallery relies on.
type Store interface {
	// Upload writes body at path. With upsert=false an existing object is an error.
	Upload(ctx context.Context, path string, body io.Reader, contentType string, upsert bool) error
	// Remove deletes every path; missing objects are not an error.
	Remove(ctx context.Context, paths []string) error
	// PublicURL derives the URL a browser can load the object from.
	PublicURL(path string) string
}

// escapePath escapes each segment but keeps the separators.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
