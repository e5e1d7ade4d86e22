package storage

import (
	"context"
	"io"
)

// ObjectStore is the object-storage boundary for the media pipeline. Put
// writes the object under the given key, overwriting any existing object with
// that key, and returns the public URL of the stored object.
type ObjectStore interface {
	Put(ctx context.Context, key string, data io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}
