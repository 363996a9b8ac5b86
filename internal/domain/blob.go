package domain

import "context"

// BlobStore is the synchronous key-value capability the host environment
// supplies for durability. The engine serializes its entire account table as
// one blob under a single fixed key.
type BlobStore interface {
	// Get returns the blob stored under key, or ok=false when absent
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value under key, replacing any previous blob
	Set(ctx context.Context, key string, value []byte) error
}
