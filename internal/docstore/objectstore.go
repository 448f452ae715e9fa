package docstore

import "context"

// ObjectStore is the minimal contract the document store needs from a blob
// backend. Get returns ErrNotFound when the key is absent; Put overwrites
// unconditionally, which is why the version index update is a documented race.
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Exists(ctx context.Context, key string) (bool, error)
}
