// Package storage implements the persistent store backing taskpad: named
// records (JSON blobs) kept in a local key/value table. It isolates the rest
// of the code from the storage medium; callers are responsible for detecting
// and recovering from malformed record content.
package storage

import "context"

// Record keys for the persisted state.
const (
	KeyUsers   = "taskpad:users:v1"
	KeySession = "taskpad:current-user:v1"
	KeyTasks   = "taskpad:tasks:v1"
)

// Store reads and writes named records. Get returns nil without error when
// the key is absent. Set replaces the whole value in a single write.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// TxStore is a Store that can run a function against a transactional view of
// itself. If fn returns an error, none of the writes it made are kept.
type TxStore interface {
	Store
	WithinTx(ctx context.Context, fn func(Store) error) error
}
