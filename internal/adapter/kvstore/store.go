// Package kvstore defines the keyed persistence capability used for the
// niqqud cache, the syllable-tree cache, and the navigation position,
// plus an in-memory implementation. A PostgreSQL-backed implementation
// lives in internal/adapter/postgres/kv.
package kvstore

import "context"

// Store is a minimal keyed string store. Get returns domain.ErrNotFound
// for missing keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Well-known key prefixes. Cache entries are keyed by text fingerprint;
// the navigation position uses a single fixed key.
const (
	NiqqudCachePrefix     = "niqqud:"
	SyllableTreePrefix    = "syllables:"
	NavigationPositionKey = "navigation:position"
)
