// Package store provides durable string key-value storage.
package store

import "errors"

var (
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store closed")
	// ErrCorrupt is returned when the backing data cannot be decoded. The
	// data is left untouched.
	ErrCorrupt = errors.New("store corrupt")
)

// Tx is a read-write view of the store inside Update.
type Tx interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// Store is a string-valued key-value store. Update applies all writes made
// by fn atomically: either every Set is persisted or none is.
type Store interface {
	Get(key string) (string, bool, error)
	Update(fn func(tx Tx) error) error
	Close() error
}

// mapTx is a copy-on-write transaction over a plain map.
type mapTx struct {
	base    map[string]string
	changes map[string]*string // nil value means deleted
}

func newMapTx(base map[string]string) *mapTx {
	return &mapTx{base: base, changes: make(map[string]*string)}
}

func (tx *mapTx) Get(key string) (string, bool) {
	if v, ok := tx.changes[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	v, ok := tx.base[key]
	return v, ok
}

func (tx *mapTx) Set(key, value string) {
	tx.changes[key] = &value
}

func (tx *mapTx) Delete(key string) {
	tx.changes[key] = nil
}

// merged returns a new map with the transaction's changes applied.
func (tx *mapTx) merged() map[string]string {
	out := make(map[string]string, len(tx.base)+len(tx.changes))
	for k, v := range tx.base {
		out[k] = v
	}
	for k, v := range tx.changes {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = *v
	}
	return out
}
