package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by KV.Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is a durable key-value store holding opaque byte values.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

const (
	BackendFile = "file"
	BackendBolt = "bolt"
)

// ValidBackend reports whether name is a known storage backend.
func ValidBackend(name string) bool {
	return name == BackendFile || name == BackendBolt
}

// OpenKV opens the named backend rooted at dir.
func OpenKV(backend, dir string) (KV, error) {
	switch backend {
	case BackendFile, "":
		return NewFileKV(dir)
	case BackendBolt:
		return NewBoltKV(dir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
