package kvstore

import "errors"

var (
	ErrKeyEmpty    = errors.New("key is empty")
	ErrKeyNotFound = errors.New("key not found")
	ErrNilValue    = errors.New("value is nil")
)

// Store is a minimal key/value facade. Values are marshaled as JSON.
type Store interface {
	SetAny(key string, value any) error
	// GetAny unmarshals into value and reports whether the key existed.
	GetAny(key string, value any) (bool, error)
	Delete(key string) error
	Close() error
}

func checkKeyAndValue(key string, value any) error {
	if key == "" {
		return ErrKeyEmpty
	}
	if value == nil {
		return ErrNilValue
	}
	return nil
}
