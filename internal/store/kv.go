package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has never been set.
var ErrNotFound = errors.New("key not found")

// Keys used by the dashboard. Values are opaque JSON blobs to the store.
const (
	KeyUserSettings   = "userSettings"
	KeyCurrentWeather = "currentWeather"
)

// KV is the minimal key-value contract the dashboard persists through.
// Each call is atomic with respect to itself; multi-step updates must be
// serialized by the caller. Stored values have no expiry.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
