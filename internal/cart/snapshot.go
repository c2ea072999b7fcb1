package cart

import (
	"context"
	"errors"
)

// SnapshotStore persists the serialized cart of a session under a fixed
// per-session key. The store is written after every mutation and read once
// when the session's cart store is created.
type SnapshotStore interface {
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Save(ctx context.Context, sessionID string, data []byte) error
	Delete(ctx context.Context, sessionID string) error
}

// ErrNoSnapshot is returned by Load when the session has no stored cart
var ErrNoSnapshot = errors.New("no cart snapshot")
