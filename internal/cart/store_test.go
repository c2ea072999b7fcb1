package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// failingSnapshotStore rejects every operation, simulating an unavailable
// backing store.
type failingSnapshotStore struct{}

func (failingSnapshotStore) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("store unavailable")
}
func (failingSnapshotStore) Save(context.Context, string, []byte) error {
	return errors.New("store unavailable")
}
func (failingSnapshotStore) Delete(context.Context, string) error {
	return errors.New("store unavailable")
}

func TestStorePersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	snaps := NewMemorySnapshotStore()

	s := NewStore(ctx, "sess-1", snaps, zap.NewNop())
	s.Add(ctx, protein(), 2, nil)
	s.Add(ctx, shirt(), 1, map[string]string{"size": "M", "color": "black"})

	// A new store for the same session sees the persisted cart
	reloaded := NewStore(ctx, "sess-1", snaps, zap.NewNop())
	c := reloaded.Cart()

	require.Len(t, c.Items, 2)
	assert.Equal(t, s.Total(), c.Total)
	assert.Equal(t, s.ItemsCount(), c.ItemsCount)
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	snaps := NewMemorySnapshotStore()

	a := NewStore(ctx, "sess-a", snaps, zap.NewNop())
	a.Add(ctx, protein(), 1, nil)

	b := NewStore(ctx, "sess-b", snaps, zap.NewNop())
	assert.Empty(t, b.Cart().Items)
}

func TestStoreDiscardsCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	snaps := NewMemorySnapshotStore()
	require.NoError(t, snaps.Save(ctx, "sess-1", []byte("garbage{{")))

	s := NewStore(ctx, "sess-1", snaps, zap.NewNop())

	assert.Empty(t, s.Cart().Items)
	// The corrupt payload is removed so the next load starts clean
	_, err := snaps.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestStoreSurvivesPersistFailures(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, "sess-1", failingSnapshotStore{}, zap.NewNop())

	c := s.Add(ctx, protein(), 2, nil)

	// Mutations succeed against the in-memory cart even when persistence fails
	assert.Len(t, c.Items, 1)
	assert.Equal(t, 9000.0, s.Total())
}

func TestStoreClearPersistsEmptyState(t *testing.T) {
	ctx := context.Background()
	snaps := NewMemorySnapshotStore()

	s := NewStore(ctx, "sess-1", snaps, zap.NewNop())
	s.Add(ctx, protein(), 2, nil)
	s.Clear(ctx)

	reloaded := NewStore(ctx, "sess-1", snaps, zap.NewNop())
	assert.Empty(t, reloaded.Cart().Items)
	assert.Equal(t, 0.0, reloaded.Total())
}

func TestStoreConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, "sess-1", NewMemorySnapshotStore(), zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(ctx, protein(), 1, nil)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, s.ItemsCount())
	assert.Equal(t, 20*4500.0, s.Total())
}

func TestManagerReturnsSameStorePerSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemorySnapshotStore(), zap.NewNop())

	a := m.Session(ctx, "sess-1")
	b := m.Session(ctx, "sess-1")
	other := m.Session(ctx, "sess-2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
}
