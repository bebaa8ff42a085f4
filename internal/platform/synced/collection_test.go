package synced_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenith/internal/platform/clock"
	"zenith/internal/platform/docstore"
	"zenith/internal/platform/id"
	"zenith/internal/platform/synced"
)

type note struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Title     string    `json:"title"`
}

type noteCodec struct{}

func (noteCodec) Decode(doc docstore.Document) (note, error) {
	if !doc.Fields.Has("title") {
		return note{}, errors.New("missing title")
	}
	return note{ID: doc.ID, CreatedAt: doc.CreatedAt, Title: doc.Fields.String("title")}, nil
}

func (noteCodec) Encode(n note) docstore.Fields { return docstore.Fields{"title": n.Title} }
func (noteCodec) ID(n note) string              { return n.ID }

type mapCache struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *mapCache) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *mapCache) get(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}

func newCollection(t *testing.T) (*synced.Collection[note], *docstore.Memory, *clock.Manual, *mapCache) {
	t.Helper()
	clk := clock.NewManual(time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC))
	store := docstore.NewMemory(clk, &id.Sequence{Prefix: "n"})
	cache := &mapCache{values: map[string]string{}}
	col := synced.New[note](store, "notes", noteCodec{}, synced.Options{
		Order: docstore.Desc(docstore.FieldCreatedAt),
		Cache: cache,
	})
	require.NoError(t, col.Start(context.Background()))
	t.Cleanup(func() {
		col.Stop()
		_ = store.Close()
	})
	require.NoError(t, col.WaitReady(context.Background()))
	return col, store, clk, cache
}

func TestAddIsEchoOnly(t *testing.T) {
	t.Parallel()
	col, _, clk, _ := newCollection(t)
	ctx := context.Background()

	first := col.Add(ctx, note{Title: "first"})
	require.NotEmpty(t, first)
	clk.Advance(time.Second)
	col.Add(ctx, note{Title: "second"})

	require.Eventually(t, func() bool { return len(col.Items()) == 2 }, time.Second, 5*time.Millisecond)
	items := col.Items()
	assert.Equal(t, "second", items[0].Title)
	assert.Equal(t, first, items[1].ID)
	assert.False(t, items[1].CreatedAt.IsZero())
}

func TestUpdateAndDeleteFlowThroughSnapshots(t *testing.T) {
	t.Parallel()
	col, _, _, cache := newCollection(t)
	ctx := context.Background()

	docID := col.Add(ctx, note{Title: "draft"})
	require.Eventually(t, func() bool { _, ok := col.Find(docID); return ok }, time.Second, 5*time.Millisecond)

	col.Update(ctx, note{ID: docID, Title: "final"})
	require.Eventually(t, func() bool {
		n, ok := col.Find(docID)
		return ok && n.Title == "final"
	}, time.Second, 5*time.Millisecond)

	var cached []note
	require.Eventually(t, func() bool {
		return json.Unmarshal([]byte(cache.get("zenith-notes")), &cached) == nil && len(cached) == 1 && cached[0].Title == "final"
	}, time.Second, 5*time.Millisecond)

	col.Delete(ctx, docID)
	require.Eventually(t, func() bool { return len(col.Items()) == 0 }, time.Second, 5*time.Millisecond)
	_, ok := col.Find(docID)
	assert.False(t, ok)
}

func TestFailedWritesAreSwallowed(t *testing.T) {
	t.Parallel()
	col, store, _, _ := newCollection(t)
	ctx := context.Background()
	store.FailWrites(errors.New("offline"))

	assert.Empty(t, col.Add(ctx, note{Title: "lost"}))
	col.Update(ctx, note{ID: "n-404", Title: "x"})
	col.Delete(ctx, "n-404")
	col.Update(ctx, note{Title: "no id"})

	_, err := col.TryAdd(ctx, note{Title: "lost"})
	require.Error(t, err)
	assert.Empty(t, col.Items())
}

func TestListenersReceiveEverySnapshotUntilCancelled(t *testing.T) {
	t.Parallel()
	col, _, _, _ := newCollection(t)
	ctx := context.Background()

	var mu sync.Mutex
	var sizes []int
	cancel := col.Listen(func(items []note) {
		mu.Lock()
		sizes = append(sizes, len(items))
		mu.Unlock()
	})
	col.Add(ctx, note{Title: "a"})
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(sizes) > 0 && sizes[len(sizes)-1] == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	mu.Lock()
	seen := len(sizes)
	mu.Unlock()
	col.Add(ctx, note{Title: "b"})
	require.Eventually(t, func() bool { return len(col.Items()) == 2 }, time.Second, 5*time.Millisecond)
	mu.Lock()
	assert.Equal(t, seen, len(sizes))
	mu.Unlock()
}

func TestUndecodableDocumentsAreSkipped(t *testing.T) {
	t.Parallel()
	col, store, _, _ := newCollection(t)
	ctx := context.Background()

	_, err := store.Add(ctx, "notes", docstore.Fields{"body": "no title"})
	require.NoError(t, err)
	col.Add(ctx, note{Title: "ok"})

	require.Eventually(t, func() bool { return len(col.Items()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "ok", col.Items()[0].Title)
}

func TestQueryAndDeleteWhereHitTheStore(t *testing.T) {
	t.Parallel()
	col, _, _, _ := newCollection(t)
	ctx := context.Background()

	col.Add(ctx, note{Title: "dup"})
	col.Add(ctx, note{Title: "dup"})
	col.Add(ctx, note{Title: "keep"})

	found, err := col.Query(ctx, "title", "dup")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	n, err := col.DeleteWhere(ctx, "title", "dup")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Eventually(t, func() bool { return len(col.Items()) == 1 }, time.Second, 5*time.Millisecond)
}

func TestStopForgetsStateAndStartResubscribes(t *testing.T) {
	t.Parallel()
	col, _, _, _ := newCollection(t)
	ctx := context.Background()

	col.Add(ctx, note{Title: "a"})
	require.Eventually(t, func() bool { return len(col.Items()) == 1 }, time.Second, 5*time.Millisecond)

	col.Stop()
	assert.Empty(t, col.Items())

	require.NoError(t, col.Start(ctx))
	require.NoError(t, col.WaitReady(ctx))
	assert.Len(t, col.Items(), 1)
}
