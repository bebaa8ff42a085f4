// Package synced mirrors one remote document collection into a typed, ordered
// in-memory list. The mirror is replaced wholesale on every snapshot the
// store pushes; writes go straight to the store and show up locally only once
// the store echoes them back.
package synced

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"zenith/internal/platform/docstore"
	"zenith/internal/platform/logging"
)

// Codec maps between documents and records of type T.
type Codec[T any] interface {
	Decode(doc docstore.Document) (T, error)
	// Encode returns every field except the id and creation time.
	Encode(v T) docstore.Fields
	ID(v T) string
}

// Cache receives a JSON copy of every snapshot.
type Cache interface {
	Set(key, value string) error
}

type Options struct {
	Order  docstore.Order
	Logger *slog.Logger
	Cache  Cache
	// CacheKey defaults to "zenith-" + collection name.
	CacheKey string
}

type Collection[T any] struct {
	store docstore.Store
	name  string
	codec Codec[T]
	opts  Options

	mu        sync.RWMutex
	items     []T
	ready     chan struct{}
	readyOnce *sync.Once
	cancel    func()
	listeners map[int]func([]T)
	nextID    int
}

func New[T any](store docstore.Store, name string, codec Codec[T], opts Options) *Collection[T] {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.CacheKey == "" {
		opts.CacheKey = "zenith-" + name
	}
	return &Collection[T]{
		store:     store,
		name:      name,
		codec:     codec,
		opts:      opts,
		ready:     make(chan struct{}),
		readyOnce: &sync.Once{},
		listeners: map[int]func([]T){},
	}
}

func (c *Collection[T]) Name() string {
	return c.name
}

// Start subscribes to the collection. Calling Start on a running collection
// is a no-op.
func (c *Collection[T]) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return nil
	}
	ready, once := c.ready, c.readyOnce
	c.mu.Unlock()

	cancel, err := c.store.Subscribe(ctx, c.name, c.opts.Order,
		func(docs []docstore.Document) { c.apply(docs, ready, once) },
		func(err error) {
			c.opts.Logger.Error("snapshot failed", "collection", c.name, "op", "subscribe", "err", err)
		},
	)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", c.name, err)
	}
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
	return nil
}

// Stop tears the subscription down and forgets the local list.
func (c *Collection[T]) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.items = nil
	c.ready = make(chan struct{})
	c.readyOnce = &sync.Once{}
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// WaitReady blocks until the first snapshot since Start has been applied.
func (c *Collection[T]) WaitReady(ctx context.Context) error {
	c.mu.RLock()
	ready := c.ready
	c.mu.RUnlock()
	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for %s: %w", c.name, ctx.Err())
	}
}

func (c *Collection[T]) apply(docs []docstore.Document, ready chan struct{}, once *sync.Once) {
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := c.codec.Decode(doc)
		if err != nil {
			c.opts.Logger.Warn("skipping undecodable document", "collection", c.name, "id", doc.ID, "err", err)
			continue
		}
		items = append(items, v)
	}

	c.mu.Lock()
	if c.ready != ready {
		// Stale delivery from a subscription that has since been stopped.
		c.mu.Unlock()
		return
	}
	c.items = items
	listeners := make([]func([]T), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()
	once.Do(func() { close(ready) })

	if c.opts.Cache != nil {
		if b, err := json.Marshal(items); err == nil {
			if err := c.opts.Cache.Set(c.opts.CacheKey, string(b)); err != nil {
				c.opts.Logger.Warn("snapshot cache write failed", "collection", c.name, "err", err)
			}
		}
	}
	for _, fn := range listeners {
		fn(clone(items))
	}
}

// Items returns a copy of the current snapshot, in store order.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.items)
}

func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, v := range c.items {
		if c.codec.ID(v) == id {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Listen registers fn for every subsequent snapshot. The returned func
// unregisters it.
func (c *Collection[T]) Listen(fn func([]T)) func() {
	c.mu.Lock()
	key := c.nextID
	c.nextID++
	c.listeners[key] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, key)
		c.mu.Unlock()
	}
}

// Add writes v as a new document and returns the server-assigned id, or ""
// when the write failed. Failures are logged, never returned.
func (c *Collection[T]) Add(ctx context.Context, v T) string {
	docID, _ := c.TryAdd(ctx, v)
	return docID
}

func (c *Collection[T]) TryAdd(ctx context.Context, v T) (string, error) {
	docID, err := c.store.Add(ctx, c.name, c.codec.Encode(v))
	if err != nil {
		c.logFailure("add", "", err)
		return "", err
	}
	return docID, nil
}

// Update overwrites every field of the document identified by v. A record
// without an id is ignored.
func (c *Collection[T]) Update(ctx context.Context, v T) {
	_ = c.TryUpdate(ctx, v)
}

func (c *Collection[T]) TryUpdate(ctx context.Context, v T) error {
	docID := c.codec.ID(v)
	if docID == "" {
		err := fmt.Errorf("update %s: record has no id", c.name)
		c.logFailure("update", "", err)
		return err
	}
	return c.TryPatch(ctx, docID, c.codec.Encode(v))
}

// TryPatch merges only the given fields into the document.
func (c *Collection[T]) TryPatch(ctx context.Context, docID string, fields docstore.Fields) error {
	if err := c.store.Update(ctx, c.name, docID, fields); err != nil {
		c.logFailure("update", docID, err)
		return err
	}
	return nil
}

func (c *Collection[T]) Delete(ctx context.Context, docID string) {
	_ = c.TryDelete(ctx, docID)
}

func (c *Collection[T]) TryDelete(ctx context.Context, docID string) error {
	if err := c.store.Delete(ctx, c.name, docID); err != nil {
		c.logFailure("delete", docID, err)
		return err
	}
	return nil
}

// Query reads straight from the store, bypassing the local snapshot.
func (c *Collection[T]) Query(ctx context.Context, field string, value any) ([]T, error) {
	docs, err := c.store.Find(ctx, c.name, field, value)
	if err != nil {
		c.logFailure("find", "", err)
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := c.codec.Decode(doc)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// DeleteWhere removes every document whose field equals value as one batch.
func (c *Collection[T]) DeleteWhere(ctx context.Context, field string, value any) (int, error) {
	n, err := c.store.DeleteWhere(ctx, c.name, field, value)
	if err != nil {
		c.logFailure("delete_where", "", err)
		return 0, err
	}
	return n, nil
}

func (c *Collection[T]) logFailure(op, docID string, err error) {
	c.opts.Logger.Error("remote write failed", "collection", c.name, "op", op, "id", docID, "err", err)
}

func clone[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
