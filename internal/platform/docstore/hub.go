package docstore

import (
	"context"
	"sync"

	apperrors "zenith/internal/platform/errors"
)

type loadFunc func(ctx context.Context, collection string, order Order) ([]Document, error)

type subscriber struct {
	collection string
	order      Order
	notify     chan struct{}
	cancel     context.CancelFunc
}

// hub fans committed writes out to subscribers. Each subscriber owns one
// goroutine and a one-slot notify channel, so pending notifications collapse
// into a single reload.
type hub struct {
	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	closed bool
	wg     sync.WaitGroup
}

func newHub() *hub {
	return &hub{subs: map[*subscriber]struct{}{}}
}

func (h *hub) subscribe(ctx context.Context, collection string, order Order, load loadFunc, onSnapshot SnapshotFunc, onError ErrorFunc) (func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, apperrors.ErrStoreClosed
	}
	subCtx, cancel := context.WithCancel(ctx)
	sub := &subscriber{
		collection: collection,
		order:      order,
		notify:     make(chan struct{}, 1),
		cancel:     cancel,
	}
	h.subs[sub] = struct{}{}
	sub.notify <- struct{}{}

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer h.remove(sub)
		for {
			select {
			case <-subCtx.Done():
				return
			case <-sub.notify:
			}
			docs, err := load(subCtx, sub.collection, sub.order)
			if subCtx.Err() != nil {
				return
			}
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			onSnapshot(docs)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(cancel)
	}, nil
}

func (h *hub) remove(sub *subscriber) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
}

// publish marks every subscriber of collection dirty. An empty collection
// name marks all subscribers.
func (h *hub) publish(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		if collection != "" && sub.collection != collection {
			continue
		}
		select {
		case sub.notify <- struct{}{}:
		default:
		}
	}
}

func (h *hub) close() {
	h.mu.Lock()
	h.closed = true
	for sub := range h.subs {
		sub.cancel()
	}
	h.mu.Unlock()
	h.wg.Wait()
}
