package docstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"zenith/internal/platform/clock"
	apperrors "zenith/internal/platform/errors"
	"zenith/internal/platform/id"
)

type memoryDoc struct {
	doc Document
	seq int64
}

// Memory is an in-process Store. It backs tests and the `serve` command when
// no database file is wanted.
type Memory struct {
	clock clock.Clock
	ids   id.Generator
	hub   *hub

	mu          sync.RWMutex
	collections map[string]map[string]memoryDoc
	seq         int64
	closed      bool
	failWrites  error
}

func NewMemory(clk clock.Clock, ids id.Generator) *Memory {
	return &Memory{
		clock:       clk,
		ids:         ids,
		hub:         newHub(),
		collections: map[string]map[string]memoryDoc{},
	}
}

// FailWrites makes every subsequent write return err; nil restores normal
// behavior. It simulates an unreachable backend.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	m.failWrites = err
	m.mu.Unlock()
}

func (m *Memory) Subscribe(ctx context.Context, collection string, order Order, onSnapshot SnapshotFunc, onError ErrorFunc) (func(), error) {
	return m.hub.subscribe(ctx, collection, order, m.load, onSnapshot, onError)
}

func (m *Memory) load(_ context.Context, collection string, order Order) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, apperrors.ErrStoreClosed
	}
	entries := make([]memoryDoc, 0, len(m.collections[collection]))
	for _, entry := range m.collections[collection] {
		entries = append(entries, entry)
	}
	sortEntries(entries, order)
	out := make([]Document, 0, len(entries))
	for _, entry := range entries {
		out = append(out, copyDocument(entry.doc))
	}
	return out, nil
}

func (m *Memory) Add(_ context.Context, collection string, fields Fields) (string, error) {
	body, err := fields.Clone()
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	m.mu.Lock()
	if err := m.writable(); err != nil {
		m.mu.Unlock()
		return "", err
	}
	m.seq++
	docID := m.ids.New()
	if m.collections[collection] == nil {
		m.collections[collection] = map[string]memoryDoc{}
	}
	m.collections[collection][docID] = memoryDoc{
		doc: Document{ID: docID, CreatedAt: m.clock.Now(), Fields: body},
		seq: m.seq,
	}
	m.mu.Unlock()
	m.hub.publish(collection)
	return docID, nil
}

func (m *Memory) Update(_ context.Context, collection, docID string, fields Fields) error {
	patch, err := fields.Clone()
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	m.mu.Lock()
	if err := m.writable(); err != nil {
		m.mu.Unlock()
		return err
	}
	entry, ok := m.collections[collection][docID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%s/%s: %w", collection, docID, apperrors.ErrNotFound)
	}
	for k, v := range patch {
		entry.doc.Fields[k] = v
	}
	m.collections[collection][docID] = entry
	m.mu.Unlock()
	m.hub.publish(collection)
	return nil
}

func (m *Memory) Delete(_ context.Context, collection, docID string) error {
	m.mu.Lock()
	if err := m.writable(); err != nil {
		m.mu.Unlock()
		return err
	}
	delete(m.collections[collection], docID)
	m.mu.Unlock()
	m.hub.publish(collection)
	return nil
}

func (m *Memory) Find(_ context.Context, collection, field string, value any) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, apperrors.ErrStoreClosed
	}
	var entries []memoryDoc
	for _, entry := range m.collections[collection] {
		if fieldEquals(entry.doc.Fields, field, value) {
			entries = append(entries, entry)
		}
	}
	sortEntries(entries, Asc(FieldCreatedAt))
	out := make([]Document, 0, len(entries))
	for _, entry := range entries {
		out = append(out, copyDocument(entry.doc))
	}
	return out, nil
}

func (m *Memory) DeleteWhere(_ context.Context, collection, field string, value any) (int, error) {
	m.mu.Lock()
	if err := m.writable(); err != nil {
		m.mu.Unlock()
		return 0, err
	}
	n := 0
	for docID, entry := range m.collections[collection] {
		if fieldEquals(entry.doc.Fields, field, value) {
			delete(m.collections[collection], docID)
			n++
		}
	}
	m.mu.Unlock()
	if n > 0 {
		m.hub.publish(collection)
	}
	return n, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.hub.close()
	return nil
}

func (m *Memory) writable() error {
	if m.closed {
		return apperrors.ErrStoreClosed
	}
	return m.failWrites
}

func sortEntries(entries []memoryDoc, order Order) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		c := compareForOrder(a.doc, b.doc, order.Field)
		if c == 0 {
			c = compareInt64(a.seq, b.seq)
		}
		if order.Descending {
			return c > 0
		}
		return c < 0
	})
}

func compareForOrder(a, b Document, field string) int {
	if field == "" || field == FieldCreatedAt {
		return a.CreatedAt.Compare(b.CreatedAt)
	}
	return compareValues(a.Fields[field], b.Fields[field])
}

// compareValues orders missing < numbers < strings, mirroring how SQLite
// orders json_extract results.
func compareValues(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return compareInt64(int64(ra), int64(rb))
	}
	switch ra {
	case 1:
		return compareFloat(Fields{"v": a}.Float("v"), Fields{"v": b}.Float("v"))
	case 2:
		as, bs := a.(string), b.(string)
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		}
	}
	return 0
}

func rank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case float64, float32, int, int64:
		return 1
	case string:
		return 2
	default:
		return 3
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func fieldEquals(fields Fields, field string, value any) bool {
	got, ok := fields[field]
	if !ok {
		return false
	}
	if rank(got) == 1 && rank(value) == 1 {
		return compareValues(got, value) == 0
	}
	gs, gok := got.(string)
	vs, vok := value.(string)
	return gok && vok && gs == vs
}

func copyDocument(doc Document) Document {
	fields, err := doc.Fields.Clone()
	if err != nil {
		fields = Fields{}
	}
	return Document{ID: doc.ID, CreatedAt: doc.CreatedAt, Fields: fields}
}
