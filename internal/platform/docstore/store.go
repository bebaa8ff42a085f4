// Package docstore is the real-time document database every zenith
// collection is synchronized against. Collections hold schemaless documents
// with a server-assigned id and creation timestamp. Subscribers are pushed the
// full ordered snapshot of a collection after every committed write.
package docstore

import (
	"context"
	"time"
)

// FieldCreatedAt orders by the server-assigned creation timestamp.
const FieldCreatedAt = "createdAt"

type Document struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Fields    Fields    `json:"fields"`
}

type Order struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

func Asc(field string) Order  { return Order{Field: field} }
func Desc(field string) Order { return Order{Field: field, Descending: true} }

type SnapshotFunc func(docs []Document)

type ErrorFunc func(err error)

// Store is the document database. Writes return once committed; their only
// visible effect is the snapshot that follows.
type Store interface {
	// Subscribe delivers the current snapshot, then a fresh one after every
	// committed write to collection. Deliveries for one subscription are
	// sequential and coalesced: a slow subscriber skips straight to the latest
	// state. The returned func cancels the subscription.
	Subscribe(ctx context.Context, collection string, order Order, onSnapshot SnapshotFunc, onError ErrorFunc) (func(), error)
	Add(ctx context.Context, collection string, fields Fields) (string, error)
	// Update merges fields into the document, keeping its id and creation time.
	Update(ctx context.Context, collection, id string, fields Fields) error
	Delete(ctx context.Context, collection, id string) error
	Find(ctx context.Context, collection, field string, value any) ([]Document, error)
	// DeleteWhere removes every document whose field equals value in one batch.
	DeleteWhere(ctx context.Context, collection, field string, value any) (int, error)
	Close() error
}
