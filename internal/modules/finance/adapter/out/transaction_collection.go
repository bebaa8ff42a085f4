package out

import (
	"fmt"
	"log/slog"

	"zenith/internal/modules/finance/domain"
	"zenith/internal/platform/docstore"
	"zenith/internal/platform/synced"
)

const Collection = "transactions"

type transactionCodec struct{}

func (transactionCodec) Decode(doc docstore.Document) (domain.Transaction, error) {
	f := doc.Fields
	if !f.Has("title") || !f.Has("type") {
		return domain.Transaction{}, fmt.Errorf("transaction %s is incomplete", doc.ID)
	}
	return domain.Transaction{
		ID:        doc.ID,
		CreatedAt: doc.CreatedAt,
		Title:     f.String("title"),
		Amount:    f.Float("amount"),
		Type:      domain.Type(f.String("type")),
		Category:  f.String("category"),
		Date:      f.String("date"),
	}, nil
}

func (transactionCodec) Encode(tx domain.Transaction) docstore.Fields {
	return docstore.Fields{
		"title":    tx.Title,
		"amount":   tx.Amount,
		"type":     string(tx.Type),
		"category": tx.Category,
		"date":     tx.Date,
	}
}

func (transactionCodec) ID(tx domain.Transaction) string { return tx.ID }

// NewTransactionCollection mirrors transactions by date, most recent first.
func NewTransactionCollection(store docstore.Store, cache synced.Cache, logger *slog.Logger) *synced.Collection[domain.Transaction] {
	return synced.New[domain.Transaction](store, Collection, transactionCodec{}, synced.Options{
		Order:  docstore.Desc("date"),
		Cache:  cache,
		Logger: logger,
	})
}
