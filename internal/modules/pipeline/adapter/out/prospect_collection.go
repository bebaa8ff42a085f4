package out

import (
	"context"
	"fmt"
	"log/slog"

	"zenith/internal/modules/pipeline/domain"
	pipelineout "zenith/internal/modules/pipeline/port/out"
	"zenith/internal/platform/docstore"
	"zenith/internal/platform/synced"
)

const ProspectsCollection = "prospects"

type prospectCodec struct{}

func (prospectCodec) Decode(doc docstore.Document) (domain.Prospect, error) {
	f := doc.Fields
	if !f.Has("contactId") {
		return domain.Prospect{}, fmt.Errorf("prospect %s has no contact", doc.ID)
	}
	return domain.Prospect{
		ID:           doc.ID,
		CreatedAt:    doc.CreatedAt,
		ContactID:    f.String("contactId"),
		Stage:        f.String("stage"),
		Notes:        f.String("notes"),
		FollowUpDate: f.String("followUpDate"),
	}, nil
}

func (prospectCodec) Encode(p domain.Prospect) docstore.Fields {
	return docstore.Fields{
		"contactId":    p.ContactID,
		"stage":        p.Stage,
		"notes":        p.Notes,
		"followUpDate": p.FollowUpDate,
	}
}

func (prospectCodec) ID(p domain.Prospect) string { return p.ID }

type ProspectMirror struct {
	*synced.Collection[domain.Prospect]
}

var _ pipelineout.ProspectStore = ProspectMirror{}

func NewProspectCollection(store docstore.Store, cache synced.Cache, logger *slog.Logger) ProspectMirror {
	return ProspectMirror{synced.New[domain.Prospect](store, ProspectsCollection, prospectCodec{}, synced.Options{
		Order:  docstore.Desc(docstore.FieldCreatedAt),
		Cache:  cache,
		Logger: logger,
	})}
}

func (c ProspectMirror) OnStage(ctx context.Context, stage string) ([]domain.Prospect, error) {
	return c.Query(ctx, "stage", stage)
}
