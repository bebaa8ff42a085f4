package out

import (
	"context"

	"zenith/internal/modules/assistant/domain"
	assistantout "zenith/internal/modules/assistant/port/out"
	contactin "zenith/internal/modules/contact/port/in"
	financein "zenith/internal/modules/finance/port/in"
	goalin "zenith/internal/modules/goal/port/in"
	pipelinein "zenith/internal/modules/pipeline/port/in"
	taskin "zenith/internal/modules/task/port/in"
)

// Workspace reads the current snapshots of the other modules.
type Workspace struct {
	Tasks    taskin.Usecase
	Goals    goalin.Usecase
	Finance  financein.Usecase
	Pipeline pipelinein.Usecase
	Contacts contactin.Usecase
}

func NewDataSource(w Workspace) assistantout.DataSource {
	return w
}

func (w Workspace) Snapshot(ctx context.Context) domain.Snapshot {
	var snap domain.Snapshot
	if w.Tasks != nil {
		for _, t := range w.Tasks.List(ctx) {
			snap.Tasks = append(snap.Tasks, domain.TaskRecord{Title: t.Title, Status: t.Status, Priority: t.Priority, DueDate: t.DueDate})
		}
	}
	if w.Goals != nil {
		for _, g := range w.Goals.List(ctx) {
			snap.Goals = append(snap.Goals, domain.GoalRecord{Title: g.Title, Horizon: g.Horizon, TargetDate: g.TargetDate, TaskIDs: g.TaskIDs})
		}
	}
	if w.Finance != nil {
		for _, tx := range w.Finance.List(ctx) {
			snap.Transactions = append(snap.Transactions, domain.TransactionRecord{
				Title:    tx.Title,
				Amount:   tx.Amount,
				Type:     tx.Type,
				Category: tx.Category,
				Date:     tx.Date,
			})
		}
	}
	if w.Pipeline != nil {
		for _, p := range w.Pipeline.ListProspects(ctx) {
			snap.Prospects = append(snap.Prospects, domain.ProspectRecord{ContactID: p.ContactID, Stage: p.Stage, FollowUpDate: p.FollowUpDate})
		}
	}
	if w.Contacts != nil {
		for _, c := range w.Contacts.List(ctx) {
			snap.Contacts = append(snap.Contacts, domain.ContactRecord{ID: c.ID, Name: c.Name, Company: c.Company})
		}
	}
	return snap
}
