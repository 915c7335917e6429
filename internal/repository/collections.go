package repository

import (
	"github.com/klokku/freelancer/internal/event_bus"
	"github.com/klokku/freelancer/internal/kvstore"
	"github.com/klokku/freelancer/pkg/model"
)

// Collections bundles one repository per record type over a shared store.
type Collections struct {
	Clients     *Repository[model.Client]
	Projects    *Repository[model.Project]
	TimeEntries *Repository[model.TimeEntry]
	Milestones  *Repository[model.Milestone]
	Expenses    *Repository[model.Expense]
	Invoices    *Repository[model.Invoice]
	Documents   *Repository[model.Document]
}

// NewCollections creates the repositories. bus may be nil.
func NewCollections(store kvstore.Store, bus *event_bus.EventBus) *Collections {
	return &Collections{
		Clients:     New[model.Client](store, ClientsKey).WithBus(bus),
		Projects:    New[model.Project](store, ProjectsKey).WithBus(bus),
		TimeEntries: New[model.TimeEntry](store, TimeEntriesKey).WithBus(bus),
		Milestones:  New[model.Milestone](store, MilestonesKey).WithBus(bus),
		Expenses:    New[model.Expense](store, ExpensesKey).WithBus(bus),
		Invoices:    New[model.Invoice](store, InvoicesKey).WithBus(bus),
		Documents:   New[model.Document](store, DocumentsKey).WithBus(bus),
	}
}
