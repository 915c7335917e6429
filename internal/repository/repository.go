package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/klokku/freelancer/internal/event_bus"
	"github.com/klokku/freelancer/internal/kvstore"
	log "github.com/sirupsen/logrus"
)

// Slot names of the persisted collections.
const (
	ClientsKey     = "freelance_clients"
	ProjectsKey    = "freelance_projects"
	TimeEntriesKey = "freelance_time_entries"
	MilestonesKey  = "freelance_milestones"
	ExpensesKey    = "freelance_expenses"
	InvoicesKey    = "freelance_invoices"
	DocumentsKey   = "freelance_documents"
)

var (
	ErrMalformedData = errors.New("malformed persisted data")
	ErrNotFound      = errors.New("record not found")
)

// Record is implemented by every persisted entity. WithIdentity returns a
// copy carrying the given id.
type Record[T any] interface {
	Identity() string
	WithIdentity(id string) T
}

// Repository stores one collection of records as a JSON array in a single slot.
type Repository[T Record[T]] struct {
	store kvstore.Store
	key   string
	bus   *event_bus.EventBus
	mu    sync.Mutex
}

func New[T Record[T]](store kvstore.Store, key string) *Repository[T] {
	return &Repository[T]{store: store, key: key}
}

// WithBus makes the repository publish CollectionSaved after every save.
func (r *Repository[T]) WithBus(bus *event_bus.EventBus) *Repository[T] {
	r.bus = bus
	return r
}

func (r *Repository[T]) Key() string {
	return r.key
}

// GetAll returns the stored records. A missing slot yields an empty slice.
func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	value, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(value, &items); err != nil {
		err := fmt.Errorf("%w: slot %s: %v", ErrMalformedData, r.key, err)
		log.Error(err)
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SaveAll replaces the whole collection.
func (r *Repository[T]) SaveAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	value, err := json.Marshal(items)
	if err != nil {
		err := fmt.Errorf("could not encode %s: %w", r.key, err)
		log.Error(err)
		return err
	}
	if err := r.store.Set(ctx, r.key, value); err != nil {
		return err
	}
	r.publishSaved(ctx, len(items))
	return nil
}

// Add assigns a new id to item, appends it and persists the collection.
func (r *Repository[T]) Add(ctx context.Context, item T) (T, error) {
	var stored T
	err := r.Modify(ctx, func(items []T) ([]T, error) {
		stored = item.WithIdentity(NewId())
		return append(items, stored), nil
	})
	return stored, err
}

// Modify runs one read-transform-save cycle. Cycles on the same repository
// never interleave. Returning an error from fn leaves the slot untouched.
func (r *Repository[T]) Modify(ctx context.Context, fn func(items []T) ([]T, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	updated, err := fn(items)
	if err != nil {
		return err
	}
	return r.SaveAll(ctx, updated)
}

func (r *Repository[T]) Find(ctx context.Context, id string) (T, error) {
	items, err := r.GetAll(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	for _, item := range items {
		if item.Identity() == id {
			return item, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// Replace swaps the record sharing item's id. ErrNotFound when there is none.
func (r *Repository[T]) Replace(ctx context.Context, item T) error {
	return r.Modify(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if items[i].Identity() == item.Identity() {
				items[i] = item
				return items, nil
			}
		}
		return nil, ErrNotFound
	})
}

// Delete removes the record with the given id and reports whether it existed.
// Deleting an unknown id does not write the slot.
func (r *Repository[T]) Delete(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := r.Modify(ctx, func(items []T) ([]T, error) {
		kept := make([]T, 0, len(items))
		for _, item := range items {
			if item.Identity() == id {
				deleted = true
				continue
			}
			kept = append(kept, item)
		}
		if !deleted {
			return nil, errNothingToDelete
		}
		return kept, nil
	})
	if errors.Is(err, errNothingToDelete) {
		log.Debugf("record %s not found in %s, nothing deleted", id, r.key)
		return false, nil
	}
	return deleted, err
}

var errNothingToDelete = errors.New("nothing to delete")

func (r *Repository[T]) publishSaved(ctx context.Context, count int) {
	if r.bus == nil {
		return
	}
	err := r.bus.Publish(event_bus.NewEvent(ctx, event_bus.CollectionSaved, event_bus.CollectionSavedData{
		Key:   r.key,
		Count: count,
	}))
	if err != nil {
		log.Warnf("collection %s saved but subscribers failed: %v", r.key, err)
	}
}
