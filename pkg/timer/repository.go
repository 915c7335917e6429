package timer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/klokku/freelancer/internal/kvstore"
	"github.com/klokku/freelancer/internal/repository"
	log "github.com/sirupsen/logrus"
)

const ActiveTimerKey = "activeTimer"

type Repository interface {
	// FindActive returns the persisted timer and whether there is one.
	FindActive(ctx context.Context) (ActiveTimer, bool, error)
	SaveActive(ctx context.Context, timer ActiveTimer) error
	ClearActive(ctx context.Context) error
}

type repositoryImpl struct {
	store kvstore.Store
}

func NewRepository(store kvstore.Store) Repository {
	return &repositoryImpl{store: store}
}

func (r *repositoryImpl) FindActive(ctx context.Context) (ActiveTimer, bool, error) {
	value, ok, err := r.store.Get(ctx, ActiveTimerKey)
	if err != nil || !ok {
		return ActiveTimer{}, false, err
	}
	if string(value) == "null" {
		return ActiveTimer{}, false, nil
	}
	var timer ActiveTimer
	if err := json.Unmarshal(value, &timer); err != nil {
		err := fmt.Errorf("%w: slot %s: %v", repository.ErrMalformedData, ActiveTimerKey, err)
		log.Error(err)
		return ActiveTimer{}, false, err
	}
	return timer, true, nil
}

func (r *repositoryImpl) SaveActive(ctx context.Context, timer ActiveTimer) error {
	value, err := json.Marshal(timer)
	if err != nil {
		return fmt.Errorf("could not encode active timer: %w", err)
	}
	return r.store.Set(ctx, ActiveTimerKey, value)
}

func (r *repositoryImpl) ClearActive(ctx context.Context) error {
	return r.store.Delete(ctx, ActiveTimerKey)
}
