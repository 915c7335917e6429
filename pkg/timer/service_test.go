package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/klokku/freelancer/internal/event_bus"
	"github.com/klokku/freelancer/internal/kvstore"
	"github.com/klokku/freelancer/internal/repository"
	"github.com/klokku/freelancer/internal/utils"
	"github.com/klokku/freelancer/pkg/metrics"
	"github.com/klokku/freelancer/pkg/model"
	"github.com/klokku/freelancer/pkg/time_entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock *utils.MockClock
var location = time.FixedZone("CET", 3600)

type testEnv struct {
	store   *kvstore.Memory
	entries *time_entry.ServiceImpl
	bus     *event_bus.EventBus
}

func setupServiceTest(t *testing.T) (*ServiceImpl, context.Context, testEnv) {
	store := kvstore.NewMemory()
	bus := event_bus.NewEventBus()
	entries := time_entry.NewService(repository.New[model.TimeEntry](store, repository.TimeEntriesKey))
	clock = &utils.MockClock{FixedNow: time.Date(2025, time.March, 3, 9, 0, 0, 0, location)}
	service := newServiceWithClock(store, entries, bus)
	return service, context.Background(), testEnv{store, entries, bus}
}

func newServiceWithClock(store kvstore.Store, entries EntryRecorder, bus *event_bus.EventBus) *ServiceImpl {
	service := NewService(NewRepository(store), entries, bus, 5*time.Millisecond)
	service.clock = clock
	return service
}

func TestService_Start(t *testing.T) {

	t.Run("should persist timer and publish event", func(t *testing.T) {
		service, ctx, env := setupServiceTest(t)
		var started []event_bus.TimerStartedData
		event_bus.SubscribeTyped(env.bus, event_bus.TimerStarted, func(e event_bus.EventT[event_bus.TimerStartedData]) error {
			started = append(started, e.Data)
			return nil
		})

		timer, err := service.Start(ctx, "p1", "Homepage layout", 100)
		require.NoError(t, err)
		status, err := service.Current(ctx)

		require.NoError(t, err)
		assert.Equal(t, clock.Now(), timer.Start)
		assert.True(t, status.Running)
		assert.Equal(t, "Homepage layout", status.Timer.Description)
		assert.Zero(t, status.Elapsed)
		require.Len(t, started, 1)
		assert.Equal(t, "p1", started[0].ProjectId)
	})

	t.Run("should reject missing input before touching storage", func(t *testing.T) {
		tests := []struct {
			name        string
			projectId   string
			description string
			rate        float64
			err         error
		}{
			{"no project", "", "Homepage", 85, ErrProjectRequired},
			{"blank description", "p1", "   ", 85, ErrDescriptionRequired},
			{"negative rate", "p1", "Homepage", -1, ErrInvalidRate},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				service, ctx, env := setupServiceTest(t)

				_, err := service.Start(ctx, tt.projectId, tt.description, tt.rate)

				assert.ErrorIs(t, err, tt.err)
				keys, _ := env.store.Keys(ctx)
				assert.Empty(t, keys)
			})
		}
	})

	t.Run("should refuse to start twice", func(t *testing.T) {
		service, ctx, _ := setupServiceTest(t)
		first, err := service.Start(ctx, "p1", "Homepage", 85)
		require.NoError(t, err)
		clock.Advance(time.Minute)

		_, err = service.Start(ctx, "p2", "Other", 85)
		status, _ := service.Current(ctx)

		assert.ErrorIs(t, err, ErrAlreadyRunning)
		assert.Equal(t, first.ProjectId, status.Timer.ProjectId)
	})
}

func TestService_Stop(t *testing.T) {

	t.Run("should record 90 minutes worth 150.00 at rate 100", func(t *testing.T) {
		service, ctx, env := setupServiceTest(t)
		var stopped []event_bus.TimerStoppedData
		event_bus.SubscribeTyped(env.bus, event_bus.TimerStopped, func(e event_bus.EventT[event_bus.TimerStoppedData]) error {
			stopped = append(stopped, e.Data)
			return nil
		})
		_, err := service.Start(ctx, "p1", "Design review", 100)
		require.NoError(t, err)

		clock.Advance(90 * time.Minute)
		entry, err := service.Stop(ctx)
		require.NoError(t, err)

		assert.Equal(t, 90*time.Minute, entry.EndTime.Sub(entry.StartTime))
		assert.Equal(t, 150.00, metrics.RoundCents(metrics.Revenue([]model.TimeEntry{entry})))
		entries, _ := env.entries.List(ctx)
		require.Len(t, entries, 1)
		assert.Equal(t, entry.Id, entries[0].Id)
		assert.Equal(t, "Design review", entries[0].Description)
		status, _ := service.Current(ctx)
		assert.False(t, status.Running)
		require.Len(t, stopped, 1)
		assert.Equal(t, 90*time.Minute, stopped[0].Duration)
	})

	t.Run("should fail when idle", func(t *testing.T) {
		service, ctx, env := setupServiceTest(t)

		_, err := service.Stop(ctx)

		assert.ErrorIs(t, err, ErrNotRunning)
		entries, _ := env.entries.List(ctx)
		assert.Empty(t, entries)
	})

	t.Run("should not record entries when the timer cannot be cleared", func(t *testing.T) {
		_, ctx, env := setupServiceTest(t)
		store := &failingDeleteStore{Memory: env.store}
		service := newServiceWithClock(store, env.entries, env.bus)
		_, err := service.Start(ctx, "p1", "Design review", 100)
		require.NoError(t, err)
		clock.Advance(time.Hour)

		_, err = service.Stop(ctx)
		assert.ErrorIs(t, err, errDeleteFailed)
		_, err = service.Stop(ctx)
		assert.ErrorIs(t, err, errDeleteFailed)

		entries, _ := env.entries.List(ctx)
		assert.Empty(t, entries)
		status, err := service.Current(ctx)
		require.NoError(t, err)
		assert.True(t, status.Running)
	})

	t.Run("should keep the timer running when the entry cannot be stored", func(t *testing.T) {
		_, ctx, env := setupServiceTest(t)
		service := newServiceWithClock(env.store, failingRecorder{}, env.bus)
		started, err := service.Start(ctx, "p1", "Design review", 100)
		require.NoError(t, err)
		clock.Advance(time.Hour)

		_, err = service.Stop(ctx)

		assert.ErrorIs(t, err, errRecordFailed)
		status, err := service.Current(ctx)
		require.NoError(t, err)
		assert.True(t, status.Running)
		assert.True(t, started.Start.Equal(status.Timer.Start))
	})
}

var errDeleteFailed = errors.New("delete failed")
var errRecordFailed = errors.New("record failed")

type failingDeleteStore struct {
	*kvstore.Memory
}

func (s *failingDeleteStore) Delete(context.Context, string) error {
	return errDeleteFailed
}

type failingRecorder struct{}

func (failingRecorder) Create(context.Context, model.TimeEntry) (model.TimeEntry, error) {
	return model.TimeEntry{}, errRecordFailed
}

func TestService_Resume(t *testing.T) {

	t.Run("should resume persisted timer with elapsed time kept", func(t *testing.T) {
		_, ctx, env := setupServiceTest(t)
		err := NewRepository(env.store).SaveActive(ctx, ActiveTimer{
			Start:       clock.Now().Add(-10 * time.Minute),
			ProjectId:   "p1",
			Description: "Before reload",
			HourlyRate:  85,
		})
		require.NoError(t, err)

		// a fresh service stands for the reloaded process
		reloaded := newServiceWithClock(env.store, env.entries, env.bus)
		status, err := reloaded.Current(ctx)
		require.NoError(t, err)
		elapsed, err := reloaded.Elapsed(ctx)
		require.NoError(t, err)

		assert.True(t, status.Running)
		assert.InDelta(t, 600, elapsed.Seconds(), 1)
		assert.Equal(t, "Before reload", status.Timer.Description)
	})

	t.Run("should report elapsed error when idle", func(t *testing.T) {
		service, ctx, _ := setupServiceTest(t)

		_, err := service.Elapsed(ctx)

		assert.ErrorIs(t, err, ErrNotRunning)
	})
}

func TestService_Watch(t *testing.T) {

	t.Run("should emit elapsed time and close after stop", func(t *testing.T) {
		service, ctx, _ := setupServiceTest(t)
		_, err := service.Start(ctx, "p1", "Homepage", 85)
		require.NoError(t, err)
		clock.Advance(42 * time.Second)

		updates := service.Watch(ctx)
		first := <-updates
		_, err = service.Stop(ctx)
		require.NoError(t, err)

		assert.Equal(t, 42*time.Second, first)
		assert.Eventually(t, func() bool {
			select {
			case _, open := <-updates:
				return !open
			default:
				return false
			}
		}, time.Second, time.Millisecond)
	})

	t.Run("should close when context is cancelled", func(t *testing.T) {
		service, ctx, _ := setupServiceTest(t)
		_, err := service.Start(ctx, "p1", "Homepage", 85)
		require.NoError(t, err)
		watchCtx, cancel := context.WithCancel(ctx)

		updates := service.Watch(watchCtx)
		<-updates
		cancel()

		assert.Eventually(t, func() bool {
			select {
			case _, open := <-updates:
				return !open
			default:
				return false
			}
		}, time.Second, time.Millisecond)
	})

	t.Run("should close immediately when idle", func(t *testing.T) {
		service, ctx, _ := setupServiceTest(t)

		_, open := <-service.Watch(ctx)

		assert.False(t, open)
	})
}
