package timer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/klokku/freelancer/internal/event_bus"
	"github.com/klokku/freelancer/internal/utils"
	"github.com/klokku/freelancer/pkg/model"
	log "github.com/sirupsen/logrus"
)

var (
	ErrProjectRequired     = errors.New("a project must be selected to start the timer")
	ErrDescriptionRequired = errors.New("a task description is required to start the timer")
	ErrInvalidRate         = errors.New("hourly rate cannot be negative")
	ErrAlreadyRunning      = errors.New("timer is already running")
	ErrNotRunning          = errors.New("timer is not running")
)

// EntryRecorder stores the time entry produced when the timer stops.
type EntryRecorder interface {
	Create(ctx context.Context, entry model.TimeEntry) (model.TimeEntry, error)
}

type Service interface {
	// Current loads the persisted timer. A timer persisted by an earlier
	// process resumes with its original start.
	Current(ctx context.Context) (Status, error)
	Start(ctx context.Context, projectId string, description string, hourlyRate float64) (ActiveTimer, error)
	Stop(ctx context.Context) (model.TimeEntry, error)
	Elapsed(ctx context.Context) (time.Duration, error)
	// Watch emits the elapsed time every tick while the timer runs. The
	// channel is closed when ctx is done or the timer is no longer running.
	Watch(ctx context.Context) <-chan time.Duration
}

type ServiceImpl struct {
	repo    Repository
	entries EntryRecorder
	bus     *event_bus.EventBus
	clock   utils.Clock
	tick    time.Duration
	mu      sync.Mutex
}

func NewService(repo Repository, entries EntryRecorder, bus *event_bus.EventBus, tick time.Duration) *ServiceImpl {
	if tick <= 0 {
		tick = time.Second
	}
	return &ServiceImpl{repo: repo, entries: entries, bus: bus, clock: &utils.SystemClock{}, tick: tick}
}

func (s *ServiceImpl) Current(ctx context.Context) (Status, error) {
	timer, running, err := s.repo.FindActive(ctx)
	if err != nil {
		return Status{}, err
	}
	if !running {
		return Status{}, nil
	}
	return Status{
		Running: true,
		Timer:   timer,
		Elapsed: s.clock.Now().Sub(timer.Start),
	}, nil
}

func (s *ServiceImpl) Start(ctx context.Context, projectId string, description string, hourlyRate float64) (ActiveTimer, error) {
	projectId = strings.TrimSpace(projectId)
	description = strings.TrimSpace(description)
	if projectId == "" {
		return ActiveTimer{}, ErrProjectRequired
	}
	if description == "" {
		return ActiveTimer{}, ErrDescriptionRequired
	}
	if hourlyRate < 0 {
		return ActiveTimer{}, ErrInvalidRate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, running, err := s.repo.FindActive(ctx)
	if err != nil {
		return ActiveTimer{}, err
	}
	if running {
		return ActiveTimer{}, ErrAlreadyRunning
	}

	timer := ActiveTimer{
		Start:       s.clock.Now(),
		ProjectId:   projectId,
		Description: description,
		HourlyRate:  hourlyRate,
	}
	if err := s.repo.SaveActive(ctx, timer); err != nil {
		return ActiveTimer{}, err
	}
	log.Infof("Timer started for project %s: %s", projectId, description)

	s.publish(ctx, event_bus.TimerStarted, event_bus.TimerStartedData{
		ProjectId:   timer.ProjectId,
		Description: timer.Description,
		HourlyRate:  timer.HourlyRate,
		Start:       timer.Start,
	})
	return timer, nil
}

// Stop turns the running timer into a time entry ending now and clears the
// persisted state.
func (s *ServiceImpl) Stop(ctx context.Context) (model.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, running, err := s.repo.FindActive(ctx)
	if err != nil {
		return model.TimeEntry{}, err
	}
	if !running {
		return model.TimeEntry{}, ErrNotRunning
	}

	// The slot is cleared first so a failed clear never leaves a recorded
	// entry behind a timer that still runs.
	if err := s.repo.ClearActive(ctx); err != nil {
		return model.TimeEntry{}, fmt.Errorf("could not clear active timer: %w", err)
	}
	entry, err := s.entries.Create(ctx, model.TimeEntry{
		ProjectId:   timer.ProjectId,
		Description: timer.Description,
		StartTime:   timer.Start,
		EndTime:     s.clock.Now(),
		HourlyRate:  timer.HourlyRate,
	})
	if err != nil {
		if restoreErr := s.repo.SaveActive(ctx, timer); restoreErr != nil {
			log.Errorf("active timer for project %s lost after failed stop: %v", timer.ProjectId, restoreErr)
			return model.TimeEntry{}, errors.Join(err, restoreErr)
		}
		return model.TimeEntry{}, err
	}
	duration := entry.EndTime.Sub(entry.StartTime)
	log.Infof("Timer stopped for project %s after %v", entry.ProjectId, duration)

	s.publish(ctx, event_bus.TimerStopped, event_bus.TimerStoppedData{
		TimeEntryId: entry.Id,
		ProjectId:   entry.ProjectId,
		Duration:    duration,
	})
	return entry, nil
}

func (s *ServiceImpl) Elapsed(ctx context.Context) (time.Duration, error) {
	status, err := s.Current(ctx)
	if err != nil {
		return 0, err
	}
	if !status.Running {
		return 0, ErrNotRunning
	}
	return status.Elapsed, nil
}

func (s *ServiceImpl) Watch(ctx context.Context) <-chan time.Duration {
	updates := make(chan time.Duration)
	go func() {
		defer close(updates)
		ticker := time.NewTicker(s.tick)
		defer ticker.Stop()
		for {
			elapsed, err := s.Elapsed(ctx)
			if err != nil {
				if !errors.Is(err, ErrNotRunning) {
					log.Warnf("stopping timer watch: %v", err)
				}
				return
			}
			select {
			case updates <- elapsed:
			case <-ctx.Done():
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return updates
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Warnf("timer event %s not fully handled: %v", eventType, err)
	}
}
