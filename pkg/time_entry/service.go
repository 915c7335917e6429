package time_entry

import (
	"context"
	"errors"
	"time"

	"github.com/klokku/freelancer/internal/repository"
	"github.com/klokku/freelancer/pkg/metrics"
	"github.com/klokku/freelancer/pkg/model"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidTimeRange = errors.New("end time must be after start time")

type Service interface {
	List(ctx context.Context) ([]model.TimeEntry, error)
	Get(ctx context.Context, id string) (model.TimeEntry, error)
	// Create stores the entry as given.
	Create(ctx context.Context, entry model.TimeEntry) (model.TimeEntry, error)
	// CreateManual stores a hand-entered entry, rejecting empty ranges.
	CreateManual(ctx context.Context, entry model.TimeEntry) (model.TimeEntry, error)
	// Update replaces a stored entry, rejecting empty ranges.
	Update(ctx context.Context, entry model.TimeEntry) (model.TimeEntry, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ServiceImpl struct {
	repo *repository.Repository[model.TimeEntry]
}

func NewService(repo *repository.Repository[model.TimeEntry]) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context) ([]model.TimeEntry, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (model.TimeEntry, error) {
	return s.repo.Find(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, entry model.TimeEntry) (model.TimeEntry, error) {
	stored, err := s.repo.Add(ctx, entry)
	if err != nil {
		return model.TimeEntry{}, err
	}
	log.Debugf("Time entry %s stored for project %s (%v)", stored.Id, stored.ProjectId, stored.EndTime.Sub(stored.StartTime))
	return stored, nil
}

func (s *ServiceImpl) CreateManual(ctx context.Context, entry model.TimeEntry) (model.TimeEntry, error) {
	if !entry.EndTime.After(entry.StartTime) {
		return model.TimeEntry{}, ErrInvalidTimeRange
	}
	return s.Create(ctx, entry)
}

func (s *ServiceImpl) Update(ctx context.Context, entry model.TimeEntry) (model.TimeEntry, error) {
	if !entry.EndTime.After(entry.StartTime) {
		return model.TimeEntry{}, ErrInvalidTimeRange
	}
	if err := s.repo.Replace(ctx, entry); err != nil {
		return model.TimeEntry{}, err
	}
	return entry, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func ForProject(entries []model.TimeEntry, projectId string) []model.TimeEntry {
	found := make([]model.TimeEntry, 0)
	for _, e := range entries {
		if e.ProjectId == projectId {
			found = append(found, e)
		}
	}
	return found
}

// OnDay returns entries started on the calendar day of day, in day's location.
func OnDay(entries []model.TimeEntry, day time.Time) []model.TimeEntry {
	found := make([]model.TimeEntry, 0)
	for _, e := range entries {
		if metrics.SameDay(e.StartTime, day) {
			found = append(found, e)
		}
	}
	return found
}
