package milestone

import (
	"context"

	"github.com/klokku/freelancer/internal/repository"
	"github.com/klokku/freelancer/pkg/model"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]model.Milestone, error)
	Get(ctx context.Context, id string) (model.Milestone, error)
	Create(ctx context.Context, milestone model.Milestone) (model.Milestone, error)
	Update(ctx context.Context, milestone model.Milestone) (model.Milestone, error)
	Delete(ctx context.Context, id string) (bool, error)
	ToggleStatus(ctx context.Context, id string) (model.Milestone, error)
}

type ServiceImpl struct {
	repo *repository.Repository[model.Milestone]
}

func NewService(repo *repository.Repository[model.Milestone]) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context) ([]model.Milestone, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (model.Milestone, error) {
	return s.repo.Find(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, milestone model.Milestone) (model.Milestone, error) {
	if milestone.Status == "" {
		milestone.Status = model.MilestonePending
	}
	return s.repo.Add(ctx, milestone)
}

func (s *ServiceImpl) Update(ctx context.Context, milestone model.Milestone) (model.Milestone, error) {
	if err := s.repo.Replace(ctx, milestone); err != nil {
		return model.Milestone{}, err
	}
	return milestone, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// ToggleStatus flips the milestone between pending and completed.
func (s *ServiceImpl) ToggleStatus(ctx context.Context, id string) (model.Milestone, error) {
	var toggled model.Milestone
	err := s.repo.Modify(ctx, func(items []model.Milestone) ([]model.Milestone, error) {
		for i := range items {
			if items[i].Id != id {
				continue
			}
			if items[i].Status == model.MilestoneCompleted {
				items[i].Status = model.MilestonePending
			} else {
				items[i].Status = model.MilestoneCompleted
			}
			toggled = items[i]
			return items, nil
		}
		return nil, repository.ErrNotFound
	})
	if err != nil {
		return model.Milestone{}, err
	}
	log.Debugf("Milestone %s is now %s", id, toggled.Status)
	return toggled, nil
}

func ForProject(milestones []model.Milestone, projectId string) []model.Milestone {
	found := make([]model.Milestone, 0)
	for _, m := range milestones {
		if m.ProjectId == projectId {
			found = append(found, m)
		}
	}
	return found
}
