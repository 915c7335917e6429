package project

import (
	"context"
	"strings"

	"github.com/klokku/freelancer/internal/repository"
	"github.com/klokku/freelancer/pkg/model"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]model.Project, error)
	Get(ctx context.Context, id string) (model.Project, error)
	Create(ctx context.Context, project model.Project) (model.Project, error)
	Update(ctx context.Context, project model.Project) (model.Project, error)
	Delete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, term string, status model.ProjectStatus) ([]model.Project, error)
}

type ServiceImpl struct {
	repo *repository.Repository[model.Project]
}

func NewService(repo *repository.Repository[model.Project]) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context) ([]model.Project, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (model.Project, error) {
	return s.repo.Find(ctx, id)
}

// Create stores the project. A missing status defaults to active.
func (s *ServiceImpl) Create(ctx context.Context, project model.Project) (model.Project, error) {
	if project.Status == "" {
		project.Status = model.ProjectActive
	}
	stored, err := s.repo.Add(ctx, project)
	if err != nil {
		return model.Project{}, err
	}
	log.Debugf("Project %s created with id %s", stored.Name, stored.Id)
	return stored, nil
}

func (s *ServiceImpl) Update(ctx context.Context, project model.Project) (model.Project, error) {
	if err := s.repo.Replace(ctx, project); err != nil {
		return model.Project{}, err
	}
	return project, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// Search filters by a case-insensitive term over name and description and,
// when status is not empty, by status.
func (s *ServiceImpl) Search(ctx context.Context, term string, status model.ProjectStatus) ([]model.Project, error) {
	projects, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	found := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if status != "" && p.Status != status {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		found = append(found, p)
	}
	return found, nil
}

func ForClient(projects []model.Project, clientId string) []model.Project {
	found := make([]model.Project, 0)
	for _, p := range projects {
		if p.ClientId == clientId {
			found = append(found, p)
		}
	}
	return found
}

// NameOf returns model.UnknownProject for dangling references.
func NameOf(projects []model.Project, id string) string {
	for _, p := range projects {
		if p.Id == id {
			return p.Name
		}
	}
	return model.UnknownProject
}

func ValidStatus(status model.ProjectStatus) bool {
	switch status {
	case model.ProjectActive, model.ProjectCompleted, model.ProjectOnHold:
		return true
	}
	return false
}
