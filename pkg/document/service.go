package document

import (
	"context"
	"strings"
	"time"

	"github.com/klokku/freelancer/internal/repository"
	"github.com/klokku/freelancer/internal/utils"
	"github.com/klokku/freelancer/pkg/metrics"
	"github.com/klokku/freelancer/pkg/model"
)

var DefaultTypes = []string{"pdf", "image", "document", "spreadsheet", "presentation", "other"}

const recentDays = 7

type ProjectLister interface {
	List(ctx context.Context) ([]model.Project, error)
}

type Stats struct {
	Total         int     `json:"total"`
	RecentUploads int     `json:"recentUploads"`
	StorageUsedMB float64 `json:"storageUsedMB"`
}

type Service interface {
	List(ctx context.Context) ([]model.Document, error)
	Get(ctx context.Context, id string) (model.Document, error)
	Create(ctx context.Context, document model.Document) (model.Document, error)
	Update(ctx context.Context, document model.Document) (model.Document, error)
	Delete(ctx context.Context, id string) (bool, error)
	Filter(ctx context.Context, docType string, search string) ([]model.Document, error)
	Stats(ctx context.Context) (Stats, error)
}

type ServiceImpl struct {
	repo          *repository.Repository[model.Document]
	projects      ProjectLister
	clock         utils.Clock
	averageSizeMB float64
}

func NewService(repo *repository.Repository[model.Document], projects ProjectLister, averageSizeMB float64) *ServiceImpl {
	return &ServiceImpl{repo, projects, &utils.SystemClock{}, averageSizeMB}
}

func (s *ServiceImpl) List(ctx context.Context) ([]model.Document, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (model.Document, error) {
	return s.repo.Find(ctx, id)
}

// Create stamps the upload date with the current time unless one is given.
func (s *ServiceImpl) Create(ctx context.Context, document model.Document) (model.Document, error) {
	if document.UploadDate == "" {
		document.UploadDate = s.clock.Now().UTC().Format(time.RFC3339)
	}
	return s.repo.Add(ctx, document)
}

func (s *ServiceImpl) Update(ctx context.Context, document model.Document) (model.Document, error) {
	if err := s.repo.Replace(ctx, document); err != nil {
		return model.Document{}, err
	}
	return document, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *ServiceImpl) Filter(ctx context.Context, docType string, search string) ([]model.Document, error) {
	documents, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var projects []model.Project
	if strings.TrimSpace(search) != "" {
		if projects, err = s.projects.List(ctx); err != nil {
			return nil, err
		}
	}
	return Filter(documents, projects, docType, search), nil
}

func (s *ServiceImpl) Stats(ctx context.Context) (Stats, error) {
	documents, err := s.repo.GetAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Total:         len(documents),
		RecentUploads: RecentUploads(documents, s.clock.Now()),
		StorageUsedMB: metrics.StorageEstimate(documents, s.averageSizeMB),
	}, nil
}

// Filter keeps documents of docType whose name or project name contains
// search, ignoring case. Empty arguments do not filter.
func Filter(documents []model.Document, projects []model.Project, docType string, search string) []model.Document {
	search = strings.ToLower(strings.TrimSpace(search))
	projectNames := make(map[string]string, len(projects))
	for _, p := range projects {
		projectNames[p.Id] = strings.ToLower(p.Name)
	}
	found := make([]model.Document, 0, len(documents))
	for _, d := range documents {
		if docType != "" && d.Type != docType {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(d.Name), search) &&
			!strings.Contains(projectNames[d.ProjectId], search) {
			continue
		}
		found = append(found, d)
	}
	return found
}

// RecentUploads counts documents uploaded within the last seven days.
func RecentUploads(documents []model.Document, now time.Time) int {
	return metrics.RecentUploads(documents, now, recentDays)
}
