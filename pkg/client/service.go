package client

import (
	"context"
	"strings"

	"github.com/klokku/freelancer/internal/repository"
	"github.com/klokku/freelancer/pkg/model"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]model.Client, error)
	Get(ctx context.Context, id string) (model.Client, error)
	Create(ctx context.Context, client model.Client) (model.Client, error)
	Update(ctx context.Context, client model.Client) (model.Client, error)
	Delete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, term string) ([]model.Client, error)
}

type ServiceImpl struct {
	repo *repository.Repository[model.Client]
}

func NewService(repo *repository.Repository[model.Client]) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context) ([]model.Client, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (model.Client, error) {
	return s.repo.Find(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, client model.Client) (model.Client, error) {
	stored, err := s.repo.Add(ctx, client)
	if err != nil {
		return model.Client{}, err
	}
	log.Debugf("Client %s created with id %s", stored.Name, stored.Id)
	return stored, nil
}

func (s *ServiceImpl) Update(ctx context.Context, client model.Client) (model.Client, error) {
	if err := s.repo.Replace(ctx, client); err != nil {
		return model.Client{}, err
	}
	return client, nil
}

// Delete removes the client only. Projects referencing it are kept.
func (s *ServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// Search returns clients whose name, company or email contains term,
// ignoring case. An empty term matches everything.
func (s *ServiceImpl) Search(ctx context.Context, term string) ([]model.Client, error) {
	clients, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	found := make([]model.Client, 0, len(clients))
	for _, c := range clients {
		if Matches(c, term) {
			found = append(found, c)
		}
	}
	return found, nil
}

// Matches expects a lower-cased term.
func Matches(c model.Client, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.Company), term) ||
		strings.Contains(strings.ToLower(c.Email), term)
}

// NameOf returns the name of the client with the given id, or
// model.UnknownClient when the reference is dangling.
func NameOf(clients []model.Client, id string) string {
	for _, c := range clients {
		if c.Id == id {
			return c.Name
		}
	}
	return model.UnknownClient
}
