package expense

import (
	"context"
	"time"

	"github.com/klokku/freelancer/internal/repository"
	"github.com/klokku/freelancer/pkg/metrics"
	"github.com/klokku/freelancer/pkg/model"
)

// DefaultCategories are offered when recording an expense. Category is free
// text, other values are accepted as well.
var DefaultCategories = []string{
	"Software",
	"Hardware",
	"Office Supplies",
	"Travel",
	"Meals",
	"Services",
	"Other",
}

type Summary struct {
	Total      float64            `json:"total"`
	ByCategory map[string]float64 `json:"byCategory"`
	ByMonth    map[string]float64 `json:"byMonth"`
}

type Service interface {
	List(ctx context.Context) ([]model.Expense, error)
	Get(ctx context.Context, id string) (model.Expense, error)
	Create(ctx context.Context, expense model.Expense) (model.Expense, error)
	Update(ctx context.Context, expense model.Expense) (model.Expense, error)
	Delete(ctx context.Context, id string) (bool, error)
	Filter(ctx context.Context, category string, month string) ([]model.Expense, error)
	Summary(ctx context.Context) (Summary, error)
}

type ServiceImpl struct {
	repo *repository.Repository[model.Expense]
}

func NewService(repo *repository.Repository[model.Expense]) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context) ([]model.Expense, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (model.Expense, error) {
	return s.repo.Find(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, expense model.Expense) (model.Expense, error) {
	return s.repo.Add(ctx, expense)
}

func (s *ServiceImpl) Update(ctx context.Context, expense model.Expense) (model.Expense, error) {
	if err := s.repo.Replace(ctx, expense); err != nil {
		return model.Expense{}, err
	}
	return expense, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// Filter keeps expenses of the given category and month (YYYY-MM). Empty
// arguments do not filter.
func (s *ServiceImpl) Filter(ctx context.Context, category string, month string) ([]model.Expense, error) {
	expenses, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(expenses, category, month), nil
}

func (s *ServiceImpl) Summary(ctx context.Context) (Summary, error) {
	expenses, err := s.repo.GetAll(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Total:      metrics.TotalExpenses(expenses),
		ByCategory: metrics.CategoryTotals(expenses),
		ByMonth:    metrics.MonthlyTotals(expenses),
	}, nil
}

func Filter(expenses []model.Expense, category string, month string) []model.Expense {
	found := make([]model.Expense, 0, len(expenses))
	for _, e := range expenses {
		if category != "" && e.Category != category {
			continue
		}
		if month != "" {
			expenseMonth, ok := metrics.MonthOf(e.Date, time.Local)
			if !ok || expenseMonth != month {
				continue
			}
		}
		found = append(found, e)
	}
	return found
}
