package dashboard

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/klokku/freelancer/internal/event_bus"
	"github.com/klokku/freelancer/internal/kvstore"
	"github.com/klokku/freelancer/internal/repository"
	"github.com/klokku/freelancer/internal/utils"
	"github.com/klokku/freelancer/pkg/client"
	"github.com/klokku/freelancer/pkg/metrics"
	"github.com/klokku/freelancer/pkg/model"
	"github.com/klokku/freelancer/pkg/time_entry"
	"github.com/klokku/freelancer/pkg/timer"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Summary(ctx context.Context) (Summary, error)
	ProjectOverviews(ctx context.Context) ([]ProjectOverview, error)
	// Timesheet renders time entries started within [from, to) as CSV. Zero
	// bounds are open.
	Timesheet(ctx context.Context, from time.Time, to time.Time) (string, error)
	Seed(ctx context.Context) (SeedResult, error)
	// Reset removes every stored slot, the active timer included.
	Reset(ctx context.Context) error
}

type ServiceImpl struct {
	collections   *repository.Collections
	store         kvstore.Store
	bus           *event_bus.EventBus
	renderer      TimesheetRenderer
	clock         utils.Clock
	rnd           *rand.Rand
	averageSizeMB float64
}

func NewService(collections *repository.Collections, store kvstore.Store, bus *event_bus.EventBus, averageSizeMB float64) *ServiceImpl {
	return &ServiceImpl{
		collections:   collections,
		store:         store,
		bus:           bus,
		renderer:      NewCsvTimesheetRenderer(),
		clock:         &utils.SystemClock{},
		rnd:           rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		averageSizeMB: averageSizeMB,
	}
}

func (s *ServiceImpl) Summary(ctx context.Context) (Summary, error) {
	snapshot, err := s.load(ctx)
	if err != nil {
		return Summary{}, err
	}
	now := s.clock.Now()
	hoursToday, earningsToday := metrics.DayTotals(snapshot.entries, now)
	return Summary{
		ActiveProjects:     metrics.ActiveProjects(snapshot.projects),
		TotalRevenue:       metrics.Revenue(snapshot.entries),
		ActiveClients:      len(snapshot.clients),
		PendingInvoices:    metrics.PendingInvoices(snapshot.invoices),
		HoursToday:         hoursToday,
		EarningsToday:      earningsToday,
		TotalExpenses:      metrics.TotalExpenses(snapshot.expenses),
		StorageUsedMB:      metrics.StorageEstimate(snapshot.documents, s.averageSizeMB),
		OverdueMilestones:  metrics.CountOverdue(snapshot.milestones, now),
		UpcomingMilestones: metrics.CountUpcoming(snapshot.milestones, now, upcomingDays),
	}, nil
}

func (s *ServiceImpl) ProjectOverviews(ctx context.Context) ([]ProjectOverview, error) {
	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	overviews := make([]ProjectOverview, 0, len(snapshot.projects))
	for _, p := range snapshot.projects {
		completed, total := metrics.MilestoneCounts(snapshot.milestones, p.Id)
		overviews = append(overviews, ProjectOverview{
			ProjectId:           p.Id,
			ProjectName:         p.Name,
			ClientName:          client.NameOf(snapshot.clients, p.ClientId),
			Status:              string(p.Status),
			Budget:              p.Budget,
			Progress:            metrics.ProjectProgress(snapshot.milestones, p.Id),
			TimeSpent:           metrics.ProjectTimeSpent(snapshot.entries, p.Id),
			Revenue:             metrics.Revenue(time_entry.ForProject(snapshot.entries, p.Id)),
			CompletedMilestones: completed,
			TotalMilestones:     total,
		})
	}
	return overviews, nil
}

func (s *ServiceImpl) Timesheet(ctx context.Context, from time.Time, to time.Time) (string, error) {
	entries, err := s.collections.TimeEntries.GetAll(ctx)
	if err != nil {
		return "", err
	}
	projects, err := s.collections.Projects.GetAll(ctx)
	if err != nil {
		return "", err
	}
	selected := make([]model.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if !from.IsZero() && e.StartTime.Before(from) {
			continue
		}
		if !to.IsZero() && !e.StartTime.Before(to) {
			continue
		}
		selected = append(selected, e)
	}
	return s.renderer.RenderTimesheet(selected, projects)
}

func (s *ServiceImpl) Reset(ctx context.Context) error {
	_, timerRunning, err := s.store.Get(ctx, timer.ActiveTimerKey)
	if err != nil {
		return err
	}
	if err := s.store.Clear(ctx); err != nil {
		log.Errorf("failed to delete all data: %v", err)
		return err
	}
	log.Warn("All data deleted")
	if s.bus != nil {
		event := event_bus.NewEvent(ctx, event_bus.DataReset, event_bus.DataResetData{TimerWasRunning: timerRunning})
		if err := s.bus.Publish(event); err != nil {
			log.Warnf("reset event not fully handled: %v", err)
		}
	}
	return nil
}

type snapshot struct {
	clients    []model.Client
	projects   []model.Project
	entries    []model.TimeEntry
	milestones []model.Milestone
	expenses   []model.Expense
	invoices   []model.Invoice
	documents  []model.Document
}

func (s *ServiceImpl) load(ctx context.Context) (snapshot, error) {
	var snap snapshot
	var err error
	if snap.clients, err = s.collections.Clients.GetAll(ctx); err != nil {
		return snapshot{}, err
	}
	if snap.projects, err = s.collections.Projects.GetAll(ctx); err != nil {
		return snapshot{}, err
	}
	if snap.entries, err = s.collections.TimeEntries.GetAll(ctx); err != nil {
		return snapshot{}, err
	}
	if snap.milestones, err = s.collections.Milestones.GetAll(ctx); err != nil {
		return snapshot{}, err
	}
	if snap.expenses, err = s.collections.Expenses.GetAll(ctx); err != nil {
		return snapshot{}, err
	}
	if snap.invoices, err = s.collections.Invoices.GetAll(ctx); err != nil {
		return snapshot{}, err
	}
	if snap.documents, err = s.collections.Documents.GetAll(ctx); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}
