package dashboard

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/klokku/freelancer/internal/event_bus"
	"github.com/klokku/freelancer/internal/kvstore"
	"github.com/klokku/freelancer/internal/repository"
	"github.com/klokku/freelancer/internal/utils"
	"github.com/klokku/freelancer/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock *utils.MockClock
var location = time.FixedZone("CET", 3600)

func setupServiceTest(t *testing.T) (*ServiceImpl, context.Context, *kvstore.Memory) {
	store := kvstore.NewMemory()
	clock = &utils.MockClock{FixedNow: time.Date(2025, time.March, 14, 18, 0, 0, 0, location)}
	service := &ServiceImpl{
		collections:   repository.NewCollections(store, nil),
		store:         store,
		renderer:      NewCsvTimesheetRenderer(),
		clock:         clock,
		rnd:           rand.New(rand.NewPCG(1, 2)),
		averageSizeMB: 1.2,
	}
	return service, context.Background(), store
}

func TestService_Seed(t *testing.T) {

	t.Run("should create the demo data set", func(t *testing.T) {
		service, ctx, _ := setupServiceTest(t)

		result, err := service.Seed(ctx)

		require.NoError(t, err)
		assert.Equal(t, SeedResult{Clients: 3, Projects: 3, TimeEntries: 9, Milestones: 9, Expenses: 6, Documents: 9, Invoices: 3}, result)
		invoices, _ := service.collections.Invoices.GetAll(ctx)
		assert.Equal(t, "INV-2025-001", invoices[0].Number)
		assert.Equal(t, model.InvoiceSent, invoices[0].Status)
		expenses, _ := service.collections.Expenses.GetAll(ctx)
		for _, e := range expenses {
			assert.GreaterOrEqual(t, e.Amount, 500.0)
			assert.LessOrEqual(t, e.Amount, 1500.0)
		}
	})

	t.Run("should link records to seeded projects", func(t *testing.T) {
		service, ctx, _ := setupServiceTest(t)
		_, err := service.Seed(ctx)
		require.NoError(t, err)

		projects, _ := service.collections.Projects.GetAll(ctx)
		clients, _ := service.collections.Clients.GetAll(ctx)
		milestones, _ := service.collections.Milestones.GetAll(ctx)

		require.Len(t, projects, 3)
		assert.Equal(t, clients[0].Id, projects[0].ClientId)
		assert.Equal(t, "2025-02-12", projects[0].StartDate)
		assert.Equal(t, projects[0].Id, milestones[0].ProjectId)
		assert.Equal(t, 10000.0, milestones[0].Amount)
		assert.Equal(t, "2025-03-29", milestones[0].DueDate)
	})
}

func TestService_Summary(t *testing.T) {

	t.Run("should be empty without data", func(t *testing.T) {
		service, ctx, _ := setupServiceTest(t)

		summary, err := service.Summary(ctx)

		require.NoError(t, err)
		assert.Equal(t, Summary{}, summary)
	})

	t.Run("should aggregate seeded data", func(t *testing.T) {
		service, ctx, _ := setupServiceTest(t)
		_, err := service.Seed(ctx)
		require.NoError(t, err)

		summary, err := service.Summary(ctx)

		require.NoError(t, err)
		assert.Equal(t, 3, summary.ActiveProjects)
		assert.Equal(t, 3, summary.ActiveClients)
		assert.Equal(t, 3, summary.PendingInvoices)
		assert.InDelta(t, 1912.5, summary.TotalRevenue, 1e-9)
		assert.Equal(t, 22*time.Hour+30*time.Minute, summary.HoursToday)
		assert.InDelta(t, 1912.5, summary.EarningsToday, 1e-9)
		assert.InDelta(t, 10.8, summary.StorageUsedMB, 1e-9)
		assert.Zero(t, summary.OverdueMilestones)
		assert.Zero(t, summary.UpcomingMilestones)
		assert.Greater(t, summary.TotalExpenses, 3000.0)
	})

	t.Run("should count overdue and upcoming milestones", func(t *testing.T) {
		service, ctx, _ := setupServiceTest(t)
		for _, m := range []model.Milestone{
			{ProjectId: "p1", DueDate: "2025-03-13", Status: model.MilestonePending},
			{ProjectId: "p1", DueDate: "2025-03-13", Status: model.MilestoneCompleted},
			{ProjectId: "p1", DueDate: "2025-03-17", Status: model.MilestonePending},
		} {
			_, err := service.collections.Milestones.Add(ctx, m)
			require.NoError(t, err)
		}

		summary, err := service.Summary(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, summary.OverdueMilestones)
		assert.Equal(t, 1, summary.UpcomingMilestones)
	})

	t.Run("should fail on malformed slot", func(t *testing.T) {
		service, ctx, store := setupServiceTest(t)
		require.NoError(t, store.Set(ctx, repository.ProjectsKey, []byte("not json")))

		_, err := service.Summary(ctx)

		assert.ErrorIs(t, err, repository.ErrMalformedData)
	})
}

func TestService_ProjectOverviews(t *testing.T) {
	service, ctx, _ := setupServiceTest(t)
	_, err := service.Seed(ctx)
	require.NoError(t, err)
	_, err = service.collections.Projects.Add(ctx, model.Project{Name: "Orphan", ClientId: "gone", Status: model.ProjectOnHold})
	require.NoError(t, err)

	overviews, err := service.ProjectOverviews(ctx)

	require.NoError(t, err)
	require.Len(t, overviews, 4)
	first := overviews[0]
	assert.Equal(t, "Enterprise Web Application", first.ProjectName)
	assert.Equal(t, "John Smith", first.ClientName)
	assert.InDelta(t, 100.0/3, first.Progress, 1e-9)
	assert.Equal(t, 7*time.Hour+30*time.Minute, first.TimeSpent)
	assert.InDelta(t, 637.5, first.Revenue, 1e-9)
	assert.Equal(t, 1, first.CompletedMilestones)
	assert.Equal(t, 3, first.TotalMilestones)

	orphan := overviews[3]
	assert.Equal(t, model.UnknownClient, orphan.ClientName)
	assert.Zero(t, orphan.Progress)
	assert.Zero(t, orphan.TotalMilestones)
}

func TestService_Reset(t *testing.T) {
	service, ctx, store := setupServiceTest(t)
	_, err := service.Seed(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "activeTimer", []byte(`{"projectId":"p1"}`)))

	err = service.Reset(ctx)

	require.NoError(t, err)
	keys, _ := store.Keys(ctx)
	assert.Empty(t, keys)
	summary, err := service.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
}

func TestService_ResetEvent(t *testing.T) {

	t.Run("should publish reset noting the running timer", func(t *testing.T) {
		service, ctx, store := setupServiceTest(t)
		service.bus = event_bus.NewEventBus()
		var received []event_bus.DataResetData
		event_bus.SubscribeTyped(service.bus, event_bus.DataReset, func(e event_bus.EventT[event_bus.DataResetData]) error {
			received = append(received, e.Data)
			return nil
		})
		require.NoError(t, store.Set(ctx, "activeTimer", []byte(`{"projectId":"p1"}`)))

		require.NoError(t, service.Reset(ctx))
		require.NoError(t, service.Reset(ctx))

		assert.Equal(t, []event_bus.DataResetData{{TimerWasRunning: true}, {TimerWasRunning: false}}, received)
	})
}

func TestService_Timesheet(t *testing.T) {
	service, ctx, _ := setupServiceTest(t)
	day := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := service.collections.TimeEntries.Add(ctx, model.TimeEntry{
			ProjectId:  "p1",
			StartTime:  day.AddDate(0, 0, i),
			EndTime:    day.AddDate(0, 0, i).Add(time.Hour),
			HourlyRate: 50,
		})
		require.NoError(t, err)
	}

	csv, err := service.Timesheet(ctx, day.AddDate(0, 0, 1), day.AddDate(0, 0, 2))

	require.NoError(t, err)
	assert.Equal(t, "Date,Project,Description,Duration,Rate,Amount\n"+
		"2025-03-11,Unknown Project,,01:00:00,50.00,50.00\n"+
		"Total,,,01:00:00,,50.00\n", csv)
}
