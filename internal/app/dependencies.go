package app

import (
	"github.com/klokku/freelancer/internal/config"
	"github.com/klokku/freelancer/internal/event_bus"
	"github.com/klokku/freelancer/internal/kvstore"
	"github.com/klokku/freelancer/internal/repository"
	"github.com/klokku/freelancer/internal/telemetry"
	"github.com/klokku/freelancer/internal/utils"
	"github.com/klokku/freelancer/pkg/client"
	"github.com/klokku/freelancer/pkg/dashboard"
	"github.com/klokku/freelancer/pkg/document"
	"github.com/klokku/freelancer/pkg/expense"
	"github.com/klokku/freelancer/pkg/invoice"
	"github.com/klokku/freelancer/pkg/milestone"
	"github.com/klokku/freelancer/pkg/project"
	"github.com/klokku/freelancer/pkg/time_entry"
	"github.com/klokku/freelancer/pkg/timer"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Config      config.Application
	Store       kvstore.Store
	EventBus    *event_bus.EventBus
	Telemetry   *telemetry.Telemetry
	Collections *repository.Collections

	ClientService *client.ServiceImpl
	ClientHandler *client.Handler

	ProjectService *project.ServiceImpl
	ProjectHandler *project.Handler

	TimeEntryService *time_entry.ServiceImpl
	TimeEntryHandler *time_entry.Handler

	TimerRepo    timer.Repository
	TimerService *timer.ServiceImpl
	TimerHandler *timer.Handler

	MilestoneService *milestone.ServiceImpl
	MilestoneHandler *milestone.Handler

	ExpenseService *expense.ServiceImpl
	ExpenseHandler *expense.Handler

	InvoiceService *invoice.ServiceImpl
	InvoiceHandler *invoice.Handler

	DocumentService *document.ServiceImpl
	DocumentHandler *document.Handler

	DashboardService *dashboard.ServiceImpl
	DashboardHandler *dashboard.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers
// on top of an opened store.
func BuildDependencies(store kvstore.Store, cfg config.Application) *Dependencies {
	deps := &Dependencies{Config: cfg, Store: store}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()
	deps.Telemetry = telemetry.New()
	deps.Telemetry.Subscribe(deps.EventBus)
	telemetry.SubscribeAudit(deps.EventBus)

	deps.Collections = repository.NewCollections(store, deps.EventBus)

	deps.ClientService = client.NewService(deps.Collections.Clients)
	deps.ClientHandler = client.NewHandler(deps.ClientService)

	deps.ProjectService = project.NewService(deps.Collections.Projects)
	deps.ProjectHandler = project.NewHandler(deps.ProjectService)

	deps.TimeEntryService = time_entry.NewService(deps.Collections.TimeEntries)
	deps.TimeEntryHandler = time_entry.NewHandler(deps.TimeEntryService)

	deps.TimerRepo = timer.NewRepository(store)
	deps.TimerService = timer.NewService(deps.TimerRepo, deps.TimeEntryService, deps.EventBus, cfg.Timer.Tick)
	deps.TimerHandler = timer.NewHandler(deps.TimerService, cfg.Timer.DefaultHourlyRate)

	deps.MilestoneService = milestone.NewService(deps.Collections.Milestones)
	deps.MilestoneHandler = milestone.NewHandler(deps.MilestoneService, deps.Clock)

	deps.ExpenseService = expense.NewService(deps.Collections.Expenses)
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.InvoiceService = invoice.NewService(deps.Collections.Invoices, deps.ProjectService)
	deps.InvoiceHandler = invoice.NewHandler(deps.InvoiceService)

	deps.DocumentService = document.NewService(deps.Collections.Documents, deps.ProjectService, cfg.Documents.AverageSizeMB)
	deps.DocumentHandler = document.NewHandler(deps.DocumentService)

	deps.DashboardService = dashboard.NewService(deps.Collections, store, deps.EventBus, cfg.Documents.AverageSizeMB)
	deps.DashboardHandler = dashboard.NewHandler(deps.DashboardService)

	return deps
}
