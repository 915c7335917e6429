package app

import (
	"github.com/gorilla/mux"
	"github.com/klokku/freelancer/internal/config"
)

// RegisterRoutes registers all API endpoints. Fixed sub-paths are registered
// before the {id} routes sharing their prefix.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Clients
	r.HandleFunc("/api/clients", deps.ClientHandler.ListClients).Methods("GET")
	r.HandleFunc("/api/clients", deps.ClientHandler.CreateClient).Methods("POST")
	r.HandleFunc("/api/clients/{clientId}", deps.ClientHandler.GetClient).Methods("GET")
	r.HandleFunc("/api/clients/{clientId}", deps.ClientHandler.UpdateClient).Methods("PUT")
	r.HandleFunc("/api/clients/{clientId}", deps.ClientHandler.DeleteClient).Methods("DELETE")

	// Projects
	r.HandleFunc("/api/projects", deps.ProjectHandler.ListProjects).Methods("GET")
	r.HandleFunc("/api/projects", deps.ProjectHandler.CreateProject).Methods("POST")
	r.HandleFunc("/api/projects/{projectId}", deps.ProjectHandler.GetProject).Methods("GET")
	r.HandleFunc("/api/projects/{projectId}", deps.ProjectHandler.UpdateProject).Methods("PUT")
	r.HandleFunc("/api/projects/{projectId}", deps.ProjectHandler.DeleteProject).Methods("DELETE")

	// Time entries
	r.HandleFunc("/api/time-entries", deps.TimeEntryHandler.ListTimeEntries).Methods("GET")
	r.HandleFunc("/api/time-entries", deps.TimeEntryHandler.CreateTimeEntry).Methods("POST")
	r.HandleFunc("/api/time-entries/{entryId}", deps.TimeEntryHandler.GetTimeEntry).Methods("GET")
	r.HandleFunc("/api/time-entries/{entryId}", deps.TimeEntryHandler.UpdateTimeEntry).Methods("PUT")
	r.HandleFunc("/api/time-entries/{entryId}", deps.TimeEntryHandler.DeleteTimeEntry).Methods("DELETE")

	// Timer
	r.HandleFunc("/api/timer", deps.TimerHandler.GetTimer).Methods("GET")
	r.HandleFunc("/api/timer", deps.TimerHandler.StartTimer).Methods("POST")
	r.HandleFunc("/api/timer", deps.TimerHandler.StopTimer).Methods("DELETE")

	// Milestones
	r.HandleFunc("/api/milestones", deps.MilestoneHandler.ListMilestones).Methods("GET")
	r.HandleFunc("/api/milestones", deps.MilestoneHandler.CreateMilestone).Methods("POST")
	r.HandleFunc("/api/milestones/{milestoneId}", deps.MilestoneHandler.GetMilestone).Methods("GET")
	r.HandleFunc("/api/milestones/{milestoneId}", deps.MilestoneHandler.UpdateMilestone).Methods("PUT")
	r.HandleFunc("/api/milestones/{milestoneId}/toggle", deps.MilestoneHandler.ToggleMilestone).Methods("POST")
	r.HandleFunc("/api/milestones/{milestoneId}", deps.MilestoneHandler.DeleteMilestone).Methods("DELETE")

	// Expenses
	r.HandleFunc("/api/expenses", deps.ExpenseHandler.ListExpenses).Methods("GET")
	r.HandleFunc("/api/expenses", deps.ExpenseHandler.CreateExpense).Methods("POST")
	r.HandleFunc("/api/expenses/summary", deps.ExpenseHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/expenses/categories", deps.ExpenseHandler.ListCategories).Methods("GET")
	r.HandleFunc("/api/expenses/{expenseId}", deps.ExpenseHandler.GetExpense).Methods("GET")
	r.HandleFunc("/api/expenses/{expenseId}", deps.ExpenseHandler.UpdateExpense).Methods("PUT")
	r.HandleFunc("/api/expenses/{expenseId}", deps.ExpenseHandler.DeleteExpense).Methods("DELETE")

	// Invoices
	r.HandleFunc("/api/invoices", deps.InvoiceHandler.ListInvoices).Methods("GET")
	r.HandleFunc("/api/invoices", deps.InvoiceHandler.CreateInvoice).Methods("POST")
	r.HandleFunc("/api/invoices/totals", deps.InvoiceHandler.GetTotals).Methods("GET")
	r.HandleFunc("/api/invoices/{invoiceId}", deps.InvoiceHandler.GetInvoice).Methods("GET")
	r.HandleFunc("/api/invoices/{invoiceId}", deps.InvoiceHandler.UpdateInvoice).Methods("PUT")
	r.HandleFunc("/api/invoices/{invoiceId}", deps.InvoiceHandler.DeleteInvoice).Methods("DELETE")
	r.HandleFunc("/api/invoices/{invoiceId}/status", deps.InvoiceHandler.UpdateStatus).Methods("PUT")
	r.HandleFunc("/api/invoices/{invoiceId}/items", deps.InvoiceHandler.AddItem).Methods("POST")
	r.HandleFunc("/api/invoices/{invoiceId}/items/{index}", deps.InvoiceHandler.UpdateItem).Methods("PATCH")
	r.HandleFunc("/api/invoices/{invoiceId}/items/{index}", deps.InvoiceHandler.DeleteItem).Methods("DELETE")

	// Documents
	r.HandleFunc("/api/documents", deps.DocumentHandler.ListDocuments).Methods("GET")
	r.HandleFunc("/api/documents", deps.DocumentHandler.CreateDocument).Methods("POST")
	r.HandleFunc("/api/documents/stats", deps.DocumentHandler.GetStats).Methods("GET")
	r.HandleFunc("/api/documents/types", deps.DocumentHandler.ListTypes).Methods("GET")
	r.HandleFunc("/api/documents/{documentId}", deps.DocumentHandler.GetDocument).Methods("GET")
	r.HandleFunc("/api/documents/{documentId}", deps.DocumentHandler.UpdateDocument).Methods("PUT")
	r.HandleFunc("/api/documents/{documentId}", deps.DocumentHandler.DeleteDocument).Methods("DELETE")

	// Dashboard
	r.HandleFunc("/api/dashboard", deps.DashboardHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/dashboard/projects", deps.DashboardHandler.GetProjectOverviews).Methods("GET")
	r.HandleFunc("/api/timesheet.csv", deps.DashboardHandler.GetTimesheet).Methods("GET")
	r.HandleFunc("/api/seed", deps.DashboardHandler.Seed).Methods("POST")
	r.HandleFunc("/api/data", deps.DashboardHandler.DeleteAllData).Methods("DELETE")

	if cfg.Metrics.Enabled {
		r.Handle("/metrics", deps.Telemetry.Handler()).Methods("GET")
	}
}
