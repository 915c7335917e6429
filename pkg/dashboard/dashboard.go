package dashboard

import "time"

const upcomingDays = 7

type Summary struct {
	ActiveProjects     int
	TotalRevenue       float64
	ActiveClients      int
	PendingInvoices    int
	HoursToday         time.Duration
	EarningsToday      float64
	TotalExpenses      float64
	StorageUsedMB      float64
	OverdueMilestones  int
	UpcomingMilestones int
}

type ProjectOverview struct {
	ProjectId           string
	ProjectName         string
	ClientName          string
	Status              string
	Budget              float64
	Progress            float64
	TimeSpent           time.Duration
	Revenue             float64
	CompletedMilestones int
	TotalMilestones     int
}

// SeedResult counts the records created by Seed.
type SeedResult struct {
	Clients     int
	Projects    int
	TimeEntries int
	Milestones  int
	Expenses    int
	Documents   int
	Invoices    int
}
