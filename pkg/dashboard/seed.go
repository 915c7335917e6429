package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/klokku/freelancer/pkg/metrics"
	"github.com/klokku/freelancer/pkg/model"
	log "github.com/sirupsen/logrus"
)

var seedHourlyRates = []float64{85, 95, 75}
var seedExpenseCategories = []string{"Software", "Hardware", "Travel", "Office Supplies"}
var seedDocumentTypes = []string{"pdf", "image", "document"}

type seedMilestone struct {
	title       string
	description string
	share       float64
	status      model.MilestoneStatus
}

var seedMilestones = []seedMilestone{
	{"Project Planning", "Complete project scope and requirements documentation", 0.2, model.MilestoneCompleted},
	{"Development Phase 1", "Core functionality implementation", 0.3, model.MilestonePending},
	{"Testing & QA", "Comprehensive testing and bug fixes", 0.2, model.MilestonePending},
}

// Seed adds a demo data set relative to the current day: three clients with
// one active project each, and time entries, milestones, expenses, documents
// and a sent invoice for every project.
func (s *ServiceImpl) Seed(ctx context.Context) (SeedResult, error) {
	now := s.clock.Now()
	day := func(offset int) string {
		return metrics.FormatDate(now.AddDate(0, 0, offset))
	}
	var result SeedResult

	clients := []model.Client{
		{Name: "John Smith", Email: "john@techcorp.com", Company: "TechCorp", Phone: "(555) 123-4567", Address: "123 Tech Street, Silicon Valley, CA 94025"},
		{Name: "Sarah Johnson", Email: "sarah@designstudio.com", Company: "Design Studio", Phone: "(555) 987-6543", Address: "456 Creative Ave, San Francisco, CA 94110"},
		{Name: "Mike Wilson", Email: "mike@startupinc.com", Company: "Startup Inc", Phone: "(555) 456-7890", Address: "789 Innovation Blvd, Austin, TX 78701"},
	}
	for i := range clients {
		stored, err := s.collections.Clients.Add(ctx, clients[i])
		if err != nil {
			return result, err
		}
		clients[i] = stored
		result.Clients++
	}

	projects := []model.Project{
		{ClientId: clients[0].Id, Name: "Enterprise Web Application", Description: "Development of a full-stack web application for internal team management", StartDate: day(-30), EndDate: day(60), Status: model.ProjectActive, Budget: 50000},
		{ClientId: clients[1].Id, Name: "Mobile App Design", Description: "UI/UX design and development of a mobile application", StartDate: day(-15), EndDate: day(45), Status: model.ProjectActive, Budget: 35000},
		{ClientId: clients[2].Id, Name: "E-commerce Platform", Description: "Building a custom e-commerce solution with inventory management", StartDate: day(-5), EndDate: day(85), Status: model.ProjectActive, Budget: 75000},
	}
	for i := range projects {
		stored, err := s.collections.Projects.Add(ctx, projects[i])
		if err != nil {
			return result, err
		}
		projects[i] = stored
		result.Projects++
	}

	year, month, date := now.Date()
	for index, project := range projects {
		for i := 0; i < 3; i++ {
			start := time.Date(year, month, date, 9+i*3, 0, 0, 0, now.Location())
			_, err := s.collections.TimeEntries.Add(ctx, model.TimeEntry{
				ProjectId:   project.Id,
				Description: fmt.Sprintf("Working on %s - Task %d", project.Name, i+1),
				StartTime:   start,
				EndTime:     start.Add(2*time.Hour + 30*time.Minute),
				HourlyRate:  seedHourlyRates[index],
			})
			if err != nil {
				return result, err
			}
			result.TimeEntries++
		}

		for i, m := range seedMilestones {
			_, err := s.collections.Milestones.Add(ctx, model.Milestone{
				ProjectId:   project.Id,
				Title:       m.title,
				Description: m.description,
				DueDate:     day(15 * (i + 1)),
				Status:      m.status,
				Amount:      project.Budget * m.share,
			})
			if err != nil {
				return result, err
			}
			result.Milestones++
		}

		for i := 0; i < 2; i++ {
			_, err := s.collections.Expenses.Add(ctx, model.Expense{
				ProjectId:   project.Id,
				Description: fmt.Sprintf("%s expense for %s", seedExpenseCategories[i], project.Name),
				Amount:      metrics.RoundCents(s.rnd.Float64()*1000 + 500),
				Date:        day(-3 * i),
				Category:    seedExpenseCategories[i],
				Receipt:     fmt.Sprintf("https://example.com/receipts/%s-%d.pdf", project.Id, i),
			})
			if err != nil {
				return result, err
			}
			result.Expenses++
		}

		for i, docType := range seedDocumentTypes {
			_, err := s.collections.Documents.Add(ctx, model.Document{
				ProjectId:  project.Id,
				Name:       fmt.Sprintf("%s - Document %d.%s", project.Name, i+1, docType),
				Type:       docType,
				Url:        fmt.Sprintf("https://example.com/documents/%s-%d.%s", project.Id, i, docType),
				UploadDate: day(-i),
			})
			if err != nil {
				return result, err
			}
			result.Documents++
		}

		_, err := s.collections.Invoices.Add(ctx, model.Invoice{
			ProjectId: project.Id,
			ClientId:  project.ClientId,
			Number:    fmt.Sprintf("INV-%d-%03d", year, index+1),
			Date:      day(0),
			DueDate:   day(30),
			Items: []model.InvoiceItem{
				{Description: "Development Services", Quantity: 40, Rate: 85, Amount: 3400},
				{Description: "Design Services", Quantity: 20, Rate: 95, Amount: 1900},
			},
			Status: model.InvoiceSent,
		})
		if err != nil {
			return result, err
		}
		result.Invoices++
	}

	log.Infof("Seeded test data: %+v", result)
	return result, nil
}
