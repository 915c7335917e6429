package dashboard

import (
	"bytes"
	"encoding/csv"
	"slices"
	"strconv"
	"time"

	"github.com/klokku/freelancer/pkg/metrics"
	"github.com/klokku/freelancer/pkg/model"
	"github.com/klokku/freelancer/pkg/project"
	log "github.com/sirupsen/logrus"
)

type TimesheetRenderer interface {
	RenderTimesheet(entries []model.TimeEntry, projects []model.Project) (string, error)
}

type CsvTimesheetRendererImpl struct {
}

func NewCsvTimesheetRenderer() *CsvTimesheetRendererImpl {
	return &CsvTimesheetRendererImpl{}
}

// RenderTimesheet writes one row per entry ordered by start time, followed by
// a total row.
func (t *CsvTimesheetRendererImpl) RenderTimesheet(entries []model.TimeEntry, projects []model.Project) (string, error) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b model.TimeEntry) int {
		return a.StartTime.Compare(b.StartTime)
	})

	data := make([][]string, 0, len(sorted)+2)
	data = append(data, []string{"Date", "Project", "Description", "Duration", "Rate", "Amount"})

	var totalTime time.Duration
	totalAmount := 0.0
	for _, entry := range sorted {
		duration := entry.EndTime.Sub(entry.StartTime)
		amount := metrics.RoundCents(metrics.EntryAmount(entry))
		totalTime += duration
		totalAmount += amount
		data = append(data, []string{
			metrics.FormatDate(entry.StartTime),
			project.NameOf(projects, entry.ProjectId),
			entry.Description,
			metrics.FormatDuration(duration),
			moneyToString(entry.HourlyRate),
			moneyToString(amount),
		})
	}
	data = append(data, []string{"Total", "", "", metrics.FormatDuration(totalTime), "", moneyToString(totalAmount)})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func moneyToString(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
