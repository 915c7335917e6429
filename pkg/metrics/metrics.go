// Package metrics computes derived values from record snapshots. Every
// function is pure: inputs are never modified and nothing is cached, so
// results can be recomputed on every read.
package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/klokku/freelancer/pkg/model"
)

// DefaultDocumentSizeMB is the assumed average document size. Documents are
// only referenced by URL, so storage usage is an estimate, not a measurement.
const DefaultDocumentSizeMB = 1.2

const dateLayout = "2006-01-02"
const monthLayout = "2006-01"

// HoursBetween returns (end - start) in hours. It is negative when end is
// before start.
func HoursBetween(start, end time.Time) float64 {
	return end.Sub(start).Seconds() / 3600
}

func EntryAmount(entry model.TimeEntry) float64 {
	return HoursBetween(entry.StartTime, entry.EndTime) * entry.HourlyRate
}

// Revenue sums hours * hourly rate over entries. Entries ending before they
// start contribute a negative amount; they are not clamped.
func Revenue(entries []model.TimeEntry) float64 {
	total := 0.0
	for _, entry := range entries {
		total += EntryAmount(entry)
	}
	return total
}

func ItemAmount(quantity, rate float64) float64 {
	return quantity * rate
}

// InvoiceTotal sums quantity * rate. The stored item amount is ignored.
func InvoiceTotal(items []model.InvoiceItem) float64 {
	total := 0.0
	for _, item := range items {
		total += ItemAmount(item.Quantity, item.Rate)
	}
	return total
}

// ProjectProgress returns the percentage of completed milestones of the
// project, 0 when it has none.
func ProjectProgress(milestones []model.Milestone, projectId string) float64 {
	completed, total := MilestoneCounts(milestones, projectId)
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

func MilestoneCounts(milestones []model.Milestone, projectId string) (completed int, total int) {
	for _, m := range milestones {
		if m.ProjectId != projectId {
			continue
		}
		total++
		if m.Status == model.MilestoneCompleted {
			completed++
		}
	}
	return completed, total
}

// IsOverdue reports a pending milestone whose due date has passed.
func IsOverdue(m model.Milestone, now time.Time) bool {
	if m.Status != model.MilestonePending {
		return false
	}
	due, ok := ParseDate(m.DueDate, now.Location())
	return ok && due.Before(now)
}

// IsUpcoming reports a pending milestone due strictly within (now, now+days).
func IsUpcoming(m model.Milestone, now time.Time, days int) bool {
	if m.Status != model.MilestonePending {
		return false
	}
	due, ok := ParseDate(m.DueDate, now.Location())
	return ok && due.After(now) && due.Before(now.AddDate(0, 0, days))
}

func CountOverdue(milestones []model.Milestone, now time.Time) int {
	count := 0
	for _, m := range milestones {
		if IsOverdue(m, now) {
			count++
		}
	}
	return count
}

func CountUpcoming(milestones []model.Milestone, now time.Time, days int) int {
	count := 0
	for _, m := range milestones {
		if IsUpcoming(m, now, days) {
			count++
		}
	}
	return count
}

func TotalExpenses(expenses []model.Expense) float64 {
	total := 0.0
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

func CategoryTotals(expenses []model.Expense) map[string]float64 {
	totals := map[string]float64{}
	for _, e := range expenses {
		totals[e.Category] += e.Amount
	}
	return totals
}

func CategoryTotal(expenses []model.Expense, category string) float64 {
	return CategoryTotals(expenses)[category]
}

// MonthlyTotals groups expense amounts by local YYYY-MM of their date.
// Expenses with an unreadable date are left out.
func MonthlyTotals(expenses []model.Expense) map[string]float64 {
	return MonthlyTotalsIn(expenses, time.Local)
}

func MonthlyTotalsIn(expenses []model.Expense, loc *time.Location) map[string]float64 {
	totals := map[string]float64{}
	for _, e := range expenses {
		month, ok := MonthOf(e.Date, loc)
		if !ok {
			continue
		}
		totals[month] += e.Amount
	}
	return totals
}

// MonthOf returns the YYYY-MM of a stored date as seen in loc. Timestamps
// carrying their own offset are converted to loc first.
func MonthOf(value string, loc *time.Location) (string, bool) {
	if loc == nil {
		loc = time.Local
	}
	date, ok := ParseDate(value, loc)
	if !ok {
		return "", false
	}
	return MonthKey(date.In(loc)), true
}

func MonthlyTotal(expenses []model.Expense, month string) float64 {
	return MonthlyTotals(expenses)[month]
}

// StorageEstimate returns the estimated storage used by documents in MB.
// A non-positive averageSizeMB falls back to DefaultDocumentSizeMB.
func StorageEstimate(documents []model.Document, averageSizeMB float64) float64 {
	if averageSizeMB <= 0 {
		averageSizeMB = DefaultDocumentSizeMB
	}
	return float64(len(documents)) * averageSizeMB
}

// RecentUploads counts documents uploaded after now minus days.
func RecentUploads(documents []model.Document, now time.Time, days int) int {
	since := now.AddDate(0, 0, -days)
	count := 0
	for _, d := range documents {
		uploaded, ok := ParseDate(d.UploadDate, now.Location())
		if ok && uploaded.After(since) {
			count++
		}
	}
	return count
}

func ProjectTimeSpent(entries []model.TimeEntry, projectId string) time.Duration {
	var spent time.Duration
	for _, entry := range entries {
		if entry.ProjectId == projectId {
			spent += entry.EndTime.Sub(entry.StartTime)
		}
	}
	return spent
}

// DayTotals sums tracked time and earnings of entries started on the calendar
// day of day, in day's location.
func DayTotals(entries []model.TimeEntry, day time.Time) (time.Duration, float64) {
	var tracked time.Duration
	earned := 0.0
	for _, entry := range entries {
		if !SameDay(entry.StartTime, day) {
			continue
		}
		tracked += entry.EndTime.Sub(entry.StartTime)
		earned += RoundCents(EntryAmount(entry))
	}
	return tracked, earned
}

func ActiveProjects(projects []model.Project) int {
	count := 0
	for _, p := range projects {
		if p.Status == model.ProjectActive {
			count++
		}
	}
	return count
}

// PendingInvoices counts invoices not yet paid (draft or sent).
func PendingInvoices(invoices []model.Invoice) int {
	count := 0
	for _, i := range invoices {
		if i.Status == model.InvoiceDraft || i.Status == model.InvoiceSent {
			count++
		}
	}
	return count
}

// ParseDate reads a YYYY-MM-DD date (midnight in loc) or an RFC3339 timestamp.
func ParseDate(value string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(dateLayout, value, loc); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatDuration renders d as HH:MM:SS. Hours are not capped at 24.
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	seconds := int64(d / time.Second)
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, seconds/3600, seconds/60%60, seconds%60)
}

func MonthKey(t time.Time) string {
	return t.Format(monthLayout)
}

func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func RoundCents(value float64) float64 {
	return math.Round(value*100) / 100
}
