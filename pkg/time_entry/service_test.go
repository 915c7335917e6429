package time_entry

import (
	"context"
	"testing"
	"time"

	"github.com/klokku/freelancer/internal/kvstore"
	"github.com/klokku/freelancer/internal/repository"
	"github.com/klokku/freelancer/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var location = time.FixedZone("CET", 3600)
var start = time.Date(2025, time.January, 20, 9, 0, 0, 0, location)

func setupServiceTest(t *testing.T) (*ServiceImpl, context.Context) {
	store := kvstore.NewMemory()
	repo := repository.New[model.TimeEntry](store, repository.TimeEntriesKey)
	return NewService(repo), context.Background()
}

func TestService_CreateManual(t *testing.T) {

	t.Run("should store valid entry", func(t *testing.T) {
		service, ctx := setupServiceTest(t)
		entry := model.TimeEntry{ProjectId: "p1", Description: "Homepage", StartTime: start, EndTime: start.Add(2 * time.Hour), HourlyRate: 85}

		stored, err := service.CreateManual(ctx, entry)
		require.NoError(t, err)
		entries, err := service.List(ctx)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, stored.Id, entries[0].Id)
		assert.True(t, entries[0].StartTime.Equal(start))
		assert.Equal(t, 2*time.Hour, entries[0].EndTime.Sub(entries[0].StartTime))
	})

	t.Run("should reject end before or equal to start without writing", func(t *testing.T) {
		service, ctx := setupServiceTest(t)

		for _, end := range []time.Time{start, start.Add(-time.Minute)} {
			_, err := service.CreateManual(ctx, model.TimeEntry{ProjectId: "p1", StartTime: start, EndTime: end})

			assert.ErrorIs(t, err, ErrInvalidTimeRange)
		}
		entries, _ := service.List(ctx)
		assert.Empty(t, entries)
	})
}

func TestService_Create(t *testing.T) {

	t.Run("should keep entries ending before start", func(t *testing.T) {
		service, ctx := setupServiceTest(t)

		_, err := service.Create(ctx, model.TimeEntry{StartTime: start, EndTime: start.Add(-time.Hour)})

		require.NoError(t, err)
		entries, _ := service.List(ctx)
		assert.Len(t, entries, 1)
	})
}

func TestService_UpdateAndDelete(t *testing.T) {
	service, ctx := setupServiceTest(t)
	stored, err := service.Create(ctx, model.TimeEntry{ProjectId: "p1", StartTime: start, EndTime: start.Add(time.Hour), HourlyRate: 85})
	require.NoError(t, err)

	t.Run("should update rate", func(t *testing.T) {
		stored.HourlyRate = 95
		_, err := service.Update(ctx, stored)
		require.NoError(t, err)

		found, err := service.Get(ctx, stored.Id)
		require.NoError(t, err)
		assert.Equal(t, 95.0, found.HourlyRate)
	})

	t.Run("should reject edit ending before or at start without writing", func(t *testing.T) {
		for _, end := range []time.Time{stored.StartTime, stored.StartTime.Add(-time.Hour)} {
			edited := stored
			edited.EndTime = end

			_, err := service.Update(ctx, edited)

			assert.ErrorIs(t, err, ErrInvalidTimeRange)
		}
		found, err := service.Get(ctx, stored.Id)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, found.EndTime.Sub(found.StartTime))
	})

	t.Run("should delete entry", func(t *testing.T) {
		deleted, err := service.Delete(ctx, stored.Id)

		require.NoError(t, err)
		assert.True(t, deleted)
		_, err = service.Get(ctx, stored.Id)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestFilters(t *testing.T) {
	entries := []model.TimeEntry{
		{Id: "1", ProjectId: "p1", StartTime: start},
		{Id: "2", ProjectId: "p2", StartTime: start.Add(3 * time.Hour)},
		{Id: "3", ProjectId: "p1", StartTime: start.AddDate(0, 0, 1)},
		{Id: "4", ProjectId: "p1", StartTime: time.Date(2025, time.January, 19, 23, 30, 0, 0, time.UTC)},
	}

	t.Run("should select entries of project", func(t *testing.T) {
		found := ForProject(entries, "p1")

		assert.Equal(t, []string{"1", "3", "4"}, ids(found))
	})

	t.Run("should select entries of day in day's location", func(t *testing.T) {
		found := OnDay(entries, start)

		// 23:30 UTC on the 19th is 00:30 on the 20th in CET
		assert.Equal(t, []string{"1", "2", "4"}, ids(found))
	})
}

func ids(entries []model.TimeEntry) []string {
	result := make([]string, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.Id)
	}
	return result
}
