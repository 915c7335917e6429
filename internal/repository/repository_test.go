package repository

import (
	"context"
	"testing"

	"github.com/klokku/freelancer/internal/event_bus"
	"github.com/klokku/freelancer/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	Id   string `json:"id"`
	Text string `json:"text"`
}

func (n note) Identity() string { return n.Id }

func (n note) WithIdentity(id string) note {
	n.Id = id
	return n
}

func setupRepositoryTest(t *testing.T) (*Repository[note], *kvstore.Memory, context.Context) {
	store := kvstore.NewMemory()
	return New[note](store, "notes"), store, context.Background()
}

func TestRepository_GetAll(t *testing.T) {

	t.Run("should return empty slice when slot is missing", func(t *testing.T) {
		repo, _, ctx := setupRepositoryTest(t)

		items, err := repo.GetAll(ctx)

		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("should return empty slice when slot holds null", func(t *testing.T) {
		repo, store, ctx := setupRepositoryTest(t)
		require.NoError(t, store.Set(ctx, "notes", []byte("null")))

		items, err := repo.GetAll(ctx)

		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("should fail with ErrMalformedData when slot cannot be decoded", func(t *testing.T) {
		repo, store, ctx := setupRepositoryTest(t)
		require.NoError(t, store.Set(ctx, "notes", []byte(`{"not":"an array"`)))

		_, err := repo.GetAll(ctx)

		assert.ErrorIs(t, err, ErrMalformedData)
	})

	t.Run("should return records with missing fields as they are", func(t *testing.T) {
		repo, store, ctx := setupRepositoryTest(t)
		require.NoError(t, store.Set(ctx, "notes", []byte(`[{"id":"1"},{"text":"orphan"}]`)))

		items, err := repo.GetAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, []note{{Id: "1"}, {Text: "orphan"}}, items)
	})
}

func TestRepository_Add(t *testing.T) {

	t.Run("should store record with generated id", func(t *testing.T) {
		repo, _, ctx := setupRepositoryTest(t)

		stored, err := repo.Add(ctx, note{Text: "first"})
		require.NoError(t, err)
		items, err := repo.GetAll(ctx)

		require.NoError(t, err)
		require.NotEmpty(t, stored.Id)
		assert.Equal(t, []note{{Id: stored.Id, Text: "first"}}, items)
	})

	t.Run("should generate unique ids", func(t *testing.T) {
		repo, _, ctx := setupRepositoryTest(t)
		ids := map[string]bool{}

		for i := 0; i < 200; i++ {
			stored, err := repo.Add(ctx, note{Text: "n"})
			require.NoError(t, err)
			ids[stored.Id] = true
		}

		assert.Len(t, ids, 200)
	})

	t.Run("should replace a caller supplied id", func(t *testing.T) {
		repo, _, ctx := setupRepositoryTest(t)

		stored, err := repo.Add(ctx, note{Id: "forged", Text: "x"})

		require.NoError(t, err)
		assert.NotEqual(t, "forged", stored.Id)
	})
}

func TestRepository_SaveAll(t *testing.T) {

	t.Run("should be idempotent when saving what was read", func(t *testing.T) {
		repo, store, ctx := setupRepositoryTest(t)
		for _, text := range []string{"a", "b", "c"} {
			_, err := repo.Add(ctx, note{Text: text})
			require.NoError(t, err)
		}
		before, _, err := store.Get(ctx, "notes")
		require.NoError(t, err)

		items, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.SaveAll(ctx, items))

		after, _, err := store.Get(ctx, "notes")
		require.NoError(t, err)
		assert.Equal(t, string(before), string(after))
	})

	t.Run("should persist nil as empty array", func(t *testing.T) {
		repo, store, ctx := setupRepositoryTest(t)

		require.NoError(t, repo.SaveAll(ctx, nil))

		value, ok, err := store.Get(ctx, "notes")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "[]", string(value))
	})

	t.Run("should publish collection saved event", func(t *testing.T) {
		repo, _, ctx := setupRepositoryTest(t)
		bus := event_bus.NewEventBus()
		repo.WithBus(bus)
		var saved []event_bus.CollectionSavedData
		event_bus.SubscribeTyped(bus, event_bus.CollectionSaved, func(e event_bus.EventT[event_bus.CollectionSavedData]) error {
			saved = append(saved, e.Data)
			return nil
		})

		_, err := repo.Add(ctx, note{Text: "a"})
		require.NoError(t, err)

		assert.Equal(t, []event_bus.CollectionSavedData{{Key: "notes", Count: 1}}, saved)
	})
}

func TestRepository_Delete(t *testing.T) {

	t.Run("should remove exactly one record when id exists", func(t *testing.T) {
		repo, _, ctx := setupRepositoryTest(t)
		first, _ := repo.Add(ctx, note{Text: "a"})
		second, _ := repo.Add(ctx, note{Text: "b"})

		deleted, err := repo.Delete(ctx, first.Id)
		require.NoError(t, err)
		items, err := repo.GetAll(ctx)

		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, []note{second}, items)
	})

	t.Run("should be a no-op when id does not exist", func(t *testing.T) {
		repo, _, ctx := setupRepositoryTest(t)
		first, _ := repo.Add(ctx, note{Text: "a"})

		deleted, err := repo.Delete(ctx, "missing")
		require.NoError(t, err)
		items, err := repo.GetAll(ctx)

		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Equal(t, []note{first}, items)
	})
}

func TestRepository_FindAndReplace(t *testing.T) {

	t.Run("should replace record sharing the id", func(t *testing.T) {
		repo, _, ctx := setupRepositoryTest(t)
		stored, _ := repo.Add(ctx, note{Text: "draft"})

		stored.Text = "final"
		require.NoError(t, repo.Replace(ctx, stored))
		found, err := repo.Find(ctx, stored.Id)

		require.NoError(t, err)
		assert.Equal(t, "final", found.Text)
	})

	t.Run("should report unknown id", func(t *testing.T) {
		repo, _, ctx := setupRepositoryTest(t)

		_, findErr := repo.Find(ctx, "missing")
		replaceErr := repo.Replace(ctx, note{Id: "missing"})

		assert.ErrorIs(t, findErr, ErrNotFound)
		assert.ErrorIs(t, replaceErr, ErrNotFound)
	})
}
