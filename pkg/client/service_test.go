package client

import (
	"context"
	"testing"

	"github.com/klokku/freelancer/internal/kvstore"
	"github.com/klokku/freelancer/internal/repository"
	"github.com/klokku/freelancer/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServiceTest(t *testing.T) (*ServiceImpl, context.Context) {
	store := kvstore.NewMemory()
	t.Cleanup(func() { _ = store.Close() })
	repo := repository.New[model.Client](store, repository.ClientsKey)
	return NewService(repo), context.Background()
}

func TestService_Create(t *testing.T) {

	t.Run("should assign id and persist client", func(t *testing.T) {
		service, ctx := setupServiceTest(t)

		stored, err := service.Create(ctx, model.Client{Name: "Acme Corp", Email: "contact@acme.com", Company: "Acme Corporation"})
		require.NoError(t, err)
		clients, err := service.List(ctx)

		require.NoError(t, err)
		assert.NotEmpty(t, stored.Id)
		assert.Equal(t, []model.Client{stored}, clients)
	})
}

func TestService_Update(t *testing.T) {

	t.Run("should replace stored client", func(t *testing.T) {
		service, ctx := setupServiceTest(t)
		stored, err := service.Create(ctx, model.Client{Name: "Acme Corp"})
		require.NoError(t, err)

		stored.Phone = "+1 (555) 123-4567"
		_, err = service.Update(ctx, stored)
		require.NoError(t, err)
		found, err := service.Get(ctx, stored.Id)

		require.NoError(t, err)
		assert.Equal(t, "+1 (555) 123-4567", found.Phone)
	})

	t.Run("should fail for unknown client", func(t *testing.T) {
		service, ctx := setupServiceTest(t)

		_, err := service.Update(ctx, model.Client{Id: "missing"})

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestService_Delete(t *testing.T) {

	t.Run("should remove exactly one client", func(t *testing.T) {
		service, ctx := setupServiceTest(t)
		first, _ := service.Create(ctx, model.Client{Name: "First"})
		second, _ := service.Create(ctx, model.Client{Name: "Second"})

		deleted, err := service.Delete(ctx, first.Id)
		require.NoError(t, err)
		clients, _ := service.List(ctx)

		assert.True(t, deleted)
		assert.Equal(t, []model.Client{second}, clients)
	})

	t.Run("should report unknown id", func(t *testing.T) {
		service, ctx := setupServiceTest(t)
		_, _ = service.Create(ctx, model.Client{Name: "First"})

		deleted, err := service.Delete(ctx, "missing")
		clients, _ := service.List(ctx)

		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Len(t, clients, 1)
	})
}

func TestService_Search(t *testing.T) {
	service, ctx := setupServiceTest(t)
	acme, _ := service.Create(ctx, model.Client{Name: "Acme Corp", Email: "contact@acme.com", Company: "Acme Corporation"})
	tech, _ := service.Create(ctx, model.Client{Name: "TechStart Inc", Email: "hello@techstart.io", Company: "TechStart"})

	tests := []struct {
		name string
		term string
		want []model.Client
	}{
		{"should match name ignoring case", "acme corp", []model.Client{acme}},
		{"should match email", "techstart.io", []model.Client{tech}},
		{"should match company", "Corporation", []model.Client{acme}},
		{"should return all for empty term", "  ", []model.Client{acme, tech}},
		{"should return none when nothing matches", "globex", []model.Client{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := service.Search(ctx, tt.term)

			require.NoError(t, err)
			assert.Equal(t, tt.want, found)
		})
	}
}

func TestNameOf(t *testing.T) {
	clients := []model.Client{{Id: "1", Name: "Acme Corp"}}

	assert.Equal(t, "Acme Corp", NameOf(clients, "1"))
	assert.Equal(t, model.UnknownClient, NameOf(clients, "2"))
}
