package repository

import (
	"context"
	"testing"
	"time"

	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRepo_CRUD(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLClientRepo(database)

	c := testutil.NewTestClient("Ana López", testutil.WithCompany("Acme"))
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana López", got.Name)
	assert.Equal(t, "Acme", got.Company)

	c.Phone = "555-0101"
	c.UpdatedAt = c.UpdatedAt.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, c))
	got, err = repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0101", got.Phone)

	require.NoError(t, repo.Delete(ctx, c.ID))
	_, err = repo.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, c), domain.ErrNotFound)
}

func TestClientRepo_ListAndSearch(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLClientRepo(database)

	clients := []*domain.Client{
		testutil.NewTestClient("Bruno", testutil.WithEmail("bruno@corp.mx")),
		testutil.NewTestClient("Ana", testutil.WithCompany("Tacos El Güero")),
		testutil.NewTestClient("Carla", testutil.WithClientOwner("other")),
	}
	for _, c := range clients {
		require.NoError(t, repo.Create(ctx, c))
	}

	all, err := repo.List(ctx, testutil.TestOwner)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ana", all[0].Name)
	assert.Equal(t, "Bruno", all[1].Name)

	found, err := repo.Search(ctx, testutil.TestOwner, "CORP")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Bruno", found[0].Name)

	found, err = repo.Search(ctx, testutil.TestOwner, "tacos")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Ana", found[0].Name)

	found, err = repo.Search(ctx, testutil.TestOwner, "carla")
	require.NoError(t, err)
	assert.Empty(t, found, "search is scoped to the owner")
}

func TestClientRepo_Upsert(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLClientRepo(database)

	c := testutil.NewTestClient("Ana")
	require.NoError(t, repo.Upsert(ctx, c))
	c.Name = "Ana María"
	require.NoError(t, repo.Upsert(ctx, c))

	all, err := repo.List(ctx, testutil.TestOwner)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Ana María", all[0].Name)
}

func TestClientRepo_Upsert_KeepsOtherOwnersRow(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLClientRepo(database)

	c := testutil.NewTestClient("Ana")
	require.NoError(t, repo.Upsert(ctx, c))

	copied := *c
	copied.OwnerID = "other-owner"
	copied.Name = "Renamed"
	err := repo.Upsert(ctx, &copied)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOwnerMismatch)

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.TestOwner, got.OwnerID)
	assert.Equal(t, "Ana", got.Name)
}
