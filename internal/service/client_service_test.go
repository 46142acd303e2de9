package service

import (
	"context"
	"testing"
	"time"

	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClientService(f *fixture) ClientService {
	svc := NewClientService(f.clients).(*clientService)
	svc.now = f.clock.Now
	return svc
}

func TestClientService_CreateAssignsIDAndTimestamps(t *testing.T) {
	f := newFixture(t)
	svc := newClientService(f)

	c := &domain.Client{OwnerID: owner, Name: "Carlos Pérez", Email: "carlos@example.com"}
	require.NoError(t, svc.Create(context.Background(), c))

	assert.NotEmpty(t, c.ID)
	assert.True(t, c.CreatedAt.Equal(testNow))

	got, err := svc.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carlos Pérez", got.Name)
}

func TestClientService_CreateValidates(t *testing.T) {
	f := newFixture(t)
	svc := newClientService(f)

	err := svc.Create(context.Background(), &domain.Client{OwnerID: owner, Name: "Sin correo"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = svc.Create(context.Background(), &domain.Client{Name: "Sin dueño", Email: "x@example.com"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestClientService_Search(t *testing.T) {
	f := newFixture(t)
	svc := newClientService(f)
	ctx := context.Background()

	for _, c := range []*domain.Client{
		testutil.NewTestClient("Ana López", testutil.WithCompany("Restaurante Sol")),
		testutil.NewTestClient("Bruno Díaz", testutil.WithEmail("bruno@wayne.mx")),
		testutil.NewTestClient("Carla Ruiz", testutil.WithClientOwner("someone-else")),
	} {
		require.NoError(t, f.clients.Create(ctx, c))
	}

	all, err := svc.Search(ctx, owner, "  ")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCompany, err := svc.Search(ctx, owner, "restaurante")
	require.NoError(t, err)
	require.Len(t, byCompany, 1)
	assert.Equal(t, "Ana López", byCompany[0].Name)

	byEmail, err := svc.Search(ctx, owner, "WAYNE")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Bruno Díaz", byEmail[0].Name)
}

func TestClientService_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	svc := newClientService(f)
	ctx := context.Background()

	c := testutil.NewTestClient("Ana López")
	require.NoError(t, svc.Create(ctx, c))

	f.clock.Advance(time.Second)
	c.Phone = "555-0100"
	require.NoError(t, svc.Update(ctx, c))
	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0100", got.Phone)

	require.NoError(t, svc.Delete(ctx, c.ID))
	_, err = svc.Get(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
