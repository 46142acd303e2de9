package repository

import (
	"context"
	"testing"
	"time"

	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/money"
	"github.com/hidrocoding/cotizador/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRepo_GetAbsentReturnsNil(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLConfigRepo(database)

	cfg, err := repo.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestConfigRepo_UpsertRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLConfigRepo(database)

	cfg := domain.DefaultCompanyConfig()
	cfg.OwnerID = "o1"
	cfg.Email = "hola@hidro.dev"
	cfg.Tax = domain.TaxSettings{RatePercent: money.MustParsePercent("8"), Apply: true}
	cfg.DefaultPaymentMethods = []domain.PaymentMethod{{Kind: "PayPal", Details: []string{"pay@hidro.dev"}}}
	cfg.UpdatedAt = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, &cfg))

	got, err := repo.Get(ctx, "o1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hola@hidro.dev", got.Email)
	assert.True(t, got.Tax.Apply)
	assert.Equal(t, "8", got.Tax.RatePercent.String())
	assert.Equal(t, cfg.DefaultTerms, got.DefaultTerms)
	assert.Equal(t, cfg.Issuer, got.Issuer)
	assert.Equal(t, cfg.DefaultPaymentMethods, got.DefaultPaymentMethods)
	assert.Equal(t, 30, got.ValidityDays)

	cfg.Name = "Renamed"
	cfg.Tax.Apply = false
	require.NoError(t, repo.Upsert(ctx, &cfg))
	got, err = repo.Get(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.False(t, got.Tax.Apply)
}
