package service

import (
	"context"
	"testing"
	"time"

	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/report"
	"github.com/hidrocoding/cotizador/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBook(t *testing.T, f *fixture) (*Book, QuotationService) {
	t.Helper()
	quotes := f.quotationService()
	b := NewBook(quotes, owner)
	b.now = f.clock.Now
	require.NoError(t, b.Reload(context.Background()))
	return b, quotes
}

func TestBook_ReloadsAfterMutations(t *testing.T) {
	f := newFixture(t)
	b, quotes := newBook(t, f)
	ctx := context.Background()
	assert.Zero(t, b.Len())

	first := draft(t, quotes)
	require.NoError(t, b.Create(ctx, first))
	assert.Equal(t, 1, b.Len())

	second := draft(t, quotes, testutil.NewTestLine("App Móvil Nativa", 50000, 1))
	require.NoError(t, b.Create(ctx, second))
	assert.Equal(t, 2, b.Len())

	_, err := b.Transition(ctx, second.ID, domain.StatusSent)
	require.NoError(t, err)
	_, err = b.Transition(ctx, second.ID, domain.StatusApproved)
	require.NoError(t, err)

	stats := b.Stats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Count(domain.StatusDraft))
	assert.Equal(t, 1, stats.Count(domain.StatusApproved))
	assert.Equal(t, "55000.00", stats.TotalAmount.String())
	assert.Equal(t, "50000.00", stats.ApprovedAmount.String())

	approved := b.Filter(report.Filter{Statuses: []domain.Status{domain.StatusApproved}})
	require.Len(t, approved, 1)
	assert.Equal(t, second.Number, approved[0].Number)

	require.NoError(t, b.Delete(ctx, first.ID))
	assert.Equal(t, 1, b.Len())
}

func TestBook_FailedMutationLeavesCollection(t *testing.T) {
	f := newFixture(t)
	b, quotes := newBook(t, f)
	ctx := context.Background()

	q := draft(t, quotes)
	require.NoError(t, b.Create(ctx, q))

	_, err := b.Transition(ctx, q.ID, domain.StatusApproved)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	require.Len(t, b.All(), 1)
	assert.Equal(t, domain.StatusDraft, b.All()[0].Status)
}

func TestBook_StatsUseEffectiveStatus(t *testing.T) {
	f := newFixture(t)
	b, quotes := newBook(t, f)
	ctx := context.Background()

	q := draft(t, quotes)
	require.NoError(t, b.Create(ctx, q))
	_, err := b.Transition(ctx, q.ID, domain.StatusSent)
	require.NoError(t, err)

	f.clock.Advance(31 * 24 * time.Hour)
	stats := b.Stats()
	assert.Equal(t, 1, stats.Count(domain.StatusExpired))
	assert.Zero(t, stats.Count(domain.StatusSent))

	months := b.Monthly()
	require.Len(t, months, 1)
	assert.Equal(t, 1, months[0].Count)
}
