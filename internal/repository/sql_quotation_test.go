package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hidrocoding/cotizador/internal/db"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/money"
	"github.com/hidrocoding/cotizador/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotationRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLQuotationRepo(database)

	q := testutil.NewTestQuotation(
		testutil.WithLine("Landing Page", 5000, 1),
		testutil.WithLine("Hosting", 800, 12),
		testutil.WithDiscount(10),
		testutil.WithTax(8, true),
		testutil.WithTotal("14600.00"),
	)
	q.Client.Company = "Acme"
	q.PaymentMethods = []domain.PaymentMethod{{Kind: "Transferencia", Details: []string{"CLABE 123"}}}
	q.Issuer = domain.Issuer{Name: "Dev", Title: "Full-Stack"}
	q.Notes = "Gracias"
	require.NoError(t, repo.Create(ctx, q))

	got, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Number, got.Number)
	assert.Equal(t, q.Client, got.Client)
	assert.Equal(t, q.IssueDate, got.IssueDate)
	assert.Equal(t, q.ExpirationDate, got.ExpirationDate)
	assert.Equal(t, domain.StatusDraft, got.Status)
	assert.Equal(t, "10", got.DiscountPercent.String())
	assert.Equal(t, "8", got.Tax.RatePercent.String())
	assert.True(t, got.Tax.Apply)
	assert.Equal(t, "14600.00", got.Totals.Total.String())
	assert.Equal(t, q.PaymentMethods, got.PaymentMethods)
	assert.Equal(t, q.Terms, got.Terms)
	assert.Equal(t, q.Issuer, got.Issuer)
	assert.Equal(t, "Gracias", got.Notes)
	assert.True(t, q.CreatedAt.Equal(got.CreatedAt))

	require.Len(t, got.Lines, 2)
	assert.Equal(t, "Landing Page", got.Lines[0].Name)
	assert.Equal(t, "Hosting", got.Lines[1].Name)
	assert.Equal(t, 12, got.Lines[1].Quantity)
	assert.Equal(t, "800.00", got.Lines[1].UnitPrice.String())
	assert.Equal(t, q.Lines[1].ID, got.Lines[1].ID)
}

func TestQuotationRepo_GetByID_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLQuotationRepo(database)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuotationRepo_List_ByOwnerNewestFirst(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLQuotationRepo(database)

	older := testutil.NewTestQuotation()
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	newer := testutil.NewTestQuotation(testutil.WithLine("A", 1, 1), testutil.WithLine("B", 2, 1))
	other := testutil.NewTestQuotation(testutil.WithOwner("someone-else"))
	for _, q := range []*domain.Quotation{older, newer, other} {
		require.NoError(t, repo.Create(ctx, q))
	}

	qs, err := repo.List(ctx, testutil.TestOwner)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, newer.ID, qs[0].ID)
	assert.Equal(t, older.ID, qs[1].ID)
	assert.Len(t, qs[0].Lines, 2)
	assert.Len(t, qs[1].Lines, 1)
}

func TestQuotationRepo_Update_ReplacesLines(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLQuotationRepo(database)

	q := testutil.NewTestQuotation(testutil.WithLine("A", 100, 1), testutil.WithLine("B", 200, 1))
	require.NoError(t, repo.Create(ctx, q))

	q.Lines = []domain.ServiceLine{testutil.NewTestLine("C", 300, 3)}
	q.Notes = "edited"
	q.UpdatedAt = q.UpdatedAt.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, q))

	got, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "C", got.Lines[0].Name)
	assert.Equal(t, "edited", got.Notes)
	assert.True(t, q.UpdatedAt.Equal(got.UpdatedAt))

	missing := testutil.NewTestQuotation()
	assert.ErrorIs(t, repo.Update(ctx, missing), domain.ErrNotFound)
}

func TestQuotationRepo_UpdateStatus_WritesStatusAndTimestamp(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLQuotationRepo(database)

	q := testutil.NewTestQuotation(testutil.WithStatus(domain.StatusSent))
	require.NoError(t, repo.Create(ctx, q))

	later := q.UpdatedAt.Add(2 * time.Hour)
	require.NoError(t, repo.UpdateStatus(ctx, q.ID, domain.StatusApproved, later))

	got, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	assert.True(t, later.Equal(got.UpdatedAt))

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "nope", domain.StatusSent, later), domain.ErrNotFound)
}

func TestQuotationRepo_ShareToken(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLQuotationRepo(database)

	a := testutil.NewTestQuotation()
	b := testutil.NewTestQuotation()
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b), "two quotations without token must not collide")

	require.NoError(t, repo.SetShareToken(ctx, a.ID, "tok-1"))
	got, err := repo.GetByShareToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = repo.GetByShareToken(ctx, "tok-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetByShareToken(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Error(t, repo.SetShareToken(ctx, b.ID, "tok-1"), "tokens are unique")
}

func TestQuotationRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLQuotationRepo(database)

	q := testutil.NewTestQuotation()
	require.NoError(t, repo.Create(ctx, q))
	require.NoError(t, repo.Delete(ctx, q.ID))

	_, err := repo.GetByID(ctx, q.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, q.ID), domain.ErrNotFound)

	var lines int
	require.NoError(t, database.Get(&lines, `SELECT COUNT(*) FROM quotation_lines WHERE quotation_id = ?`, q.ID))
	assert.Zero(t, lines)
}

func TestQuotationRepo_Upsert(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLQuotationRepo(database)

	q := testutil.NewTestQuotation(testutil.WithNumber("COT-2024-010"))
	require.NoError(t, repo.Upsert(ctx, q))
	q.Notes = "second import"
	q.Lines = append(q.Lines, testutil.NewTestLine("Extra", 10, 1))
	require.NoError(t, repo.Upsert(ctx, q), "upsert is idempotent by id")

	qs, err := repo.List(ctx, testutil.TestOwner)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "second import", qs[0].Notes)
	assert.Len(t, qs[0].Lines, 2)

	clash := testutil.NewTestQuotation(testutil.WithNumber("COT-2024-010"))
	assert.Error(t, repo.Upsert(ctx, clash), "same number with a different id is rejected")
}

func TestQuotationRepo_Upsert_KeepsOtherOwnersRow(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLQuotationRepo(database)

	q := testutil.NewTestQuotation(testutil.WithNumber("COT-2024-011"))
	require.NoError(t, repo.Create(ctx, q))

	taken := *q
	taken.OwnerID = "other-owner"
	taken.Notes = "taken over"
	taken.Lines = []domain.ServiceLine{testutil.NewTestLine("Other", 1, 1)}
	err := repo.Upsert(ctx, &taken)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOwnerMismatch)

	got, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.TestOwner, got.OwnerID)
	assert.Empty(t, got.Notes)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, q.Lines[0].Name, got.Lines[0].Name)

	others, err := repo.List(ctx, "other-owner")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestQuotationRepo_CreateRollsBackOnLineFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	injected := errors.New("disk full")
	uow := &testutil.FailingUoW{DB: database, Statement: "INSERT INTO quotation_lines", FailOn: 2, Err: injected}

	q := testutil.NewTestQuotation(testutil.WithLine("A", 1, 1), testutil.WithLine("B", 1, 1))
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLQuotationRepo(tx).Create(ctx, q)
	})
	require.ErrorIs(t, err, injected)

	_, err = NewSQLQuotationRepo(database).GetByID(ctx, q.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "header insert must be rolled back with the lines")
}

func TestQuotationRepo_MoneyRoundTripsExactly(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLQuotationRepo(database)

	q := testutil.NewTestQuotation()
	q.Lines[0].UnitPrice = money.MustParse("1999.99")
	q.DiscountPercent = money.MustParsePercent("12.5")
	require.NoError(t, repo.Create(ctx, q))

	got, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.True(t, got.Lines[0].UnitPrice.Equal(money.MustParse("1999.99")))
	assert.True(t, got.DiscountPercent.Equal(money.MustParsePercent("12.5")))
}
