package service

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/hidrocoding/cotizador/internal/backup"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackupService(f *fixture) *backupService {
	svc := NewBackupService(f.quotations, f.clients, f.configs, f.uow).(*backupService)
	svc.now = f.clock.Now
	return svc
}

// seededExport creates two quotations and a configuration, then exports and
// re-reads them the way a backup file would be.
func seededExport(t *testing.T) *backup.Sections {
	t.Helper()
	f := newFixture(t)
	ctx := context.Background()

	cfg := domain.DefaultCompanyConfig()
	cfg.OwnerID = owner
	cfg.Tax.Apply = true
	require.NoError(t, NewConfigService(f.configs).Save(ctx, &cfg))

	quotes := f.quotationService()
	require.NoError(t, quotes.Create(ctx, draft(t, quotes)))
	second := draft(t, quotes, testutil.NewTestLine("Hosting VPS", 2500, 12))
	require.NoError(t, quotes.Create(ctx, second))
	_, err := quotes.Transition(ctx, second.ID, domain.StatusSent)
	require.NoError(t, err)

	snap, err := newBackupService(f).Export(ctx, owner)
	require.NoError(t, err)
	require.Len(t, snap.Quotations, 2)
	require.NotNil(t, snap.Configuration)
	assert.True(t, snap.ExportedAt.Equal(testNow))

	var buf bytes.Buffer
	require.NoError(t, backup.Write(&buf, snap))
	sections, err := backup.Read(&buf)
	require.NoError(t, err)
	return sections
}

func TestBackup_ExportImportRoundTrip(t *testing.T) {
	sections := seededExport(t)
	f := newFixture(t)
	svc := newBackupService(f)
	ctx := context.Background()

	res, err := svc.Import(ctx, owner, sections)
	require.NoError(t, err)
	require.False(t, res.Failed())
	assert.Equal(t, 2, res.Quotations.Imported)
	assert.Equal(t, 2, res.Clients.Imported)
	assert.Equal(t, 1, res.Configuration.Imported)

	quotes := f.quotationService()
	qs, err := quotes.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	byNumber := map[string]*domain.Quotation{}
	for _, q := range qs {
		byNumber[q.Number] = q
	}
	require.Contains(t, byNumber, "COT-2025-002")
	assert.Equal(t, domain.StatusSent, byNumber["COT-2025-002"].Status)
	// 30000 + 16% tax, as exported with the quotation
	assert.Equal(t, "34800.00", byNumber["COT-2025-002"].Totals.Total.String())

	next, err := quotes.NextNumber(ctx, owner, 2025)
	require.NoError(t, err)
	assert.Equal(t, "COT-2025-003", next, "imported numbers are never re-issued")
}

func TestBackup_ImportIsIdempotent(t *testing.T) {
	sections := seededExport(t)
	f := newFixture(t)
	svc := newBackupService(f)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := svc.Import(ctx, owner, sections)
		require.NoError(t, err)
		require.False(t, res.Failed(), "run %d", i+1)
	}

	qs, err := f.quotations.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, qs, 2)
	clients, err := f.clients.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, clients, 2)
}

func TestBackup_NumberCollisionFailsOnlyQuotations(t *testing.T) {
	sections := seededExport(t)
	f := newFixture(t)
	ctx := context.Background()

	clash := testutil.NewTestQuotation(testutil.WithNumber("COT-2025-001"))
	require.NoError(t, f.quotations.Create(ctx, clash))

	res, err := newBackupService(f).Import(ctx, owner, sections)
	require.NoError(t, err)
	assert.True(t, res.Failed())
	require.Error(t, res.Quotations.Err)
	assert.Contains(t, res.Quotations.Err.Error(), "COT-2025-001 already exists with a different id")
	assert.Zero(t, res.Quotations.Imported)
	assert.NoError(t, res.Clients.Err)
	assert.Equal(t, 2, res.Clients.Imported)
	assert.NoError(t, res.Configuration.Err)

	qs, err := f.quotations.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, qs, 1, "quotation section is rolled back as a whole")
	assert.Equal(t, clash.ID, qs[0].ID)
}

func TestBackup_ImportUnderAnotherOwnerLeavesRecordsAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quotes := f.quotationService()
	require.NoError(t, quotes.Create(ctx, draft(t, quotes)))

	svc := newBackupService(f)
	snap, err := svc.Export(ctx, owner)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, backup.Write(&buf, snap))
	sections, err := backup.Read(&buf)
	require.NoError(t, err)

	res, err := svc.Import(ctx, "intruder", sections)
	require.NoError(t, err)
	assert.True(t, res.Failed())
	assert.ErrorIs(t, res.Quotations.Err, domain.ErrOwnerMismatch)
	assert.ErrorIs(t, res.Clients.Err, domain.ErrOwnerMismatch)

	qs, err := f.quotations.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, qs, 1)
	clients, err := f.clients.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, clients, 1)

	taken, err := f.quotations.List(ctx, "intruder")
	require.NoError(t, err)
	assert.Empty(t, taken)
	takenClients, err := f.clients.List(ctx, "intruder")
	require.NoError(t, err)
	assert.Empty(t, takenClients)
}

func TestBackup_CorruptSectionDoesNotBlockOthers(t *testing.T) {
	sections := seededExport(t)
	sections.Clients = json.RawMessage(`"not a list"`)
	f := newFixture(t)
	ctx := context.Background()

	res, err := newBackupService(f).Import(ctx, owner, sections)
	require.NoError(t, err)
	assert.True(t, res.Clients.Present)
	assert.Error(t, res.Clients.Err)
	assert.NoError(t, res.Quotations.Err)
	assert.Equal(t, 2, res.Quotations.Imported)

	clients, err := f.clients.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestBackup_InvalidQuotationsAreReported(t *testing.T) {
	recs := []backup.QuotationRecord{{ID: "q-1", Number: "COT-2025-DRAFT", IssueDate: "2025-03-01", ExpirationDate: "2025-03-31", Status: "draft"}}
	raw, err := json.Marshal(recs)
	require.NoError(t, err)
	f := newFixture(t)

	res, err := newBackupService(f).Import(context.Background(), owner, &backup.Sections{Quotations: raw})
	require.NoError(t, err)
	require.ErrorIs(t, res.Quotations.Err, domain.ErrValidation)
	assert.Contains(t, res.Quotations.Err.Error(), "quotations[0].number")
	assert.Contains(t, res.Quotations.Err.Error(), "quotations[0].client.name is required")
	assert.False(t, res.Clients.Present)
	assert.False(t, res.Configuration.Present)
}

func TestBackup_ExportWithoutConfiguration(t *testing.T) {
	f := newFixture(t)
	snap, err := newBackupService(f).Export(context.Background(), owner)
	require.NoError(t, err)
	assert.Nil(t, snap.Configuration)
	assert.Empty(t, snap.Quotations)
	assert.NotNil(t, snap.Clients)
}
