package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hidrocoding/cotizador/internal/db"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/repository"
	"github.com/hidrocoding/cotizador/internal/testutil"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

const owner = testutil.TestOwner

type fixture struct {
	db         *sqlx.DB
	uow        db.UnitOfWork
	quotations *repository.SQLQuotationRepo
	clients    *repository.SQLClientRepo
	configs    *repository.SQLConfigRepo
	sequences  *repository.SQLSequenceRepo
	clock      *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &fixture{
		db:         database,
		uow:        testutil.NewTestUoW(database),
		quotations: repository.NewSQLQuotationRepo(database),
		clients:    repository.NewSQLClientRepo(database),
		configs:    repository.NewSQLConfigRepo(database),
		sequences:  repository.NewSQLSequenceRepo(database),
		clock:      &fakeClock{t: testNow},
	}
}

func (f *fixture) quotationService(observers ...UseCaseObserver) *quotationService {
	return f.quotationServiceWith(f.sequences, f.uow, observers...)
}

func (f *fixture) quotationServiceWith(seq repository.SequenceRepo, uow db.UnitOfWork, observers ...UseCaseObserver) *quotationService {
	svc := NewQuotationService(f.quotations, f.configs, seq, uow,
		RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}, observers...).(*quotationService)
	svc.now = f.clock.Now
	return svc
}

// draft returns an unsaved quotation ready for Create.
func draft(t *testing.T, svc QuotationService, lines ...domain.ServiceLine) *domain.Quotation {
	t.Helper()
	q, err := svc.NewDraft(context.Background(), owner)
	require.NoError(t, err)
	q.Client = domain.ClientSnapshot{Name: "Ana López", Email: "ana@example.com", Company: "Restaurante Sol"}
	if len(lines) == 0 {
		lines = []domain.ServiceLine{testutil.NewTestLine("Landing Page Profesional", 5000, 1)}
	}
	q.Lines = lines
	return q
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// flakySequence fails the first failures calls, then delegates.
type flakySequence struct {
	repository.SequenceRepo
	failures int32
	calls    atomic.Int32
}

var errSequenceBusy = errors.New("database is locked")

func (s *flakySequence) Next(ctx context.Context, ownerID string, year int) (int, error) {
	if s.calls.Add(1) <= s.failures {
		return 0, errSequenceBusy
	}
	return s.SequenceRepo.Next(ctx, ownerID, year)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	o.events = append(o.events, e)
	o.mu.Unlock()
}
