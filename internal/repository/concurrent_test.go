package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/hidrocoding/cotizador/internal/db"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAccess_Sequence_NoDuplicateNumbers hammers one (owner, year)
// counter from many goroutines over a file-backed WAL database.
func TestConcurrentAccess_Sequence_NoDuplicateNumbers(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()
	seqRepo := NewSQLSequenceRepo(database)

	const workers = 40
	var wg sync.WaitGroup
	results := make(chan int, workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := seqRepo.Next(ctx, "owner", 2025)
			if err != nil {
				errCh <- err
				return
			}
			results <- n
		}()
	}

	wg.Wait()
	close(results)
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	seen := make(map[int]bool, workers)
	for n := range results {
		assert.Falsef(t, seen[n], "duplicate counter %d", n)
		seen[n] = true
	}
	assert.Len(t, seen, workers)
	for i := 1; i <= workers; i++ {
		assert.True(t, seen[i], "counter %d was never issued", i)
	}
}

// TestConcurrentAccess_ReadDuringWrite verifies that listing does not block
// or see half-written quotations while inserts are in progress.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()
	repo := NewSQLQuotationRepo(database)
	uow := testutil.NewTestUoW(database)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			q := testutil.NewTestQuotation(testutil.WithLine("A", 100, 1), testutil.WithLine("B", 200, 2))
			err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				return NewSQLQuotationRepo(tx).Create(ctx, q)
			})
			if err != nil {
				t.Errorf("writer: create quotation %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				qs, err := repo.List(ctx, testutil.TestOwner)
				if err != nil {
					t.Errorf("reader %d: list: %v", reader, err)
					return
				}
				for _, q := range qs {
					if len(q.Lines) != 2 {
						t.Errorf("reader %d: quotation %s has %d lines", reader, q.Number, len(q.Lines))
					}
				}
			}
		}(r)
	}

	wg.Wait()

	qs, err := repo.List(ctx, testutil.TestOwner)
	require.NoError(t, err)
	assert.Len(t, qs, 20)
	for _, q := range qs {
		assert.Equal(t, domain.StatusDraft, q.Status)
	}
}
