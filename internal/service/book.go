package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/report"
)

// Book is the in-memory collection of one owner's quotations that filters
// and statistics are derived from. Every mutation made through the Book
// reloads the whole collection from the store.
type Book struct {
	quotations QuotationService
	ownerID    string
	now        func() time.Time

	mu    sync.RWMutex
	items []domain.Quotation
}

func NewBook(quotations QuotationService, ownerID string) *Book {
	return &Book{quotations: quotations, ownerID: ownerID, now: utcNow}
}

// Reload replaces the collection with the store's current content.
func (b *Book) Reload(ctx context.Context) error {
	qs, err := b.quotations.List(ctx, b.ownerID)
	if err != nil {
		return err
	}
	items := make([]domain.Quotation, len(qs))
	for i, q := range qs {
		items[i] = *q
	}
	b.mu.Lock()
	b.items = items
	b.mu.Unlock()
	return nil
}

// All returns a copy of the collection, newest first.
func (b *Book) All() []domain.Quotation {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.items)
}

func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

func (b *Book) Filter(f report.Filter) []domain.Quotation {
	return report.Apply(b.All(), f, b.now())
}

func (b *Book) Stats() report.Statistics {
	return report.Summarize(b.All(), b.now())
}

func (b *Book) Monthly() []report.MonthTotals {
	return report.Group(b.All(), b.now())
}

func (b *Book) Create(ctx context.Context, q *domain.Quotation) error {
	q.OwnerID = b.ownerID
	if err := b.quotations.Create(ctx, q); err != nil {
		return err
	}
	return b.Reload(ctx)
}

func (b *Book) Update(ctx context.Context, q *domain.Quotation) error {
	if err := b.quotations.Update(ctx, q); err != nil {
		return err
	}
	return b.Reload(ctx)
}

func (b *Book) Transition(ctx context.Context, id string, to domain.Status) (*domain.Quotation, error) {
	q, err := b.quotations.Transition(ctx, id, to)
	if err != nil {
		return nil, err
	}
	return q, b.Reload(ctx)
}

func (b *Book) Delete(ctx context.Context, id string) error {
	if err := b.quotations.Delete(ctx, id); err != nil {
		return err
	}
	return b.Reload(ctx)
}
