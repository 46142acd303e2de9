package repository

import (
	"context"
	"time"

	"github.com/hidrocoding/cotizador/internal/domain"
)

// QuotationRepo persists quotations together with their ordered lines.
// Multi-statement writes (Create, Update, Upsert) should run inside a
// UnitOfWork so header and lines change atomically.
type QuotationRepo interface {
	Create(ctx context.Context, q *domain.Quotation) error
	GetByID(ctx context.Context, id string) (*domain.Quotation, error)
	GetByShareToken(ctx context.Context, token string) (*domain.Quotation, error)
	List(ctx context.Context, ownerID string) ([]*domain.Quotation, error)
	Update(ctx context.Context, q *domain.Quotation) error
	UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error
	SetShareToken(ctx context.Context, id, token string) error
	Upsert(ctx context.Context, q *domain.Quotation) error
	Delete(ctx context.Context, id string) error
}

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, ownerID string) ([]*domain.Client, error)
	Search(ctx context.Context, ownerID, term string) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Upsert(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}

type ConfigRepo interface {
	// Get returns nil, nil when the owner never saved a configuration.
	Get(ctx context.Context, ownerID string) (*domain.CompanyConfig, error)
	Upsert(ctx context.Context, c *domain.CompanyConfig) error
}

// SequenceRepo allocates quotation counters per (owner, year).
type SequenceRepo interface {
	Next(ctx context.Context, ownerID string, year int) (int, error)
	EnsureAtLeast(ctx context.Context, ownerID string, year, counter int) error
}
