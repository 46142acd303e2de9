package service

import (
	"context"

	"github.com/hidrocoding/cotizador/internal/backup"
	"github.com/hidrocoding/cotizador/internal/document"
	"github.com/hidrocoding/cotizador/internal/domain"
)

type QuotationService interface {
	// NewDraft returns an unsaved quotation pre-filled from the owner's
	// configuration. It carries no number until Create.
	NewDraft(ctx context.Context, ownerID string) (*domain.Quotation, error)
	NextNumber(ctx context.Context, ownerID string, year int) (string, error)
	Create(ctx context.Context, q *domain.Quotation) error
	Get(ctx context.Context, id string) (*domain.Quotation, error)
	List(ctx context.Context, ownerID string) ([]*domain.Quotation, error)
	Update(ctx context.Context, q *domain.Quotation) error
	Transition(ctx context.Context, id string, to domain.Status) (*domain.Quotation, error)
	Delete(ctx context.Context, id string) error
}

type ClientService interface {
	Create(ctx context.Context, c *domain.Client) error
	Get(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, ownerID string) ([]*domain.Client, error)
	Search(ctx context.Context, ownerID, term string) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}

type ConfigService interface {
	// Get returns the stored configuration, or the defaults for owners that
	// never saved one.
	Get(ctx context.Context, ownerID string) (domain.CompanyConfig, error)
	Save(ctx context.Context, c *domain.CompanyConfig) error
}

type ShareService interface {
	// GenerateToken returns the quotation's share token, minting one on
	// first use.
	GenerateToken(ctx context.Context, id string) (string, error)
	Resolve(ctx context.Context, token string) (document.Document, error)
}

// SectionResult is the outcome of importing one backup section.
type SectionResult struct {
	Present  bool
	Imported int
	Err      error
}

// ImportResult reports each backup section independently. A failed section
// was rolled back; the others may still have been written.
type ImportResult struct {
	Clients       SectionResult
	Configuration SectionResult
	Quotations    SectionResult
}

// Failed reports whether any present section failed.
func (r *ImportResult) Failed() bool {
	return r.Clients.Err != nil || r.Configuration.Err != nil || r.Quotations.Err != nil
}

type BackupService interface {
	Export(ctx context.Context, ownerID string) (*backup.Snapshot, error)
	Import(ctx context.Context, ownerID string, sections *backup.Sections) (*ImportResult, error)
}
