package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hidrocoding/cotizador/internal/backup"
	"github.com/hidrocoding/cotizador/internal/db"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/pricing"
	"github.com/hidrocoding/cotizador/internal/repository"
)

type backupService struct {
	quotations repository.QuotationRepo
	clients    repository.ClientRepo
	configs    repository.ConfigRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
	now        func() time.Time
}

func NewBackupService(
	quotations repository.QuotationRepo,
	clients repository.ClientRepo,
	configs repository.ConfigRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) BackupService {
	return &backupService{
		quotations: quotations,
		clients:    clients,
		configs:    configs,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
		now:        utcNow,
	}
}

// Export collects everything stored for an owner. The configuration section
// is omitted when the owner never saved one.
func (s *backupService) Export(ctx context.Context, ownerID string) (snap *backup.Snapshot, err error) {
	fields := map[string]any{"owner": ownerID}
	defer observe(ctx, s.observer, "export-backup", fields)(&err)

	if err = requireOwner(ownerID); err != nil {
		return nil, err
	}
	snap = &backup.Snapshot{
		Quotations: []backup.QuotationRecord{},
		Clients:    []backup.ClientRecord{},
		ExportedAt: s.now(),
	}

	stored, err := s.configs.Get(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if stored != nil {
		snap.Configuration = backup.FromConfig(stored)
	}

	clients, err := s.clients.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		snap.Clients = append(snap.Clients, backup.FromClient(c))
	}

	qs, err := s.quotations.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, q := range qs {
		if err = pricing.Apply(q); err != nil {
			return nil, err
		}
		snap.Quotations = append(snap.Quotations, backup.FromQuotation(q))
	}
	fields["quotations"] = len(snap.Quotations)
	fields["clients"] = len(snap.Clients)
	return snap, nil
}

// Import writes each present section in its own transaction. A section that
// fails to decode, validate or store is rolled back and reported in the
// result while the remaining sections proceed. Configuration is imported
// before quotations so records without their own tax settings fall back to
// the imported tax rate.
func (s *backupService) Import(ctx context.Context, ownerID string, sections *backup.Sections) (res *ImportResult, err error) {
	fields := map[string]any{"owner": ownerID}
	defer observe(ctx, s.observer, "import-backup", fields)(&err)

	if err = requireOwner(ownerID); err != nil {
		return nil, err
	}
	now := s.now()
	res = &ImportResult{
		Clients:       s.importClients(ctx, ownerID, sections, now),
		Configuration: s.importConfiguration(ctx, ownerID, sections, now),
	}
	res.Quotations = s.importQuotations(ctx, ownerID, sections, now)

	fields["clients"] = res.Clients.Imported
	fields["quotations"] = res.Quotations.Imported
	fields["failed"] = res.Failed()
	return res, nil
}

func (s *backupService) importClients(ctx context.Context, ownerID string, sections *backup.Sections, now time.Time) SectionResult {
	if !backup.Has(sections.Clients) {
		return SectionResult{}
	}
	r := SectionResult{Present: true}
	recs, err := sections.DecodeClients()
	if err != nil {
		r.Err = err
		return r
	}
	if errs := backup.ValidateClients(recs); len(errs) > 0 {
		r.Err = validationErrors(errs)
		return r
	}
	r.Err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txClients := repository.NewSQLClientRepo(tx)
		for i := range recs {
			if err := txClients.Upsert(ctx, recs[i].ToClient(ownerID, now)); err != nil {
				return err
			}
		}
		return nil
	})
	if r.Err == nil {
		r.Imported = len(recs)
	}
	return r
}

func (s *backupService) importConfiguration(ctx context.Context, ownerID string, sections *backup.Sections, now time.Time) SectionResult {
	if !backup.Has(sections.Configuration) {
		return SectionResult{}
	}
	r := SectionResult{Present: true}
	rec, err := sections.DecodeConfiguration()
	if err != nil {
		r.Err = err
		return r
	}
	if errs := backup.ValidateConfiguration(rec); len(errs) > 0 {
		r.Err = validationErrors(errs)
		return r
	}
	cfg := rec.ToConfig(ownerID, now)
	r.Err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLConfigRepo(tx).Upsert(ctx, cfg)
	})
	if r.Err == nil {
		r.Imported = 1
	}
	return r
}

func (s *backupService) importQuotations(ctx context.Context, ownerID string, sections *backup.Sections, now time.Time) SectionResult {
	if !backup.Has(sections.Quotations) {
		return SectionResult{}
	}
	r := SectionResult{Present: true}
	recs, err := sections.DecodeQuotations()
	if err != nil {
		r.Err = err
		return r
	}
	if errs := backup.ValidateQuotations(recs); len(errs) > 0 {
		r.Err = validationErrors(errs)
		return r
	}
	cfg, err := loadConfig(ctx, s.configs, ownerID)
	if err != nil {
		r.Err = err
		return r
	}

	qs := make([]*domain.Quotation, 0, len(recs))
	for i := range recs {
		q, err := recs[i].ToQuotation(ownerID, now, cfg.Tax)
		if err != nil {
			r.Err = fmt.Errorf("quotations[%d]: %w", i, err)
			return r
		}
		if err := pricing.Apply(q); err != nil {
			r.Err = fmt.Errorf("quotations[%d]: %w", i, err)
			return r
		}
		qs = append(qs, q)
	}

	r.Err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txQuotations := repository.NewSQLQuotationRepo(tx)
		existing, err := txQuotations.List(ctx, ownerID)
		if err != nil {
			return err
		}
		idByNumber := make(map[string]string, len(existing))
		for _, e := range existing {
			idByNumber[e.Number] = e.ID
		}

		highest := make(map[int]int)
		for _, q := range qs {
			if id, ok := idByNumber[q.Number]; ok && id != q.ID {
				return fmt.Errorf("quotation %s already exists with a different id", q.Number)
			}
			if err := txQuotations.Upsert(ctx, q); err != nil {
				return err
			}
			year, n, _ := domain.ParseNumber(q.Number)
			if n > highest[year] {
				highest[year] = n
			}
		}

		sequences := repository.NewSQLSequenceRepo(tx)
		for year, n := range highest {
			if err := sequences.EnsureAtLeast(ctx, ownerID, year, n); err != nil {
				return err
			}
		}
		return nil
	})
	if r.Err == nil {
		r.Imported = len(qs)
	}
	return r
}

func validationErrors(errs []error) error {
	v := &domain.ValidationError{}
	for _, e := range errs {
		v.Add("%s", e.Error())
	}
	return v
}
