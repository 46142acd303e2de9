package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hidrocoding/cotizador/internal/db"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/pricing"
	"github.com/hidrocoding/cotizador/internal/repository"
)

// RetryPolicy bounds how often a failed sequence increment is retried.
// The wait doubles after every failed attempt.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Backoff: 50 * time.Millisecond}
}

type quotationService struct {
	quotations repository.QuotationRepo
	configs    repository.ConfigRepo
	sequences  repository.SequenceRepo
	uow        db.UnitOfWork
	retry      RetryPolicy
	observer   UseCaseObserver
	now        func() time.Time
}

func NewQuotationService(
	quotations repository.QuotationRepo,
	configs repository.ConfigRepo,
	sequences repository.SequenceRepo,
	uow db.UnitOfWork,
	retry RetryPolicy,
	observers ...UseCaseObserver,
) QuotationService {
	if retry.MaxAttempts < 1 {
		retry.MaxAttempts = 1
	}
	return &quotationService{
		quotations: quotations,
		configs:    configs,
		sequences:  sequences,
		uow:        uow,
		retry:      retry,
		observer:   useCaseObserverOrNoop(observers),
		now:        utcNow,
	}
}

func (s *quotationService) NewDraft(ctx context.Context, ownerID string) (*domain.Quotation, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	cfg, err := loadConfig(ctx, s.configs, ownerID)
	if err != nil {
		return nil, err
	}
	return domain.NewDraft(cfg, s.now()), nil
}

// NextNumber allocates the next canonical number for (ownerID, year). A
// failed increment is retried per the service's RetryPolicy; once attempts
// run out the error wraps domain.ErrSequenceUnavailable.
func (s *quotationService) NextNumber(ctx context.Context, ownerID string, year int) (string, error) {
	var lastErr error
	wait := s.retry.Backoff
	for attempt := 1; attempt <= s.retry.MaxAttempts; attempt++ {
		n, err := s.sequences.Next(ctx, ownerID, year)
		if err == nil {
			return domain.FormatNumber(year, n), nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == s.retry.MaxAttempts {
			break
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", fmt.Errorf("%w: %v", domain.ErrSequenceUnavailable, ctx.Err())
		case <-timer.C:
		}
		wait *= 2
	}
	return "", fmt.Errorf("%w: %v", domain.ErrSequenceUnavailable, lastErr)
}

// Create validates, prices and numbers q, then stores it together with its
// client snapshot in one transaction. New quotations always start as drafts.
func (s *quotationService) Create(ctx context.Context, q *domain.Quotation) (err error) {
	fields := map[string]any{"owner": q.OwnerID}
	defer observe(ctx, s.observer, "create-quotation", fields)(&err)

	if err = requireOwner(q.OwnerID); err != nil {
		return err
	}
	if domain.IsPlaceholderNumber(q.Number) {
		v := &domain.ValidationError{}
		v.Add("number %s is a placeholder and cannot be stored", q.Number)
		return v
	}
	var presetYear, preset int
	if q.Number != "" {
		if presetYear, preset, err = domain.ParseNumber(q.Number); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	}

	now := s.now()
	cfg, err := loadConfig(ctx, s.configs, q.OwnerID)
	if err != nil {
		return err
	}

	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.Status = domain.StatusDraft
	if q.IssueDate.IsZero() {
		q.IssueDate = domain.DateOf(now)
	}
	// Numbers are counted per issue year, so a preset must carry that year.
	if preset > 0 && presetYear != q.IssueDate.Year() {
		v := &domain.ValidationError{}
		v.Add("number %s does not match issue year %d", q.Number, q.IssueDate.Year())
		return v
	}
	if q.ExpirationDate.IsZero() {
		days := cfg.ValidityDays
		if days <= 0 {
			days = domain.DefaultValidityDays
		}
		q.ExpirationDate = q.IssueDate.AddDate(0, 0, days)
	}
	q.Tax = cfg.Tax
	if err = q.ValidateForSubmit(); err != nil {
		return err
	}
	if err = pricing.Apply(q); err != nil {
		return err
	}

	year := q.IssueDate.Year()
	if q.Number == "" {
		if q.Number, err = s.NextNumber(ctx, q.OwnerID, year); err != nil {
			return err
		}
	}
	fields["number"] = q.Number
	q.CreatedAt = now
	q.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := saveClientSnapshot(ctx, repository.NewSQLClientRepo(tx), q, now); err != nil {
			return err
		}
		if err := repository.NewSQLQuotationRepo(tx).Create(ctx, q); err != nil {
			return fmt.Errorf("creating quotation %s: %w", q.Number, err)
		}
		if preset > 0 {
			if err := repository.NewSQLSequenceRepo(tx).EnsureAtLeast(ctx, q.OwnerID, year, preset); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get loads a quotation and recomputes its totals from its own lines,
// discount and tax settings.
func (s *quotationService) Get(ctx context.Context, id string) (*domain.Quotation, error) {
	q, err := s.quotations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pricing.Apply(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *quotationService) List(ctx context.Context, ownerID string) ([]*domain.Quotation, error) {
	qs, err := s.quotations.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, q := range qs {
		if err := pricing.Apply(q); err != nil {
			return nil, err
		}
	}
	return qs, nil
}

// Update rewrites the editable parts of a stored quotation, tax settings
// included. Number, owner, status, share token and creation time are kept
// from the stored row; status only changes through Transition.
func (s *quotationService) Update(ctx context.Context, q *domain.Quotation) (err error) {
	fields := map[string]any{"id": q.ID}
	defer observe(ctx, s.observer, "update-quotation", fields)(&err)

	existing, err := s.quotations.GetByID(ctx, q.ID)
	if err != nil {
		return err
	}
	q.OwnerID = existing.OwnerID
	q.Number = existing.Number
	q.Status = existing.Status
	q.ShareToken = existing.ShareToken
	q.CreatedAt = existing.CreatedAt
	fields["number"] = q.Number

	if err = q.ValidateForSubmit(); err != nil {
		return err
	}
	if err = pricing.Apply(q); err != nil {
		return err
	}
	now := s.now()
	q.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := saveClientSnapshot(ctx, repository.NewSQLClientRepo(tx), q, now); err != nil {
			return err
		}
		if err := repository.NewSQLQuotationRepo(tx).Update(ctx, q); err != nil {
			return fmt.Errorf("updating quotation %s: %w", q.Number, err)
		}
		return nil
	})
}

// Transition applies a workflow move and persists status and UpdatedAt in a
// single statement.
func (s *quotationService) Transition(ctx context.Context, id string, to domain.Status) (q *domain.Quotation, err error) {
	fields := map[string]any{"id": id, "to": string(to)}
	defer observe(ctx, s.observer, "transition-quotation", fields)(&err)

	q, err = s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	fields["number"] = q.Number
	if err = q.Transition(to, s.now()); err != nil {
		return nil, fmt.Errorf("quotation %s: %w", q.Number, err)
	}
	if err = s.quotations.UpdateStatus(ctx, q.ID, q.Status, q.UpdatedAt); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *quotationService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-quotation", map[string]any{"id": id})(&err)
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLQuotationRepo(tx).Delete(ctx, id)
	})
}
