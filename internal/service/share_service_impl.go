package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hidrocoding/cotizador/internal/document"
	"github.com/hidrocoding/cotizador/internal/pricing"
	"github.com/hidrocoding/cotizador/internal/repository"
)

type shareService struct {
	quotations repository.QuotationRepo
	configs    repository.ConfigRepo
	locale     string
	observer   UseCaseObserver
	now        func() time.Time
}

// NewShareService resolves shared quotations into documents formatted for
// locale.
func NewShareService(
	quotations repository.QuotationRepo,
	configs repository.ConfigRepo,
	locale string,
	observers ...UseCaseObserver,
) ShareService {
	return &shareService{
		quotations: quotations,
		configs:    configs,
		locale:     locale,
		observer:   useCaseObserverOrNoop(observers),
		now:        utcNow,
	}
}

func (s *shareService) GenerateToken(ctx context.Context, id string) (token string, err error) {
	defer observe(ctx, s.observer, "share-quotation", map[string]any{"id": id})(&err)

	q, err := s.quotations.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if q.ShareToken != "" {
		return q.ShareToken, nil
	}
	token = uuid.NewString()
	if err = s.quotations.SetShareToken(ctx, id, token); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve needs no owner: possession of the token grants read access.
func (s *shareService) Resolve(ctx context.Context, token string) (document.Document, error) {
	q, err := s.quotations.GetByShareToken(ctx, token)
	if err != nil {
		return document.Document{}, err
	}
	cfg, err := loadConfig(ctx, s.configs, q.OwnerID)
	if err != nil {
		return document.Document{}, err
	}
	if err := pricing.Apply(q); err != nil {
		return document.Document{}, err
	}
	return document.Resolve(q, cfg, s.locale, s.now()), nil
}
