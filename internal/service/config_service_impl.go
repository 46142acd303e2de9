package service

import (
	"context"
	"time"

	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/repository"
)

type configService struct {
	configs  repository.ConfigRepo
	observer UseCaseObserver
	now      func() time.Time
}

func NewConfigService(configs repository.ConfigRepo, observers ...UseCaseObserver) ConfigService {
	return &configService{
		configs:  configs,
		observer: useCaseObserverOrNoop(observers),
		now:      utcNow,
	}
}

func (s *configService) Get(ctx context.Context, ownerID string) (domain.CompanyConfig, error) {
	if err := requireOwner(ownerID); err != nil {
		return domain.CompanyConfig{}, err
	}
	return loadConfig(ctx, s.configs, ownerID)
}

func (s *configService) Save(ctx context.Context, c *domain.CompanyConfig) (err error) {
	defer observe(ctx, s.observer, "save-config", map[string]any{"owner": c.OwnerID})(&err)

	if err = requireOwner(c.OwnerID); err != nil {
		return err
	}
	if err = c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = s.now()
	return s.configs.Upsert(ctx, c)
}
