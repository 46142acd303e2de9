package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/repository"
)

type clientService struct {
	clients  repository.ClientRepo
	observer UseCaseObserver
	now      func() time.Time
}

func NewClientService(clients repository.ClientRepo, observers ...UseCaseObserver) ClientService {
	return &clientService{
		clients:  clients,
		observer: useCaseObserverOrNoop(observers),
		now:      utcNow,
	}
}

func (s *clientService) Create(ctx context.Context, c *domain.Client) (err error) {
	defer observe(ctx, s.observer, "create-client", map[string]any{"owner": c.OwnerID})(&err)

	if err = requireOwner(c.OwnerID); err != nil {
		return err
	}
	if err = c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := s.now()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.clients.Create(ctx, c)
}

func (s *clientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.GetByID(ctx, id)
}

func (s *clientService) List(ctx context.Context, ownerID string) ([]*domain.Client, error) {
	return s.clients.List(ctx, ownerID)
}

// Search matches term against name, email and company. An empty term lists
// every client.
func (s *clientService) Search(ctx context.Context, ownerID, term string) ([]*domain.Client, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.clients.List(ctx, ownerID)
	}
	return s.clients.Search(ctx, ownerID, term)
}

func (s *clientService) Update(ctx context.Context, c *domain.Client) (err error) {
	defer observe(ctx, s.observer, "update-client", map[string]any{"id": c.ID})(&err)

	if err = c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = s.now()
	return s.clients.Update(ctx, c)
}

func (s *clientService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-client", map[string]any{"id": id})(&err)
	return s.clients.Delete(ctx, id)
}
