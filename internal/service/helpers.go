package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/repository"
)

func utcNow() time.Time {
	return time.Now().UTC()
}

// loadConfig returns the owner's configuration, falling back to the defaults
// for owners that never saved one.
func loadConfig(ctx context.Context, configs repository.ConfigRepo, ownerID string) (domain.CompanyConfig, error) {
	c, err := configs.Get(ctx, ownerID)
	if err != nil {
		return domain.CompanyConfig{}, fmt.Errorf("loading configuration: %w", err)
	}
	if c == nil {
		def := domain.DefaultCompanyConfig()
		def.OwnerID = ownerID
		return def, nil
	}
	return *c, nil
}

// saveClientSnapshot writes the quotation's client into the owner's client
// list, creating the record when the snapshot has no ID yet.
func saveClientSnapshot(ctx context.Context, clients repository.ClientRepo, q *domain.Quotation, now time.Time) error {
	if q.Client.ID == "" {
		q.Client.ID = uuid.NewString()
	}
	c := &domain.Client{
		ID:        q.Client.ID,
		OwnerID:   q.OwnerID,
		Name:      q.Client.Name,
		Email:     q.Client.Email,
		Phone:     q.Client.Phone,
		Company:   q.Client.Company,
		Address:   q.Client.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := clients.Upsert(ctx, c); err != nil {
		return fmt.Errorf("saving client %q: %w", c.Name, err)
	}
	return nil
}

func requireOwner(ownerID string) error {
	if ownerID == "" {
		v := &domain.ValidationError{}
		v.Add("owner is required")
		return v
	}
	return nil
}
