package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/hidrocoding/cotizador/internal/domain"
)

// resolveQuotation finds one of the owner's quotations by number
// (case-insensitive), full ID, or unambiguous ID prefix.
func resolveQuotation(ctx context.Context, app *App, input string) (*domain.Quotation, error) {
	if input == "" {
		return nil, fmt.Errorf("quotation number or ID is required")
	}
	qs, err := app.Quotations.List(ctx, app.Owner)
	if err != nil {
		return nil, err
	}

	for _, q := range qs {
		if strings.EqualFold(q.Number, input) || q.ID == input {
			return q, nil
		}
	}

	var matches []*domain.Quotation
	for _, q := range qs {
		if strings.HasPrefix(q.ID, input) {
			matches = append(matches, q)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("quotation %q: %w", input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("quotation ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveClient finds one of the owner's clients by full ID, unambiguous ID
// prefix, or exact email.
func resolveClient(ctx context.Context, app *App, input string) (*domain.Client, error) {
	if input == "" {
		return nil, fmt.Errorf("client ID or email is required")
	}
	clients, err := app.Clients.List(ctx, app.Owner)
	if err != nil {
		return nil, err
	}

	for _, c := range clients {
		if c.ID == input || strings.EqualFold(c.Email, input) {
			return c, nil
		}
	}

	var matches []*domain.Client
	for _, c := range clients {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("client %q: %w", input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("client ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
