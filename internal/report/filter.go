// Package report derives filtered views and statistics from a collection of
// quotations. Every function here is pure.
package report

import (
	"slices"
	"strings"
	"time"

	"github.com/hidrocoding/cotizador/internal/domain"
)

// Filter narrows a quotation collection. Zero fields do not constrain.
type Filter struct {
	Statuses []domain.Status
	From     time.Time // inclusive, compared by calendar day
	To       time.Time // inclusive, compared by calendar day
	Client   string
	Search   string
}

// IsZero reports whether f matches every quotation.
func (f Filter) IsZero() bool {
	return len(f.Statuses) == 0 && f.From.IsZero() && f.To.IsZero() &&
		strings.TrimSpace(f.Client) == "" && strings.TrimSpace(f.Search) == ""
}

// Apply returns the quotations that satisfy every criterion of f, in input
// order. Statuses match the effective status at now, so a quotation past its
// expiration date is found under expired. When Search is set it replaces the
// Client criterion.
func Apply(qs []domain.Quotation, f Filter, now time.Time) []domain.Quotation {
	out := make([]domain.Quotation, 0, len(qs))
	for i := range qs {
		if f.Match(&qs[i], now) {
			out = append(out, qs[i])
		}
	}
	return out
}

// Match evaluates f against a single quotation.
func (f Filter) Match(q *domain.Quotation, now time.Time) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, q.EffectiveStatus(now)) {
		return false
	}
	issue := domain.DateOf(q.IssueDate)
	if !f.From.IsZero() && issue.Before(domain.DateOf(f.From)) {
		return false
	}
	if !f.To.IsZero() && issue.After(domain.DateOf(f.To)) {
		return false
	}

	if search := strings.ToLower(strings.TrimSpace(f.Search)); search != "" {
		return matchesSearch(q, search)
	}
	if client := strings.ToLower(strings.TrimSpace(f.Client)); client != "" {
		return contains(q.Client.Name, client) || contains(q.Client.Email, client)
	}
	return true
}

func matchesSearch(q *domain.Quotation, term string) bool {
	if contains(q.Number, term) || contains(q.Client.Name, term) || contains(q.Client.Company, term) {
		return true
	}
	for _, l := range q.Lines {
		if contains(l.Name, term) || contains(l.Description, term) {
			return true
		}
	}
	return false
}

func contains(field, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(field), lowerTerm)
}
