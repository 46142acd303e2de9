package backup

import (
	"fmt"
	"strings"
	"time"

	"github.com/hidrocoding/cotizador/internal/domain"
)

// ValidateQuotations checks exported quotations before conversion.
// Returns a slice of all validation errors found.
func ValidateQuotations(recs []QuotationRecord) []error {
	var errs []error
	seenIDs := make(map[string]bool, len(recs))
	seenNumbers := make(map[string]bool, len(recs))

	for i := range recs {
		r := &recs[i]
		prefix := fmt.Sprintf("quotations[%d]", i)

		if r.ID != "" {
			if seenIDs[r.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, r.ID))
			}
			seenIDs[r.ID] = true
		}
		if _, _, err := domain.ParseNumber(r.Number); err != nil {
			errs = append(errs, fmt.Errorf("%s.number: %w", prefix, err))
		} else if seenNumbers[r.Number] {
			errs = append(errs, fmt.Errorf("%s.number: duplicate number %q", prefix, r.Number))
		}
		seenNumbers[r.Number] = true

		if strings.TrimSpace(r.Client.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.client.name is required", prefix))
		}
		if strings.TrimSpace(r.Client.Email) == "" {
			errs = append(errs, fmt.Errorf("%s.client.email is required", prefix))
		}

		issue, issueErr := time.Parse(domain.DateLayout, r.IssueDate)
		if issueErr != nil {
			errs = append(errs, fmt.Errorf("%s.issue_date: invalid date format %q (expected YYYY-MM-DD)", prefix, r.IssueDate))
		}
		exp, expErr := time.Parse(domain.DateLayout, r.ExpirationDate)
		if expErr != nil {
			errs = append(errs, fmt.Errorf("%s.expiration_date: invalid date format %q (expected YYYY-MM-DD)", prefix, r.ExpirationDate))
		}
		if issueErr == nil && expErr == nil && exp.Before(issue) {
			errs = append(errs, fmt.Errorf("%s.expiration_date %q is before issue_date %q", prefix, r.ExpirationDate, r.IssueDate))
		}

		if _, err := domain.ParseStatus(r.Status); err != nil {
			errs = append(errs, fmt.Errorf("%s.status: %w", prefix, err))
		}
		if !r.DiscountPercent.InRange() {
			errs = append(errs, fmt.Errorf("%s.discount_percent %s must be between 0 and 100", prefix, r.DiscountPercent))
		}
		if r.TaxRate != nil && !r.TaxRate.InRange() {
			errs = append(errs, fmt.Errorf("%s.tax_rate %s must be between 0 and 100", prefix, r.TaxRate))
		}
		for j := range r.Lines {
			errs = append(errs, validateLine(fmt.Sprintf("%s.lines[%d]", prefix, j), &r.Lines[j])...)
		}
	}
	return errs
}

func validateLine(prefix string, l *LineRecord) []error {
	var errs []error
	if strings.TrimSpace(l.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	if l.UnitPrice.IsNegative() {
		errs = append(errs, fmt.Errorf("%s.unit_price must not be negative", prefix))
	}
	if l.Quantity < 0 {
		errs = append(errs, fmt.Errorf("%s.quantity must not be negative", prefix))
	}
	if _, err := domain.ParseCategory(l.Category); err != nil {
		errs = append(errs, fmt.Errorf("%s.category: %w", prefix, err))
	}
	if _, err := domain.ParseUnit(l.Unit); err != nil {
		errs = append(errs, fmt.Errorf("%s.unit: %w", prefix, err))
	}
	return errs
}

// ValidateClients checks exported clients before conversion.
func ValidateClients(recs []ClientRecord) []error {
	var errs []error
	seen := make(map[string]bool, len(recs))
	for i := range recs {
		r := &recs[i]
		prefix := fmt.Sprintf("clients[%d]", i)
		if r.ID != "" {
			if seen[r.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, r.ID))
			}
			seen[r.ID] = true
		}
		if strings.TrimSpace(r.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if strings.TrimSpace(r.Email) == "" {
			errs = append(errs, fmt.Errorf("%s.email is required", prefix))
		}
	}
	return errs
}

// ValidateConfiguration checks an exported configuration before conversion.
func ValidateConfiguration(r *ConfigRecord) []error {
	if r == nil {
		return nil
	}
	var errs []error
	if r.TaxRate != nil && !r.TaxRate.InRange() {
		errs = append(errs, fmt.Errorf("configuration.tax_rate %s must be between 0 and 100", r.TaxRate))
	}
	if r.ValidityDays != nil && *r.ValidityDays < 0 {
		errs = append(errs, fmt.Errorf("configuration.validity_days must not be negative"))
	}
	return errs
}
