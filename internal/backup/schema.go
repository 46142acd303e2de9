// Package backup defines the JSON document used to export and re-import an
// owner's quotations, clients and configuration.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/money"
)

// Snapshot is the typed content of a backup file.
type Snapshot struct {
	Quotations    []QuotationRecord `json:"quotations"`
	Clients       []ClientRecord    `json:"clients"`
	Configuration *ConfigRecord     `json:"configuration,omitempty"`
	ExportedAt    time.Time         `json:"exported_at"`
}

// QuotationRecord is one exported quotation. Totals are informational:
// import recomputes them from the lines.
type QuotationRecord struct {
	ID              string                 `json:"id"`
	Number          string                 `json:"number"`
	Client          ClientSnapshotRecord   `json:"client"`
	IssueDate       string                 `json:"issue_date"`
	ExpirationDate  string                 `json:"expiration_date"`
	Status          string                 `json:"status"`
	Lines           []LineRecord           `json:"lines"`
	DiscountPercent money.Percent          `json:"discount_percent"`
	TaxRate         *money.Percent         `json:"tax_rate,omitempty"`
	ApplyTax        *bool                  `json:"apply_tax,omitempty"`
	Subtotal        money.Money            `json:"subtotal"`
	DiscountAmount  money.Money            `json:"discount_amount"`
	Tax             money.Money            `json:"tax"`
	Total           money.Money            `json:"total"`
	PaymentMethods  []domain.PaymentMethod `json:"payment_methods,omitempty"`
	Terms           domain.Terms           `json:"terms"`
	Notes           string                 `json:"notes,omitempty"`
	Issuer          domain.Issuer          `json:"issuer"`
	ShareToken      string                 `json:"share_token,omitempty"`
	CreatedAt       string                 `json:"created_at,omitempty"`
	UpdatedAt       string                 `json:"updated_at,omitempty"`
}

type ClientSnapshotRecord struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
}

type LineRecord struct {
	ID          string      `json:"id,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	UnitPrice   money.Money `json:"unit_price"`
	Category    string      `json:"category"`
	Unit        string      `json:"unit"`
	Quantity    int         `json:"quantity"`
	Duration    string      `json:"duration,omitempty"`
}

type ClientRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Address   string `json:"address,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// ConfigRecord is the exported company configuration. Pointer fields are
// optional on import and fall back to the defaults.
type ConfigRecord struct {
	Name                  string                 `json:"name"`
	Email                 string                 `json:"email,omitempty"`
	Phone                 string                 `json:"phone,omitempty"`
	Address               string                 `json:"address,omitempty"`
	Website               string                 `json:"website,omitempty"`
	LogoURL               string                 `json:"logo_url,omitempty"`
	Issuer                domain.Issuer          `json:"issuer"`
	DefaultTerms          domain.Terms           `json:"default_terms"`
	TaxRate               *money.Percent         `json:"tax_rate,omitempty"`
	ApplyTax              *bool                  `json:"apply_tax,omitempty"`
	DefaultPaymentMethods []domain.PaymentMethod `json:"default_payment_methods,omitempty"`
	ValidityDays          *int                   `json:"validity_days,omitempty"`
}

// Sections is a backup read with each section still undecoded, so a corrupt
// section does not prevent importing the others.
type Sections struct {
	Quotations    json.RawMessage `json:"quotations"`
	Clients       json.RawMessage `json:"clients"`
	Configuration json.RawMessage `json:"configuration"`
	ExportedAt    string          `json:"exported_at"`
}

// Write encodes s as indented JSON.
func Write(w io.Writer, s *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	return nil
}

// Read parses the top level of a backup. It fails only when the input is not
// a JSON object.
func Read(r io.Reader) (*Sections, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}
	var s Sections
	if err := json.Unmarshal(bytes.TrimSpace(data), &s); err != nil {
		return nil, fmt.Errorf("parsing backup: %w", err)
	}
	return &s, nil
}

// LoadFile reads and parses a backup file.
func LoadFile(path string) (*Sections, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Has reports whether raw carries a value other than null.
func Has(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func (s *Sections) DecodeQuotations() ([]QuotationRecord, error) {
	var out []QuotationRecord
	if !Has(s.Quotations) {
		return nil, nil
	}
	if err := json.Unmarshal(s.Quotations, &out); err != nil {
		return nil, fmt.Errorf("decoding quotations: %w", err)
	}
	return out, nil
}

func (s *Sections) DecodeClients() ([]ClientRecord, error) {
	var out []ClientRecord
	if !Has(s.Clients) {
		return nil, nil
	}
	if err := json.Unmarshal(s.Clients, &out); err != nil {
		return nil, fmt.Errorf("decoding clients: %w", err)
	}
	return out, nil
}

// DecodeConfiguration returns nil when the section is absent.
func (s *Sections) DecodeConfiguration() (*ConfigRecord, error) {
	if !Has(s.Configuration) {
		return nil, nil
	}
	var out ConfigRecord
	if err := json.Unmarshal(s.Configuration, &out); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	return &out, nil
}
