package domain

import (
	"time"

	"github.com/hidrocoding/cotizador/internal/money"
)

// DefaultValidityDays is how long a new quotation stays valid.
const DefaultValidityDays = 30

type TaxSettings struct {
	RatePercent money.Percent
	Apply       bool
}

// Issuer is the person signing quotations on behalf of the company.
type Issuer struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type PaymentMethod struct {
	Kind    string   `json:"kind"`
	Details []string `json:"details,omitempty"`
}

// Terms are the free-text conditions printed on a quotation.
type Terms struct {
	DeliveryTime string `json:"delivery_time"`
	PaymentTerms string `json:"payment_terms"`
	Includes     string `json:"includes"`
	Excludes     string `json:"excludes"`
	Validity     string `json:"validity"`
	Warranty     string `json:"warranty,omitempty"`
}

// CompanyConfig holds per-owner defaults used to pre-populate new quotations.
type CompanyConfig struct {
	OwnerID               string
	Name                  string
	Email                 string
	Phone                 string
	Address               string
	Website               string
	LogoURL               string
	Issuer                Issuer
	DefaultTerms          Terms
	Tax                   TaxSettings
	DefaultPaymentMethods []PaymentMethod
	ValidityDays          int
	UpdatedAt             time.Time
}

// DefaultCompanyConfig is used for owners that never saved a configuration.
func DefaultCompanyConfig() CompanyConfig {
	return CompanyConfig{
		Name: "Hidro_coding",
		Issuer: Issuer{
			Name:  "Desarrollador",
			Title: "Desarrollador Full-Stack",
		},
		DefaultTerms: Terms{
			DeliveryTime: "El tiempo de entrega se establecerá según el alcance del proyecto.",
			PaymentTerms: "50% al inicio del proyecto y 50% al finalizar, antes de la entrega final.",
			Includes:     "Desarrollo, pruebas y documentación básica.",
			Excludes:     "Hosting, dominio y mantenimiento (pueden cotizarse por separado).",
			Validity:     "Esta cotización tiene validez de 30 días naturales a partir de la fecha de emisión.",
		},
		Tax: TaxSettings{
			RatePercent: money.PercentOf(16),
			Apply:       false,
		},
		DefaultPaymentMethods: []PaymentMethod{
			{Kind: "Transferencia Bancaria"},
		},
		ValidityDays: DefaultValidityDays,
	}
}

// Validate checks the tax rate and validity period.
func (c *CompanyConfig) Validate() error {
	v := &ValidationError{}
	if !c.Tax.RatePercent.InRange() {
		v.Add("tax rate %s must be between 0 and 100", c.Tax.RatePercent)
	}
	if c.ValidityDays < 0 {
		v.Add("validity days must not be negative")
	}
	return v.OrNil()
}
