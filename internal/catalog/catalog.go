// Package catalog holds the built-in service templates offered when
// assembling a quotation.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/money"
)

// Template is a pre-priced service that can be turned into a quotation line.
type Template struct {
	ID          string
	Name        string
	Description string
	Category    domain.Category
	BasePrice   money.Money
	Unit        domain.Unit
	Duration    string
	Tags        []string
}

// ToLine copies the template into a new service line. A quantity below one
// is stored as one.
func (t Template) ToLine(qty int) domain.ServiceLine {
	if qty < 1 {
		qty = 1
	}
	return domain.ServiceLine{
		ID:          uuid.NewString(),
		Name:        t.Name,
		Description: t.Description,
		UnitPrice:   t.BasePrice,
		Category:    t.Category,
		Unit:        t.Unit,
		Quantity:    qty,
		Duration:    t.Duration,
	}
}

// HasTag reports whether the template carries tag, ignoring case.
func (t Template) HasTag(tag string) bool {
	return slices.ContainsFunc(t.Tags, func(s string) bool {
		return strings.EqualFold(s, tag)
	})
}

// All returns a copy of every template in catalog order.
func All() []Template {
	return slices.Clone(templates)
}

// Get looks a template up by ID.
func Get(id string) (Template, error) {
	for _, t := range templates {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("service template %q: %w", id, domain.ErrNotFound)
}

func ByCategory(c domain.Category) []Template {
	var out []Template
	for _, t := range templates {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
}

func WithTag(tag string) []Template {
	var out []Template
	for _, t := range templates {
		if t.HasTag(tag) {
			out = append(out, t)
		}
	}
	return out
}

var categoryLabels = map[domain.Category]string{
	domain.CategoryWebDev:      "Desarrollo Web",
	domain.CategoryMobileDev:   "Desarrollo Móvil",
	domain.CategoryDesign:      "Diseño",
	domain.CategoryConsulting:  "Consultoría",
	domain.CategoryMaintenance: "Mantenimiento",
	domain.CategoryHosting:     "Hosting y Dominio",
	domain.CategorySecurity:    "Seguridad",
	domain.CategoryDatabase:    "Base de Datos",
	domain.CategoryIntegration: "Integraciones",
	domain.CategoryOther:       "Otros",
}

var unitLabels = map[domain.Unit]string{
	domain.UnitHour:    "por hora",
	domain.UnitProject: "por proyecto",
	domain.UnitMonth:   "mensual",
	domain.UnitUnit:    "por unidad",
}

// CategoryLabel returns the display name of c, or c itself when unknown.
func CategoryLabel(c domain.Category) string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// UnitLabel returns the display name of u, or u itself when unknown.
func UnitLabel(u domain.Unit) string {
	if l, ok := unitLabels[u]; ok {
		return l
	}
	return string(u)
}
