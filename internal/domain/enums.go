package domain

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// AllStatuses lists statuses in lifecycle order.
var AllStatuses = []Status{StatusDraft, StatusSent, StatusApproved, StatusRejected, StatusExpired}

// statusAliases maps the Spanish values found in older exports.
var statusAliases = map[string]Status{
	"borrador":  StatusDraft,
	"enviada":   StatusSent,
	"aprobada":  StatusApproved,
	"rechazada": StatusRejected,
	"vencida":   StatusExpired,
}

// ParseStatus accepts canonical values and legacy Spanish aliases.
func ParseStatus(s string) (Status, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, st := range AllStatuses {
		if string(st) == v {
			return st, nil
		}
	}
	if st, ok := statusAliases[v]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

type Category string

const (
	CategoryWebDev      Category = "web-dev"
	CategoryMobileDev   Category = "mobile-dev"
	CategoryDesign      Category = "design"
	CategoryConsulting  Category = "consulting"
	CategoryMaintenance Category = "maintenance"
	CategoryHosting     Category = "hosting"
	CategorySecurity    Category = "security"
	CategoryDatabase    Category = "database"
	CategoryIntegration Category = "integration"
	CategoryOther       Category = "other"
)

// AllCategories lists every accepted category.
var AllCategories = []Category{
	CategoryWebDev, CategoryMobileDev, CategoryDesign, CategoryConsulting,
	CategoryMaintenance, CategoryHosting, CategorySecurity, CategoryDatabase,
	CategoryIntegration, CategoryOther,
}

var categoryAliases = map[string]Category{
	"desarrollo-web":   CategoryWebDev,
	"desarrollo-movil": CategoryMobileDev,
	"diseno":           CategoryDesign,
	"consultoria":      CategoryConsulting,
	"mantenimiento":    CategoryMaintenance,
	"seguridad":        CategorySecurity,
	"base-de-datos":    CategoryDatabase,
	"integracion":      CategoryIntegration,
	"otro":             CategoryOther,
}

// ParseCategory rejects anything outside the closed category set.
func ParseCategory(s string) (Category, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, c := range AllCategories {
		if string(c) == v {
			return c, nil
		}
	}
	if c, ok := categoryAliases[v]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

type Unit string

const (
	UnitHour    Unit = "hour"
	UnitProject Unit = "project"
	UnitMonth   Unit = "month"
	UnitUnit    Unit = "unit"
)

// AllUnits lists every accepted unit of measure.
var AllUnits = []Unit{UnitHour, UnitProject, UnitMonth, UnitUnit}

var unitAliases = map[string]Unit{
	"hora":     UnitHour,
	"proyecto": UnitProject,
	"mes":      UnitMonth,
	"unidad":   UnitUnit,
}

// ParseUnit rejects anything outside the closed unit set.
func ParseUnit(s string) (Unit, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, u := range AllUnits {
		if string(u) == v {
			return u, nil
		}
	}
	if u, ok := unitAliases[v]; ok {
		return u, nil
	}
	return "", fmt.Errorf("unknown unit %q", s)
}
