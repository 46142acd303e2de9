package catalog

import (
	"testing"

	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_WellFormed(t *testing.T) {
	all := All()
	require.Len(t, all, 27)

	seen := map[string]bool{}
	for _, tpl := range all {
		assert.False(t, seen[tpl.ID], "duplicate template id %s", tpl.ID)
		seen[tpl.ID] = true

		assert.NotEmpty(t, tpl.Name, tpl.ID)
		assert.False(t, tpl.BasePrice.IsNegative(), tpl.ID)
		_, err := domain.ParseCategory(string(tpl.Category))
		assert.NoError(t, err, tpl.ID)
		_, err = domain.ParseUnit(string(tpl.Unit))
		assert.NoError(t, err, tpl.ID)
	}
}

func TestGet(t *testing.T) {
	tpl, err := Get("web-003")
	require.NoError(t, err)
	assert.Equal(t, "Landing Page Profesional", tpl.Name)
	assert.Equal(t, "5000.00", tpl.BasePrice.String())

	_, err = Get("nope-001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestByCategoryAndTag(t *testing.T) {
	hosting := ByCategory(domain.CategoryHosting)
	assert.Len(t, hosting, 3)

	ssl := WithTag("SSL")
	var ids []string
	for _, tpl := range ssl {
		ids = append(ids, tpl.ID)
	}
	assert.ElementsMatch(t, []string{"hos-001", "seg-001"}, ids)
}

func TestAll_ReturnsCopy(t *testing.T) {
	a := All()
	a[0].Name = "mutated"
	assert.NotEqual(t, "mutated", All()[0].Name)
}

func TestToLine(t *testing.T) {
	tpl, err := Get("con-001")
	require.NoError(t, err)

	l := tpl.ToLine(4)
	assert.NotEmpty(t, l.ID)
	assert.Equal(t, tpl.Name, l.Name)
	assert.Equal(t, domain.UnitHour, l.Unit)
	assert.Equal(t, 4, l.Quantity)
	assert.True(t, l.UnitPrice.Equal(tpl.BasePrice))

	assert.Equal(t, 1, tpl.ToLine(0).Quantity)
	assert.NotEqual(t, tpl.ToLine(1).ID, tpl.ToLine(1).ID)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Hosting y Dominio", CategoryLabel(domain.CategoryHosting))
	assert.Equal(t, "mensual", UnitLabel(domain.UnitMonth))
	assert.Equal(t, "custom", CategoryLabel(domain.Category("custom")))
	for _, c := range domain.AllCategories {
		assert.NotEqual(t, string(c), CategoryLabel(c), "missing label for %s", c)
	}
}
