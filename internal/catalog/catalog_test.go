package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat := Default()

	products := cat.List()
	require.Len(t, products, 5)

	mod, ok := cat.Get("Mod")
	require.True(t, ok)
	assert.Equal(t, "3.00", mod.Price.StringFixed(2))
	assert.NotEmpty(t, mod.Description)

	ultra, ok := cat.Get("Ultra Server Rank Package")
	require.True(t, ok)
	assert.Equal(t, "50.00", ultra.Price.StringFixed(2))
}

func TestCatalogGet_Unknown(t *testing.T) {
	cat := Default()

	_, ok := cat.Get("mod")
	assert.False(t, ok, "lookup is case-sensitive")

	_, ok = cat.Get("")
	assert.False(t, ok)

	_, ok = cat.Get("Golden Kit")
	assert.False(t, ok)
}

func TestCatalogList_StableOrder(t *testing.T) {
	cat := New(
		Product{Name: "Zeta", Price: decimal.RequireFromString("1.00")},
		Product{Name: "Alpha", Price: decimal.RequireFromString("2.00")},
		Product{Name: "Mid", Price: decimal.RequireFromString("3.00")},
	)

	names := make([]string, 0, 3)
	for _, p := range cat.List() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Alpha", "Mid", "Zeta"}, names)
}
