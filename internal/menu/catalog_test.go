package menu

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rating(v float64) *float64 { return &v }

func sampleItems() []MenuItem {
	return []MenuItem{
		{ID: 1, Name: "A", UnitPrice: decimal.RequireFromString("10.00"), Category: "X"},
		{ID: 2, Name: "B", UnitPrice: decimal.RequireFromString("20.00"), Category: "Y"},
		{ID: 3, Name: "C", UnitPrice: decimal.RequireFromString("5.50"), Category: "X", Rating: rating(4.2)},
	}
}

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	assert.Equal(t, 4, c.Len())
	assert.Equal(t,
		[]string{AllCategories, "Hambúrguers", "Pizzas", "Peixes", "Sobremesas"},
		c.Categories(),
	)

	burger, ok := c.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "Hambúrguer Artesanal", burger.Name)
	assert.True(t, burger.Featured)
	assert.True(t, burger.UnitPrice.Equal(decimal.RequireFromString("28.90")))
	require.True(t, burger.HasRating())
	assert.InDelta(t, 4.8, *burger.Rating, 1e-9)

	pizza, ok := c.Lookup(2)
	require.True(t, ok)
	assert.False(t, pizza.Featured)
}

func TestCategoriesDeduplicateInInsertionOrder(t *testing.T) {
	c, err := NewCatalog(sampleItems())
	require.NoError(t, err)

	assert.Equal(t, []string{AllCategories, "X", "Y"}, c.Categories())
	assert.True(t, c.HasCategory("Y"))
	assert.True(t, c.HasCategory(AllCategories))
	assert.False(t, c.HasCategory("Z"))
}

func TestVisibleItems(t *testing.T) {
	items := sampleItems()

	t.Run("all returns full catalog in order", func(t *testing.T) {
		if diff := cmp.Diff(items, VisibleItems(items, AllCategories)); diff != "" {
			t.Fatalf("unexpected items (-want +got):\n%s", diff)
		}
	})

	t.Run("category keeps relative order", func(t *testing.T) {
		got := VisibleItems(items, "X")
		want := []MenuItem{items[0], items[2]}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("unexpected items (-want +got):\n%s", diff)
		}
	})

	t.Run("unmatched category is empty, not nil", func(t *testing.T) {
		got := VisibleItems(items, "Nope")
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("scenario from two-item catalog", func(t *testing.T) {
		c, err := NewCatalog(items[:2])
		require.NoError(t, err)

		got := c.Visible("X")
		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].ID)
	})
}

func TestItemsReturnsCopy(t *testing.T) {
	c, err := NewCatalog(sampleItems())
	require.NoError(t, err)

	items := c.Items()
	items[0].Name = "mutated"

	first, _ := c.Lookup(1)
	assert.Equal(t, "A", first.Name)
}

func TestUnitPrice(t *testing.T) {
	c, err := NewCatalog(sampleItems())
	require.NoError(t, err)

	price, ok := c.UnitPrice(3)
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("5.5")))

	price, ok = c.UnitPrice(99)
	assert.False(t, ok)
	assert.True(t, price.IsZero())
	assert.Equal(t, -1, c.Position(99))
	assert.Equal(t, 2, c.Position(3))
}

func TestNewCatalogRejectsInvalidItems(t *testing.T) {
	base := MenuItem{ID: 1, Name: "A", UnitPrice: decimal.NewFromInt(1), Category: "X"}

	cases := []struct {
		name   string
		mutate func(*MenuItem)
		want   error
	}{
		{"zero id", func(m *MenuItem) { m.ID = 0 }, ErrInvalidID},
		{"blank name", func(m *MenuItem) { m.Name = "  " }, ErrMissingName},
		{"negative price", func(m *MenuItem) { m.UnitPrice = decimal.NewFromInt(-1) }, ErrNegativePrice},
		{"rating too high", func(m *MenuItem) { m.Rating = rating(5.1) }, ErrRatingRange},
		{"missing category", func(m *MenuItem) { m.Category = "" }, ErrMissingCategory},
		{"reserved category", func(m *MenuItem) { m.Category = AllCategories }, ErrReservedCategory},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := base
			tc.mutate(&item)

			_, err := NewCatalog([]MenuItem{item})
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("duplicate id", func(t *testing.T) {
		_, err := NewCatalog([]MenuItem{base, base})
		assert.ErrorIs(t, err, ErrDuplicateID)
	})
}

func TestLoadCatalog(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		doc := `
items:
  - id: 7
    name: Suco
    price: "9.90"
    glyph: "🥤"
    category: Bebidas
`
		c, err := LoadCatalog(strings.NewReader(doc))
		require.NoError(t, err)

		item, ok := c.Lookup(7)
		require.True(t, ok)
		assert.Equal(t, "", item.Description)
		assert.False(t, item.HasRating())
		assert.Equal(t, "R$ 9,90", FormatPrice(item.UnitPrice))
	})

	t.Run("bad price", func(t *testing.T) {
		doc := "items:\n  - id: 1\n    name: A\n    price: abc\n    category: X\n"
		_, err := LoadCatalog(strings.NewReader(doc))
		assert.ErrorContains(t, err, "invalid price")
	})

	t.Run("unknown field", func(t *testing.T) {
		doc := "items:\n  - id: 1\n    name: A\n    price: \"1\"\n    category: X\n    colour: red\n"
		_, err := LoadCatalog(strings.NewReader(doc))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCatalogFile("/nonexistent/catalog.yaml")
		assert.ErrorContains(t, err, "open catalog")
	})

	t.Run("empty path uses embedded catalog", func(t *testing.T) {
		c, err := LoadCatalogFile("")
		require.NoError(t, err)
		assert.Equal(t, 4, c.Len())
	})
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "R$ 28,90", FormatPrice(decimal.RequireFromString("28.9")))
	assert.Equal(t, "R$ 0,00", FormatPrice(decimal.Zero))
	assert.Equal(t, "R$ 1250,50", FormatPrice(decimal.RequireFromString("1250.5")))
}
