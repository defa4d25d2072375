package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/gomarketplace/internal/cart"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.Equal(t, 6, c.Len())

	p, ok := c.Get("1")
	require.True(t, ok)
	require.Equal(t, "Cadeira Rivatti", p.Title)
	require.Equal(t, 400.0, p.Price)

	_, ok = c.Get("nope")
	require.False(t, ok)
}

func TestParseDerivesStableIDs(t *testing.T) {
	data := []byte(`
[[product]]
title = "  Caneca  "
price = 25

[[product]]
id = "x"
title = "Prato"
price = 30
`)
	a, err := Parse(data)
	require.NoError(t, err)
	b, err := Parse(data)
	require.NoError(t, err)

	pa, pb := a.Products(), b.Products()
	require.Equal(t, "Caneca", pa[0].Title)
	require.NotEmpty(t, pa[0].ID)
	require.Equal(t, pa[0].ID, pb[0].ID, "derived ids must not change between runs")
	require.Equal(t, "x", pa[1].ID)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]struct {
		data    string
		wantErr string
	}{
		"empty":         {data: ``, wantErr: "no products"},
		"bad toml":      {data: `[[product]`, wantErr: "parse catalog"},
		"missing title": {data: "[[product]]\nprice = 1\n", wantErr: "title is required"},
		"negative":      {data: "[[product]]\ntitle = \"A\"\nprice = -1\n", wantErr: "must not be negative"},
		"duplicate":     {data: "[[product]]\nid = \"1\"\ntitle = \"A\"\n[[product]]\nid = \"1\"\ntitle = \"B\"\n", wantErr: "duplicate product id"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			require.ErrorContains(t, err, tc.wantErr)
		})
	}

	_, err := Parse(nil)
	require.ErrorIs(t, err, ErrNoProducts)
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "catalog.toml")

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Default().Products(), c.Products())

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestLoadCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[product]]\nid = \"k\"\ntitle = \"Kit\"\nprice = 12.5\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []Product{{ID: "k", Title: "Kit", Price: 12.5}}, c.Products())
}

func TestLoadEmptyPathIsDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default().Len(), c.Len())
}

func TestProductsReturnsCopy(t *testing.T) {
	c := Default()
	ps := c.Products()
	ps[0].Title = "changed"
	require.Equal(t, "Cadeira Rivatti", c.Products()[0].Title)
}

func TestCartProduct(t *testing.T) {
	p := Product{ID: "3", Title: "Tênis", ImageURL: "t.png", Price: 499.9}
	require.Equal(t, cart.Product{ID: "3", Title: "Tênis", ImageURL: "t.png", Price: 499.9}, p.CartProduct())
}
