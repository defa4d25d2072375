// Package catalog holds the products the marketplace offers. It is read from
// a TOML file, falling back to a built-in list.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/jask/gomarketplace/internal/cart"
)

var (
	ErrNoProducts       = errors.New("catalog: no products defined")
	ErrDuplicateProduct = errors.New("catalog: duplicate product id")
)

// Product is one sellable product.
type Product struct {
	ID       string  `toml:"id"`
	Title    string  `toml:"title"`
	ImageURL string  `toml:"image_url"`
	Price    float64 `toml:"price"`
}

// CartProduct converts p to what the cart store accepts.
func (p Product) CartProduct() cart.Product {
	return cart.Product{ID: p.ID, Title: p.Title, ImageURL: p.ImageURL, Price: p.Price}
}

type catalogFile struct {
	Product []Product `toml:"product"`
}

// Catalog is an ordered, read-only product list.
type Catalog struct {
	products []Product
	byID     map[string]int
}

const defaultCatalogTOML = `# GoMarketplace product catalog
# Add [[product]] blocks; id is optional and derived from the title when empty.

[[product]]
id = "1"
title = "Cadeira Rivatti"
image_url = "https://storage.gomarketplace.dev/products/cadeira-rivatti.png"
price = 400

[[product]]
id = "2"
title = "Poltrona de madeira"
image_url = "https://storage.gomarketplace.dev/products/poltrona.png"
price = 600

[[product]]
id = "3"
title = "Tênis Nike Air"
image_url = "https://storage.gomarketplace.dev/products/tenis-nike.png"
price = 499.9

[[product]]
id = "4"
title = "Relógio analógico"
image_url = "https://storage.gomarketplace.dev/products/relogio.png"
price = 189.9

[[product]]
id = "5"
title = "Camiseta básica"
image_url = "https://storage.gomarketplace.dev/products/camiseta.png"
price = 59.9

[[product]]
id = "6"
title = "Mochila de couro"
image_url = "https://storage.gomarketplace.dev/products/mochila.png"
price = 249
`

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse([]byte(defaultCatalogTOML))
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return c
}

// Load reads the catalog at path. An empty path yields the built-in catalog;
// a missing file is created with the built-in content.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return nil, fmt.Errorf("create catalog dir: %w", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(defaultCatalogTOML), 0o644); wErr != nil {
			return nil, fmt.Errorf("write default catalog: %w", wErr)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from TOML bytes.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Product) == 0 {
		return nil, ErrNoProducts
	}

	c := &Catalog{byID: make(map[string]int, len(f.Product))}
	for i, p := range f.Product {
		p.Title = strings.TrimSpace(p.Title)
		p.ID = strings.TrimSpace(p.ID)
		if p.Title == "" {
			return nil, fmt.Errorf("product[%d]: title is required", i)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product[%d] %q: price must not be negative", i, p.Title)
		}
		if p.ID == "" {
			p.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("product:"+p.Title)).String()
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProduct, p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Products returns every product in file order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get looks a product up by id.
func (c *Catalog) Get(id string) (Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// Len is the number of products.
func (c *Catalog) Len() int { return len(c.products) }
