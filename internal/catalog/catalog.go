package catalog

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Product is a single shop entry. Products are defined at process start and
// never mutated.
type Product struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// Catalog is a read-only product table keyed by product name.
type Catalog struct {
	products map[string]Product
	names    []string
}

func New(products ...Product) *Catalog {
	byName := make(map[string]Product, len(products))
	names := make([]string, 0, len(products))
	for _, p := range products {
		if _, exists := byName[p.Name]; !exists {
			names = append(names, p.Name)
		}
		byName[p.Name] = p
	}
	sort.Strings(names)
	return &Catalog{products: byName, names: names}
}

// Default returns the shop's product table.
func Default() *Catalog {
	return New(
		Product{
			Name:        "Mod",
			Price:       decimal.RequireFromString("3.00"),
			Description: "Get Fly, Larger Anti-Raid Zone, Teleport and Mod Kits",
		},
		Product{
			Name:        "Mod+",
			Price:       decimal.RequireFromString("7.00"),
			Description: "Get Fly, XL Anti-Raid Zone, Teleport Players and Admin Kits w/Command Access",
		},
		Product{
			Name:        "Hardcore VIP 1 Month",
			Price:       decimal.RequireFromString("3.00"),
			Description: "VIP Kit and Rank for 1 month",
		},
		Product{
			Name:        "Hardcore VIP Perma",
			Price:       decimal.RequireFromString("30.00"),
			Description: "VIP Kit and Rank with a server Tag",
		},
		Product{
			Name:        "Ultra Server Rank Package",
			Price:       decimal.RequireFromString("50.00"),
			Description: "Mod+ on Oxide Build-A-Base, Perma Hardcore VIP, Ultra Tag, 3 Custom Tag Roll Tokens, 2 Custom Tag Token",
		},
	)
}

func (c *Catalog) Get(name string) (Product, bool) {
	p, ok := c.products[name]
	return p, ok
}

// List returns all products in stable name order.
func (c *Catalog) List() []Product {
	out := make([]Product, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.products[name])
	}
	return out
}
