package importer

import (
	"context"
	"io"

	"balaji-storefront/internal/domain"
)

// Collector is an in-memory ProductWriter. A repeated id replaces the earlier
// product in place.
type Collector struct {
	products []domain.Product
	index    map[int]int
}

func (c *Collector) Upsert(_ context.Context, p domain.Product) error {
	if c.index == nil {
		c.index = make(map[int]int)
	}
	if i, ok := c.index[p.ID]; ok {
		c.products[i] = p
		return nil
	}
	c.index[p.ID] = len(c.products)
	c.products = append(c.products, p)
	return nil
}

func (c *Collector) Products() []domain.Product {
	return append([]domain.Product(nil), c.products...)
}

// ReadProducts imports every product in r.
func ReadProducts(ctx context.Context, r io.Reader) ([]domain.Product, error) {
	var c Collector
	if _, err := NewCSVImporter(r, &c).Run(ctx); err != nil {
		return nil, err
	}
	return c.Products(), nil
}
