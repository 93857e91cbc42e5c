// Package catalog serves the read-only product and category data.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"balaji-storefront/internal/domain"
)

// DefaultMaxPrice is the upper bound of the listing page's price filter.
const DefaultMaxPrice int64 = 15000

type Sort string

const (
	SortFeatured  Sort = "featured"
	SortPriceLow  Sort = "price-low"
	SortPriceHigh Sort = "price-high"
	SortRating    Sort = "rating"
	SortNewest    Sort = "newest"
)

// Service is immutable after construction and safe for concurrent use.
type Service struct {
	products   []domain.Product
	categories []domain.Category
	byID       map[int]int
}

// New builds a catalog over products and categories. The slices are copied.
func New(products []domain.Product, categories []domain.Category) *Service {
	s := &Service{
		products:   cloneProducts(products),
		categories: append([]domain.Category(nil), categories...),
		byID:       make(map[int]int, len(products)),
	}
	for i, p := range s.products {
		s.byID[p.ID] = i
	}
	return s
}

// Default returns the built-in storefront catalog.
func Default() *Service {
	return New(builtinProducts, builtinCategories)
}

// BuiltinProducts returns a copy of the built-in product list.
func BuiltinProducts() []domain.Product {
	return cloneProducts(builtinProducts)
}

func BuiltinCategories() []domain.Category {
	return append([]domain.Category(nil), builtinCategories...)
}

func (s *Service) All() []domain.Product {
	return cloneProducts(s.products)
}

func (s *Service) Product(id int) (domain.Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return cloneProduct(s.products[i]), nil
}

// ByCategory keeps catalog order and ignores stock status.
func (s *Service) ByCategory(categoryID string) []domain.Product {
	return s.filter(func(p domain.Product) bool { return p.Category == categoryID })
}

func (s *Service) Featured() []domain.Product {
	return s.filter(func(p domain.Product) bool { return p.Featured })
}

// Search matches query case-insensitively against name, description and
// category. An empty query matches everything.
func (s *Service) Search(query string) []domain.Product {
	q := strings.ToLower(query)
	return s.filter(func(p domain.Product) bool { return matches(p, q) })
}

// Deals splits the catalog into discounted and trending products.
func (s *Service) Deals() (sale, hot []domain.Product) {
	sale = s.filter(func(p domain.Product) bool { return p.Badge == domain.BadgeSale || p.OriginalPrice != nil })
	hot = s.filter(func(p domain.Product) bool { return p.Badge == domain.BadgeHot })
	return sale, hot
}

func (s *Service) Categories() []domain.Category {
	return append([]domain.Category(nil), s.categories...)
}

func (s *Service) Category(id string) (domain.Category, error) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Category{}, fmt.Errorf("category %q: %w", id, domain.ErrNotFound)
}

// ListQuery mirrors the product listing filters.
type ListQuery struct {
	Search      string
	Category    string
	MinPrice    int64
	MaxPrice    int64
	InStockOnly bool
	Sort        Sort
}

// List applies search, category, price and stock filters, then sorts. A zero
// MaxPrice means DefaultMaxPrice; an empty or "all" category matches any.
func (s *Service) List(q ListQuery) []domain.Product {
	maxPrice := q.MaxPrice
	if maxPrice <= 0 {
		maxPrice = DefaultMaxPrice
	}
	search := strings.ToLower(q.Search)
	out := s.filter(func(p domain.Product) bool {
		if search != "" && !matches(p, search) {
			return false
		}
		if q.Category != "" && q.Category != "all" && p.Category != q.Category {
			return false
		}
		if p.Price < q.MinPrice || p.Price > maxPrice {
			return false
		}
		return !q.InStockOnly || p.InStock
	})

	switch q.Sort {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Featured && !out[j].Featured })
	}
	return out
}

// ValidSort reports whether v names a known sort order; empty is allowed.
func ValidSort(v string) bool {
	switch Sort(v) {
	case "", SortFeatured, SortPriceLow, SortPriceHigh, SortRating, SortNewest:
		return true
	}
	return false
}

func (s *Service) filter(keep func(domain.Product) bool) []domain.Product {
	out := []domain.Product{}
	for _, p := range s.products {
		if keep(p) {
			out = append(out, cloneProduct(p))
		}
	}
	return out
}

func matches(p domain.Product, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Description), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Category), lowerQuery)
}

func cloneProducts(in []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(in))
	for _, p := range in {
		out = append(out, cloneProduct(p))
	}
	return out
}

func cloneProduct(p domain.Product) domain.Product {
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		p.OriginalPrice = &v
	}
	if p.Specs != nil {
		specs := make(map[string]string, len(p.Specs))
		for k, v := range p.Specs {
			specs[k] = v
		}
		p.Specs = specs
	}
	return p
}
