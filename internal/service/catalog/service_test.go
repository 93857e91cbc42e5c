package catalog

import (
	"errors"
	"testing"

	"balaji-storefront/internal/domain"
	"github.com/google/go-cmp/cmp"
)

func ids(products []domain.Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestProduct(t *testing.T) {
	s := Default()
	p, err := s.Product(5)
	if err != nil {
		t.Fatalf("Product(5): %v", err)
	}
	if p.Name != "Crompton Digital Multimeter" {
		t.Fatalf("unexpected product %q", p.Name)
	}
	if _, err := s.Product(999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProduct_ReturnsCopies(t *testing.T) {
	s := Default()
	p, _ := s.Product(1)
	*p.OriginalPrice = 1
	p.Specs["Wattage"] = "999W"

	again, _ := s.Product(1)
	if *again.OriginalPrice != 799 || again.Specs["Wattage"] != "12W" {
		t.Fatalf("catalog data was mutated through a returned product")
	}
}

func TestByCategoryAndFeatured(t *testing.T) {
	s := Default()
	if diff := cmp.Diff([]int{1, 7, 11}, ids(s.ByCategory("lighting"))); diff != "" {
		t.Fatalf("lighting (-want +got):\n%s", diff)
	}
	if got := s.ByCategory("garden"); len(got) != 0 {
		t.Fatalf("expected no products, got %v", ids(got))
	}
	if diff := cmp.Diff([]int{1, 2, 3, 5, 11}, ids(s.Featured())); diff != "" {
		t.Fatalf("featured (-want +got):\n%s", diff)
	}
}

func TestSearch(t *testing.T) {
	s := Default()
	cases := map[string][]int{
		"LED":    {1, 7, 11},
		"fans":   {2, 9},
		"alexa":  {11},
		"zzz":    {},
		"":       {1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		"copper": {4},
	}
	for query, want := range cases {
		if diff := cmp.Diff(want, ids(s.Search(query))); diff != "" {
			t.Errorf("Search(%q) (-want +got):\n%s", query, diff)
		}
	}
}

func TestList(t *testing.T) {
	s := Default()
	cases := []struct {
		name  string
		query ListQuery
		want  []int
	}{
		{"featured first stable", ListQuery{}, []int{1, 2, 3, 5, 11, 4, 6, 7, 8, 9, 10, 12}},
		{"category all", ListQuery{Category: "all", Sort: SortNewest}, []int{12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}},
		{"category price low", ListQuery{Category: "lighting", Sort: SortPriceLow}, []int{1, 11, 7}},
		{"price range", ListQuery{MinPrice: 1000, MaxPrice: 2000, Sort: SortPriceHigh}, []int{9, 5, 8}},
		{"rating", ListQuery{Category: "wiring", Sort: SortRating}, []int{4, 10}},
		{"search and stock", ListQuery{Search: "fan", InStockOnly: true}, []int{2, 9}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, ids(s.List(tc.query))); diff != "" {
				t.Fatalf("List (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeals(t *testing.T) {
	sale, hot := Default().Deals()
	if diff := cmp.Diff([]int{1, 2, 4, 6, 7, 9, 12}, ids(sale)); diff != "" {
		t.Fatalf("sale (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 9}, ids(hot)); diff != "" {
		t.Fatalf("hot (-want +got):\n%s", diff)
	}
}

func TestCategory(t *testing.T) {
	s := Default()
	if len(s.Categories()) != 6 {
		t.Fatalf("expected 6 categories")
	}
	c, err := s.Category("tools")
	if err != nil || c.Name != "Tools & Equipment" {
		t.Fatalf("unexpected category %+v err=%v", c, err)
	}
	if _, err := s.Category("garden"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
