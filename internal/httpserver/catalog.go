package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"balaji-storefront/internal/domain"
	"balaji-storefront/internal/pricing"
	"balaji-storefront/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type productResponse struct {
	domain.Product
	DiscountPercent int64 `json:"discountPercent"`
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse{Product: p, DiscountPercent: pricing.ProductDiscountPercent(p)})
	}
	return out
}

type listProductsQuery struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	MinPrice int64  `form:"minPrice" binding:"gte=0"`
	MaxPrice int64  `form:"maxPrice" binding:"gte=0"`
	InStock  bool   `form:"inStock"`
	Sort     string `form:"sort"`
}

func (h *handlers) listProducts(c *gin.Context) {
	var q listProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	if !catalog.ValidSort(q.Sort) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown sort %q", q.Sort)})
		return
	}
	products := h.catalog.List(catalog.ListQuery{
		Search:      q.Search,
		Category:    q.Category,
		MinPrice:    q.MinPrice,
		MaxPrice:    q.MaxPrice,
		InStockOnly: q.InStock,
		Sort:        catalog.Sort(q.Sort),
	})
	c.JSON(http.StatusOK, gin.H{"count": len(products), "results": toProductResponses(products)})
}

func (h *handlers) featuredProducts(c *gin.Context) {
	products := h.catalog.Featured()
	c.JSON(http.StatusOK, gin.H{"count": len(products), "results": toProductResponses(products)})
}

func (h *handlers) getProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	p, err := h.catalog.Product(id)
	if err != nil {
		writeError(c, err)
		return
	}
	related := []domain.Product{}
	for _, other := range h.catalog.ByCategory(p.Category) {
		if other.ID != p.ID && len(related) < 4 {
			related = append(related, other)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"product": productResponse{Product: p, DiscountPercent: pricing.ProductDiscountPercent(p)},
		"related": toProductResponses(related),
	})
}

func (h *handlers) deals(c *gin.Context) {
	sale, hot := h.catalog.Deals()
	c.JSON(http.StatusOK, gin.H{"sale": toProductResponses(sale), "hot": toProductResponses(hot)})
}

func (h *handlers) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"results": h.catalog.Categories()})
}

func (h *handlers) getCategory(c *gin.Context) {
	cat, err := h.catalog.Category(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	products := h.catalog.ByCategory(cat.ID)
	c.JSON(http.StatusOK, gin.H{"category": cat, "products": toProductResponses(products)})
}
