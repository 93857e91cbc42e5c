package httpserver

import (
	"net/http"
	"strconv"

	"balaji-storefront/internal/service/cart"
	"github.com/gin-gonic/gin"
)

func cartResponse(s *cart.Store) gin.H {
	snap := s.Snapshot()
	return gin.H{
		"items":     snap.Items,
		"count":     snap.Count,
		"animation": snap.Animation,
		"coupon":    snap.Coupon,
		"quote":     snap.Quote,
	}
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartResponse(sessionFrom(c).Cart))
}

func (h *handlers) clearCart(c *gin.Context) {
	store := sessionFrom(c).Cart
	store.Clear(c.Request.Context())
	c.JSON(http.StatusOK, cartResponse(store))
}

type addCartItemRequest struct {
	ProductID int `json:"productId" binding:"required,gt=0"`
	Quantity  int `json:"quantity" binding:"omitempty,gte=1"`
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.catalog.Product(req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}
	store := sessionFrom(c).Cart
	store.Add(c.Request.Context(), p, req.Quantity)
	c.JSON(http.StatusOK, cartResponse(store))
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *handlers) updateCartItem(c *gin.Context) {
	id, ok := cartItemID(c)
	if !ok {
		return
	}
	var req updateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	store := sessionFrom(c).Cart
	store.UpdateQuantity(c.Request.Context(), id, *req.Quantity)
	c.JSON(http.StatusOK, cartResponse(store))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	id, ok := cartItemID(c)
	if !ok {
		return
	}
	store := sessionFrom(c).Cart
	store.Remove(c.Request.Context(), id)
	c.JSON(http.StatusOK, cartResponse(store))
}

func cartItemID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return 0, false
	}
	return id, true
}

type applyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *handlers) applyCoupon(c *gin.Context) {
	var req applyCouponRequest
	if !bindJSON(c, &req) {
		return
	}
	store := sessionFrom(c).Cart
	if !store.ApplyCoupon(req.Code) {
		resp := cartResponse(store)
		resp["error"] = "Invalid coupon code"
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	c.JSON(http.StatusOK, cartResponse(store))
}

func (h *handlers) removeCoupon(c *gin.Context) {
	store := sessionFrom(c).Cart
	store.RemoveCoupon()
	c.JSON(http.StatusOK, cartResponse(store))
}
