package httpserver

import (
	"net/http"
	"net/url"

	"balaji-storefront/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

func writeView(c *gin.Context, v checkout.View, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *handlers) getCheckout(c *gin.Context) {
	v, err := sessionFrom(c).Checkout.State(c.Request.Context())
	writeView(c, v, err)
}

type selectAddressRequest struct {
	AddressID string `json:"addressId" binding:"required"`
}

func (h *handlers) selectCheckoutAddress(c *gin.Context) {
	var req selectAddressRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := sessionFrom(c).Checkout.SelectAddress(c.Request.Context(), req.AddressID)
	writeView(c, v, err)
}

func (h *handlers) addCheckoutAddress(c *gin.Context) {
	var req addressRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := sessionFrom(c).Checkout.AddAddress(c.Request.Context(), req.input())
	writeView(c, v, err)
}

type selectPaymentRequest struct {
	Method string `json:"method" binding:"required"`
}

func (h *handlers) selectCheckoutPayment(c *gin.Context) {
	var req selectPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := sessionFrom(c).Checkout.SelectPayment(c.Request.Context(), req.Method)
	writeView(c, v, err)
}

func (h *handlers) checkoutNext(c *gin.Context) {
	v, err := sessionFrom(c).Checkout.Next(c.Request.Context())
	writeView(c, v, err)
}

func (h *handlers) checkoutBack(c *gin.Context) {
	v, err := sessionFrom(c).Checkout.Back(c.Request.Context())
	writeView(c, v, err)
}

type editStepRequest struct {
	Step string `json:"step" binding:"required,oneof=address payment review"`
}

func (h *handlers) checkoutEdit(c *gin.Context) {
	var req editStepRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := sessionFrom(c).Checkout.Edit(c.Request.Context(), checkout.Step(req.Step))
	writeView(c, v, err)
}

func (h *handlers) placeOrder(c *gin.Context) {
	order, err := sessionFrom(c).Checkout.PlaceOrder(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"order":    order,
		"redirect": "/checkout/confirmation?orderId=" + url.QueryEscape(order.OrderNumber),
	})
}
