package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"balaji-storefront/internal/domain"
	"balaji-storefront/internal/service/account"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// currentUser writes a 401 when the visitor is not signed in.
func currentUser(c *gin.Context) (domain.User, bool) {
	u, ok := sessionFrom(c).Account.User()
	if !ok {
		writeError(c, domain.ErrUnauthenticated)
	}
	return u, ok
}

func (h *handlers) getMe(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type updateMeRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone" binding:"omitempty,phone"`
}

func (h *handlers) updateMe(c *gin.Context) {
	var req updateMeRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := sessionFrom(c).Account.UpdateProfile(c.Request.Context(), account.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type addressRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required,phone"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	Pincode   string `json:"pincode" binding:"required,pincode"`
	IsDefault bool   `json:"isDefault"`
}

func (r addressRequest) input() account.AddressInput {
	return account.AddressInput{
		Name:      strings.TrimSpace(r.Name),
		Phone:     strings.TrimSpace(r.Phone),
		Street:    strings.TrimSpace(r.Street),
		City:      strings.TrimSpace(r.City),
		State:     strings.TrimSpace(r.State),
		Pincode:   r.Pincode,
		IsDefault: r.IsDefault,
	}
}

func (h *handlers) listAddresses(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": u.Addresses})
}

func (h *handlers) addAddress(c *gin.Context) {
	var req addressRequest
	if !bindJSON(c, &req) {
		return
	}
	addr, err := sessionFrom(c).Account.AddAddress(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, addr)
}

func (h *handlers) removeAddress(c *gin.Context) {
	if err := sessionFrom(c).Account.RemoveAddress(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) setDefaultAddress(c *gin.Context) {
	acct := sessionFrom(c).Account
	if err := acct.SetDefaultAddress(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	u, _ := acct.User()
	c.JSON(http.StatusOK, gin.H{"results": u.Addresses})
}

func (h *handlers) listOrders(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	orders := sessionFrom(c).Account.Orders()
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "results": orders})
}

func (h *handlers) getOrder(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	order, err := sessionFrom(c).Account.Order(c.Param("ref"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) cancelOrder(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	order, err := sessionFrom(c).Account.CancelOrder(c.Request.Context(), c.Param("ref"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// exportOrders downloads the order history as a spreadsheet, one row per
// order line.
func (h *handlers) exportOrders(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	orders := sessionFrom(c).Account.Orders()

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		writeError(c, fmt.Errorf("create sheet: %w", err))
		return
	}
	headers := []string{
		"OrderNumber", "Date", "Status", "PaymentMethod", "Item", "Quantity", "Price",
		"Subtotal", "Shipping", "Tax", "Total", "ShipTo", "Pincode",
	}
	headerRow := sheet.AddRow()
	for _, name := range headers {
		headerRow.AddCell().SetValue(name)
	}
	for _, o := range orders {
		for _, it := range o.Items {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.OrderNumber)
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(o.PaymentMethod)
			row.AddCell().SetValue(it.Name)
			row.AddCell().SetValue(it.Quantity)
			row.AddCell().SetValue(it.Price)
			row.AddCell().SetValue(o.Subtotal)
			row.AddCell().SetValue(o.Shipping)
			row.AddCell().SetValue(o.Tax)
			row.AddCell().SetValue(o.Total)
			row.AddCell().SetValue(o.ShippingAddress.Name + ", " + o.ShippingAddress.City)
			row.AddCell().SetValue(o.ShippingAddress.Pincode)
		}
	}

	c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")
	if err := file.Write(c.Writer); err != nil {
		h.logger.Printf("write orders export: %v", err)
	}
}
