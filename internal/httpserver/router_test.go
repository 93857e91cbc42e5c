package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"balaji-storefront/internal/repository/localstore"
	"balaji-storefront/internal/service/catalog"
	"balaji-storefront/internal/service/session"
	"balaji-storefront/internal/service/visitor"
	"github.com/gin-gonic/gin"
)

type testAPI struct {
	router   http.Handler
	sessions *session.Registry
}

func newTestAPI(t *testing.T) testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sessions := session.NewRegistry(localstore.NewMemory(), nil, session.Options{})
	router, err := buildRouter(nil, Deps{
		Catalog:       catalog.Default(),
		Visitors:      visitor.New("test-secret", time.Hour),
		Sessions:      sessions,
		AuthRateRPS:   100,
		AuthRateBurst: 100,
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return testAPI{router: router, sessions: sessions}
}

func (a testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a testAPI) visitorToken(t *testing.T) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/visitor", "", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 issuing visitor, got %d", rec.Code)
	}
	var resp struct {
		Token     string `json:"token"`
		VisitorID string `json:"visitorId"`
		ExpiresIn int    `json:"expiresIn"`
	}
	decode(t, rec, &resp)
	if resp.Token == "" || resp.VisitorID == "" || resp.ExpiresIn != 3600 {
		t.Fatalf("unexpected visitor response %+v", resp)
	}
	return resp.Token
}

func (a testAPI) login(t *testing.T, token string) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/login", token, gin.H{"email": "priya@example.com", "password": "secret1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on login, got %d: %s", rec.Code, rec.Body.String())
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestBuildRouter_RequiresDeps(t *testing.T) {
	if _, err := buildRouter(nil, Deps{}); err == nil {
		t.Fatalf("expected error for missing deps")
	}
}

func TestHealthAndReady(t *testing.T) {
	api := newTestAPI(t)
	if rec := api.do(t, http.MethodGet, "/healthz", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}
	if rec := api.do(t, http.MethodGet, "/readyz", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("readyz: %d", rec.Code)
	}
}

func TestVisitorRoutes_RequireToken(t *testing.T) {
	api := newTestAPI(t)
	if rec := api.do(t, http.MethodGet, "/api/cart", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := api.do(t, http.MethodGet, "/api/cart", "not-a-token", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", rec.Code)
	}
}

func TestSession_AnonymousThenAuthenticated(t *testing.T) {
	api := newTestAPI(t)
	token := api.visitorToken(t)

	var resp struct {
		State string          `json:"state"`
		User  json.RawMessage `json:"user"`
	}
	decode(t, api.do(t, http.MethodGet, "/api/session", token, nil), &resp)
	if resp.State != "anonymous" || string(resp.User) != "null" {
		t.Fatalf("unexpected anonymous session %+v", resp)
	}

	api.login(t, token)
	decode(t, api.do(t, http.MethodGet, "/api/session", token, nil), &resp)
	if resp.State != "authenticated" {
		t.Fatalf("expected authenticated, got %q", resp.State)
	}
	if rec := api.do(t, http.MethodPost, "/api/auth/logout", token, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("logout: %d", rec.Code)
	}
	if rec := api.do(t, http.MethodGet, "/api/me", token, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestCatalogRoutes(t *testing.T) {
	api := newTestAPI(t)

	var list struct {
		Count   int               `json:"count"`
		Results []productResponse `json:"results"`
	}
	decode(t, api.do(t, http.MethodGet, "/api/products?category=lighting&sort=price-low", "", nil), &list)
	if list.Count == 0 {
		t.Fatalf("expected lighting products")
	}
	for i, p := range list.Results {
		if p.Category != "lighting" {
			t.Fatalf("unexpected category %q", p.Category)
		}
		if i > 0 && list.Results[i-1].Price > p.Price {
			t.Fatalf("results not sorted by price")
		}
	}

	if rec := api.do(t, http.MethodGet, "/api/products?sort=cheapest", "", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown sort, got %d", rec.Code)
	}
	if rec := api.do(t, http.MethodGet, "/api/products/999", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing product, got %d", rec.Code)
	}
	if rec := api.do(t, http.MethodGet, "/api/categories/nope", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing category, got %d", rec.Code)
	}

	var detail struct {
		Product productResponse   `json:"product"`
		Related []productResponse `json:"related"`
	}
	decode(t, api.do(t, http.MethodGet, "/api/products/1", "", nil), &detail)
	if detail.Product.ID != 1 || detail.Product.DiscountPercent != 25 {
		t.Fatalf("unexpected product %+v", detail.Product)
	}
	for _, r := range detail.Related {
		if r.ID == 1 || r.Category != detail.Product.Category {
			t.Fatalf("unexpected related product %+v", r)
		}
	}
}

func TestCartFlow(t *testing.T) {
	api := newTestAPI(t)
	token := api.visitorToken(t)

	type cartBody struct {
		Count  int `json:"count"`
		Coupon *struct {
			Code string `json:"code"`
		} `json:"coupon"`
		Quote struct {
			Subtotal int64 `json:"subtotal"`
			Discount int64 `json:"discount"`
			Shipping int64 `json:"shipping"`
			Total    int64 `json:"total"`
		} `json:"quote"`
	}

	var cart cartBody
	decode(t, api.do(t, http.MethodPost, "/api/cart/items", token, gin.H{"productId": 1, "quantity": 2}), &cart)
	if cart.Count != 2 || cart.Quote.Subtotal != 1198 || cart.Quote.Shipping != 0 {
		t.Fatalf("unexpected cart after add %+v", cart)
	}

	if rec := api.do(t, http.MethodPost, "/api/cart/items", token, gin.H{"productId": 999}); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 adding unknown product, got %d", rec.Code)
	}

	rec := api.do(t, http.MethodPost, "/api/cart/coupon", token, gin.H{"code": "bogus"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad coupon, got %d", rec.Code)
	}
	decode(t, api.do(t, http.MethodPost, "/api/cart/coupon", token, gin.H{"code": "save10"}), &cart)
	if cart.Coupon == nil || cart.Coupon.Code != "SAVE10" || cart.Quote.Discount != 120 || cart.Quote.Total != 1078 {
		t.Fatalf("unexpected cart after coupon %+v", cart)
	}

	decode(t, api.do(t, http.MethodPatch, "/api/cart/items/1", token, gin.H{"quantity": 0}), &cart)
	if cart.Count != 0 {
		t.Fatalf("expected empty cart after quantity 0, got %d", cart.Count)
	}
	if rec := api.do(t, http.MethodPatch, "/api/cart/items/abc", token, gin.H{"quantity": 1}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad item id, got %d", rec.Code)
	}
}

func TestLogin_ValidationErrors(t *testing.T) {
	api := newTestAPI(t)
	token := api.visitorToken(t)

	rec := api.do(t, http.MethodPost, "/api/auth/login", token, gin.H{"email": "nope", "password": "123"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	decode(t, rec, &resp)
	if resp.Fields["email"] != "Invalid email address" {
		t.Fatalf("unexpected email message %q", resp.Fields["email"])
	}
	if !strings.Contains(resp.Fields["password"], "at least 6") {
		t.Fatalf("unexpected password message %q", resp.Fields["password"])
	}
}

func TestSignup_ValidationErrors(t *testing.T) {
	api := newTestAPI(t)
	token := api.visitorToken(t)

	rec := api.do(t, http.MethodPost, "/api/auth/signup", token, gin.H{
		"name":            "Priya",
		"email":           "priya@example.com",
		"password":        "lowercase1",
		"confirmPassword": "different",
		"terms":           false,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	decode(t, rec, &resp)
	want := map[string]string{
		"password":        "Password must contain uppercase, lowercase and number",
		"confirmPassword": "Passwords must match",
		"terms":           "You must accept the terms and conditions",
	}
	for field, msg := range want {
		if resp.Fields[field] != msg {
			t.Fatalf("field %s: expected %q, got %q", field, msg, resp.Fields[field])
		}
	}

	rec = api.do(t, http.MethodPost, "/api/auth/signup", token, gin.H{
		"name":            "Priya",
		"email":           "priya@example.com",
		"password":        "Secret123",
		"confirmPassword": "Secret123",
		"terms":           true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAddresses(t *testing.T) {
	api := newTestAPI(t)
	token := api.visitorToken(t)
	api.login(t, token)

	bad := gin.H{"name": "Office", "phone": "123", "street": "MG Road", "city": "Pune", "state": "MH", "pincode": "41100"}
	rec := api.do(t, http.MethodPost, "/api/me/addresses", token, bad)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var verr struct {
		Fields map[string]string `json:"fields"`
	}
	decode(t, rec, &verr)
	if verr.Fields["phone"] != "Invalid phone number" || verr.Fields["pincode"] != "Invalid pincode" {
		t.Fatalf("unexpected field errors %v", verr.Fields)
	}

	good := gin.H{"name": "Office", "phone": "+91 98765 00000", "street": "MG Road", "city": "Pune", "state": "MH", "pincode": "411001", "isDefault": true}
	rec = api.do(t, http.MethodPost, "/api/me/addresses", token, good)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var added struct {
		ID string `json:"id"`
	}
	decode(t, rec, &added)

	var list struct {
		Results []struct {
			ID        string `json:"id"`
			IsDefault bool   `json:"isDefault"`
		} `json:"results"`
	}
	decode(t, api.do(t, http.MethodGet, "/api/me/addresses", token, nil), &list)
	defaults := 0
	for _, a := range list.Results {
		if a.IsDefault {
			defaults++
			if a.ID != added.ID {
				t.Fatalf("expected new address to be default")
			}
		}
	}
	if len(list.Results) != 2 || defaults != 1 {
		t.Fatalf("unexpected address book %+v", list.Results)
	}

	if rec := api.do(t, http.MethodDelete, "/api/me/addresses/"+added.ID, token, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete address: %d", rec.Code)
	}
}

func TestOrders_CancelOnlyProcessing(t *testing.T) {
	api := newTestAPI(t)
	token := api.visitorToken(t)
	api.login(t, token)

	var list struct {
		Count   int `json:"count"`
		Results []struct {
			OrderNumber string `json:"orderNumber"`
			Status      string `json:"status"`
		} `json:"results"`
	}
	decode(t, api.do(t, http.MethodGet, "/api/me/orders", token, nil), &list)
	if list.Count != 3 {
		t.Fatalf("expected demo orders, got %d", list.Count)
	}
	for _, o := range list.Results {
		rec := api.do(t, http.MethodPost, "/api/me/orders/"+o.OrderNumber+"/cancel", token, nil)
		switch o.Status {
		case "Processing":
			if rec.Code != http.StatusOK {
				t.Fatalf("cancel %s: expected 200, got %d", o.OrderNumber, rec.Code)
			}
		default:
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("cancel %s (%s): expected 400, got %d", o.OrderNumber, o.Status, rec.Code)
			}
		}
	}
	if rec := api.do(t, http.MethodGet, "/api/me/orders/BE-missing", token, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestExportOrders(t *testing.T) {
	api := newTestAPI(t)
	token := api.visitorToken(t)

	if rec := api.do(t, http.MethodGet, "/api/me/exports/orders.xlsx", token, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when anonymous, got %d", rec.Code)
	}
	api.login(t, token)
	rec := api.do(t, http.MethodGet, "/api/me/exports/orders.xlsx", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Fatalf("unexpected content type %q", ct)
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Fatalf("expected zip payload")
	}
}

func TestCheckoutFlow(t *testing.T) {
	api := newTestAPI(t)
	token := api.visitorToken(t)

	if rec := api.do(t, http.MethodGet, "/api/checkout", token, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 before login, got %d", rec.Code)
	}
	api.login(t, token)
	if rec := api.do(t, http.MethodGet, "/api/checkout", token, nil); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 with empty cart, got %d", rec.Code)
	}

	api.do(t, http.MethodPost, "/api/cart/items", token, gin.H{"productId": 1, "quantity": 2})

	type view struct {
		Step            string `json:"step"`
		SelectedAddress *struct {
			ID string `json:"id"`
		} `json:"selectedAddress"`
		Quote struct {
			Tax   int64 `json:"tax"`
			Total int64 `json:"total"`
		} `json:"quote"`
	}
	var v view
	decode(t, api.do(t, http.MethodGet, "/api/checkout", token, nil), &v)
	if v.Step != "address" || v.SelectedAddress == nil || v.SelectedAddress.ID != "1" {
		t.Fatalf("unexpected initial view %+v", v)
	}
	if v.Quote.Tax != 216 || v.Quote.Total != 1414 {
		t.Fatalf("unexpected quote %+v", v.Quote)
	}

	decode(t, api.do(t, http.MethodPost, "/api/checkout/next", token, nil), &v)
	if v.Step != "payment" {
		t.Fatalf("expected payment step, got %q", v.Step)
	}
	if rec := api.do(t, http.MethodPost, "/api/checkout/next", token, nil); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 without payment, got %d", rec.Code)
	}
	if rec := api.do(t, http.MethodPost, "/api/checkout/payment", token, gin.H{"method": "bitcoin"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown method, got %d", rec.Code)
	}
	api.do(t, http.MethodPost, "/api/checkout/payment", token, gin.H{"method": "upi"})
	decode(t, api.do(t, http.MethodPost, "/api/checkout/next", token, nil), &v)
	if v.Step != "review" {
		t.Fatalf("expected review step, got %q", v.Step)
	}

	rec := api.do(t, http.MethodPost, "/api/checkout/place-order", token, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var placed struct {
		Order struct {
			OrderNumber   string `json:"orderNumber"`
			Total         int64  `json:"total"`
			PaymentMethod string `json:"paymentMethod"`
			Status        string `json:"status"`
		} `json:"order"`
		Redirect string `json:"redirect"`
	}
	decode(t, rec, &placed)
	if placed.Order.Total != 1414 || placed.Order.Status != "Processing" || placed.Order.PaymentMethod != "UPI" {
		t.Fatalf("unexpected order %+v", placed.Order)
	}
	if placed.Redirect != "/checkout/confirmation?orderId="+placed.Order.OrderNumber {
		t.Fatalf("unexpected redirect %q", placed.Redirect)
	}

	var cart struct {
		Count int `json:"count"`
	}
	decode(t, api.do(t, http.MethodGet, "/api/cart", token, nil), &cart)
	if cart.Count != 0 {
		t.Fatalf("expected cart cleared, got %d", cart.Count)
	}
	var orders struct {
		Results []struct {
			OrderNumber string `json:"orderNumber"`
		} `json:"results"`
	}
	decode(t, api.do(t, http.MethodGet, "/api/me/orders", token, nil), &orders)
	if len(orders.Results) != 4 || orders.Results[0].OrderNumber != placed.Order.OrderNumber {
		t.Fatalf("expected new order first, got %+v", orders.Results)
	}
}

func TestAuthRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := session.NewRegistry(localstore.NewMemory(), nil, session.Options{})
	router, err := buildRouter(nil, Deps{
		Catalog:       catalog.Default(),
		Visitors:      visitor.New("test-secret", time.Hour),
		Sessions:      sessions,
		AuthRateRPS:   1,
		AuthRateBurst: 1,
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	api := testAPI{router: router, sessions: sessions}
	token := api.visitorToken(t)

	body := gin.H{"email": "priya@example.com", "password": "secret1"}
	if rec := api.do(t, http.MethodPost, "/api/auth/login", token, body); rec.Code != http.StatusOK {
		t.Fatalf("first login: %d", rec.Code)
	}
	if rec := api.do(t, http.MethodPost, "/api/auth/login", token, body); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}
