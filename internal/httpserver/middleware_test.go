package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"balaji-storefront/internal/repository/localstore"
	"balaji-storefront/internal/service/cart"
	"balaji-storefront/internal/service/catalog"
	"balaji-storefront/internal/service/session"
	"balaji-storefront/internal/service/visitor"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type stubVisitors struct {
	visitorID string
	err       error
	seen      string
}

func (s *stubVisitors) Issue(context.Context) (string, string, error) {
	return "token", s.visitorID, s.err
}

func (s *stubVisitors) Lookup(_ context.Context, token string) (string, error) {
	s.seen = token
	return s.visitorID, s.err
}

func (s *stubVisitors) TTLSeconds() int { return 60 }

type stubSessions struct {
	err error
}

func (s *stubSessions) Open(_ context.Context, visitorID string) (*session.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &session.Session{VisitorID: visitorID}, nil
}

func (s *stubSessions) Ping(context.Context) error { return s.err }

func middlewareRouter(v *stubVisitors, s *stubSessions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(visitorMiddleware(v, s))
	router.GET("/probe", func(c *gin.Context) {
		sess := sessionFrom(c)
		if sess == nil {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, sess.VisitorID)
	})
	return router
}

func TestVisitorMiddleware_BearerToken(t *testing.T) {
	v := &stubVisitors{visitorID: "v-1"}
	router := middlewareRouter(v, &stubSessions{})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "v-1" {
		t.Fatalf("expected session for v-1, got %d %q", rec.Code, rec.Body.String())
	}
	if v.seen != "abc" {
		t.Fatalf("expected token abc, got %q", v.seen)
	}
}

func TestVisitorMiddleware_QueryTokenFallback(t *testing.T) {
	v := &stubVisitors{visitorID: "v-2"}
	router := middlewareRouter(v, &stubSessions{})

	req := httptest.NewRequest(http.MethodGet, "/probe?token=from-query", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || v.seen != "from-query" {
		t.Fatalf("expected query token to be used, got %d %q", rec.Code, v.seen)
	}
}

func TestVisitorMiddleware_Errors(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		visitors *stubVisitors
		sessions *stubSessions
		want     int
	}{
		{name: "missing", visitors: &stubVisitors{}, sessions: &stubSessions{}, want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", visitors: &stubVisitors{}, sessions: &stubSessions{}, want: http.StatusUnauthorized},
		{name: "invalid", header: "Bearer bad", visitors: &stubVisitors{err: errors.New("bad token")}, sessions: &stubSessions{}, want: http.StatusUnauthorized},
		{name: "session failure", header: "Bearer ok", visitors: &stubVisitors{visitorID: "v"}, sessions: &stubSessions{err: errors.New("boom")}, want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := middlewareRouter(tt.visitors, tt.sessions)
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestIPRateLimiter_PerIP(t *testing.T) {
	l := newIPRateLimiter(1, 2)
	if !l.allow("10.0.0.1") || !l.allow("10.0.0.1") {
		t.Fatalf("expected burst of 2 to pass")
	}
	if l.allow("10.0.0.1") {
		t.Fatalf("expected third request to be limited")
	}
	if !l.allow("10.0.0.2") {
		t.Fatalf("other IPs must have their own bucket")
	}
}

func TestIPRateLimiter_SweepsIdle(t *testing.T) {
	l := newIPRateLimiter(1, 1)
	l.allow("10.0.0.1")
	l.mu.Lock()
	l.limiters["10.0.0.1"].last = time.Now().Add(-2 * limiterIdle)
	l.lastSweep = time.Now().Add(-time.Hour)
	l.mu.Unlock()

	if !l.allow("10.0.0.2") {
		t.Fatalf("expected fresh IP to pass")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.limiters["10.0.0.1"]; ok {
		t.Fatalf("expected idle limiter to be swept")
	}
}

func TestCartEvents_StreamsChanges(t *testing.T) {
	api := newTestAPI(t)
	srv := httptest.NewServer(api.router)
	defer srv.Close()

	token := api.visitorToken(t)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/cart/events?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var ev cart.Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if ev.Type != cart.EventSnapshot || ev.Count != 0 {
		t.Fatalf("unexpected snapshot %+v", ev)
	}

	if rec := api.do(t, http.MethodPost, "/api/cart/items", token, gin.H{"productId": 3, "quantity": 2}); rec.Code != http.StatusOK {
		t.Fatalf("add item: %d", rec.Code)
	}
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if ev.Type != cart.EventAdded || ev.ProductID != 3 || ev.Count != 2 || ev.Animation != 1 {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestCartEvents_RejectsForeignOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	visitors := visitor.New("test-secret", time.Hour)
	router, err := buildRouter(nil, Deps{
		Catalog:            catalog.Default(),
		Visitors:           visitors,
		Sessions:           session.NewRegistry(localstore.NewMemory(), nil, session.Options{}),
		CORSAllowedOrigins: []string{"https://shop.example"},
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	srv := httptest.NewServer(router)
	defer srv.Close()

	token, _, err := visitors.Issue(context.Background())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/cart/events?token=" + token

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"https://evil.example"}})
	if err == nil {
		t.Fatalf("expected foreign origin to be rejected")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign origin, got %v", resp)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"https://shop.example"}})
	if err != nil {
		t.Fatalf("allowed origin: %v", err)
	}
	conn.Close()
}
