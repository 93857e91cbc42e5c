package httpserver

import (
	"net/http"
	"strings"
	"time"

	"balaji-storefront/internal/service/cart"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
)

// newUpgrader accepts browser origins from the CORS allow-list. Requests
// without an Origin header come from non-browser clients and pass.
func newUpgrader(allowed []string) *websocket.Upgrader {
	origins := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		origins[strings.TrimRight(o, "/")] = true
	}
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origins["*"] || origins[origin]
		},
	}
}

// cartEvents streams cart changes so the header badge can animate.
func (h *handlers) cartEvents(c *gin.Context) {
	store := sessionFrom(c).Cart
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Printf("cart events upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, unsubscribe := store.Subscribe()
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	hello := cart.Event{Type: cart.EventSnapshot, Animation: store.Animation(), Count: store.Count()}
	if err := writeEvent(conn, hello); err != nil {
		return
	}

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(conn, ev); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}

func writeEvent(conn *websocket.Conn, ev cart.Event) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(ev)
}
