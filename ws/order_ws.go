package ws

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dhnushshetty/food-cart-jsf/entity"
	"github.com/dhnushshetty/food-cart-jsf/pkg/resp"
	"github.com/dhnushshetty/food-cart-jsf/repository"
	"github.com/dhnushshetty/food-cart-jsf/services"
	"github.com/dhnushshetty/food-cart-jsf/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"

	writeWait  = 10 * time.Second
	sendBuffer = 16
)

// OrderHub pushes order events to connected customers and shop owners.
// A customer listens on "user:<id>", an owner on "shop:<shopId>".
type OrderHub struct {
	clients    map[string]map[*client]bool
	broadcast  chan Event
	register   chan *client
	unregister chan *client
	done       chan struct{}
	mu         sync.RWMutex
	shops      *repository.ShopRepository
	log        *zap.Logger
}

// Event is what a subscriber receives.
type Event struct {
	Type  string             `json:"type"`
	Order services.OrderView `json:"order"`

	keys []string
}

type client struct {
	conn *websocket.Conn
	key  string
	send chan Event
}

func NewOrderHub(shops *repository.ShopRepository, log *zap.Logger) *OrderHub {
	return &OrderHub{
		clients:    make(map[string]map[*client]bool),
		broadcast:  make(chan Event, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		shops:      shops,
		log:        log,
	}
}

func userKey(id uint) string { return fmt.Sprintf("user:%d", id) }
func shopKey(id uint) string { return fmt.Sprintf("shop:%d", id) }

// Run serves register/unregister/broadcast until ctx is cancelled.
func (h *OrderHub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for key, set := range h.clients {
				for cl := range set {
					close(cl.send)
				}
				delete(h.clients, key)
			}
			h.mu.Unlock()
			return

		case cl := <-h.register:
			h.mu.Lock()
			if h.clients[cl.key] == nil {
				h.clients[cl.key] = make(map[*client]bool)
			}
			h.clients[cl.key][cl] = true
			h.mu.Unlock()

		case cl := <-h.unregister:
			h.drop(cl)

		case ev := <-h.broadcast:
			for _, key := range ev.keys {
				h.mu.RLock()
				var slow []*client
				for cl := range h.clients[key] {
					select {
					case cl.send <- ev:
					default:
						slow = append(slow, cl)
					}
				}
				h.mu.RUnlock()
				for _, cl := range slow {
					h.log.Warn("ws client too slow, dropping", zap.String("key", cl.key))
					h.drop(cl)
				}
			}
		}
	}
}

func (h *OrderHub) drop(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[cl.key][cl]; ok {
		delete(h.clients[cl.key], cl)
		if len(h.clients[cl.key]) == 0 {
			delete(h.clients, cl.key)
		}
		close(cl.send)
	}
}

// ConnCount reports how many sockets listen on key.
func (h *OrderHub) ConnCount(key string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[key])
}

// publish never blocks the caller; events are dropped when the hub lags.
func (h *OrderHub) publish(ev Event) {
	select {
	case h.broadcast <- ev:
	default:
		h.log.Warn("order event dropped", zap.String("type", ev.Type), zap.Uint("orderId", ev.Order.ID))
	}
}

func (h *OrderHub) OrderPlaced(o services.OrderView) {
	h.publish(Event{Type: EventOrderPlaced, Order: o, keys: []string{userKey(o.CustomerID), shopKey(o.ShopID)}})
}

func (h *OrderHub) OrderStatusChanged(o services.OrderView) {
	h.publish(Event{Type: EventOrderStatusChanged, Order: o, keys: []string{userKey(o.CustomerID), shopKey(o.ShopID)}})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket is GET /ws/orders, behind WSAuthMiddleware.
func (h *OrderHub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)

	var key string
	switch utils.CurrentRole(c) {
	case entity.RoleCustomer:
		key = userKey(userID)
	case entity.RoleOwner:
		shop, err := h.shops.FindByOwner(h.shops.DB, userID)
		if err != nil {
			resp.NotFound(c, "shop not found for owner")
			return
		}
		key = shopKey(shop.ID)
	default:
		resp.Forbidden(c, "forbidden")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	cl := &client{conn: conn, key: key, send: make(chan Event, sendBuffer)}
	select {
	case h.register <- cl:
	case <-h.done:
		conn.Close()
		return
	}

	go h.writePump(cl)
	go h.readPump(cl)
}

// readPump only watches for the peer going away; clients send nothing.
func (h *OrderHub) readPump(cl *client) {
	defer func() {
		select {
		case h.unregister <- cl:
		case <-h.done:
		}
	}()
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *OrderHub) writePump(cl *client) {
	defer cl.conn.Close()
	for ev := range cl.send {
		cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteJSON(ev); err != nil {
			h.log.Debug("ws write failed", zap.String("key", cl.key), zap.Error(err))
			return
		}
	}
	cl.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}
