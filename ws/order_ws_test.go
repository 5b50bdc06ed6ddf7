package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dhnushshetty/food-cart-jsf/entity"
	"github.com/dhnushshetty/food-cart-jsf/services"
	"github.com/dhnushshetty/food-cart-jsf/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// startHub serves the hub with a fixed customer identity instead of a JWT.
func startHub(t *testing.T, userID uint) (*OrderHub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewOrderHub(nil, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/ws/orders", func(c *gin.Context) {
		utils.SetIdentity(c, &utils.Claims{UserID: userID, Role: entity.RoleCustomer})
		c.Next()
	}, hub.HandleWebSocket)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/orders"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestOrderHub_DeliversToCustomer(t *testing.T) {
	hub, url := startHub(t, 7)
	conn := dial(t, url)

	require.Eventually(t, func() bool { return hub.ConnCount("user:7") == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.OrderPlaced(services.OrderView{ID: 11, CustomerID: 7, ShopID: 3, Status: entity.StatusPending, TotalAmount: decimal.RequireFromString("9.50")})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, EventOrderPlaced, ev.Type)
	assert.Equal(t, uint(11), ev.Order.ID)
	assert.True(t, decimal.RequireFromString("9.5").Equal(ev.Order.TotalAmount))

	hub.OrderStatusChanged(services.OrderView{ID: 11, CustomerID: 7, ShopID: 3, Status: entity.StatusAccepted})
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, EventOrderStatusChanged, ev.Type)
	assert.Equal(t, entity.StatusAccepted, ev.Order.Status)
}

func TestOrderHub_IgnoresOtherCustomers(t *testing.T) {
	hub, url := startHub(t, 7)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ConnCount("user:7") == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.OrderPlaced(services.OrderView{ID: 1, CustomerID: 8, ShopID: 3})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	var ev Event
	assert.Error(t, conn.ReadJSON(&ev))
}

func TestOrderHub_UnregistersOnClose(t *testing.T) {
	hub, url := startHub(t, 7)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ConnCount("user:7") == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ConnCount("user:7") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestOrderHub_PublishWithoutListenersDoesNotBlock(t *testing.T) {
	hub := NewOrderHub(nil, zap.NewNop())

	done := make(chan struct{})
	go func() {
		// nobody runs the hub; the buffer fills and the rest is dropped
		for i := 0; i < 1000; i++ {
			hub.OrderPlaced(services.OrderView{ID: uint(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked")
	}
}
