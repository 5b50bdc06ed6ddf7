package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dhnushshetty/food-cart-jsf/configs"
	"github.com/dhnushshetty/food-cart-jsf/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

type api struct {
	t   *testing.T
	srv *httptest.Server
	svc *Services
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, repository.Migrate(db))

	cfg := &configs.Config{JWTSecret: "test-secret", JWTTTL: time.Hour, StatsCacheTTL: time.Minute}
	svc := BuildServices(db, cfg, zap.NewNop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go svc.Hub.Run(ctx)

	r := gin.New()
	RegisterRoutes(r, svc, cfg)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &api{t: t, srv: srv, svc: svc}
}

func (a *api) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, a.srv.URL+path, rd)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := a.srv.Client().Do(req)
	require.NoError(a.t, err)
	defer res.Body.Close()

	var env envelope
	require.NoError(a.t, json.NewDecoder(res.Body).Decode(&env))
	return res.StatusCode, env
}

func (a *api) login(username string) string {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": username, "password": "secret123"})
	require.Equal(a.t, http.StatusOK, code, env.Error)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &out))
	return out.Token
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	res, err := a.srv.Client().Get(a.srv.URL + "/health")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestOrderingFlow(t *testing.T) {
	a := newAPI(t)

	code, env := a.do(http.MethodPost, "/api/auth/register/owner", "", gin.H{
		"username": "bob", "email": "bob@example.com", "password": "secret123",
		"shopName": "Bob's", "shopAddress": "1 Main St",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	shopID := decode[struct {
		ShopID uint `json:"shopId"`
	}](t, env).ShopID

	code, env = a.do(http.MethodPost, "/api/auth/register/customer", "", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)

	code, _ = a.do(http.MethodPost, "/api/auth/register/customer", "", gin.H{
		"username": "alice", "email": "alice2@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)

	owner := a.login("bob")
	alice := a.login("alice")

	// menu
	code, env = a.do(http.MethodPost, "/api/owner/menu", owner, gin.H{"name": "Pizza", "price": "8.50"})
	require.Equal(t, http.StatusCreated, code, env.Error)
	pizzaID := decode[struct {
		ID uint `json:"id"`
	}](t, env).ID

	code, _ = a.do(http.MethodPost, "/api/owner/menu", alice, gin.H{"name": "Pizza", "price": "8.50"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = a.do(http.MethodGet, fmt.Sprintf("/api/shops/%d/menu", shopID), "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]json.RawMessage](t, env), 1)

	code, _ = a.do(http.MethodGet, "/api/shops/9999/menu", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	// live feed for the owner
	wsURL := "ws" + strings.TrimPrefix(a.srv.URL, "http") + "/ws/orders?token=" + owner
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool {
		return a.svc.Hub.ConnCount(fmt.Sprintf("shop:%d", shopID)) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// cart
	code, _ = a.do(http.MethodPost, "/api/orders/place", alice, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = a.do(http.MethodPost, "/api/cart/add", alice, gin.H{"menuItemId": pizzaID, "quantity": 3})
	require.Equal(t, http.StatusOK, code, env.Error)
	cart := decode[struct {
		ShopID      *uint  `json:"shopId"`
		TotalAmount string `json:"totalAmount"`
		Items       []struct {
			ID uint `json:"id"`
		} `json:"items"`
	}](t, env)
	require.NotNil(t, cart.ShopID)
	assert.Equal(t, shopID, *cart.ShopID)
	assert.Equal(t, "25.5", cart.TotalAmount)

	code, _ = a.do(http.MethodPost, "/api/cart/add", alice, gin.H{"menuItemId": pizzaID, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = a.do(http.MethodPatch, fmt.Sprintf("/api/cart/items/%d", cart.Items[0].ID), alice, gin.H{"quantity": 2})
	assert.Equal(t, http.StatusOK, code)

	code, _ = a.do(http.MethodGet, "/api/cart", owner, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// checkout
	code, env = a.do(http.MethodPost, "/api/orders/place", alice, nil)
	require.Equal(t, http.StatusCreated, code, env.Error)
	order := decode[struct {
		ID          uint   `json:"id"`
		Status      string `json:"status"`
		TotalAmount string `json:"totalAmount"`
	}](t, env)
	assert.Equal(t, "PENDING", order.Status)
	assert.Equal(t, "17", order.TotalAmount)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev struct {
		Type  string `json:"type"`
		Order struct {
			ID uint `json:"id"`
		} `json:"order"`
	}
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "order.placed", ev.Type)
	assert.Equal(t, order.ID, ev.Order.ID)

	code, env = a.do(http.MethodGet, "/api/orders/my-history", alice, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]json.RawMessage](t, env), 1)

	code, _ = a.do(http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), alice, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = a.do(http.MethodGet, "/api/orders/abc", alice, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// owner side
	code, env = a.do(http.MethodGet, "/api/owner/orders?status=pending", owner, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]json.RawMessage](t, env), 1)

	code, _ = a.do(http.MethodGet, "/api/owner/orders?status=lost", owner, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = a.do(http.MethodPut, fmt.Sprintf("/api/owner/orders/%d/status", order.ID), owner, gin.H{"status": "DELIVERED"})
	require.Equal(t, http.StatusOK, code, env.Error)

	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "order.status_changed", ev.Type)

	code, env = a.do(http.MethodGet, "/api/owner/statistics", owner, nil)
	require.Equal(t, http.StatusOK, code)
	stats := decode[struct {
		TotalRevenue       string `json:"totalRevenue"`
		PendingOrdersCount int64  `json:"pendingOrdersCount"`
		TopSellingItems    []struct {
			MenuItemID    uint   `json:"menuItemId"`
			MenuItemName  string `json:"menuItemName"`
			TotalQuantity int64  `json:"totalQuantity"`
		} `json:"topSellingItems"`
	}](t, env)
	assert.Equal(t, "17", stats.TotalRevenue)
	assert.Zero(t, stats.PendingOrdersCount)
	require.Len(t, stats.TopSellingItems, 1)
	assert.Equal(t, "Pizza", stats.TopSellingItems[0].MenuItemName)
	assert.EqualValues(t, 2, stats.TopSellingItems[0].TotalQuantity)

	// ordered items stay
	code, _ = a.do(http.MethodDelete, fmt.Sprintf("/api/owner/menu/%d", pizzaID), owner, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestOwnerShopEndpoints(t *testing.T) {
	a := newAPI(t)
	code, env := a.do(http.MethodPost, "/api/auth/register/owner", "", gin.H{
		"username": "bob", "email": "bob@example.com", "password": "secret123",
		"shopName": "Bob's", "shopAddress": "1 Main St",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	owner := a.login("bob")

	code, env = a.do(http.MethodPut, "/api/owner/my-shop", owner, gin.H{"name": "Bob's Place", "address": "2 Main St", "image": "a.png"})
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = a.do(http.MethodGet, "/api/owner/my-shop", owner, nil)
	require.Equal(t, http.StatusOK, code)
	shop := decode[struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	}](t, env)
	assert.Equal(t, "Bob's Place", shop.Name)
	assert.Equal(t, "a.png", shop.Image)

	code, env = a.do(http.MethodGet, "/api/shops", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]json.RawMessage](t, env), 1)

	code, _ = a.do(http.MethodGet, "/api/owner/my-shop", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestCartQuantityUpdateNeedsQuantity(t *testing.T) {
	a := newAPI(t)
	code, env := a.do(http.MethodPost, "/api/auth/register/owner", "", gin.H{
		"username": "bob", "email": "bob@example.com", "password": "secret123",
		"shopName": "Bob's", "shopAddress": "1 Main St",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	code, env = a.do(http.MethodPost, "/api/auth/register/customer", "", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	owner, alice := a.login("bob"), a.login("alice")

	code, env = a.do(http.MethodPost, "/api/owner/menu", owner, gin.H{"name": "Soup", "price": "5.00"})
	require.Equal(t, http.StatusCreated, code, env.Error)
	soupID := decode[struct {
		ID uint `json:"id"`
	}](t, env).ID

	code, env = a.do(http.MethodPost, "/api/cart/add", alice, gin.H{"menuItemId": soupID, "quantity": 2})
	require.Equal(t, http.StatusOK, code, env.Error)
	type cartOut struct {
		Items []struct {
			ID       uint `json:"id"`
			Quantity int  `json:"quantity"`
		} `json:"items"`
	}
	lineID := decode[cartOut](t, env).Items[0].ID
	path := fmt.Sprintf("/api/cart/items/%d", lineID)

	tests := []struct {
		name string
		body any
	}{
		{"empty body", gin.H{}},
		{"misspelled key", gin.H{"qty": 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := a.do(http.MethodPatch, path, alice, tc.body)
			assert.Equal(t, http.StatusBadRequest, code)

			code, env := a.do(http.MethodGet, "/api/cart", alice, nil)
			require.Equal(t, http.StatusOK, code)
			items := decode[cartOut](t, env).Items
			require.Len(t, items, 1)
			assert.Equal(t, 2, items[0].Quantity)
		})
	}

	code, env = a.do(http.MethodPatch, path, alice, gin.H{"quantity": 0})
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Empty(t, decode[cartOut](t, env).Items)
}
