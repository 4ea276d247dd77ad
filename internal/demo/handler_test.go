package demo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cardapio/internal/cart"
	"cardapio/internal/menu"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupDemoRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return setupDemoRouterWithCap(t, 0)
}

func setupDemoRouterWithCap(t *testing.T, maxSessions int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := menu.DefaultCatalog()
	require.NoError(t, err)

	h := NewHandler(catalog, cart.NewStore(time.Hour, maxSessions, nil), zap.NewNop())

	r := gin.New()
	r.GET("/demo/catalog", h.Catalog)
	r.POST("/demo/sessions", h.CreateSession)
	r.DELETE("/demo/sessions/:session", h.EndSession)
	r.GET("/demo/sessions/:session/menu", h.Menu)
	r.GET("/demo/sessions/:session/cart", h.Cart)
	r.POST("/demo/sessions/:session/cart/items/:item", h.AddItem)
	r.DELETE("/demo/sessions/:session/cart/items/:item", h.RemoveItem)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func newSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/demo/sessions")
	require.Equal(t, http.StatusCreated, w.Code)

	view := decode[cartView](t, w)
	require.NotEmpty(t, view.SessionID)
	assert.Zero(t, view.ItemCount)
	assert.Equal(t, "0.00", view.TotalPrice)
	return view.SessionID
}

func TestCatalogDefaultsToAll(t *testing.T) {
	r := setupDemoRouter(t)

	w := do(t, r, http.MethodGet, "/demo/catalog")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Categories     []string   `json:"categories"`
		ActiveCategory string     `json:"active_category"`
		Items          []itemView `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, menu.AllCategories, resp.ActiveCategory)
	assert.Equal(t, menu.AllCategories, resp.Categories[0])
	require.Len(t, resp.Items, 4)
	assert.Equal(t, "R$ 28,90", resp.Items[0].PriceDisplay)
}

func TestCatalogFiltersByCategory(t *testing.T) {
	r := setupDemoRouter(t)

	w := do(t, r, http.MethodGet, "/demo/catalog?category=Pizzas")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []itemView `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Pizza Margherita", resp.Items[0].Name)

	w = do(t, r, http.MethodGet, "/demo/catalog?category=Bebidas")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestCartFlow(t *testing.T) {
	r := setupDemoRouter(t)
	session := newSession(t, r)
	base := "/demo/sessions/" + session + "/cart/items/"

	do(t, r, http.MethodPost, base+"1")
	do(t, r, http.MethodPost, base+"1")
	w := do(t, r, http.MethodPost, base+"2")
	require.Equal(t, http.StatusOK, w.Code)

	view := decode[cartView](t, w)
	assert.Equal(t, 3, view.ItemCount)
	assert.Equal(t, "99.80", view.TotalPrice)
	assert.Equal(t, "R$ 99,80", view.TotalDisplay)
	require.Len(t, view.Items, 2)
	assert.Equal(t, 1, view.Items[0].Item.ID)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, "57.80", view.Items[0].Subtotal)

	w = do(t, r, http.MethodDelete, base+"1")
	view = decode[cartView](t, w)
	assert.Equal(t, 2, view.ItemCount)
	assert.Equal(t, "70.90", view.TotalPrice)

	do(t, r, http.MethodDelete, base+"1")
	w = do(t, r, http.MethodGet, "/demo/sessions/"+session+"/cart")
	view = decode[cartView](t, w)
	assert.Equal(t, 1, view.ItemCount)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Item.ID)
}

func TestRemoveAbsentItemIsNoop(t *testing.T) {
	r := setupDemoRouter(t)
	session := newSession(t, r)

	w := do(t, r, http.MethodDelete, "/demo/sessions/"+session+"/cart/items/3")
	require.Equal(t, http.StatusOK, w.Code)

	view := decode[cartView](t, w)
	assert.Zero(t, view.ItemCount)
	assert.Empty(t, view.Items)
}

func TestMenuAnnotatesQuantities(t *testing.T) {
	r := setupDemoRouter(t)
	session := newSession(t, r)

	do(t, r, http.MethodPost, "/demo/sessions/"+session+"/cart/items/3")

	w := do(t, r, http.MethodGet, "/demo/sessions/"+session+"/menu?category=Peixes")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ActiveCategory string `json:"active_category"`
		Items          []struct {
			ID       int `json:"id"`
			Quantity int `json:"quantity"`
		} `json:"items"`
		Cart cartView `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "Peixes", resp.ActiveCategory)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].ID)
	assert.Equal(t, 1, resp.Items[0].Quantity)
	assert.Equal(t, "68.00", resp.Cart.TotalPrice)
}

func TestAddRejectsBadInput(t *testing.T) {
	r := setupDemoRouter(t)
	session := newSession(t, r)

	w := do(t, r, http.MethodPost, "/demo/sessions/"+session+"/cart/items/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/demo/sessions/"+session+"/cart/items/42")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/demo/sessions/unknown/cart/items/1")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEndSession(t *testing.T) {
	r := setupDemoRouter(t)
	session := newSession(t, r)

	w := do(t, r, http.MethodDelete, "/demo/sessions/"+session)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/demo/sessions/"+session+"/cart")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodDelete, "/demo/sessions/"+session)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmptyCategoryMeansAll(t *testing.T) {
	r := setupDemoRouter(t)

	w := do(t, r, http.MethodGet, "/demo/catalog?category=")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ActiveCategory string     `json:"active_category"`
		Items          []itemView `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, menu.AllCategories, resp.ActiveCategory)
	assert.Len(t, resp.Items, 4)

	session := newSession(t, r)
	w = do(t, r, http.MethodGet, "/demo/sessions/"+session+"/menu?category=")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, menu.AllCategories, resp.ActiveCategory)
	assert.Len(t, resp.Items, 4)
}

func TestCreateSessionWhenStoreFull(t *testing.T) {
	r := setupDemoRouterWithCap(t, 1)
	newSession(t, r)

	w := do(t, r, http.MethodPost, "/demo/sessions")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
