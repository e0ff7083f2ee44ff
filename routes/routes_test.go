package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"restaurant-api/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiClient struct {
	t *testing.T
	r *gin.Engine
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := config.OpenDB(config.DBConfig{Driver: "sqlite", Source: filepath.Join(t.TempDir(), "api.db")})
	require.NoError(t, err)
	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })

	require.NoError(t, config.SeedAdmin(db, config.AdminSeed{Email: "admin@example.com", Password: "admin-pass"}))
	_, err = config.SeedMenu(db)
	require.NoError(t, err)

	r := gin.New()
	SetupRoutes(r)
	return &apiClient{t: t, r: r}
}

func (a *apiClient) do(method, path, token string, body any) (int, map[string]any) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out))
	} else if w.Body.Len() > 0 {
		var list []any
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &list))
		out["items"] = list
	}
	return w.Code, out
}

func (a *apiClient) register(username string) (string, float64) {
	a.t.Helper()
	code, body := a.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username, "email": username + "@example.com",
		"password": "password123", "password_confirm": "password123",
	})
	require.Equal(a.t, http.StatusCreated, code, body)
	tokens := body["tokens"].(map[string]any)
	user := body["user"].(map[string]any)
	return tokens["access"].(string), user["id"].(float64)
}

func (a *apiClient) adminToken() string {
	a.t.Helper()
	code, body := a.do(http.MethodPost, "/api/auth/admin-login", "", gin.H{"email": "admin@example.com", "password": "admin-pass"})
	require.Equal(a.t, http.StatusOK, code, body)
	assert.Equal(a.t, true, body["permissions"].(map[string]any)["is_superuser"])
	return body["tokens"].(map[string]any)["access"].(string)
}

func (a *apiClient) menuIDs() []float64 {
	a.t.Helper()
	code, body := a.do(http.MethodGet, "/api/menu", "", nil)
	require.Equal(a.t, http.StatusOK, code)
	var ids []float64
	for _, it := range body["items"].([]any) {
		ids = append(ids, it.(map[string]any)["id"].(float64))
	}
	return ids
}

func TestCustomerFlow(t *testing.T) {
	api := newAPI(t)
	token, _ := api.register("alice")
	ids := api.menuIDs()
	require.GreaterOrEqual(t, len(ids), 2)

	code, body := api.do(http.MethodPost, "/api/order", token, gin.H{
		"items": []gin.H{{"menu_item_id": ids[0], "quantity": 2}, {"menu_item_id": ids[1], "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, "Order placed successfully", body["message"])
	order := body["order"].(map[string]any)
	assert.Equal(t, "pending", order["status"])
	assert.Len(t, order["order_items"], 2)

	code, body = api.do(http.MethodPost, "/api/order", token, gin.H{"items": []gin.H{{"menu_item_id": ids[0], "quantity": 0}}})
	assert.Equal(t, http.StatusBadRequest, code, body)

	code, body = api.do(http.MethodPost, "/api/order", token, gin.H{"items": []gin.H{{"menu_item_id": 9999, "quantity": 1}}})
	assert.Equal(t, http.StatusNotFound, code, body)
	assert.Equal(t, []any{float64(9999)}, body["missing_ids"])

	code, body = api.do(http.MethodPost, "/api/checkout", token, gin.H{"items": []gin.H{{"menu_item_id": ids[0], "quantity": 1}}})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, "delivered", body["order"].(map[string]any)["status"])
	checkoutID := body["order"].(map[string]any)["id"]

	code, body = api.do(http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["items"], 2)

	code, body = api.do(http.MethodPost, "/api/review", token, gin.H{"order_id": checkoutID, "stars": 5, "description": "lovely"})
	require.Equal(t, http.StatusCreated, code, body)
	code, body = api.do(http.MethodPost, "/api/review", token, gin.H{"order_id": checkoutID, "stars": 4})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "This order already has a review", body["error"])

	code, body = api.do(http.MethodGet, "/api/reviews?page_size=1", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["count"])
	assert.Nil(t, body["next"])

	code, _ = api.do(http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestReservationFlow(t *testing.T) {
	api := newAPI(t)
	alice, _ := api.register("alice")
	bob, _ := api.register("bob")
	admin := api.adminToken()
	date := time.Now().AddDate(0, 1, 0).Format("2006-01-02")

	code, body := api.do(http.MethodPost, "/api/reservation", alice, gin.H{
		"reservation_date": "2020-01-01", "reservation_time": "18:00", "party_size": 2,
	})
	assert.Equal(t, http.StatusBadRequest, code, body)

	book := func(token string) float64 {
		code, body := api.do(http.MethodPost, "/api/reservation", token, gin.H{
			"reservation_date": date, "reservation_time": "18:00", "party_size": 4,
		})
		require.Equal(t, http.StatusCreated, code, body)
		r := body["reservation"].(map[string]any)
		assert.Equal(t, "pending", r["status"])
		assert.Nil(t, r["table_number"])
		return r["id"].(float64)
	}
	first, second := book(alice), book(bob)

	path := func(id float64, action string) string {
		return fmt.Sprintf("/api/admin/reservations/%d/%s", int(id), action)
	}
	code, _ = api.do(http.MethodPut, path(first, "approve"), alice, gin.H{"table_number": 5})
	assert.Equal(t, http.StatusForbidden, code)

	code, body = api.do(http.MethodPut, path(first, "approve"), admin, gin.H{"table_number": 5})
	require.Equal(t, http.StatusOK, code, body)
	code, body = api.do(http.MethodPut, path(second, "approve"), admin, gin.H{"table_number": 5})
	assert.Equal(t, http.StatusConflict, code, body)

	code, body = api.do(http.MethodGet, "/api/reservations/availability?date="+date+"&time=18:00", bob, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["available_tables"], 19)
	assert.NotContains(t, body["available_tables"], float64(5))

	for i := 0; i < 2; i++ {
		code, body = api.do(http.MethodPut, path(first, "reject"), admin, nil)
		require.Equal(t, http.StatusOK, code, body)
		assert.Equal(t, "cancelled", body["reservation"].(map[string]any)["status"])
	}
	code, body = api.do(http.MethodPut, path(second, "approve"), admin, gin.H{"table_number": 5})
	assert.Equal(t, http.StatusOK, code, body)

	code, body = api.do(http.MethodPut, path(second, "status"), admin, gin.H{"status": "completed"})
	assert.Equal(t, http.StatusBadRequest, code, body)
	assert.Equal(t, "confirmed", body["current_status"])
	code, _ = api.do(http.MethodPut, path(second, "status"), admin, gin.H{"status": "seated"})
	assert.Equal(t, http.StatusOK, code)

	code, body = api.do(http.MethodGet, "/api/admin/reservations?status=seated", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["count"])
}

func TestAdminUserManagement(t *testing.T) {
	api := newAPI(t)
	alice, aliceID := api.register("alice")
	_, bobID := api.register("bob")
	admin := api.adminToken()
	ids := api.menuIDs()

	code, _ := api.do(http.MethodGet, "/api/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = api.do(http.MethodGet, "/api/admin/users", alice, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, body := api.do(http.MethodGet, "/api/admin/users", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(3), body["count"])

	code, body = api.do(http.MethodPost, "/api/checkout", alice, gin.H{"items": []gin.H{{"menu_item_id": ids[0], "quantity": 1}}})
	require.Equal(t, http.StatusCreated, code, body)

	code, body = api.do(http.MethodGet, fmt.Sprintf("/api/admin/users/%d", int(aliceID)), admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["statistics"].(map[string]any)["orders_count"])

	_, body = api.do(http.MethodGet, "/api/auth/profile", admin, nil)
	adminID := body["user"].(map[string]any)["id"].(float64)
	code, body = api.do(http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", int(adminID)), admin, nil)
	assert.Equal(t, http.StatusBadRequest, code, body)

	code, body = api.do(http.MethodPost, "/api/admin/users/bulk-delete", admin, gin.H{"user_ids": []float64{bobID, 4242}})
	assert.Equal(t, http.StatusNotFound, code, body)
	assert.Equal(t, []any{float64(4242)}, body["missing_ids"])

	code, body = api.do(http.MethodPost, "/api/admin/users/bulk-delete", admin, gin.H{"user_ids": []float64{adminID, 4242}})
	assert.Equal(t, http.StatusNotFound, code, body)

	code, body = api.do(http.MethodPost, "/api/admin/users/bulk-delete", admin, gin.H{"user_ids": []float64{bobID, adminID}})
	assert.Equal(t, http.StatusBadRequest, code, body)

	code, body = api.do(http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", int(aliceID)), admin, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, float64(1), body["deleted_data"].(map[string]any)["orders_count"])

	code, body = api.do(http.MethodPost, "/api/admin/users/bulk-delete", admin, gin.H{"user_ids": []float64{bobID}})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, float64(1), body["deleted_count"])
}

func TestAdminMenuAndOrders(t *testing.T) {
	api := newAPI(t)
	alice, _ := api.register("alice")
	admin := api.adminToken()

	code, body := api.do(http.MethodPost, "/api/admin/menu", admin, gin.H{"food_name": "Tiramisu", "food_price": "6.75"})
	require.Equal(t, http.StatusCreated, code, body)
	item := body["menu_item"].(map[string]any)
	itemID := int(item["id"].(float64))
	assert.Equal(t, "6.75", item["food_price"])

	code, _ = api.do(http.MethodPost, "/api/admin/menu", admin, gin.H{"food_name": "Free Lunch", "food_price": 0})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = api.do(http.MethodPost, "/api/order", alice, gin.H{"items": []gin.H{{"menu_item_id": itemID, "quantity": 2}}})
	require.Equal(t, http.StatusCreated, code, body)
	orderID := int(body["order"].(map[string]any)["id"].(float64))
	assert.Equal(t, "13.5", body["order"].(map[string]any)["total_amount"])

	code, body = api.do(http.MethodDelete, fmt.Sprintf("/api/admin/menu/%d", itemID), admin, nil)
	assert.Equal(t, http.StatusConflict, code, body)

	code, body = api.do(http.MethodPut, fmt.Sprintf("/api/admin/menu/%d", itemID), admin, gin.H{"is_available": false})
	require.Equal(t, http.StatusOK, code, body)
	code, body = api.do(http.MethodGet, "/api/admin/menu/all", admin, nil)
	require.Equal(t, http.StatusOK, code)
	public := api.menuIDs()
	assert.Equal(t, len(public)+1, int(body["count"].(float64)))

	code, body = api.do(http.MethodPut, fmt.Sprintf("/api/admin/orders/%d/status", orderID), admin, gin.H{"status": "confirmed"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "pending", body["previous_status"])
	code, _ = api.do(http.MethodPut, fmt.Sprintf("/api/admin/orders/%d/status", orderID), admin, gin.H{"status": "delivered"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = api.do(http.MethodGet, "/api/admin/orders?status=confirmed", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["count"])

	code, _ = api.do(http.MethodGet, "/api/state-machine", "", nil)
	assert.Equal(t, http.StatusOK, code)
}
