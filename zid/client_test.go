package zid

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// ordersServer serves a paginated order listing of the given total size.
func ordersServer(t *testing.T, total int, key string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" {
			http.NotFound(w, r)
			return
		}
		page := 1
		fmt.Sscanf(r.URL.Query().Get("page"), "%d", &page)

		start := (page - 1) * pageSize
		end := start + pageSize
		if end > total {
			end = total
		}
		if start > total {
			start = total
		}

		items := make([]map[string]interface{}, 0, end-start)
		for i := start; i < end; i++ {
			items = append(items, map[string]interface{}{"id": i + 1})
		}
		json.NewEncoder(w).Encode(map[string]interface{}{key: items})
	}))
}

func TestGetAllOrdersPaginates(t *testing.T) {
	server := ordersServer(t, 60, "orders")
	defer server.Close()

	client := NewClientWithBaseURL("token", server.URL)
	orders, err := client.GetAllOrders()
	if err != nil {
		t.Fatalf("GetAllOrders failed: %v", err)
	}
	if len(orders) != 60 {
		t.Errorf("expected 60 orders, got %d", len(orders))
	}
	if orders[59].ID != 60 {
		t.Errorf("expected last order id 60, got %d", orders[59].ID)
	}
}

func TestGetAllOrdersPayloadKey(t *testing.T) {
	server := ordersServer(t, 10, "payload")
	defer server.Close()

	client := NewClientWithBaseURL("token", server.URL)
	orders, err := client.GetAllOrders()
	if err != nil {
		t.Fatalf("GetAllOrders failed: %v", err)
	}
	if len(orders) != 10 {
		t.Errorf("expected 10 orders, got %d", len(orders))
	}
}

func TestGetAllOrdersShortFirstPage(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]interface{}{"orders": []map[string]interface{}{{"id": 1}}})
	}))
	defer server.Close()

	client := NewClientWithBaseURL("token", server.URL)
	if _, err := client.GetAllOrders(); err != nil {
		t.Fatalf("GetAllOrders failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single page fetch, got %d", calls)
	}
}

func TestAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid token"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("bad-token", server.URL)
	_, err := client.GetAllOrders()
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", apiErr.StatusCode)
	}
}

func TestAuthHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("missing bearer header, got %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("X-Manager-Token") != "secret" {
			t.Errorf("missing manager token header")
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"products": []map[string]interface{}{}})
	}))
	defer server.Close()

	client := NewClientWithBaseURL("secret", server.URL)
	if _, err := client.GetAllProducts(); err != nil {
		t.Fatalf("GetAllProducts failed: %v", err)
	}
}
