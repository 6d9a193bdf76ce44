package zid

import (
	"encoding/json"
	"testing"
	"time"
)

func TestLocalizedStringPlain(t *testing.T) {
	var s LocalizedString
	if err := json.Unmarshal([]byte(`"عسل سدر"`), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if s.String() != "عسل سدر" {
		t.Errorf("expected plain name, got %q", s.String())
	}
}

func TestLocalizedStringObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"arabic wins", `{"ar":"عسل","en":"Honey"}`, "عسل"},
		{"english fallback", `{"en":"Honey"}`, "Honey"},
		{"null", `null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s LocalizedString
			if err := json.Unmarshal([]byte(tt.in), &s); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if s.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, s.String())
			}
		})
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{`120.5`, 120.5},
		{`"99.99"`, 99.99},
		{`"not-a-number"`, 0},
		{`null`, 0},
		{`""`, 0},
	}
	for _, tt := range tests {
		var a Amount
		if err := json.Unmarshal([]byte(tt.in), &a); err != nil {
			t.Fatalf("unmarshal %s failed: %v", tt.in, err)
		}
		if float64(a) != tt.want {
			t.Errorf("unmarshal %s: expected %v, got %v", tt.in, tt.want, float64(a))
		}
	}
}

func TestTimeLayouts(t *testing.T) {
	var ts Time
	if err := json.Unmarshal([]byte(`"2024-01-15 10:30:00"`), &ts); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	want := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	if !ts.Time.Equal(want) {
		t.Errorf("expected %v, got %v", want, ts.Time)
	}

	if err := json.Unmarshal([]byte(`"garbage"`), &ts); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !ts.Time.IsZero() {
		t.Errorf("expected zero time for unparsable value, got %v", ts.Time)
	}
}

func TestOrderEnvelope(t *testing.T) {
	wrapped := `{"order":{"id":7,"created_at":"2024-01-15 10:30:00","transaction_amount":"150","customer":{"id":3,"name":"Sara"},"products":[{"id":"p1","name":"Honey","quantity":2}]}}`
	var order Order
	if err := json.Unmarshal([]byte(wrapped), &order); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if order.ID != 7 {
		t.Errorf("expected order id 7, got %d", order.ID)
	}
	if order.Customer == nil || order.Customer.ID != 3 {
		t.Fatalf("expected customer 3, got %+v", order.Customer)
	}
	if float64(order.TransactionAmount) != 150 {
		t.Errorf("expected amount 150, got %v", order.TransactionAmount)
	}
	if len(order.Products) != 1 || order.Products[0].Quantity != 2 {
		t.Errorf("unexpected products: %+v", order.Products)
	}

	plain := `{"id":8,"customer":{"id":4}}`
	if err := json.Unmarshal([]byte(plain), &order); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if order.ID != 8 {
		t.Errorf("expected order id 8, got %d", order.ID)
	}
}

func TestProductKey(t *testing.T) {
	p := Product{ID: "a"}
	if p.Key() != "a" {
		t.Errorf("expected id field, got %q", p.Key())
	}
	p = Product{ProductID: "b"}
	if p.Key() != "b" {
		t.Errorf("expected product_id fallback, got %q", p.Key())
	}
}
