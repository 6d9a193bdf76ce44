package zid

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// LocalizedString decodes a Zid name field, which is either a plain string or
// an {ar, en} object depending on the endpoint. Arabic wins when both are set.
type LocalizedString struct {
	value string
}

func (s *LocalizedString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		s.value = ""
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		s.value = v
		return nil
	}
	var obj struct {
		Ar string `json:"ar"`
		En string `json:"en"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Ar != "" {
		s.value = obj.Ar
	} else {
		s.value = obj.En
	}
	return nil
}

func (s LocalizedString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}

func (s LocalizedString) String() string {
	return s.value
}

// NewLocalizedString builds a LocalizedString from a plain value.
func NewLocalizedString(v string) LocalizedString {
	return LocalizedString{value: v}
}

// Amount decodes a monetary field that Zid returns as a number or a numeric
// string. Missing or unparsable values count as zero.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := strings.Trim(strings.TrimSpace(string(data)), "\"")
	if trimmed == "" || trimmed == "null" {
		*a = 0
		return nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(v)
	return nil
}

// Time decodes the timestamp formats seen in Zid payloads. Unparsable values
// decode to the zero time rather than failing the whole page.
type Time struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *Time) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), "\"")
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time)
}

// Customer is the customer reference embedded in orders and returned by the
// customers endpoint.
type Customer struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	Email  string `json:"email"`
}

// OrderProduct is one purchased line inside an order.
type OrderProduct struct {
	ID       string          `json:"id"`
	Name     LocalizedString `json:"name"`
	Quantity int             `json:"quantity"`
}

// Order is a single Zid order. Some API versions wrap each order in an
// {"order": {...}} envelope; UnmarshalJSON unwraps either shape.
type Order struct {
	ID                int64          `json:"id"`
	CreatedAt         Time           `json:"created_at"`
	TransactionAmount Amount         `json:"transaction_amount"`
	Customer          *Customer      `json:"customer"`
	Products          []OrderProduct `json:"products"`
}

func (o *Order) UnmarshalJSON(data []byte) error {
	type plain Order
	var envelope struct {
		Order *plain `json:"order"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Order != nil {
		*o = Order(*envelope.Order)
		return nil
	}
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = Order(p)
	return nil
}

// Product is a catalog product from the products endpoint.
type Product struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      LocalizedString `json:"name"`
	SKU       string          `json:"sku"`
	Price     float64         `json:"price"`
	SalePrice *float64        `json:"sale_price"`
}

// Key returns the product identifier, whichever field the API populated.
func (p Product) Key() string {
	if p.ID != "" {
		return p.ID
	}
	return p.ProductID
}
