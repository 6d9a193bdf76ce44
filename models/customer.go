package models

import "time"

// Lifecycle segments assigned by the segmentation sync. A customer is in
// exactly one segment; VIP is a separate flag on top of it.
const (
	SegmentNew     = "NEW"
	SegmentActive  = "ACTIVE"
	SegmentAtRisk  = "AT_RISK"
	SegmentChurned = "CHURNED"
)

// Customer is a store-scoped rollup of a Zid customer's order history,
// written exclusively by the segmentation sync.
type Customer struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ZidCustomerID      int64     `gorm:"uniqueIndex:idx_customers_store_customer;not null" json:"zid_customer_id"`
	StoreID            int64     `gorm:"uniqueIndex:idx_customers_store_customer;index:idx_customers_store_segment;not null" json:"store_id"`
	Name               string    `json:"name"`
	Phone              string    `json:"phone"`
	Email              string    `json:"email"`
	TotalOrders        int       `json:"total_orders"`
	TotalSpent         float64   `json:"total_spent"`
	FirstOrderDate     time.Time `json:"first_order_date"`
	LastOrderDate      time.Time `json:"last_order_date"`
	DaysSinceLastOrder int       `json:"days_since_last_order"`
	Segment            string    `gorm:"default:NEW;index:idx_customers_store_segment" json:"segment"`
	IsVIP              bool      `gorm:"column:is_vip" json:"is_vip"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
