package models

import "time"

// ProductSetting configures how long a product is expected to last and how
// many days before that the reorder reminder goes out. Written by the
// dashboard, read by the reminder calculator.
type ProductSetting struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ProductID       string    `gorm:"uniqueIndex:idx_product_settings_store_product;size:64;not null" json:"product_id"`
	StoreID         int64     `gorm:"uniqueIndex:idx_product_settings_store_product;not null" json:"store_id"`
	ProductName     string    `json:"product_name"`
	AvgDaysToFinish int       `gorm:"default:30" json:"avg_days_to_finish"`
	OffsetDays      int       `gorm:"default:5" json:"offset_days"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
