package models

import "time"

const (
	ReminderStatusPending = "PENDING"
	ReminderStatusSent    = "SENT"
)

// Reminder is one scheduled reorder message for a (customer, product, order)
// line. The triple is unique so recalculating over the same order history
// never duplicates a reminder. Status moves PENDING -> SENT exactly once.
type Reminder struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CustomerID      uint      `gorm:"uniqueIndex:idx_reminders_order_line;not null" json:"customer_id"`
	ProductID       string    `gorm:"uniqueIndex:idx_reminders_order_line;size:64;not null" json:"product_id"`
	OrderID         int64     `gorm:"uniqueIndex:idx_reminders_order_line;not null" json:"order_id"`
	SendAt          time.Time `gorm:"index:idx_reminders_status_send_at,priority:2;not null" json:"send_at"`
	Status          string    `gorm:"default:PENDING;index:idx_reminders_status_send_at,priority:1" json:"status"`
	MessageTemplate string    `gorm:"type:text" json:"message_template"`
	CreatedAt       time.Time `json:"created_at"`
}
