package models

import "time"

// Merchant holds the Zid OAuth credentials for one installed store.
type Merchant struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StoreID      int64     `gorm:"unique;not null" json:"store_id"`
	StoreName    string    `json:"store_name"`
	AccessToken  string    `gorm:"type:text;not null" json:"-"`
	ManagerToken string    `gorm:"type:text" json:"-"`
	RefreshToken string    `gorm:"type:text" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
