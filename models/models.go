package models

import (
	"time"
)

// Model replaces gorm.Model: rows are hard deleted so foreign keys keep
// protecting historical job cards.
type Model struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// All lists every table in dependency order.
func All() []interface{} {
	return []interface{}{
		&Region{},
		&Technician{},
		&Customer{},
		&User{},
		&UserProfile{},
		&UserSession{},
		&ItemType{},
		&StockStatus{},
		&StockLocation{},
		&StockTakeOverview{},
		&StockTakeItem{},
		&StockTakeItemSerial{},
		&SupportAgent{},
		&JobType{},
		&Accessory{},
		&JobCardCounter{},
		&JobCard{},
		&ChangeHistory{},
	}
}
