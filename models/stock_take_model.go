package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type StockTakeOverview struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"user" gorm:"not null;index"`
	User        User            `json:"-" gorm:"foreignKey:UserID"`
	LocationID  uint            `json:"location" gorm:"not null;index"`
	Location    StockLocation   `json:"-" gorm:"foreignKey:LocationID"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []StockTakeItem `json:"items,omitempty" gorm:"foreignKey:StockTakeID"`
	DisplayName string          `json:"display_name" gorm:"-"`
}

func (s *StockTakeOverview) AfterFind(tx *gorm.DB) error {
	if s.Location.ID != 0 {
		s.DisplayName = fmt.Sprintf("Stock Take %s - %s", s.Location.Name, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// StockTakeItem is one counted line; one per item type per stock take.
type StockTakeItem struct {
	ID           uint                  `json:"id" gorm:"primaryKey"`
	StockTakeID  uint                  `json:"stock_take" gorm:"not null;uniqueIndex:uniq_item_per_take,priority:1"`
	StockTake    StockTakeOverview     `json:"-" gorm:"foreignKey:StockTakeID"`
	ItemTypeID   uint                  `json:"item_type" gorm:"not null;uniqueIndex:uniq_item_per_take,priority:2"`
	ItemType     ItemType              `json:"-" gorm:"foreignKey:ItemTypeID"`
	Quantity     uint                  `json:"quantity" gorm:"not null;default:0"`
	Serials      []StockTakeItemSerial `json:"serials,omitempty" gorm:"foreignKey:StockTakeItemID"`
	ItemTypeName string                `json:"item_type_name" gorm:"-"`
}

func (i *StockTakeItem) AfterFind(tx *gorm.DB) error {
	if i.ItemType.ID != 0 {
		i.ItemTypeName = i.ItemType.Name
	}
	return nil
}

type StockTakeItemSerial struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	StockTakeItemID uint          `json:"stock_take_item" gorm:"not null;uniqueIndex:uniq_serial_per_line,priority:1"`
	StockTakeItem   StockTakeItem `json:"-" gorm:"foreignKey:StockTakeItemID"`
	SerialNumber    string        `json:"serial_number" gorm:"size:64;not null;index;uniqueIndex:uniq_serial_per_line,priority:2"`
}
