package models

import (
	"aftech-backend/controllers/idgen"
	"aftech-backend/types"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActionCreate    = "create"
	ActionUpdate    = "update"
	ActionDelete    = "delete"
	ActionInstalled = "installed"
)

const (
	EntityTechnician = "technician"
	EntityCustomer   = "customer"
	EntityJobCard    = "jobcard"
	EntitySerial     = "stock_take_item_serial"
)

// ChangeHistory is the audit trail for technicians, customers and job cards.
type ChangeHistory struct {
	ID        types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Entity    string            `json:"entity" gorm:"size:50;not null;index:idx_history_entity,priority:1"`
	EntityID  uint              `json:"entity_id" gorm:"not null;index:idx_history_entity,priority:2"`
	Action    string            `json:"action" gorm:"size:20;not null"`
	Snapshot  datatypes.JSON    `json:"snapshot"`
	ChangedBy int               `json:"changed_by"`
	CreatedAt time.Time         `json:"created_at"`
}

func (h *ChangeHistory) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == 0 {
		h.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}
