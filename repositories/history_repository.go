package repositories

import (
	"aftech-backend/models"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InsertChangeHistory records a snapshot of the entity. Pass the open
// transaction so the entry commits or rolls back with the change.
func InsertChangeHistory(db *gorm.DB, entity string, entityID uint, action string, snapshot interface{}, actor int) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	history := models.ChangeHistory{
		Entity:    entity,
		EntityID:  entityID,
		Action:    action,
		Snapshot:  datatypes.JSON(raw),
		ChangedBy: actor,
		CreatedAt: time.Now().UTC(),
	}

	return db.Create(&history).Error
}
