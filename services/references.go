package services

import (
	"aftech-backend/utils"
	"fmt"

	"gorm.io/gorm"
)

type refCheck struct {
	field string
	model interface{}
	id    uint
}

// checkRefs reports every missing reference as a field error.
func checkRefs(tx *gorm.DB, checks ...refCheck) error {
	ve := &utils.ValidationError{}
	for _, c := range checks {
		var count int64
		if err := tx.Model(c.model).Where("id = ?", c.id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			ve.Add(c.field, missingPK(c.id))
		}
	}
	if !ve.Empty() {
		return ve
	}
	return nil
}

func missingPK(id uint) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// countWhere is the referential-protection probe used before deletes.
func countWhere(tx *gorm.DB, model interface{}, query string, args ...interface{}) (int64, error) {
	var count int64
	err := tx.Model(model).Where(query, args...).Count(&count).Error
	return count, err
}
