package services

import (
	"aftech-backend/models"
	"aftech-backend/utils"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxAllocateAttempts bounds the compare-and-swap loop when the dialect
// cannot hold a row lock.
const maxAllocateAttempts = 5

func supportsRowLocks(tx *gorm.DB) bool {
	switch tx.Dialector.Name() {
	case "postgres", "mysql":
		return true
	default:
		return false
	}
}

// AllocateUniqueID consumes one counter value inside tx and returns
// initials followed by the number as it was before the increment. The
// caller owns tx; rolling it back returns the number.
func AllocateUniqueID(tx *gorm.DB, initials string) (string, error) {
	for attempt := 0; attempt < maxAllocateAttempts; attempt++ {
		var counter models.JobCardCounter
		q := tx
		if supportsRowLocks(tx) {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&counter, models.JobCardCounterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", utils.ErrCounterNotInitialized
			}
			return "", err
		}

		res := tx.Model(&models.JobCardCounter{}).
			Where("id = ? AND current_number = ?", counter.ID, counter.CurrentNumber).
			Update("current_number", counter.CurrentNumber+1)
		if res.Error != nil {
			return "", res.Error
		}
		if res.RowsAffected == 1 {
			return fmt.Sprintf("%s%d", strings.TrimSpace(initials), counter.CurrentNumber), nil
		}
	}
	return "", utils.ErrCounterContention
}

// InitCounter creates the counter row. It refuses to touch an existing row.
func InitCounter(db *gorm.DB, seed int64) (*models.JobCardCounter, error) {
	if seed <= 0 {
		return nil, utils.NewValidationError("seed", "Seed must be a positive number.")
	}
	counter := models.JobCardCounter{ID: models.JobCardCounterID, CurrentNumber: seed}
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.JobCardCounter{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("job card counter already initialized: %w", utils.ErrConflict)
		}
		return tx.Create(&counter).Error
	})
	if err != nil {
		return nil, err
	}
	return &counter, nil
}

// CheckCounter verifies the singleton. A missing row is reported as
// ErrCounterNotInitialized, extra rows as ErrCounterMisconfigured.
func CheckCounter(db *gorm.DB) (*models.JobCardCounter, error) {
	var counters []models.JobCardCounter
	if err := db.Order("id").Limit(2).Find(&counters).Error; err != nil {
		return nil, err
	}
	switch {
	case len(counters) == 0:
		return nil, utils.ErrCounterNotInitialized
	case len(counters) > 1 || counters[0].ID != models.JobCardCounterID:
		return nil, utils.ErrCounterMisconfigured
	}
	return &counters[0], nil
}
