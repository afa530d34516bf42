package database

import (
	"aftech-backend/config"
	"aftech-backend/models"
	"errors"

	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedStockStatuses(db)
	SeedJobTypes(db)
}

func SeedStockStatuses(db *gorm.DB) {
	statuses := []models.StockStatus{
		{Name: "In Stock"},
		{Name: "Installed"},
		{Name: "Faulty"},
		{Name: "Returned"},
	}

	for _, s := range statuses {
		var existing models.StockStatus
		if err := db.Where("name = ?", s.Name).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := db.Create(&s).Error; err != nil {
					config.LogError(config.GetLogger(), "database", "SeedStockStatuses", "create stock status", s.Name, err)
				}
			}
		}
	}
}

func SeedJobTypes(db *gorm.DB) {
	jobTypes := []models.JobType{
		{Name: "NEW TRACKING INSTALL"},
		{Name: "DE-INSTALL"},
		{Name: "RE-INSTALL"},
		{Name: "INSPECTION"},
	}

	for _, jt := range jobTypes {
		var existing models.JobType
		if err := db.Where("name = ?", jt.Name).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := db.Create(&jt).Error; err != nil {
					config.LogError(config.GetLogger(), "database", "SeedJobTypes", "create job type", jt.Name, err)
				}
			}
		}
	}
}
