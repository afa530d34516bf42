package migration

import (
	"aftech-backend/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202501010001_reference_registry",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Region{}, &models.Technician{}, &models.Customer{},
					&models.SupportAgent{}, &models.JobType{}, &models.Accessory{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&models.Accessory{}, &models.JobType{}, &models.SupportAgent{},
					&models.Customer{}, &models.Technician{}, &models.Region{})
			},
		},
		{
			ID: "202501010002_users",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.UserProfile{}, &models.UserSession{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&models.UserSession{}, &models.UserProfile{}, &models.User{})
			},
		},
		{
			ID: "202501010003_stock",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.ItemType{}, &models.StockStatus{}, &models.StockLocation{},
					&models.StockTakeOverview{}, &models.StockTakeItem{}, &models.StockTakeItemSerial{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&models.StockTakeItemSerial{}, &models.StockTakeItem{},
					&models.StockTakeOverview{}, &models.StockLocation{}, &models.StockStatus{}, &models.ItemType{})
			},
		},
		{
			ID: "202501010004_jobcards",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.JobCardCounter{}, &models.JobCard{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("job_card_accessories", &models.JobCard{}, &models.JobCardCounter{})
			},
		},
		{
			ID: "202501010005_change_history",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.ChangeHistory{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&models.ChangeHistory{})
			},
		},
	}
}

// Migrate applies every pending migration.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations())
	return m.Migrate()
}

// RollbackLast undoes the most recent migration.
func RollbackLast(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations())
	return m.RollbackLast()
}
