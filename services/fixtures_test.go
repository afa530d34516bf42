package services

import (
	"aftech-backend/database"
	"aftech-backend/migration"
	"aftech-backend/models"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(database.SQLiteMemoryDSN)
	require.NoError(t, err)
	require.NoError(t, migration.Migrate(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

type fixture struct {
	Region       models.Region
	Technician   models.Technician
	Customer     models.Customer
	JobType      models.JobType
	SupportAgent models.SupportAgent
	Accessory    models.Accessory
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	f := fixture{
		Region:       models.Region{Name: "Gauteng"},
		JobType:      models.JobType{Name: "NEW TRACKING INSTALL"},
		SupportAgent: models.SupportAgent{Name: "Thandi"},
		Accessory:    models.Accessory{Name: "Panic button"},
	}
	require.NoError(t, db.Create(&f.Region).Error)
	require.NoError(t, db.Create(&f.JobType).Error)
	require.NoError(t, db.Create(&f.SupportAgent).Error)
	require.NoError(t, db.Create(&f.Accessory).Error)

	f.Technician = models.Technician{Name: "Andile Dube", Initials: "AD", RegionID: f.Region.ID}
	require.NoError(t, db.Create(&f.Technician).Error)
	f.Customer = models.Customer{Name: "Acme Logistics", RegionID: f.Region.ID}
	require.NoError(t, db.Create(&f.Customer).Error)
	return f
}

func (f fixture) jobCardInput() JobCardInput {
	return JobCardInput{
		Region:       f.Region.ID,
		Technician:   f.Technician.ID,
		Customer:     f.Customer.ID,
		JobType:      f.JobType.ID,
		SupportAgent: f.SupportAgent.ID,
	}
}

func seedUser(t *testing.T, db *gorm.DB, username, password, role string, regionID *uint) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Username: username, Password: string(hash), Email: username + "@example.com", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.UserProfile{UserID: user.ID, Role: role, RegionID: regionID}).Error)
	return user
}
