package services

import (
	"aftech-backend/models"
	"aftech-backend/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteRegionBlockedByTechnician(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := NewDeletionService(db)

	err := svc.DeleteRegion(context.Background(), f.Region.ID)
	require.ErrorIs(t, err, utils.ErrProtected)

	var pe *utils.ProtectedError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, int64(1), pe.References["technician(s)"])
	assert.Equal(t, int64(1), pe.References["customer(s)"])

	var count int64
	require.NoError(t, db.Model(&models.Region{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteRegionCascadesLocations(t *testing.T) {
	db := newTestDB(t)
	region := models.Region{Name: "Limpopo"}
	require.NoError(t, db.Create(&region).Error)
	location := models.StockLocation{Name: "Polokwane", RegionID: region.ID, IsWarehouse: true}
	require.NoError(t, db.Create(&location).Error)
	manager := seedUser(t, db, "manager", "secret-pass", models.RoleRegionalManager, &region.ID)
	take := models.StockTakeOverview{UserID: manager.ID, LocationID: location.ID}
	require.NoError(t, db.Create(&take).Error)

	require.NoError(t, NewDeletionService(db).DeleteRegion(context.Background(), region.ID))

	var count int64
	require.NoError(t, db.Model(&models.StockLocation{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.StockTakeOverview{}).Count(&count).Error)
	assert.Zero(t, count)

	var profile models.UserProfile
	require.NoError(t, db.Where("user_id = ?", manager.ID).First(&profile).Error)
	assert.Nil(t, profile.RegionID)
}

func TestDeleteTechnicianDetachesStockLocation(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	location := models.StockLocation{Name: "Van 4", RegionID: f.Region.ID, TechnicianID: &f.Technician.ID}
	require.NoError(t, db.Create(&location).Error)

	require.NoError(t, NewDeletionService(db).DeleteTechnician(context.Background(), f.Technician.ID, 3))

	var reloaded models.StockLocation
	require.NoError(t, db.First(&reloaded, location.ID).Error)
	assert.Nil(t, reloaded.TechnicianID)
	assert.Equal(t, models.LocationUnknown, reloaded.LocationType)

	var history models.ChangeHistory
	require.NoError(t, db.Where("entity = ? AND entity_id = ?", models.EntityTechnician, f.Technician.ID).First(&history).Error)
	assert.Equal(t, models.ActionDelete, history.Action)
	assert.Equal(t, 3, history.ChangedBy)
}

func TestDeleteTechnicianBlockedByJobCard(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	_, err := InitCounter(db, 1)
	require.NoError(t, err)
	_, err = NewJobCardService(db, nil).Create(context.Background(), f.jobCardInput(), 1)
	require.NoError(t, err)

	svc := NewDeletionService(db)
	assert.ErrorIs(t, svc.DeleteTechnician(context.Background(), f.Technician.ID, 1), utils.ErrProtected)
	assert.ErrorIs(t, svc.DeleteCustomer(context.Background(), f.Customer.ID, 1), utils.ErrProtected)
	assert.ErrorIs(t, svc.DeleteJobType(context.Background(), f.JobType.ID), utils.ErrProtected)
	assert.ErrorIs(t, svc.DeleteSupportAgent(context.Background(), f.SupportAgent.ID), utils.ErrProtected)
}

func TestDeleteAccessoryUnlinksJobCards(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	_, err := InitCounter(db, 1)
	require.NoError(t, err)
	in := f.jobCardInput()
	in.Accessories = []uint{f.Accessory.ID}
	jc, err := NewJobCardService(db, nil).Create(context.Background(), in, 1)
	require.NoError(t, err)

	require.NoError(t, NewDeletionService(db).DeleteAccessory(context.Background(), f.Accessory.ID))

	reloaded, err := NewJobCardService(db, nil).Get(context.Background(), jc.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.AccessoryIDs)
}

func TestDeleteMissingRecord(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeletionService(db)

	assert.ErrorIs(t, svc.DeleteRegion(context.Background(), 42), utils.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteItemType(context.Background(), 42), utils.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteStockStatus(context.Background(), 42), utils.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), 42), utils.ErrNotFound)
}

func TestDeleteUserRemovesProfileAndSessions(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "clerk", "secret-pass", models.RoleAdmin, nil)
	require.NoError(t, db.Create(&models.UserSession{UserID: user.ID, SessionID: "s-1", IsActive: true}).Error)

	require.NoError(t, NewDeletionService(db).DeleteUser(context.Background(), user.ID))

	var count int64
	require.NoError(t, db.Model(&models.UserProfile{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.UserSession{}).Count(&count).Error)
	assert.Zero(t, count)
}
