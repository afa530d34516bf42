package services

import (
	"aftech-backend/models"
	"aftech-backend/repositories"
	"aftech-backend/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct {
	NopReportCache
	invalidations int
}

func (c *countingCache) Invalidate(context.Context) error {
	c.invalidations++
	return nil
}

func TestJobCardCreateFillsDisplayFields(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	_, err := InitCounter(db, models.DefaultJobCardSeed)
	require.NoError(t, err)

	cache := &countingCache{}
	svc := NewJobCardService(db, cache)
	in := f.jobCardInput()
	tampering := " yes "
	in.Tampering = &tampering
	in.Accessories = []uint{f.Accessory.ID, f.Accessory.ID}
	in.DeviceIMEI = " 356938035643809 "
	bogus := "ZZ1"
	in.UniqueID = &bogus

	jc, err := svc.Create(context.Background(), in, 7)
	require.NoError(t, err)

	assert.Equal(t, "AD68746", jc.UniqueID)
	assert.Equal(t, "Gauteng", jc.RegionName)
	assert.Equal(t, "Andile Dube", jc.TechnicianName)
	assert.Equal(t, "Acme Logistics", jc.CustomerName)
	assert.Equal(t, []uint{f.Accessory.ID}, jc.AccessoryIDs)
	assert.Equal(t, []string{"Panic button"}, jc.AccessoryNames)
	require.NotNil(t, jc.Tampering)
	assert.Equal(t, models.TamperingYes, *jc.Tampering)
	assert.Equal(t, "356938035643809", jc.DeviceIMEI)
	assert.Equal(t, 1, cache.invalidations)

	var history []models.ChangeHistory
	require.NoError(t, db.Where("entity = ? AND entity_id = ?", models.EntityJobCard, jc.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, models.ActionCreate, history[0].Action)
	assert.Equal(t, 7, history[0].ChangedBy)
}

func TestJobCardCreateRejectsUnknownReferences(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	_, err := InitCounter(db, 1)
	require.NoError(t, err)

	in := f.jobCardInput()
	in.Customer = 999
	_, err = NewJobCardService(db, nil).Create(context.Background(), in, 1)

	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "customer")
	assert.Equal(t, int64(1), currentNumber(t, db))
}

func TestJobCardCreateWithoutCounter(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)

	_, err := NewJobCardService(db, nil).Create(context.Background(), f.jobCardInput(), 1)
	assert.ErrorIs(t, err, utils.ErrCounterNotInitialized)

	var count int64
	require.NoError(t, db.Model(&models.JobCard{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestJobCardUpdate(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	_, err := InitCounter(db, 10)
	require.NoError(t, err)
	svc := NewJobCardService(db, nil)

	jc, err := svc.Create(context.Background(), f.jobCardInput(), 1)
	require.NoError(t, err)

	newID := "AD1"
	_, err = svc.Update(context.Background(), jc.ID, JobCardPatch{UniqueID: &newID}, 1)
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "unique_id")

	reg := "CA 123-456"
	accessories := []uint{f.Accessory.ID}
	updated, err := svc.Update(context.Background(), jc.ID, JobCardPatch{VehicleReg: &reg, Accessories: &accessories}, 2)
	require.NoError(t, err)
	assert.Equal(t, "AD10", updated.UniqueID)
	assert.Equal(t, "CA 123-456", updated.VehicleReg)
	assert.Equal(t, []uint{f.Accessory.ID}, updated.AccessoryIDs)

	_, err = svc.Update(context.Background(), 999, JobCardPatch{VehicleReg: &reg}, 2)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestJobCardDeleteKeepsCounter(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	_, err := InitCounter(db, 10)
	require.NoError(t, err)
	svc := NewJobCardService(db, nil)

	first, err := svc.Create(context.Background(), f.jobCardInput(), 1)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), first.ID, 1))

	second, err := svc.Create(context.Background(), f.jobCardInput(), 1)
	require.NoError(t, err)
	assert.Equal(t, "AD11", second.UniqueID)

	assert.ErrorIs(t, svc.Delete(context.Background(), first.ID, 1), utils.ErrNotFound)
}

func TestJobCardListFilters(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	_, err := InitCounter(db, 10)
	require.NoError(t, err)
	other := models.Customer{Name: "Beta Freight", RegionID: f.Region.ID}
	require.NoError(t, db.Create(&other).Error)

	svc := NewJobCardService(db, nil)
	_, err = svc.Create(context.Background(), f.jobCardInput(), 1)
	require.NoError(t, err)
	in := f.jobCardInput()
	in.Customer = other.ID
	_, err = svc.Create(context.Background(), in, 1)
	require.NoError(t, err)

	all, err := svc.List(context.Background(), repositories.JobCardFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.List(context.Background(), repositories.JobCardFilter{CustomerID: &other.ID})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Beta Freight", filtered[0].CustomerName)
}
