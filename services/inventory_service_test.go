package services

import (
	"aftech-backend/models"
	"aftech-backend/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stockTakeFixture struct {
	fixture
	User     models.User
	Location models.StockLocation
	Tracker  models.ItemType
	Cable    models.ItemType
}

func seedStockTake(t *testing.T, svc *InventoryService) stockTakeFixture {
	t.Helper()
	db := svc.db
	f := stockTakeFixture{fixture: seedFixture(t, db)}
	f.User = seedUser(t, db, "counter", "secret-pass", models.RoleAdmin, nil)

	location, err := svc.SaveLocation(context.Background(), 0, StockLocationInput{Name: "Main", Region: f.Region.ID, IsWarehouse: true})
	require.NoError(t, err)
	f.Location = *location

	tracker, err := svc.CreateItemType(context.Background(), ItemTypeInput{Name: "Tracker", RequiresSerial: true})
	require.NoError(t, err)
	f.Tracker = *tracker
	cable, err := svc.CreateItemType(context.Background(), ItemTypeInput{Name: "Cable", IsBulk: true})
	require.NoError(t, err)
	f.Cable = *cable
	return f
}

func TestCreateItemTypeUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	barcode := " 600123 "

	item, err := svc.CreateItemType(context.Background(), ItemTypeInput{Name: "Tracker", Barcode: &barcode})
	require.NoError(t, err)
	require.NotNil(t, item.Barcode)
	assert.Equal(t, "600123", *item.Barcode)

	var ve *utils.ValidationError
	_, err = svc.CreateItemType(context.Background(), ItemTypeInput{Name: "Tracker"})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")

	barcode = "600123"
	_, err = svc.CreateItemType(context.Background(), ItemTypeInput{Name: "Relay", Barcode: &barcode})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "barcode")

	blank := "  "
	_, err = svc.CreateItemType(context.Background(), ItemTypeInput{Name: "Relay", Barcode: &blank})
	require.NoError(t, err)
}

func TestSaveLocationClassifies(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := NewInventoryService(db)

	van, err := svc.SaveLocation(context.Background(), 0, StockLocationInput{Region: f.Region.ID, Technician: &f.Technician.ID})
	require.NoError(t, err)
	assert.Equal(t, models.LocationTechnician, van.LocationType)
	assert.Equal(t, "Andile Dube (Technician Stock)", van.DisplayName)

	site, err := svc.SaveLocation(context.Background(), van.ID, StockLocationInput{Name: "Site", Region: f.Region.ID, Customer: &f.Customer.ID})
	require.NoError(t, err)
	assert.Equal(t, van.ID, site.ID)
	assert.Equal(t, models.LocationCustomer, site.LocationType)
	assert.Equal(t, "Acme Logistics (Customer Stock)", site.DisplayName)

	missing := uint(999)
	_, err = svc.SaveLocation(context.Background(), 0, StockLocationInput{Region: f.Region.ID, Technician: &missing})
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "technician")

	_, err = svc.SaveLocation(context.Background(), 999, StockLocationInput{Region: f.Region.ID})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestCreateItemRejectsDuplicateLine(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	f := seedStockTake(t, svc)

	take, err := svc.CreateStockTake(context.Background(), StockTakeInput{User: f.User.ID, Location: f.Location.ID})
	require.NoError(t, err)
	assert.Contains(t, take.DisplayName, "Stock Take Main - ")

	_, err = svc.CreateItem(context.Background(), StockTakeItemInput{StockTake: take.ID, ItemType: f.Tracker.ID, Quantity: 2})
	require.NoError(t, err)

	_, err = svc.CreateItem(context.Background(), StockTakeItemInput{StockTake: take.ID, ItemType: f.Tracker.ID, Quantity: 5})
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "The fields stock_take, item_type must make a unique set.", ve.Fields["non_field_errors"])

	items, err := svc.ListItems(context.Background(), &take.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint(2), items[0].Quantity)
	assert.Equal(t, "Tracker", items[0].ItemTypeName)
}

func TestCreateSerialAndProgress(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	f := seedStockTake(t, svc)

	take, err := svc.CreateStockTake(context.Background(), StockTakeInput{User: f.User.ID, Location: f.Location.ID})
	require.NoError(t, err)
	item, err := svc.CreateItem(context.Background(), StockTakeItemInput{StockTake: take.ID, ItemType: f.Tracker.ID, Quantity: 4})
	require.NoError(t, err)

	_, err = svc.CreateSerial(context.Background(), StockTakeSerialInput{StockTakeItem: item.ID, SerialNumber: " SN-1 "})
	require.NoError(t, err)
	_, err = svc.CreateSerial(context.Background(), StockTakeSerialInput{StockTakeItem: item.ID, SerialNumber: "SN-1"})
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)

	progress, err := svc.StockTakeProgress(context.Background(), take.ID)
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, 4, progress[0].Quantity)
	assert.Equal(t, 1, progress[0].SerialCount)
	assert.InDelta(t, 25.0, progress[0].ProgressSerial, 0.001)

	_, err = svc.StockTakeProgress(context.Background(), 999)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestSubmitStockTake(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	f := seedStockTake(t, svc)

	take, err := svc.Submit(context.Background(), StockTakeSubmission{
		User:     f.User.ID,
		Location: f.Location.ID,
		Items: []StockTakeLine{
			{ItemType: f.Tracker.ID, Serials: []string{"A1", " ", "A2"}},
			{ItemType: f.Cable.ID, Quantity: 30},
		},
	})
	require.NoError(t, err)
	require.Len(t, take.Items, 2)

	byType := map[uint]models.StockTakeItem{}
	for _, item := range take.Items {
		byType[item.ItemTypeID] = item
	}
	assert.Equal(t, uint(2), byType[f.Tracker.ID].Quantity)
	assert.Len(t, byType[f.Tracker.ID].Serials, 2)
	assert.Equal(t, uint(30), byType[f.Cable.ID].Quantity)

	_, err = svc.Submit(context.Background(), StockTakeSubmission{
		User:     f.User.ID,
		Location: f.Location.ID,
		Items:    []StockTakeLine{{ItemType: f.Cable.ID}, {ItemType: f.Cable.ID}},
	})
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "items")

	var takes int64
	require.NoError(t, db.Model(&models.StockTakeOverview{}).Count(&takes).Error)
	assert.Equal(t, int64(1), takes)
}

func TestDeleteItemTypeProtectedByStockTake(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	f := seedStockTake(t, svc)
	_, err := svc.Submit(context.Background(), StockTakeSubmission{
		User:     f.User.ID,
		Location: f.Location.ID,
		Items:    []StockTakeLine{{ItemType: f.Cable.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	deletes := NewDeletionService(db)
	assert.ErrorIs(t, deletes.DeleteItemType(context.Background(), f.Cable.ID), utils.ErrProtected)
	require.NoError(t, deletes.DeleteItemType(context.Background(), f.Tracker.ID))
	require.NoError(t, deletes.DeleteStockLocation(context.Background(), f.Location.ID))

	var items int64
	require.NoError(t, db.Model(&models.StockTakeItem{}).Count(&items).Error)
	assert.Zero(t, items)
}
