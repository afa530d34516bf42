package services

import (
	"aftech-backend/models"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeMailSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeMailSender) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestEmailNotifyHook(t *testing.T) {
	sender := &fakeMailSender{}
	hook := NewEmailNotifyHook(sender, "ops@example.com", []string{"a@example.com", "b@example.com"})

	jc := &models.JobCard{UniqueID: "AD68746", RegionName: "Gauteng", CustomerName: "Acme <Logistics>"}
	require.NoError(t, hook.AfterCreate(context.Background(), jc))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"Job card AD68746 created"}, sender.sent[0].GetHeader("Subject"))
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, sender.sent[0].GetHeader("To"))

	require.NoError(t, NewEmailNotifyHook(sender, "ops@example.com", nil).AfterCreate(context.Background(), jc))
	assert.Len(t, sender.sent, 1)
}

func TestHookFailureDoesNotFailCreate(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	_, err := InitCounter(db, 1)
	require.NoError(t, err)

	sender := &fakeMailSender{err: errors.New("smtp down")}
	svc := NewJobCardService(db, nil, NewEmailNotifyHook(sender, "ops@example.com", []string{"a@example.com"}))

	jc, err := svc.Create(context.Background(), f.jobCardInput(), 1)
	require.NoError(t, err)
	assert.Equal(t, "AD1", jc.UniqueID)
	assert.Len(t, sender.sent, 1)
}

func TestInventoryLinkHookRecordsInstall(t *testing.T) {
	db := newTestDB(t)
	inventory := NewInventoryService(db)
	f := seedStockTake(t, inventory)
	_, err := inventory.Submit(context.Background(), StockTakeSubmission{
		User:     f.User.ID,
		Location: f.Location.ID,
		Items:    []StockTakeLine{{ItemType: f.Tracker.ID, Serials: []string{"356938035643809"}}},
	})
	require.NoError(t, err)
	_, err = InitCounter(db, 1)
	require.NoError(t, err)

	svc := NewJobCardService(db, nil, NewInventoryLinkHook(db))
	in := f.jobCardInput()
	in.DeviceIMEI = "356938035643809"
	jc, err := svc.Create(context.Background(), in, 1)
	require.NoError(t, err)

	var history []models.ChangeHistory
	require.NoError(t, db.Where("entity = ? AND action = ?", models.EntitySerial, models.ActionInstalled).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Contains(t, string(history[0].Snapshot), jc.UniqueID)

	in.DeviceIMEI = "000000000000000"
	_, err = svc.Create(context.Background(), in, 1)
	require.NoError(t, err)
	require.NoError(t, db.Where("entity = ? AND action = ?", models.EntitySerial, models.ActionInstalled).Find(&history).Error)
	assert.Len(t, history, 1)
}
