package services

import (
	"aftech-backend/models"
	"aftech-backend/repositories"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCache stores JSON like the redis cache does.
type memoryCache struct {
	entries map[string][]byte
	hits    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.entries = map[string][]byte{}
	return nil
}

func seedJobCards(t *testing.T, svc *JobCardService, f fixture, extra models.Technician, n int) {
	t.Helper()
	in := f.jobCardInput()
	for i := 0; i < n; i++ {
		_, err := svc.Create(context.Background(), in, 1)
		require.NoError(t, err)
	}
	in.Technician = extra.ID
	_, err := svc.Create(context.Background(), in, 1)
	require.NoError(t, err)
}

func TestReports(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	_, err := InitCounter(db, 1)
	require.NoError(t, err)
	extra := models.Technician{Name: "Bongani Zulu", Initials: "BZ", RegionID: f.Region.ID}
	require.NoError(t, db.Create(&extra).Error)
	seedJobCards(t, NewJobCardService(db, nil), f, extra, 3)

	reports := NewReportService(db, nil)
	ctx := context.Background()
	all := repositories.JobCardFilter{}

	total, err := reports.TotalJobCards(ctx, all)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	perType, err := reports.JobsPerType(ctx, all)
	require.NoError(t, err)
	assert.Equal(t, []repositories.JobsPerType{{Name: "NEW TRACKING INSTALL", Value: 4}}, perType)

	top, err := reports.TopTechnicians(ctx, all, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Andile Dube", top[0].Name)
	assert.Equal(t, int64(3), top[0].Count)

	regions, err := reports.RegionsWithJobCards(ctx, all)
	require.NoError(t, err)
	assert.Equal(t, []repositories.IDName{{ID: f.Region.ID, Name: "Gauteng"}}, regions)

	customers, err := reports.CustomersWithJobCards(ctx, repositories.JobCardFilter{TechnicianID: &extra.ID})
	require.NoError(t, err)
	assert.Equal(t, []repositories.IDName{{ID: f.Customer.ID, Name: "Acme Logistics"}}, customers)

	none := uint(999)
	total, err = reports.TotalJobCards(ctx, repositories.JobCardFilter{RegionID: &none})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestReportsReadThroughCache(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	_, err := InitCounter(db, 1)
	require.NoError(t, err)

	cache := newMemoryCache()
	jobCards := NewJobCardService(db, cache)
	reports := NewReportService(db, cache)
	ctx := context.Background()

	_, err = jobCards.Create(ctx, f.jobCardInput(), 1)
	require.NoError(t, err)

	total, err := reports.TotalJobCards(ctx, repositories.JobCardFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	total, err = reports.TotalJobCards(ctx, repositories.JobCardFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 1, cache.hits)

	_, err = jobCards.Create(ctx, f.jobCardInput(), 1)
	require.NoError(t, err)
	total, err = reports.TotalJobCards(ctx, repositories.JobCardFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestTopTechniciansLimitBounds(t *testing.T) {
	db := newTestDB(t)
	cache := newMemoryCache()
	reports := NewReportService(db, cache)

	_, err := reports.TopTechnicians(context.Background(), repositories.JobCardFilter{}, 0)
	require.NoError(t, err)
	_, err = reports.TopTechnicians(context.Background(), repositories.JobCardFilter{}, 5000)
	require.NoError(t, err)

	assert.Contains(t, cache.entries, "top-technicians:10:r-:c-:t-:s-:e-")
	assert.Contains(t, cache.entries, "top-technicians:100:r-:c-:t-:s-:e-")
}
