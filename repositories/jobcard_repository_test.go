package repositories

import (
	"aftech-backend/database"
	"aftech-backend/migration"
	"aftech-backend/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestJobCardFilterKey(t *testing.T) {
	assert.Equal(t, "r-:c-:t-:s-:e-", JobCardFilter{}.Key())

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	f := JobCardFilter{RegionID: ptr(uint(2)), CustomerID: ptr(uint(5)), EndDate: &day}
	assert.Equal(t, "r2:c5:t-:s-:e2025-06-01", f.Key())
}

func TestJobCardRepositoryList(t *testing.T) {
	db, err := database.OpenSQLite(database.SQLiteMemoryDSN)
	require.NoError(t, err)
	defer database.Close(db)
	require.NoError(t, migration.Migrate(db))

	regions := []models.Region{{Name: "Gauteng"}, {Name: "Western Cape"}}
	require.NoError(t, db.Create(&regions).Error)
	jobType := models.JobType{Name: "INSPECTION"}
	agent := models.SupportAgent{Name: "Thandi"}
	require.NoError(t, db.Create(&jobType).Error)
	require.NoError(t, db.Create(&agent).Error)
	tech := models.Technician{Name: "Andile Dube", Initials: "AD", RegionID: regions[0].ID}
	require.NoError(t, db.Create(&tech).Error)
	customers := []models.Customer{
		{Name: "Acme Logistics", RegionID: regions[0].ID},
		{Name: "Cape Freight", RegionID: regions[1].ID},
	}
	require.NoError(t, db.Create(&customers).Error)

	cards := []struct {
		uid      string
		region   int
		customer int
		at       time.Time
	}{
		{"AD1", 0, 0, time.Date(2025, 5, 31, 23, 59, 0, 0, time.UTC)},
		{"AD2", 0, 0, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)},
		{"AD3", 1, 1, time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)},
		{"AD4", 1, 1, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cards {
		jc := models.JobCard{
			UniqueID:       c.uid,
			RegionID:       regions[c.region].ID,
			TechnicianID:   tech.ID,
			CustomerID:     customers[c.customer].ID,
			JobTypeID:      jobType.ID,
			SupportAgentID: agent.ID,
		}
		jc.CreatedAt = c.at
		require.NoError(t, db.Create(&jc).Error)
	}

	repo := NewJobCardRepository(db)
	uids := func(f JobCardFilter) []string {
		list, err := repo.List(f)
		require.NoError(t, err)
		out := make([]string, 0, len(list))
		for _, jc := range list {
			out = append(out, jc.UniqueID)
		}
		return out
	}

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		filter JobCardFilter
		want   []string
	}{
		{"all newest first", JobCardFilter{}, []string{"AD4", "AD3", "AD2", "AD1"}},
		{"region", JobCardFilter{RegionID: &regions[1].ID}, []string{"AD4", "AD3"}},
		{"customer", JobCardFilter{CustomerID: &customers[0].ID}, []string{"AD2", "AD1"}},
		{"single day is inclusive", JobCardFilter{StartDate: &day, EndDate: &day}, []string{"AD3", "AD2"}},
		{"region and day", JobCardFilter{RegionID: &regions[0].ID, StartDate: &day}, []string{"AD2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uids(tt.filter))
		})
	}

	got, err := repo.GetByID(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, "Gauteng", got.RegionName)
	assert.Equal(t, "Acme Logistics", got.CustomerName)
}
