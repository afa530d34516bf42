package repositories

import (
	"aftech-backend/models"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// JobCardFilter narrows job card reads. Dates are inclusive calendar days in UTC.
type JobCardFilter struct {
	RegionID     *uint
	CustomerID   *uint
	TechnicianID *uint
	StartDate    *time.Time
	EndDate      *time.Time
}

// Key is stable for identical filters and feeds the report cache.
func (f JobCardFilter) Key() string {
	part := func(p *uint) string {
		if p == nil {
			return "-"
		}
		return fmt.Sprint(*p)
	}
	date := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("2006-01-02")
	}
	return strings.Join([]string{
		"r" + part(f.RegionID),
		"c" + part(f.CustomerID),
		"t" + part(f.TechnicianID),
		"s" + date(f.StartDate),
		"e" + date(f.EndDate),
	}, ":")
}

// Apply adds the filter to a query over job_cards.
func (f JobCardFilter) Apply(q *gorm.DB) *gorm.DB {
	if f.RegionID != nil {
		q = q.Where("job_cards.region_id = ?", *f.RegionID)
	}
	if f.CustomerID != nil {
		q = q.Where("job_cards.customer_id = ?", *f.CustomerID)
	}
	if f.TechnicianID != nil {
		q = q.Where("job_cards.technician_id = ?", *f.TechnicianID)
	}
	if f.StartDate != nil {
		q = q.Where("job_cards.created_at >= ?", f.StartDate.UTC())
	}
	if f.EndDate != nil {
		q = q.Where("job_cards.created_at < ?", f.EndDate.UTC().AddDate(0, 0, 1))
	}
	return q
}

type JobCardRepository struct {
	db *gorm.DB
}

func NewJobCardRepository(db *gorm.DB) *JobCardRepository {
	return &JobCardRepository{db}
}

func (r *JobCardRepository) preloaded(db *gorm.DB) *gorm.DB {
	for _, p := range models.JobCardPreloads {
		db = db.Preload(p)
	}
	return db
}

func (r *JobCardRepository) List(f JobCardFilter) ([]models.JobCard, error) {
	var jobCards []models.JobCard
	err := f.Apply(r.preloaded(r.db.Model(&models.JobCard{}))).
		Order("job_cards.created_at DESC").
		Order("job_cards.id DESC").
		Find(&jobCards).Error
	return jobCards, err
}

func (r *JobCardRepository) GetByID(db *gorm.DB, id uint) (*models.JobCard, error) {
	if db == nil {
		db = r.db
	}
	var jobCard models.JobCard
	if err := r.preloaded(db).First(&jobCard, id).Error; err != nil {
		return nil, err
	}
	return &jobCard, nil
}
