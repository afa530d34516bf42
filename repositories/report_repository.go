package repositories

import (
	"aftech-backend/models"

	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db}
}

type JobsPerDay struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type JobsPerType struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type NamedCount struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type IDName struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// dayExpr truncates created_at to a calendar date for the active dialect.
func (r *ReportRepository) dayExpr() string {
	if r.db.Dialector.Name() == "sqlserver" {
		return "CAST(job_cards.created_at AS DATE)"
	}
	return "DATE(job_cards.created_at)"
}

func (r *ReportRepository) JobsPerDay(f JobCardFilter) ([]JobsPerDay, error) {
	expr := r.dayExpr()
	rows := []JobsPerDay{}
	err := f.Apply(r.db.Model(&models.JobCard{})).
		Select(expr + " AS date, COUNT(job_cards.id) AS count").
		Group(expr).
		Order(expr).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	// drivers hand DATE back either as "2006-01-02" or as a full timestamp
	for i := range rows {
		if len(rows[i].Date) > 10 {
			rows[i].Date = rows[i].Date[:10]
		}
	}
	return rows, nil
}

func (r *ReportRepository) JobsPerType(f JobCardFilter) ([]JobsPerType, error) {
	rows := []JobsPerType{}
	err := f.Apply(r.db.Model(&models.JobCard{})).
		Select("job_types.name AS name, COUNT(job_cards.id) AS value").
		Joins("JOIN job_types ON job_types.id = job_cards.job_type_id").
		Group("job_types.id, job_types.name").
		Order("value DESC").
		Order("job_types.name").
		Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) TopTechnicians(f JobCardFilter, limit int) ([]NamedCount, error) {
	rows := []NamedCount{}
	err := f.Apply(r.db.Model(&models.JobCard{})).
		Select("technicians.id AS id, technicians.name AS name, COUNT(job_cards.id) AS count").
		Joins("JOIN technicians ON technicians.id = job_cards.technician_id").
		Group("technicians.id, technicians.name").
		Order("count DESC").
		Order("technicians.name").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) RegionsWithJobCards(f JobCardFilter) ([]IDName, error) {
	sub := f.Apply(r.db.Model(&models.JobCard{})).Distinct("job_cards.region_id")
	rows := []IDName{}
	err := r.db.Model(&models.Region{}).
		Select("regions.id, regions.name").
		Where("regions.id IN (?)", sub).
		Order("regions.name").
		Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) CustomersWithJobCards(f JobCardFilter) ([]IDName, error) {
	sub := f.Apply(r.db.Model(&models.JobCard{})).Distinct("job_cards.customer_id")
	rows := []IDName{}
	err := r.db.Model(&models.Customer{}).
		Select("customers.id, customers.name").
		Where("customers.id IN (?)", sub).
		Order("customers.name").
		Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) TotalJobCards(f JobCardFilter) (int64, error) {
	var count int64
	err := f.Apply(r.db.Model(&models.JobCard{})).Count(&count).Error
	return count, err
}
