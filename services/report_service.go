package services

import (
	"aftech-backend/config"
	"aftech-backend/repositories"
	"context"
	"fmt"

	"gorm.io/gorm"
)

const (
	DefaultTopTechnicians = 10
	MaxTopTechnicians     = 100
)

type ReportService struct {
	repo  *repositories.ReportRepository
	cache ReportCache
}

func NewReportService(db *gorm.DB, cache ReportCache) *ReportService {
	if cache == nil {
		cache = NopReportCache{}
	}
	return &ReportService{repo: repositories.NewReportRepository(db), cache: cache}
}

// cachedReport reads through the cache. Cache failures are logged and the
// query result is served anyway.
func cachedReport[T any](ctx context.Context, cache ReportCache, key string, load func() (T, error)) (T, error) {
	var out T
	hit, err := cache.Get(ctx, key, &out)
	if err != nil {
		config.LogError(config.GetLogger(), "services", "cachedReport", "read report cache", key, err)
	} else if hit {
		return out, nil
	}

	out, err = load()
	if err != nil {
		return out, err
	}
	if err := cache.Set(ctx, key, out); err != nil {
		config.LogError(config.GetLogger(), "services", "cachedReport", "write report cache", key, err)
	}
	return out, nil
}

func (s *ReportService) JobsPerDay(ctx context.Context, f repositories.JobCardFilter) ([]repositories.JobsPerDay, error) {
	return cachedReport(ctx, s.cache, "jobs-per-day:"+f.Key(), func() ([]repositories.JobsPerDay, error) {
		return s.repo.JobsPerDay(f)
	})
}

func (s *ReportService) JobsPerType(ctx context.Context, f repositories.JobCardFilter) ([]repositories.JobsPerType, error) {
	return cachedReport(ctx, s.cache, "jobs-per-type:"+f.Key(), func() ([]repositories.JobsPerType, error) {
		return s.repo.JobsPerType(f)
	})
}

func (s *ReportService) TopTechnicians(ctx context.Context, f repositories.JobCardFilter, limit int) ([]repositories.NamedCount, error) {
	if limit <= 0 {
		limit = DefaultTopTechnicians
	}
	if limit > MaxTopTechnicians {
		limit = MaxTopTechnicians
	}
	key := fmt.Sprintf("top-technicians:%d:%s", limit, f.Key())
	return cachedReport(ctx, s.cache, key, func() ([]repositories.NamedCount, error) {
		return s.repo.TopTechnicians(f, limit)
	})
}

func (s *ReportService) RegionsWithJobCards(ctx context.Context, f repositories.JobCardFilter) ([]repositories.IDName, error) {
	return cachedReport(ctx, s.cache, "regions-with-jobcards:"+f.Key(), func() ([]repositories.IDName, error) {
		return s.repo.RegionsWithJobCards(f)
	})
}

func (s *ReportService) CustomersWithJobCards(ctx context.Context, f repositories.JobCardFilter) ([]repositories.IDName, error) {
	return cachedReport(ctx, s.cache, "customers-with-jobcards:"+f.Key(), func() ([]repositories.IDName, error) {
		return s.repo.CustomersWithJobCards(f)
	})
}

func (s *ReportService) TotalJobCards(ctx context.Context, f repositories.JobCardFilter) (int64, error) {
	return cachedReport(ctx, s.cache, "total-jobcards:"+f.Key(), func() (int64, error) {
		return s.repo.TotalJobCards(f)
	})
}
