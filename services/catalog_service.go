package services

import (
	"context"
	"log"
	"time"

	"github.com/learning-master/api/database"
	"github.com/learning-master/api/model"
	"github.com/learning-master/api/utils/cache"
	"gorm.io/gorm"
)

const (
	CacheKeyPopularClasses     = "catalog:popular:classes"
	CacheKeyPopularInstructors = "catalog:popular:instructors"

	popularLimit    = 6
	popularCacheTTL = 10 * time.Minute
)

// CatalogService serves the popularity rankings, cached in Redis when a
// cache is available.
type CatalogService struct {
	db        *gorm.DB
	analytics *database.AnalyticsStore
	cache     *cache.RedisCache
}

// NewCatalogService creates a catalog service. analytics and cache may be nil.
func NewCatalogService(db *gorm.DB, analytics *database.AnalyticsStore, redisCache *cache.RedisCache) *CatalogService {
	return &CatalogService{
		db:        db,
		analytics: analytics,
		cache:     redisCache,
	}
}

// PopularClasses returns the top classes by enrollment
func (s *CatalogService) PopularClasses(ctx context.Context) ([]model.Class, error) {
	var classes []model.Class
	if s.readCache(ctx, CacheKeyPopularClasses, &classes) {
		return classes, nil
	}

	if err := s.db.Order("total_enrolled DESC").Limit(popularLimit).Find(&classes).Error; err != nil {
		return nil, err
	}

	s.writeCache(ctx, CacheKeyPopularClasses, classes)
	return classes, nil
}

// PopularInstructors returns the top instructors by total enrollment across
// their classes
func (s *CatalogService) PopularInstructors(ctx context.Context) ([]database.InstructorRanking, error) {
	var rankings []database.InstructorRanking
	if s.readCache(ctx, CacheKeyPopularInstructors, &rankings) {
		return rankings, nil
	}

	rankings, err := s.analytics.PopularInstructors(popularLimit)
	if err != nil {
		return nil, err
	}

	s.writeCache(ctx, CacheKeyPopularInstructors, rankings)
	return rankings, nil
}

func (s *CatalogService) readCache(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.GetJSON(ctx, key, dest)
	if err != nil {
		if err != cache.ErrNotFound {
			log.Printf("⚠️ Cache read failed for %s: %v", key, err)
		}
		return false
	}
	return true
}

func (s *CatalogService) writeCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value, popularCacheTTL); err != nil {
		log.Printf("⚠️ Cache write failed for %s: %v", key, err)
	}
}
