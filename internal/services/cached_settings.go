package services

import (
	"time"

	"business-hub/backend/internal/cache"
	"business-hub/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const settingsCacheTTL = 10 * time.Minute

// CachedSettingsService keeps per-hub settings in Redis. Dashboard counters
// stay uncached; settings change rarely and are read on every completion.
type CachedSettingsService struct {
	inner SettingsService
	cache *cache.RedisCache
}

func NewCachedSettingsService(inner SettingsService, cacheInstance *cache.RedisCache) *CachedSettingsService {
	return &CachedSettingsService{inner: inner, cache: cacheInstance}
}

func settingsCacheKey(hubID uuid.UUID) string {
	return "task_settings:" + hubID.String()
}

func (s *CachedSettingsService) GetOrCreate(db *gorm.DB, hubID uuid.UUID) (*models.TaskSettings, error) {
	key := settingsCacheKey(hubID)

	var cached models.TaskSettings
	if err := s.cache.Get(key, &cached); err == nil {
		return &cached, nil
	}

	settings, err := s.inner.GetOrCreate(db, hubID)
	if err != nil {
		return nil, err
	}
	// Cache write failures are non-fatal, the next read hits the store.
	_ = s.cache.Set(key, settings, settingsCacheTTL)
	return settings, nil
}

func (s *CachedSettingsService) Update(db *gorm.DB, hubID uuid.UUID, in SettingsInput) (*models.TaskSettings, error) {
	settings, err := s.inner.Update(db, hubID, in)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Delete(settingsCacheKey(hubID))
	return settings, nil
}
