package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/bakeshop-backend/internal/analytics"
	"github.com/andresuchdata/bakeshop-backend/internal/cache"
	"github.com/andresuchdata/bakeshop-backend/internal/domain"
	"github.com/andresuchdata/bakeshop-backend/internal/repository"
	"github.com/andresuchdata/bakeshop-backend/internal/storage"
)

const archiveKeyPrefix = "reports/"

// AnalyticsService serves usage reports: snapshot from the repository,
// computation in the engine, short-lived cache in front, optional archive
// copy behind.
type AnalyticsService struct {
	repo                 repository.IngredientRepository
	engine               *analytics.Engine
	cache                cache.ReportCache
	archive              storage.ObjectStorage
	defaultTimeframeDays int
}

func NewAnalyticsService(repo repository.IngredientRepository, engine *analytics.Engine, cacheImpl cache.ReportCache, archive storage.ObjectStorage, defaultTimeframeDays int) *AnalyticsService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	if defaultTimeframeDays <= 0 {
		defaultTimeframeDays = 30
	}

	return &AnalyticsService{
		repo:                 repo,
		engine:               engine,
		cache:                cacheImpl,
		archive:              archive,
		defaultTimeframeDays: defaultTimeframeDays,
	}
}

// DefaultTimeframeDays is the window used when the caller does not pass one.
func (s *AnalyticsService) DefaultTimeframeDays() int {
	return s.defaultTimeframeDays
}

// GenerateUsageReport builds the usage report for the given window. A
// timeframe of zero means "use the default"; a negative one is rejected.
func (s *AnalyticsService) GenerateUsageReport(ctx context.Context, timeframeDays int) (*domain.AnalysisReport, error) {
	if timeframeDays == 0 {
		timeframeDays = s.defaultTimeframeDays
	}
	if timeframeDays < 0 {
		return nil, domain.ErrInvalidTimeframe
	}

	if report, ok, err := s.cache.Get(ctx, timeframeDays); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("usage report: cache get failed")
	}

	snapshot, err := s.repo.GetSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory snapshot: %w", err)
	}

	report, err := s.engine.Generate(snapshot, timeframeDays, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, timeframeDays, report); err != nil {
		log.Warn().Err(err).Msg("usage report: cache set failed")
	}

	if s.archive != nil {
		s.archiveReport(report)
	}

	return report, nil
}

// RefreshUsageReport drops the cached copy before regenerating, so callers
// get a report computed from current inventory state. A timeframe of zero
// clears every cached window and regenerates the default one; invalidation
// failures are logged and the regeneration proceeds.
func (s *AnalyticsService) RefreshUsageReport(ctx context.Context, timeframeDays int) (*domain.AnalysisReport, error) {
	if timeframeDays < 0 {
		return nil, domain.ErrInvalidTimeframe
	}

	if timeframeDays == 0 {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			log.Warn().Err(err).Msg("usage report: cache invalidate failed")
		}
	} else {
		if err := s.cache.Invalidate(ctx, timeframeDays); err != nil {
			log.Warn().Err(err).Int("timeframe_days", timeframeDays).Msg("usage report: cache invalidate failed")
		}
	}

	return s.GenerateUsageReport(ctx, timeframeDays)
}

// ListArchivedReports returns the object keys of previously archived report
// runs. With archiving disabled the archive simply reads as empty.
func (s *AnalyticsService) ListArchivedReports(ctx context.Context) ([]storage.ObjectInfo, error) {
	if s.archive == nil {
		return []storage.ObjectInfo{}, nil
	}

	objects, err := s.archive.ListObjects(ctx, archiveKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list archived reports: %w", err)
	}
	return objects, nil
}

// archiveReport copies the report JSON to object storage in the background.
// Archive failures are logged, never surfaced: the report itself already
// succeeded.
func (s *AnalyticsService) archiveReport(report *domain.AnalysisReport) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		payload, err := json.Marshal(report)
		if err != nil {
			log.Error().Err(err).Msg("usage report: archive encode failed")
			return
		}

		key := fmt.Sprintf("%s%s/usage_report_%dd.json",
			archiveKeyPrefix, report.GeneratedAt.Format("2006-01-02"), report.TimeframeDays)
		if err := s.archive.UploadObject(ctx, key, "application/json", payload); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("usage report: archive upload failed")
		}
	}()
}
