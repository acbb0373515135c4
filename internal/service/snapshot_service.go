package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yuehan-qin/classpoints-api/internal/models"
	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
)

type snapshotCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type snapshotDataRepository interface {
	Reset(ctx context.Context, tenantID string) error
	Import(ctx context.Context, tenantID string, snapshot *models.Snapshot) error
}

type studentLister interface {
	List(ctx context.Context, tenantID string) ([]models.Student, error)
}

type groupLister interface {
	List(ctx context.Context, tenantID string) ([]models.Group, error)
}

type rewardLister interface {
	List(ctx context.Context, tenantID string) ([]models.Reward, error)
}

type prizeLister interface {
	List(ctx context.Context, tenantID string) ([]models.TurntablePrize, error)
}

type recordLister interface {
	ListAll(ctx context.Context, tenantID string) ([]models.Record, error)
}

type cacheMetrics interface {
	RecordCacheOperation(hit bool, duration time.Duration)
}

// SnapshotService assembles the aggregate dataset the front-end boots from
// and owns the whole-tenant admin operations (clear-all, full restore). The
// aggregate is cached in Redis per tenant and every mutating service calls
// Invalidate through the snapshotInvalidator interface.
type SnapshotService struct {
	students  studentLister
	groups    groupLister
	rewards   rewardLister
	prizes    prizeLister
	records   recordLister
	settings  turntableCostReader
	data      snapshotDataRepository
	cache     snapshotCache
	metrics   cacheMetrics
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// SnapshotServiceDeps bundles the constructor arguments.
type SnapshotServiceDeps struct {
	Students studentLister
	Groups   groupLister
	Rewards  rewardLister
	Prizes   prizeLister
	Records  recordLister
	Settings turntableCostReader
	Data     snapshotDataRepository
	Cache    snapshotCache
	Metrics  cacheMetrics
	CacheTTL time.Duration
}

// NewSnapshotService constructs the service.
func NewSnapshotService(deps SnapshotServiceDeps, validate *validator.Validate, logger *zap.Logger) *SnapshotService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &SnapshotService{
		students:  deps.Students,
		groups:    deps.Groups,
		rewards:   deps.Rewards,
		prizes:    deps.Prizes,
		records:   deps.Records,
		settings:  deps.Settings,
		data:      deps.Data,
		cache:     deps.Cache,
		metrics:   deps.Metrics,
		cacheTTL:  ttl,
		validator: validate,
		logger:    logger,
	}
}

func snapshotCacheKey(tenantID string) string {
	return fmt.Sprintf("classpoints:snapshot:%s", tenantID)
}

// Get returns the tenant's full dataset, serving from cache when possible.
// The second return value reports whether the payload came from cache.
func (s *SnapshotService) Get(ctx context.Context, tenantID string) (*models.Snapshot, bool, error) {
	key := snapshotCacheKey(tenantID)
	if s.cache != nil {
		start := time.Now()
		var cached models.Snapshot
		err := s.cache.Get(ctx, key, &cached)
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(err == nil, time.Since(start))
		}
		if err == nil {
			return &cached, true, nil
		}
		if appErr := asAppError(err); appErr == nil || appErr.Code != appErrors.ErrCacheMiss.Code {
			s.logger.Warn("snapshot cache read failed", zap.String("tenant_id", tenantID), zap.Error(err))
		}
	}

	snapshot, err := s.build(ctx, tenantID)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, snapshot, s.cacheTTL); err != nil {
			s.logger.Warn("snapshot cache write failed", zap.String("tenant_id", tenantID), zap.Error(err))
		}
	}
	return snapshot, false, nil
}

func (s *SnapshotService) build(ctx context.Context, tenantID string) (*models.Snapshot, error) {
	students, err := s.students.List(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	groups, err := s.groups.List(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load groups")
	}
	rewards, err := s.rewards.List(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rewards")
	}
	prizes, err := s.prizes.List(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load prizes")
	}
	records, err := s.records.ListAll(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load records")
	}
	cost, err := s.settings.TurntableCost(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &models.Snapshot{
		Students:        students,
		Groups:          groups,
		Rewards:         rewards,
		Records:         records,
		TurntablePrizes: prizes,
		TurntableCost:   cost,
	}, nil
}

// Import replaces the tenant's dataset with the supplied snapshot.
func (s *SnapshotService) Import(ctx context.Context, tenantID string, req models.SnapshotImport) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid snapshot payload")
	}
	students := make([]models.Student, 0, len(req.Students))
	for _, row := range req.Students {
		if err := s.validator.Struct(row); err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student row in snapshot")
		}
		earned := row.TotalEarned
		if earned == 0 && row.Points > 0 {
			earned = row.Points
		}
		students = append(students, models.Student{
			TenantID:      tenantID,
			ID:            row.ID,
			Name:          row.Name,
			GroupID:       row.GroupID,
			Points:        row.Points,
			TotalEarned:   earned,
			TotalDeducted: row.TotalDeducted,
		})
	}
	cost := models.DefaultTurntableCost
	if req.TurntableCost != nil && *req.TurntableCost >= 1 {
		cost = *req.TurntableCost
	}
	snapshot := &models.Snapshot{
		Students:        students,
		Groups:          req.Groups,
		Rewards:         req.Rewards,
		Records:         req.Records,
		TurntablePrizes: req.TurntablePrizes,
		TurntableCost:   cost,
	}
	if err := s.data.Import(ctx, tenantID, snapshot); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import snapshot")
	}
	s.Invalidate(ctx, tenantID)
	s.logger.Info("snapshot imported",
		zap.String("tenant_id", tenantID),
		zap.Int("students", len(students)),
		zap.Int("records", len(req.Records)))
	return nil
}

// Reset wipes every entity the tenant owns. This is the only path that
// deletes audit records.
func (s *SnapshotService) Reset(ctx context.Context, tenantID string) error {
	if err := s.data.Reset(ctx, tenantID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset tenant data")
	}
	s.Invalidate(ctx, tenantID)
	s.logger.Info("tenant data reset", zap.String("tenant_id", tenantID))
	return nil
}

// Invalidate drops the tenant's cached snapshot. Called by every service
// whose mutations change the aggregate.
func (s *SnapshotService) Invalidate(ctx context.Context, tenantID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, snapshotCacheKey(tenantID)); err != nil {
		s.logger.Warn("snapshot cache invalidation failed", zap.String("tenant_id", tenantID), zap.Error(err))
	}
}
