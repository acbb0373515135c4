package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/yuehan-qin/classpoints-api/internal/models"
	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
)

type settingRepository interface {
	Get(ctx context.Context, tenantID, key string) (string, error)
	Upsert(ctx context.Context, tenantID, key, value string) error
}

// SettingsService reads and writes per-tenant configuration values.
type SettingsService struct {
	repo        settingRepository
	cache       snapshotInvalidator
	defaultCost int
	logger      *zap.Logger
}

// NewSettingsService constructs the service. defaultCost applies when a
// tenant has no stored turntable cost; zero falls back to the built-in
// default.
func NewSettingsService(repo settingRepository, cache snapshotInvalidator, defaultCost int, logger *zap.Logger) *SettingsService {
	if defaultCost <= 0 {
		defaultCost = models.DefaultTurntableCost
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{repo: repo, cache: cache, defaultCost: defaultCost, logger: logger}
}

// TurntableCostRequest carries a new spin cost.
type TurntableCostRequest struct {
	Cost int `json:"cost" validate:"min=1"`
}

// TurntableCost returns the tenant's spin cost, falling back to the default
// when unset or unparseable.
func (s *SettingsService) TurntableCost(ctx context.Context, tenantID string) (int, error) {
	raw, err := s.repo.Get(ctx, tenantID, models.SettingTurntableCost)
	if err != nil {
		if isNoRows(err) {
			return s.defaultCost, nil
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read turntable cost")
	}
	cost, err := strconv.Atoi(raw)
	if err != nil || cost < 1 {
		s.logger.Warn("stored turntable cost is invalid, using default",
			zap.String("tenant_id", tenantID), zap.String("value", raw))
		return s.defaultCost, nil
	}
	return cost, nil
}

// SetTurntableCost stores a new spin cost for the tenant.
func (s *SettingsService) SetTurntableCost(ctx context.Context, tenantID string, req TurntableCostRequest) error {
	if req.Cost < 1 {
		return appErrors.Clone(appErrors.ErrValidation, "cost must be at least 1")
	}
	if err := s.repo.Upsert(ctx, tenantID, models.SettingTurntableCost, strconv.Itoa(req.Cost)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store turntable cost")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, tenantID)
	}
	s.logger.Info("turntable cost updated", zap.String("tenant_id", tenantID), zap.Int("cost", req.Cost))
	return nil
}
