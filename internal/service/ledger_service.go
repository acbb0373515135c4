package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yuehan-qin/classpoints-api/internal/models"
	"github.com/yuehan-qin/classpoints-api/internal/repository"
	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
)

type ledgerRepository interface {
	Apply(ctx context.Context, tenantID, studentID string, delta int, reason string, category models.ReasonCategory) (int, error)
	ApplyToGroup(ctx context.Context, tenantID, groupID string, delta int, reason string, category models.ReasonCategory) (int, error)
	ApplyToClass(ctx context.Context, tenantID string, delta int, reason string, category models.ReasonCategory) (int, error)
	Redeem(ctx context.Context, tenantID, studentID, rewardID string) (*repository.RedeemResult, error)
}

type snapshotInvalidator interface {
	Invalidate(ctx context.Context, tenantID string)
}

type ledgerMetrics interface {
	ObserveLedgerOperation(category models.ReasonCategory, outcome string)
}

// LedgerService fronts the ledger transaction engine: it validates adjustment
// payloads, resolves the reason category, and translates storage errors into
// the API error taxonomy.
type LedgerService struct {
	repo      ledgerRepository
	cache     snapshotInvalidator
	metrics   ledgerMetrics
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLedgerService constructs the service.
func NewLedgerService(repo ledgerRepository, cache snapshotInvalidator, metrics ledgerMetrics, validate *validator.Validate, logger *zap.Logger) *LedgerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// AdjustRequest describes a point adjustment payload. Category is optional;
// an absent category means a manual teacher adjustment.
type AdjustRequest struct {
	Delta    int    `json:"delta"`
	Reason   string `json:"reason" validate:"required"`
	Category string `json:"category"`
}

// AdjustResult reports one applied adjustment.
type AdjustResult struct {
	NewBalance      int `json:"new_balance,omitempty"`
	StudentsUpdated int `json:"students_updated,omitempty"`
}

func (s *LedgerService) resolveRequest(req AdjustRequest) (models.ReasonCategory, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid adjustment payload")
	}
	if req.Delta == 0 {
		return "", appErrors.Clone(appErrors.ErrValidation, "delta must be non-zero")
	}
	category := models.ReasonCategory(req.Category)
	if category == "" {
		category = models.CategoryManual
	}
	if !category.Valid() {
		return "", appErrors.Clone(appErrors.ErrValidation, "unknown reason category")
	}
	return category, nil
}

// AdjustStudent applies a delta to one student.
func (s *LedgerService) AdjustStudent(ctx context.Context, tenantID, studentID string, req AdjustRequest) (*AdjustResult, error) {
	category, err := s.resolveRequest(req)
	if err != nil {
		return nil, err
	}
	balance, err := s.repo.Apply(ctx, tenantID, studentID, req.Delta, req.Reason, category)
	if err != nil {
		s.observe(category, "error")
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, s.storageFailure(err, "apply adjustment",
			zap.String("student_id", studentID), zap.Int("delta", req.Delta))
	}
	s.observe(category, "ok")
	s.invalidate(ctx, tenantID)
	s.logger.Info("points adjusted",
		zap.String("tenant_id", tenantID),
		zap.String("student_id", studentID),
		zap.Int("delta", req.Delta),
		zap.String("category", string(category)),
		zap.Int("new_balance", balance))
	return &AdjustResult{NewBalance: balance}, nil
}

// AdjustGroup applies a delta to every member of a group.
func (s *LedgerService) AdjustGroup(ctx context.Context, tenantID, groupID string, req AdjustRequest) (*AdjustResult, error) {
	category, err := s.resolveRequest(req)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.ApplyToGroup(ctx, tenantID, groupID, req.Delta, req.Reason, category)
	if err != nil {
		s.observe(category, "error")
		return nil, s.fanOutError(err, zap.String("group_id", groupID))
	}
	s.observe(category, "ok")
	s.invalidate(ctx, tenantID)
	s.logger.Info("group points adjusted",
		zap.String("tenant_id", tenantID),
		zap.String("group_id", groupID),
		zap.Int("delta", req.Delta),
		zap.Int("students_updated", count))
	return &AdjustResult{StudentsUpdated: count}, nil
}

// AdjustClass applies a delta to the tenant's entire roster.
func (s *LedgerService) AdjustClass(ctx context.Context, tenantID string, req AdjustRequest) (*AdjustResult, error) {
	category, err := s.resolveRequest(req)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.ApplyToClass(ctx, tenantID, req.Delta, req.Reason, category)
	if err != nil {
		s.observe(category, "error")
		return nil, s.fanOutError(err)
	}
	s.observe(category, "ok")
	s.invalidate(ctx, tenantID)
	s.logger.Info("class points adjusted",
		zap.String("tenant_id", tenantID),
		zap.Int("delta", req.Delta),
		zap.Int("students_updated", count))
	return &AdjustResult{StudentsUpdated: count}, nil
}

// Redeem spends a student's balance on a reward. The affordability check is
// performed inside the storage transaction; clients cannot bypass it.
func (s *LedgerService) Redeem(ctx context.Context, tenantID, studentID, rewardID string) (*repository.RedeemResult, error) {
	if rewardID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "reward id is required")
	}
	result, err := s.repo.Redeem(ctx, tenantID, studentID, rewardID)
	if err != nil {
		s.observe(models.CategoryRedemption, "error")
		if appErr := asAppError(err); appErr != nil {
			return nil, appErr
		}
		return nil, s.storageFailure(err, "redeem reward",
			zap.String("student_id", studentID), zap.String("reward_id", rewardID))
	}
	s.observe(models.CategoryRedemption, "ok")
	s.invalidate(ctx, tenantID)
	s.logger.Info("reward redeemed",
		zap.String("tenant_id", tenantID),
		zap.String("student_id", studentID),
		zap.String("reward", result.RewardName),
		zap.Int("cost", result.Cost),
		zap.Int("new_balance", result.NewBalance))
	return result, nil
}

func (s *LedgerService) fanOutError(err error, fields ...zap.Field) error {
	if appErr := asAppError(err); appErr != nil {
		return appErr
	}
	if isNoRows(err) {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return s.storageFailure(err, "apply fan-out adjustment", fields...)
}

func (s *LedgerService) storageFailure(err error, op string, fields ...zap.Field) error {
	s.logger.Error(op+" failed", append(fields, zap.Error(err))...)
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to "+op)
}

func (s *LedgerService) observe(category models.ReasonCategory, outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveLedgerOperation(category, outcome)
	}
}

func (s *LedgerService) invalidate(ctx context.Context, tenantID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, tenantID)
	}
}
