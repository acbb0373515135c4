package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yuehan-qin/classpoints-api/internal/models"
	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
)

type rewardRepository interface {
	List(ctx context.Context, tenantID string) ([]models.Reward, error)
	Create(ctx context.Context, reward *models.Reward) error
	Update(ctx context.Context, tenantID, id, name string, cost int) error
	Delete(ctx context.Context, tenantID, id string) error
}

// RewardService manages the reward shop catalogue. Redemptions themselves go
// through the LedgerService so the debit and the affordability check share a
// transaction.
type RewardService struct {
	repo      rewardRepository
	cache     snapshotInvalidator
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewRewardService constructs the service.
func NewRewardService(repo rewardRepository, cache snapshotInvalidator, validate *validator.Validate, logger *zap.Logger) *RewardService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RewardService{repo: repo, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// RewardRequest carries the reward name and cost for create and update.
type RewardRequest struct {
	Name string `json:"name" validate:"required"`
	Cost int    `json:"cost" validate:"min=1"`
}

// List returns the tenant's rewards.
func (s *RewardService) List(ctx context.Context, tenantID string) ([]models.Reward, error) {
	rewards, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rewards")
	}
	return rewards, nil
}

// Create adds a reward with a generated millisecond-stamped ID.
func (s *RewardService) Create(ctx context.Context, tenantID string, req RewardRequest) (*models.Reward, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reward payload")
	}
	reward := &models.Reward{
		TenantID: tenantID,
		ID:       fmt.Sprintf("_reward%d", s.now().UnixMilli()),
		Name:     strings.TrimSpace(req.Name),
		Cost:     req.Cost,
	}
	if err := s.repo.Create(ctx, reward); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create reward")
	}
	s.invalidate(ctx, tenantID)
	s.logger.Info("reward created", zap.String("tenant_id", tenantID), zap.String("reward_id", reward.ID), zap.Int("cost", reward.Cost))
	return reward, nil
}

// Update changes a reward's name and cost.
func (s *RewardService) Update(ctx context.Context, tenantID, id string, req RewardRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reward payload")
	}
	if err := s.repo.Update(ctx, tenantID, id, strings.TrimSpace(req.Name), req.Cost); err != nil {
		if isNoRows(err) {
			return appErrors.Clone(appErrors.ErrNotFound, "reward not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update reward")
	}
	s.invalidate(ctx, tenantID)
	return nil
}

// Delete removes a reward. Past redemption records keep the reward name in
// their reason text and are unaffected.
func (s *RewardService) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete reward")
	}
	s.invalidate(ctx, tenantID)
	return nil
}

func (s *RewardService) invalidate(ctx context.Context, tenantID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, tenantID)
	}
}
