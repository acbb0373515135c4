package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yuehan-qin/classpoints-api/internal/models"
	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
)

type prizeRepository interface {
	List(ctx context.Context, tenantID string) ([]models.TurntablePrize, error)
	Create(ctx context.Context, prize *models.TurntablePrize) error
	Update(ctx context.Context, tenantID, id, label string) error
	Delete(ctx context.Context, tenantID, id string) error
}

type drawLedger interface {
	Apply(ctx context.Context, tenantID, studentID string, delta int, reason string, category models.ReasonCategory) (int, error)
}

type turntableCostReader interface {
	TurntableCost(ctx context.Context, tenantID string) (int, error)
}

// DrawService runs the lucky-draw wheel: prize management plus the spin
// settlement. A spin is two independent ledger units of work, the cost debit
// first and the bonus credit after the outcome is known. Each is atomic on
// its own; a crash between them leaves the debit committed, which mirrors a
// wheel that stops on a dud.
type DrawService struct {
	prizes    prizeRepository
	ledger    drawLedger
	settings  turntableCostReader
	cache     snapshotInvalidator
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	pick      func(n int) int
}

// NewDrawService constructs the service.
func NewDrawService(prizes prizeRepository, ledger drawLedger, settings turntableCostReader, cache snapshotInvalidator, validate *validator.Validate, logger *zap.Logger) *DrawService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DrawService{
		prizes:    prizes,
		ledger:    ledger,
		settings:  settings,
		cache:     cache,
		validator: validate,
		logger:    logger,
		now:       time.Now,
		pick:      rand.Intn,
	}
}

// PrizeRequest carries the prize label for create and update.
type PrizeRequest struct {
	Label string `json:"text" validate:"required"`
}

// SpinResult reports a settled spin.
type SpinResult struct {
	Prize       models.TurntablePrize `json:"prize"`
	Cost        int                   `json:"cost"`
	BonusPoints int                   `json:"bonus_points"`
	NewBalance  int                   `json:"new_balance"`
}

// ListPrizes returns the tenant's wheel segments.
func (s *DrawService) ListPrizes(ctx context.Context, tenantID string) ([]models.TurntablePrize, error) {
	prizes, err := s.prizes.List(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list prizes")
	}
	return prizes, nil
}

// CreatePrize adds a wheel segment with a generated millisecond-stamped ID.
func (s *DrawService) CreatePrize(ctx context.Context, tenantID string, req PrizeRequest) (*models.TurntablePrize, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid prize payload")
	}
	prize := &models.TurntablePrize{
		TenantID: tenantID,
		ID:       fmt.Sprintf("_prize%d", s.now().UnixMilli()),
		Label:    strings.TrimSpace(req.Label),
	}
	if err := s.prizes.Create(ctx, prize); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create prize")
	}
	s.invalidate(ctx, tenantID)
	return prize, nil
}

// UpdatePrize changes a segment label.
func (s *DrawService) UpdatePrize(ctx context.Context, tenantID, id string, req PrizeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid prize payload")
	}
	if err := s.prizes.Update(ctx, tenantID, id, strings.TrimSpace(req.Label)); err != nil {
		if isNoRows(err) {
			return appErrors.Clone(appErrors.ErrNotFound, "prize not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update prize")
	}
	s.invalidate(ctx, tenantID)
	return nil
}

// DeletePrize removes a segment.
func (s *DrawService) DeletePrize(ctx context.Context, tenantID, id string) error {
	if err := s.prizes.Delete(ctx, tenantID, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete prize")
	}
	s.invalidate(ctx, tenantID)
	return nil
}

// Spin settles one wheel spin for the student: the cost is debited before
// the outcome is revealed, then a bonus prize credits its amount. The debit
// may push the balance negative; the wheel never refuses a spin.
func (s *DrawService) Spin(ctx context.Context, tenantID, studentID string) (*SpinResult, error) {
	prizes, err := s.prizes.List(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list prizes")
	}
	if len(prizes) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no prizes configured")
	}

	cost, err := s.settings.TurntableCost(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read turntable cost")
	}

	balance, err := s.ledger.Apply(ctx, tenantID, studentID, -cost, "幸运大转盘抽奖", models.CategoryDrawCost)
	if err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to charge spin cost")
	}

	prize := prizes[s.pick(len(prizes))]
	result := &SpinResult{Prize: prize, Cost: cost, NewBalance: balance}

	if bonus := prize.BonusPoints(); bonus > 0 {
		reason := fmt.Sprintf("幸运转盘: %s", prize.Label)
		balance, err = s.ledger.Apply(ctx, tenantID, studentID, bonus, reason, models.CategoryDrawBonus)
		if err != nil {
			// The debit already committed; surface the failure rather than
			// inventing a compensating credit.
			s.logger.Error("bonus credit failed after spin debit",
				zap.String("tenant_id", tenantID),
				zap.String("student_id", studentID),
				zap.String("prize", prize.Label),
				zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to credit spin bonus")
		}
		result.BonusPoints = bonus
		result.NewBalance = balance
	}

	s.invalidate(ctx, tenantID)
	s.logger.Info("wheel spun",
		zap.String("tenant_id", tenantID),
		zap.String("student_id", studentID),
		zap.String("prize", prize.Label),
		zap.Int("cost", cost),
		zap.Int("bonus", result.BonusPoints))
	return result, nil
}

func (s *DrawService) invalidate(ctx context.Context, tenantID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, tenantID)
	}
}
