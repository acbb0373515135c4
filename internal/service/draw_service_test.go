package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuehan-qin/classpoints-api/internal/models"
	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
)

type prizeRepoStub struct {
	prizes []models.TurntablePrize
	err    error
}

func (s *prizeRepoStub) List(ctx context.Context, tenantID string) ([]models.TurntablePrize, error) {
	return s.prizes, s.err
}

func (s *prizeRepoStub) Create(ctx context.Context, prize *models.TurntablePrize) error {
	s.prizes = append(s.prizes, *prize)
	return s.err
}

func (s *prizeRepoStub) Update(ctx context.Context, tenantID, id, label string) error {
	return s.err
}

func (s *prizeRepoStub) Delete(ctx context.Context, tenantID, id string) error {
	return s.err
}

type costReaderStub struct {
	cost int
}

func (s costReaderStub) TurntableCost(ctx context.Context, tenantID string) (int, error) {
	return s.cost, nil
}

func newSpinService(prizes *prizeRepoStub, ledger *ledgerRepoStub, cost int) *DrawService {
	svc := NewDrawService(prizes, ledger, costReaderStub{cost: cost}, nil, validator.New(), nil)
	svc.pick = func(n int) int { return 0 }
	return svc
}

func TestDrawServiceSpinDebitsThenCreditsBonus(t *testing.T) {
	prizes := &prizeRepoStub{prizes: []models.TurntablePrize{{ID: "p1", Label: "+5积分"}}}
	ledger := &ledgerRepoStub{balance: 30}
	svc := newSpinService(prizes, ledger, 10)

	result, err := svc.Spin(context.Background(), "t1", "s1")
	require.NoError(t, err)

	require.Len(t, ledger.applied, 2)
	assert.Equal(t, -10, ledger.applied[0].delta)
	assert.Equal(t, "幸运大转盘抽奖", ledger.applied[0].reason)
	assert.Equal(t, models.CategoryDrawCost, ledger.applied[0].category)
	assert.Equal(t, 5, ledger.applied[1].delta)
	assert.Equal(t, "幸运转盘: +5积分", ledger.applied[1].reason)
	assert.Equal(t, models.CategoryDrawBonus, ledger.applied[1].category)

	assert.Equal(t, 5, result.BonusPoints)
	assert.Equal(t, 25, result.NewBalance)
	assert.Equal(t, 10, result.Cost)
}

func TestDrawServiceSpinDudPrizeOnlyDebits(t *testing.T) {
	prizes := &prizeRepoStub{prizes: []models.TurntablePrize{{ID: "p1", Label: "谢谢参与"}}}
	ledger := &ledgerRepoStub{balance: 30}
	svc := newSpinService(prizes, ledger, 10)

	result, err := svc.Spin(context.Background(), "t1", "s1")
	require.NoError(t, err)
	require.Len(t, ledger.applied, 1)
	assert.Equal(t, -10, ledger.applied[0].delta)
	assert.Equal(t, 0, result.BonusPoints)
	assert.Equal(t, 20, result.NewBalance)
}

func TestDrawServiceSpinWithoutPrizes(t *testing.T) {
	svc := newSpinService(&prizeRepoStub{}, &ledgerRepoStub{}, 10)
	_, err := svc.Spin(context.Background(), "t1", "s1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDrawServiceCreatePrizeGeneratesID(t *testing.T) {
	prizes := &prizeRepoStub{}
	svc := NewDrawService(prizes, &ledgerRepoStub{}, costReaderStub{cost: 10}, nil, validator.New(), nil)

	prize, err := svc.CreatePrize(context.Background(), "t1", PrizeRequest{Label: "+3"})
	require.NoError(t, err)
	assert.Contains(t, prize.ID, "_prize")
	assert.Equal(t, "t1", prize.TenantID)
}
