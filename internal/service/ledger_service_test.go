package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuehan-qin/classpoints-api/internal/models"
	"github.com/yuehan-qin/classpoints-api/internal/repository"
	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
)

type appliedDelta struct {
	studentID string
	delta     int
	reason    string
	category  models.ReasonCategory
}

type ledgerRepoStub struct {
	applied      []appliedDelta
	balance      int
	applyErr     error
	fanOutCount  int
	fanOutErr    error
	redeemResult *repository.RedeemResult
	redeemErr    error
}

func (s *ledgerRepoStub) Apply(ctx context.Context, tenantID, studentID string, delta int, reason string, category models.ReasonCategory) (int, error) {
	if s.applyErr != nil {
		return 0, s.applyErr
	}
	s.applied = append(s.applied, appliedDelta{studentID: studentID, delta: delta, reason: reason, category: category})
	s.balance += delta
	return s.balance, nil
}

func (s *ledgerRepoStub) ApplyToGroup(ctx context.Context, tenantID, groupID string, delta int, reason string, category models.ReasonCategory) (int, error) {
	if s.fanOutErr != nil {
		return 0, s.fanOutErr
	}
	return s.fanOutCount, nil
}

func (s *ledgerRepoStub) ApplyToClass(ctx context.Context, tenantID string, delta int, reason string, category models.ReasonCategory) (int, error) {
	if s.fanOutErr != nil {
		return 0, s.fanOutErr
	}
	return s.fanOutCount, nil
}

func (s *ledgerRepoStub) Redeem(ctx context.Context, tenantID, studentID, rewardID string) (*repository.RedeemResult, error) {
	if s.redeemErr != nil {
		return nil, s.redeemErr
	}
	return s.redeemResult, nil
}

type invalidatorStub struct {
	tenants []string
}

func (s *invalidatorStub) Invalidate(ctx context.Context, tenantID string) {
	s.tenants = append(s.tenants, tenantID)
}

func TestLedgerServiceAdjustStudentDefaultsToManual(t *testing.T) {
	repo := &ledgerRepoStub{balance: 10}
	cache := &invalidatorStub{}
	svc := NewLedgerService(repo, cache, nil, validator.New(), nil)

	result, err := svc.AdjustStudent(context.Background(), "t1", "s1", AdjustRequest{Delta: 15, Reason: "随堂测验满分"})
	require.NoError(t, err)
	assert.Equal(t, 25, result.NewBalance)
	require.Len(t, repo.applied, 1)
	assert.Equal(t, models.CategoryManual, repo.applied[0].category)
	assert.Equal(t, []string{"t1"}, cache.tenants)
}

func TestLedgerServiceAdjustStudentRejectsZeroDelta(t *testing.T) {
	repo := &ledgerRepoStub{}
	svc := NewLedgerService(repo, nil, nil, validator.New(), nil)

	_, err := svc.AdjustStudent(context.Background(), "t1", "s1", AdjustRequest{Delta: 0, Reason: "无效"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.applied)
}

func TestLedgerServiceAdjustStudentRejectsMissingReason(t *testing.T) {
	svc := NewLedgerService(&ledgerRepoStub{}, nil, nil, validator.New(), nil)
	_, err := svc.AdjustStudent(context.Background(), "t1", "s1", AdjustRequest{Delta: 5})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLedgerServiceAdjustStudentRejectsUnknownCategory(t *testing.T) {
	svc := NewLedgerService(&ledgerRepoStub{}, nil, nil, validator.New(), nil)
	_, err := svc.AdjustStudent(context.Background(), "t1", "s1", AdjustRequest{Delta: 5, Reason: "测试", Category: "BOGUS"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLedgerServiceAdjustStudentMapsMissingStudent(t *testing.T) {
	repo := &ledgerRepoStub{applyErr: sql.ErrNoRows}
	svc := NewLedgerService(repo, nil, nil, validator.New(), nil)

	_, err := svc.AdjustStudent(context.Background(), "t1", "ghost", AdjustRequest{Delta: 5, Reason: "测试"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "student not found", appErr.Message)
}

func TestLedgerServiceAdjustGroupPassesThroughEmptyTarget(t *testing.T) {
	repo := &ledgerRepoStub{fanOutErr: appErrors.ErrEmptyTarget}
	cache := &invalidatorStub{}
	svc := NewLedgerService(repo, cache, nil, validator.New(), nil)

	_, err := svc.AdjustGroup(context.Background(), "t1", "g-empty", AdjustRequest{Delta: 5, Reason: "小组表扬"})
	assert.ErrorIs(t, err, appErrors.ErrEmptyTarget)
	assert.Empty(t, cache.tenants)
}

func TestLedgerServiceAdjustClassReportsCount(t *testing.T) {
	repo := &ledgerRepoStub{fanOutCount: 28}
	svc := NewLedgerService(repo, nil, nil, validator.New(), nil)

	result, err := svc.AdjustClass(context.Background(), "t1", AdjustRequest{Delta: 2, Reason: "全班表扬"})
	require.NoError(t, err)
	assert.Equal(t, 28, result.StudentsUpdated)
}

func TestLedgerServiceRedeemPassesThroughInsufficientBalance(t *testing.T) {
	repo := &ledgerRepoStub{redeemErr: appErrors.ErrInsufficientBalance}
	svc := NewLedgerService(repo, nil, nil, validator.New(), nil)

	_, err := svc.Redeem(context.Background(), "t1", "s1", "r1")
	assert.ErrorIs(t, err, appErrors.ErrInsufficientBalance)
}

func TestLedgerServiceRedeemWrapsStorageFailure(t *testing.T) {
	repo := &ledgerRepoStub{redeemErr: errors.New("db down")}
	svc := NewLedgerService(repo, nil, nil, validator.New(), nil)

	_, err := svc.Redeem(context.Background(), "t1", "s1", "r1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestLedgerServiceRedeemSuccess(t *testing.T) {
	repo := &ledgerRepoStub{redeemResult: &repository.RedeemResult{RewardName: "免作业卡", Cost: 20, NewBalance: 5}}
	cache := &invalidatorStub{}
	svc := NewLedgerService(repo, cache, nil, validator.New(), nil)

	result, err := svc.Redeem(context.Background(), "t1", "s1", "r1")
	require.NoError(t, err)
	assert.Equal(t, 5, result.NewBalance)
	assert.Equal(t, []string{"t1"}, cache.tenants)
}
