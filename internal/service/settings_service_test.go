package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
)

type settingRepoStub struct {
	values map[string]string
	err    error
}

func (s *settingRepoStub) Get(ctx context.Context, tenantID, key string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	value, ok := s.values[key]
	if !ok {
		return "", sql.ErrNoRows
	}
	return value, nil
}

func (s *settingRepoStub) Upsert(ctx context.Context, tenantID, key, value string) error {
	if s.err != nil {
		return s.err
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	return nil
}

func TestSettingsServiceTurntableCostDefault(t *testing.T) {
	svc := NewSettingsService(&settingRepoStub{}, nil, 0, nil)
	cost, err := svc.TurntableCost(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestSettingsServiceTurntableCostStored(t *testing.T) {
	repo := &settingRepoStub{values: map[string]string{"turntableCost": "25"}}
	svc := NewSettingsService(repo, nil, 0, nil)
	cost, err := svc.TurntableCost(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, 25, cost)
}

func TestSettingsServiceTurntableCostInvalidFallsBack(t *testing.T) {
	repo := &settingRepoStub{values: map[string]string{"turntableCost": "abc"}}
	svc := NewSettingsService(repo, nil, 10, nil)
	cost, err := svc.TurntableCost(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestSettingsServiceSetTurntableCost(t *testing.T) {
	repo := &settingRepoStub{}
	cache := &invalidatorStub{}
	svc := NewSettingsService(repo, cache, 10, nil)

	require.NoError(t, svc.SetTurntableCost(context.Background(), "t1", TurntableCostRequest{Cost: 15}))
	assert.Equal(t, "15", repo.values["turntableCost"])
	assert.Equal(t, []string{"t1"}, cache.tenants)
}

func TestSettingsServiceSetTurntableCostRejectsZero(t *testing.T) {
	svc := NewSettingsService(&settingRepoStub{}, nil, 10, nil)
	err := svc.SetTurntableCost(context.Background(), "t1", TurntableCostRequest{Cost: 0})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
