package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuehan-qin/classpoints-api/internal/models"
)

func expectTenantClear(mock sqlmock.Sqlmock, tenantID string) {
	for _, table := range tenantTables {
		mock.ExpectExec(`DELETE FROM ` + table + ` WHERE tenant_id`).
			WithArgs(tenantID).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
}

func importSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Students:        []models.Student{{ID: "s1", Name: "小明", Points: 12, TotalEarned: 12}},
		Groups:          []models.Group{{ID: "g1", Name: "第一小组"}},
		Rewards:         []models.Reward{{ID: "r1", Name: "免作业卡", Cost: 20}},
		TurntablePrizes: []models.TurntablePrize{{ID: "p1", Label: "+20积分"}},
		Records: []models.Record{{
			ID: "rec1", Time: "2026-03-01 09:30:00", StudentID: "s1", StudentName: "小明",
			Change: "+12", Reason: "期初积分", Category: models.CategoryManual, FinalPoints: 12,
		}},
		TurntableCost: 15,
	}
}

func TestDataRepositoryResetClearsEveryTable(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewDataRepository(db)

	mock.ExpectBegin()
	expectTenantClear(mock, "t1")
	mock.ExpectCommit()

	require.NoError(t, repo.Reset(context.Background(), "t1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDataRepositoryImportRestoresSnapshot(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewDataRepository(db)

	mock.ExpectBegin()
	expectTenantClear(mock, "t1")
	mock.ExpectExec("INSERT INTO students").
		WithArgs("t1", "s1", "小明", "", 12, 12, 0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO groups").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO rewards").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO turntable_prizes").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO records").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO settings").
		WithArgs("t1", models.SettingTurntableCost, "15").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Import(context.Background(), "t1", importSnapshot()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDataRepositoryImportRollsBackOnFailedInsert(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewDataRepository(db)

	mock.ExpectBegin()
	expectTenantClear(mock, "t1")
	mock.ExpectExec("INSERT INTO students").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Import(context.Background(), "t1", importSnapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import student s1")
	assert.NoError(t, mock.ExpectationsWereMet())
}
