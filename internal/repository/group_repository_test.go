package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGroupMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestGroupRepositoryList(t *testing.T) {
	db, mock, cleanup := newGroupMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	rows := sqlmock.NewRows([]string{"tenant_id", "id", "name", "created_at"}).
		AddRow("t1", "_group1700000000000", "第一小组", time.Now())
	mock.ExpectQuery("SELECT tenant_id, id, name, created_at FROM groups WHERE tenant_id = .+ ORDER BY name").
		WithArgs("t1").
		WillReturnRows(rows)

	groups, err := repo.List(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "第一小组", groups[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupRepositoryDeleteUngroupsMembers(t *testing.T) {
	db, mock, cleanup := newGroupMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE students SET group_id = '' WHERE tenant_id = .+ AND group_id").
		WithArgs("t1", "g1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM groups WHERE tenant_id").
		WithArgs("t1", "g1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), "t1", "g1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupRepositoryDeleteRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newGroupMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE students SET group_id = '' WHERE tenant_id = .+ AND group_id").
		WithArgs("t1", "g1").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "t1", "g1")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
