package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuehan-qin/classpoints-api/internal/models"
)

func newStudentMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"tenant_id", "id", "name", "group_id", "points", "total_earned", "total_deducted", "created_at", "updated_at"}).
		AddRow("t1", "s1", "小明", "g1", 12, 20, 8, time.Now(), time.Now())
	mock.ExpectQuery("SELECT tenant_id, id, name, group_id, points, total_earned, total_deducted, created_at, updated_at\\s+FROM students WHERE tenant_id = .+ ORDER BY name").
		WithArgs("t1").
		WillReturnRows(rows)

	students, err := repo.List(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "小明", students[0].Name)
	assert.Equal(t, 12, students[0].Points)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("INSERT INTO students").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), &models.Student{TenantID: "t1", ID: "s1", Name: "小明"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateMissingRow(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("UPDATE students SET name").
		WithArgs("小红", "g2", sqlmock.AnyArg(), "t1", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), "t1", "ghost", "小红", "g2")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryReplaceAll(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM students WHERE tenant_id").
		WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	for range [2]struct{}{} {
		mock.ExpectExec("INSERT INTO students").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	students := []models.Student{
		{ID: "s1", Name: "小明", Points: 10, TotalEarned: 10},
		{ID: "s2", Name: "小红", Points: 4, TotalEarned: 6, TotalDeducted: 2},
	}
	err := repo.ReplaceAll(context.Background(), "t1", students)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositorySetGroupMembers(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE students SET group_id = '' WHERE tenant_id").
		WithArgs("t1", "g1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE students SET group_id = .+ WHERE tenant_id = .+ AND id = ANY").
		WithArgs("g1", "t1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.SetGroupMembers(context.Background(), "t1", "g1", []string{"s1", "s2"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
