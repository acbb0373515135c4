package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuehan-qin/classpoints-api/internal/models"
)

func newRecordMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "tenant_id", "time", "student_id", "student_name", "change", "reason", "category", "final_points", "created_at"}).
		AddRow("rec1", "t1", "2026-03-01 09:30:00", "s1", "小明", "+15", "随堂测验满分", "MANUAL", 25, time.Now())
}

func TestRecordRepositoryListPaged(t *testing.T) {
	db, mock, cleanup := newRecordMock(t)
	defer cleanup()
	repo := NewRecordRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM records WHERE tenant_id").
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))
	mock.ExpectQuery("SELECT .+ FROM records WHERE tenant_id = .+ ORDER BY created_at DESC, id DESC LIMIT .+ OFFSET").
		WithArgs("t1", 20, 20).
		WillReturnRows(recordRows())

	records, total, err := repo.List(context.Background(), "t1", models.RecordFilter{Page: 2, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 41, total)
	require.Len(t, records, 1)
	assert.Equal(t, "+15", records[0].Change)
	assert.Equal(t, models.CategoryManual, records[0].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepositoryListFiltersByStudent(t *testing.T) {
	db, mock, cleanup := newRecordMock(t)
	defer cleanup()
	repo := NewRecordRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM records WHERE tenant_id = .+ AND student_id").
		WithArgs("t1", "s1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT .+ FROM records WHERE tenant_id = .+ AND student_id = .+ ORDER BY created_at DESC").
		WithArgs("t1", "s1", 10, 0).
		WillReturnRows(recordRows())

	records, total, err := repo.List(context.Background(), "t1", models.RecordFilter{StudentID: "s1", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, records, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
