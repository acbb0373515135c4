package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuehan-qin/classpoints-api/internal/models"
	"github.com/yuehan-qin/classpoints-api/pkg/export"
)

type recordRepoStub struct {
	records []models.Record
	filter  models.RecordFilter
}

func (s *recordRepoStub) List(ctx context.Context, tenantID string, filter models.RecordFilter) ([]models.Record, int, error) {
	s.filter = filter
	return s.records, len(s.records), nil
}

func (s *recordRepoStub) ListAll(ctx context.Context, tenantID string) ([]models.Record, error) {
	return s.records, nil
}

func TestRecordServiceListClampsPaging(t *testing.T) {
	repo := &recordRepoStub{}
	svc := NewRecordService(repo, export.NewCSVExporter(), export.NewPDFExporter(""), nil)

	_, pagination, err := svc.List(context.Background(), "t1", RecordListRequest{Page: 0, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.filter.Page)
	assert.Equal(t, 50, repo.filter.PageSize)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 50, pagination.PageSize)
}

func TestRecordServiceListKeepsStudentFilter(t *testing.T) {
	repo := &recordRepoStub{}
	svc := NewRecordService(repo, export.NewCSVExporter(), export.NewPDFExporter(""), nil)

	_, _, err := svc.List(context.Background(), "t1", RecordListRequest{StudentID: "s1", Page: 2, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, "s1", repo.filter.StudentID)
	assert.Equal(t, 2, repo.filter.Page)
	assert.Equal(t, 20, repo.filter.PageSize)
}

func TestRecordServiceExportCSV(t *testing.T) {
	repo := &recordRepoStub{records: []models.Record{
		{Time: "2026-03-01 09:30:00", StudentName: "小明", Change: "+15", Reason: "随堂测验满分", FinalPoints: 25},
		{Time: "2026-03-01 10:00:00", StudentName: "小红", Change: "-20", Reason: "兑换: 免作业卡", FinalPoints: 5},
	}}
	svc := NewRecordService(repo, export.NewCSVExporter(), export.NewPDFExporter(""), nil)

	payload, err := svc.ExportCSV(context.Background(), "t1")
	require.NoError(t, err)
	body := string(payload)
	assert.True(t, strings.Contains(body, "Time,Student,Change,Reason,Final Points"))
	assert.Contains(t, body, "小明,+15,随堂测验满分,25")
	assert.Contains(t, body, "兑换: 免作业卡")
}

func TestRecordServiceExportPDF(t *testing.T) {
	repo := &recordRepoStub{records: []models.Record{
		{Time: "2026-03-01 09:30:00", StudentName: "Ming", Change: "+15", Reason: "Quiz", FinalPoints: 25},
	}}
	svc := NewRecordService(repo, export.NewCSVExporter(), export.NewPDFExporter(""), nil)

	payload, err := svc.ExportPDF(context.Background(), "t1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}
