package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/yuehan-qin/classpoints-api/internal/models"
	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
	"github.com/yuehan-qin/classpoints-api/pkg/export"
)

type recordRepository interface {
	List(ctx context.Context, tenantID string, filter models.RecordFilter) ([]models.Record, int, error)
	ListAll(ctx context.Context, tenantID string) ([]models.Record, error)
}

// RecordService serves the read side of the audit history: paged listings
// and file exports. Records are only ever written by the ledger.
type RecordService struct {
	repo   recordRepository
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewRecordService constructs the service.
func NewRecordService(repo recordRepository, csv *export.CSVExporter, pdf *export.PDFExporter, logger *zap.Logger) *RecordService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordService{repo: repo, csv: csv, pdf: pdf, logger: logger}
}

// RecordListRequest narrows a history listing.
type RecordListRequest struct {
	StudentID string `json:"student_id"`
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
}

// List returns one page of history, newest first.
func (s *RecordService) List(ctx context.Context, tenantID string, req RecordListRequest) ([]models.Record, *models.Pagination, error) {
	filter := models.RecordFilter{StudentID: req.StudentID, Page: req.Page, PageSize: req.PageSize}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 200 {
		filter.PageSize = 50
	}
	records, total, err := s.repo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list records")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return records, pagination, nil
}

var recordExportHeaders = []string{"Time", "Student", "Change", "Reason", "Final Points"}

func recordDataset(records []models.Record) export.Dataset {
	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, map[string]string{
			"Time":         record.Time,
			"Student":      record.StudentName,
			"Change":       record.Change,
			"Reason":       record.Reason,
			"Final Points": strconv.Itoa(record.FinalPoints),
		})
	}
	return export.Dataset{Headers: recordExportHeaders, Rows: rows}
}

// ExportCSV renders the full history as a CSV file.
func (s *RecordService) ExportCSV(ctx context.Context, tenantID string) ([]byte, error) {
	records, err := s.repo.ListAll(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load records for export")
	}
	payload, err := s.csv.Render(recordDataset(records))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
	}
	s.logger.Info("records exported", zap.String("tenant_id", tenantID), zap.String("format", "csv"), zap.Int("records", len(records)))
	return payload, nil
}

// ExportPDF renders the full history as a PDF document.
func (s *RecordService) ExportPDF(ctx context.Context, tenantID string) ([]byte, error) {
	records, err := s.repo.ListAll(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load records for export")
	}
	payload, err := s.pdf.Render(recordDataset(records), "Points History")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
	}
	s.logger.Info("records exported", zap.String("tenant_id", tenantID), zap.String("format", "pdf"), zap.Int("records", len(records)))
	return payload, nil
}
