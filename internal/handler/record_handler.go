package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yuehan-qin/classpoints-api/internal/service"
	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
	"github.com/yuehan-qin/classpoints-api/pkg/response"
)

// RecordHandler serves the audit history.
type RecordHandler struct {
	service *service.RecordService
}

// NewRecordHandler constructs a record handler.
func NewRecordHandler(svc *service.RecordService) *RecordHandler {
	return &RecordHandler{service: svc}
}

// List godoc
// @Summary List point records
// @Tags Records
// @Produce json
// @Param student query string false "Filter by student ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /records [get]
func (h *RecordHandler) List(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	req := service.RecordListRequest{StudentID: c.Query("student")}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		req.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		req.PageSize = limit
	}
	records, pagination, err := h.service.List(c.Request.Context(), tenant, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, pagination)
}

// Export godoc
// @Summary Export the full history as CSV or PDF
// @Tags Records
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /records/export [get]
func (h *RecordHandler) Export(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", "csv")
	stamp := time.Now().Format("20060102")

	switch format {
	case "csv":
		payload, err := h.service.ExportCSV(c.Request.Context(), tenant)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="records_%s.csv"`, stamp))
		c.Data(http.StatusOK, "text/csv", payload)
	case "pdf":
		payload, err := h.service.ExportPDF(c.Request.Context(), tenant)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="records_%s.pdf"`, stamp))
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unsupported export format"))
	}
}
