package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yuehan-qin/classpoints-api/internal/models"
	"github.com/yuehan-qin/classpoints-api/internal/service"
	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
	"github.com/yuehan-qin/classpoints-api/pkg/response"
)

// DataHandler owns the whole-tenant dataset endpoints: snapshot read, full
// restore, and clear-all.
type DataHandler struct {
	service *service.SnapshotService
}

// NewDataHandler constructs a data handler.
func NewDataHandler(svc *service.SnapshotService) *DataHandler {
	return &DataHandler{service: svc}
}

// Get godoc
// @Summary Fetch the tenant's full dataset
// @Tags Data
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /data [get]
func (h *DataHandler) Get(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	snapshot, cacheHit, err := h.service.Get(c.Request.Context(), tenant)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot, nil, map[string]interface{}{"cache_hit": cacheHit})
}

// Import godoc
// @Summary Restore a previously exported dataset
// @Tags Data
// @Accept json
// @Produce json
// @Param payload body models.SnapshotImport true "Snapshot payload"
// @Success 204
// @Router /data/import [post]
func (h *DataHandler) Import(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req models.SnapshotImport
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.service.Import(c.Request.Context(), tenant, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Reset godoc
// @Summary Delete all tenant data
// @Tags Data
// @Produce json
// @Success 204
// @Router /data [delete]
func (h *DataHandler) Reset(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	if err := h.service.Reset(c.Request.Context(), tenant); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
