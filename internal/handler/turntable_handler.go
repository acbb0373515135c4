package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yuehan-qin/classpoints-api/internal/service"
	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
	"github.com/yuehan-qin/classpoints-api/pkg/response"
)

// TurntableHandler handles lucky-draw endpoints: prize management, the spin
// itself, and the spin cost setting.
type TurntableHandler struct {
	draws    *service.DrawService
	settings *service.SettingsService
}

// NewTurntableHandler constructs a turntable handler.
func NewTurntableHandler(draws *service.DrawService, settings *service.SettingsService) *TurntableHandler {
	return &TurntableHandler{draws: draws, settings: settings}
}

// SpinRequest names the student spinning the wheel.
type SpinRequest struct {
	StudentID string `json:"studentId"`
}

// ListPrizes godoc
// @Summary List turntable prizes
// @Tags Turntable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /turntable/prizes [get]
func (h *TurntableHandler) ListPrizes(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	prizes, err := h.draws.ListPrizes(c.Request.Context(), tenant)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, prizes, nil)
}

// CreatePrize godoc
// @Summary Add a turntable prize
// @Tags Turntable
// @Accept json
// @Produce json
// @Param payload body service.PrizeRequest true "Prize payload"
// @Success 201 {object} response.Envelope
// @Router /turntable/prizes [post]
func (h *TurntableHandler) CreatePrize(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req service.PrizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	prize, err := h.draws.CreatePrize(c.Request.Context(), tenant, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, prize)
}

// UpdatePrize godoc
// @Summary Update a turntable prize label
// @Tags Turntable
// @Accept json
// @Produce json
// @Param id path string true "Prize ID"
// @Param payload body service.PrizeRequest true "Prize payload"
// @Success 204
// @Router /turntable/prizes/{id} [put]
func (h *TurntableHandler) UpdatePrize(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req service.PrizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.draws.UpdatePrize(c.Request.Context(), tenant, c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeletePrize godoc
// @Summary Delete a turntable prize
// @Tags Turntable
// @Produce json
// @Param id path string true "Prize ID"
// @Success 204
// @Router /turntable/prizes/{id} [delete]
func (h *TurntableHandler) DeletePrize(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	if err := h.draws.DeletePrize(c.Request.Context(), tenant, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Spin godoc
// @Summary Spin the wheel for a student
// @Tags Turntable
// @Accept json
// @Produce json
// @Param payload body SpinRequest true "Student reference"
// @Success 200 {object} response.Envelope
// @Router /turntable/spin [post]
func (h *TurntableHandler) Spin(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req SpinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if req.StudentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId is required"))
		return
	}
	result, err := h.draws.Spin(c.Request.Context(), tenant, req.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// UpdateCost godoc
// @Summary Update the spin cost
// @Tags Turntable
// @Accept json
// @Produce json
// @Param payload body service.TurntableCostRequest true "Cost payload"
// @Success 204
// @Router /settings/turntable-cost [put]
func (h *TurntableHandler) UpdateCost(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req service.TurntableCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.settings.SetTurntableCost(c.Request.Context(), tenant, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
