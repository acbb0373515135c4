package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yuehan-qin/classpoints-api/internal/service"
	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
	"github.com/yuehan-qin/classpoints-api/pkg/response"
)

// PointsHandler exposes the ledger operations: single-student adjustments,
// group and class fan-out, and reward redemption.
type PointsHandler struct {
	service *service.LedgerService
}

// NewPointsHandler constructs a points handler.
func NewPointsHandler(svc *service.LedgerService) *PointsHandler {
	return &PointsHandler{service: svc}
}

// RedeemRequest names the reward a student spends points on.
type RedeemRequest struct {
	RewardID string `json:"rewardId"`
}

// AdjustStudent godoc
// @Summary Adjust one student's points
// @Tags Points
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.AdjustRequest true "Adjustment"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/points [post]
func (h *PointsHandler) AdjustStudent(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req service.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.AdjustStudent(c.Request.Context(), tenant, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// AdjustGroup godoc
// @Summary Adjust every member of a group
// @Tags Points
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param payload body service.AdjustRequest true "Adjustment"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/points [post]
func (h *PointsHandler) AdjustGroup(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req service.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.AdjustGroup(c.Request.Context(), tenant, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// AdjustClass godoc
// @Summary Adjust the whole class
// @Tags Points
// @Accept json
// @Produce json
// @Param payload body service.AdjustRequest true "Adjustment"
// @Success 200 {object} response.Envelope
// @Router /class/points [post]
func (h *PointsHandler) AdjustClass(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req service.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.AdjustClass(c.Request.Context(), tenant, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Redeem godoc
// @Summary Redeem a reward for a student
// @Tags Points
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body RedeemRequest true "Reward reference"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/redeem [post]
func (h *PointsHandler) Redeem(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.Redeem(c.Request.Context(), tenant, c.Param("id"), req.RewardID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
