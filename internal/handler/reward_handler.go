package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yuehan-qin/classpoints-api/internal/service"
	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
	"github.com/yuehan-qin/classpoints-api/pkg/response"
)

// RewardHandler handles reward shop endpoints.
type RewardHandler struct {
	service *service.RewardService
}

// NewRewardHandler constructs a reward handler.
func NewRewardHandler(svc *service.RewardService) *RewardHandler {
	return &RewardHandler{service: svc}
}

// List godoc
// @Summary List rewards
// @Tags Rewards
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rewards [get]
func (h *RewardHandler) List(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	rewards, err := h.service.List(c.Request.Context(), tenant)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rewards, nil)
}

// Create godoc
// @Summary Create a reward
// @Tags Rewards
// @Accept json
// @Produce json
// @Param payload body service.RewardRequest true "Reward payload"
// @Success 201 {object} response.Envelope
// @Router /rewards [post]
func (h *RewardHandler) Create(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req service.RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	reward, err := h.service.Create(c.Request.Context(), tenant, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reward)
}

// Update godoc
// @Summary Update a reward
// @Tags Rewards
// @Accept json
// @Produce json
// @Param id path string true "Reward ID"
// @Param payload body service.RewardRequest true "Reward payload"
// @Success 204
// @Router /rewards/{id} [put]
func (h *RewardHandler) Update(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req service.RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.service.Update(c.Request.Context(), tenant, c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete a reward
// @Tags Rewards
// @Produce json
// @Param id path string true "Reward ID"
// @Success 204
// @Router /rewards/{id} [delete]
func (h *RewardHandler) Delete(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), tenant, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
