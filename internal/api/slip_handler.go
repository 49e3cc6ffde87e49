package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"ParlaySync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SlipHandler 投注单下单、查询、撤单与结算
type SlipHandler struct {
	slips      *service.SlipService
	settlement *service.SettlementService
	cancel     *service.CancellationService
	logger     *logrus.Logger
}

// NewSlipHandler 创建 SlipHandler
func NewSlipHandler(
	slips *service.SlipService,
	settlement *service.SettlementService,
	cancel *service.CancellationService,
	logger *logrus.Logger,
) *SlipHandler {
	return &SlipHandler{slips: slips, settlement: settlement, cancel: cancel, logger: logger}
}

// CreateSlipRequest 下单请求 body；stake 用字符串或数字均可
type CreateSlipRequest struct {
	Legs  []service.LegInput `json:"legs"`
	Stake stakeValue         `json:"stake"`
}

// stakeValue 接受 JSON 数字或字符串，原样保留文本
type stakeValue string

func (v *stakeValue) UnmarshalJSON(b []byte) error {
	*v = stakeValue(strings.Trim(string(b), `"`))
	return nil
}

// CreateSlip 下单 POST /api/slips
func (h *SlipHandler) CreateSlip(c *gin.Context) {
	var req CreateSlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	slip, err := h.slips.CreateSlip(c.Request.Context(), req.Legs, string(req.Stake))
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
			return
		}
		h.logger.WithError(err).Error("CreateSlip failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, service.NewSlipItem(slip))
}

// settleFirst 列表前先跑一次结算，失败只记日志
func (h *SlipHandler) settleFirst(c *gin.Context) {
	if _, _, err := h.settlement.CheckAndSettle(c.Request.Context()); err != nil {
		h.logger.WithError(err).Warn("列表前结算失败")
	}
}

// ListSlips 投注单列表 GET /api/slips?status=pending|settled|all&limit=50
func (h *SlipHandler) ListSlips(c *gin.Context) {
	h.settleFirst(c)

	status := strings.ToLower(c.DefaultQuery("status", "pending"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	ctx := c.Request.Context()

	var (
		items []service.SlipItem
		err   error
	)
	switch status {
	case "pending":
		slips, e := h.slips.ListPending(ctx)
		items, err = service.NewSlipItems(slips), e
	case "settled":
		slips, e := h.slips.ListSettled(ctx, limit)
		items, err = service.NewSlipItems(slips), e
	case "all":
		slips, e := h.slips.ListAll(ctx, limit)
		items, err = service.NewSlipItems(slips), e
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of pending, settled, all"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("ListSlips failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "items": items})
}

func parseSlipID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return id, true
}

// GetSlip 投注单详情 GET /api/slips/:id；先结算，已结算的单附带结算记录
func (h *SlipHandler) GetSlip(c *gin.Context) {
	id, ok := parseSlipID(c)
	if !ok {
		return
	}
	h.settleFirst(c)

	ctx := c.Request.Context()
	slip, err := h.slips.GetSlip(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "slip not found"})
			return
		}
		h.logger.WithError(err).Error("GetSlip failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.slips.GetSettlement(ctx, id)
	if err != nil {
		h.logger.WithError(err).Error("GetSettlement failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, service.NewSlipDetail(slip, rec))
}

// CancelSlip 撤单 DELETE /api/slips/:id；单不存在返回 404，被拒绝时返回 409 与原因
func (h *SlipHandler) CancelSlip(c *gin.Context) {
	id, ok := parseSlipID(c)
	if !ok {
		return
	}
	if _, err := h.slips.GetSlip(c.Request.Context(), id); errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"canceled": false, "message": fmt.Sprintf("Slip #%d not found.", id)})
		return
	}
	canceled, msg := h.cancel.Cancel(c.Request.Context(), id)
	if !canceled {
		c.JSON(http.StatusConflict, gin.H{"canceled": false, "message": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"canceled": true, "message": msg})
}

// RunSettlement 手动结算 POST /api/settlement/run
func (h *SlipHandler) RunSettlement(c *gin.Context) {
	checked, settled, err := h.settlement.CheckAndSettle(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("RunSettlement failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"checked": checked, "settled": settled})
}
