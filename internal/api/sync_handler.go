package api

import (
	"net/http"
	"strconv"

	"ParlaySync/internal/model"
	"ParlaySync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SyncHandler 触发赛程与排名入库
type SyncHandler struct {
	schedule *service.ScheduleService
	logger   *logrus.Logger
}

// NewSyncHandler 创建 SyncHandler
func NewSyncHandler(schedule *service.ScheduleService, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{schedule: schedule, logger: logger}
}

// optionalInt 解析可选整数参数；缺省返回 nil，非法时返回错误
func optionalInt(c *gin.Context, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// SyncGames 同步一周赛程
// POST /sync/games?week=N&seasontype=2
func (h *SyncHandler) SyncGames(c *gin.Context) {
	week, err := optionalInt(c, "week")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week must be an integer"})
		return
	}
	seasonType, err := strconv.Atoi(c.DefaultQuery("seasontype", strconv.Itoa(model.SeasonTypeRegular)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seasontype must be an integer"})
		return
	}

	saved, err := h.schedule.SyncWeek(c.Request.Context(), week, seasonType)
	if err != nil {
		h.logger.WithError(err).Error("SyncGames failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

// SyncSeason 同步整季赛程 POST /sync/season
func (h *SyncHandler) SyncSeason(c *gin.Context) {
	saved, err := h.schedule.SyncSeason(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("SyncSeason failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "saved": saved})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

// SyncRankings 同步排名 POST /sync/rankings
func (h *SyncHandler) SyncRankings(c *gin.Context) {
	rows, err := h.schedule.SyncRankings(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("SyncRankings failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": rows})
}
