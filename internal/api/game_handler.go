package api

import (
	"errors"
	"net/http"
	"strconv"

	"ParlaySync/internal/repository"
	"ParlaySync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GameHandler 赛程、排名与单场摘要查询
type GameHandler struct {
	schedule *service.ScheduleService
	resolver *service.ResolverService
	logger   *logrus.Logger
}

// NewGameHandler 创建 GameHandler
func NewGameHandler(schedule *service.ScheduleService, resolver *service.ResolverService, logger *logrus.Logger) *GameHandler {
	return &GameHandler{schedule: schedule, resolver: resolver, logger: logger}
}

// UpcomingGames 当前周未开赛比赛 GET /api/games/upcoming
func (h *GameHandler) UpcomingGames(c *gin.Context) {
	games, err := h.schedule.UpcomingGames(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("UpcomingGames failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": service.NewGameItems(games)})
}

// FinalGames 已结束比赛 GET /api/games/final?week=N
func (h *GameHandler) FinalGames(c *gin.Context) {
	week, err := optionalInt(c, "week")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week must be an integer"})
		return
	}
	games, err := h.schedule.FinalGames(c.Request.Context(), week)
	if err != nil {
		h.logger.WithError(err).Error("FinalGames failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": service.NewGameItems(games)})
}

// ListGames 已入库赛程 GET /api/games?limit=25
func (h *GameHandler) ListGames(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	games, err := h.schedule.ListGames(c.Request.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("ListGames failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": service.NewGameItems(games)})
}

// GameSummary 单场摘要 GET /api/games/:event_id/summary
func (h *GameHandler) GameSummary(c *gin.Context) {
	eventID := c.Param("event_id")
	summary, err := h.resolver.Summary(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrNoCompetition) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).WithField("event_id", eventID).Error("GameSummary failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Top25 实时前 25 名 GET /api/rankings/top25
func (h *GameHandler) Top25(c *gin.Context) {
	ranks, err := h.schedule.Top25(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Top25 failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": ranks})
}

// ListRankings 已入库排名 GET /api/rankings?poll=&season_year=&week=
func (h *GameHandler) ListRankings(c *gin.Context) {
	seasonYear, _ := strconv.Atoi(c.Query("season_year"))
	week, _ := strconv.Atoi(c.Query("week"))
	filter := repository.RankingFilter{
		Poll:       c.Query("poll"),
		SeasonYear: seasonYear,
		Week:       week,
	}
	ranks, err := h.schedule.Rankings(c.Request.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("ListRankings failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": service.NewRankingItems(ranks)})
}
