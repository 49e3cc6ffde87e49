package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"ParlaySync/internal/adapter/espn"
	"ParlaySync/internal/interfaces"
	"ParlaySync/internal/model"
	"ParlaySync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ScheduleService 赛程与排名的拉取、过滤与入库
type ScheduleService struct {
	source      interfaces.SportsDataSource
	gameRepo    repository.GameRepository
	rankingRepo repository.RankingRepository
	logger      *logrus.Logger
}

// NewScheduleService 创建赛程服务
func NewScheduleService(
	source interfaces.SportsDataSource,
	gameRepo repository.GameRepository,
	rankingRepo repository.RankingRepository,
	logger *logrus.Logger,
) *ScheduleService {
	return &ScheduleService{
		source:      source,
		gameRepo:    gameRepo,
		rankingRepo: rankingRepo,
		logger:      logger,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func (s *ScheduleService) fetchGames(ctx context.Context, week *int, seasonType int) ([]*model.Game, error) {
	sb, err := s.source.FetchScoreboard(ctx, interfaces.ScoreboardQuery{Week: week, SeasonType: seasonType})
	if err != nil {
		return nil, err
	}
	return slices.Collect(espn.ParseGames(sb)), nil
}

// SyncWeek 拉取一周赛程并逐条入库；重复赛事与单条失败只记日志并跳过
func (s *ScheduleService) SyncWeek(ctx context.Context, week *int, seasonType int) (int, error) {
	sb, err := s.source.FetchScoreboard(ctx, interfaces.ScoreboardQuery{Week: week, SeasonType: seasonType})
	if err != nil {
		return 0, fmt.Errorf("%s拉取赛程失败: %w", s.source.GetName(), err)
	}

	saved := 0
	for g := range espn.ParseGames(sb) {
		if err := s.gameRepo.CreateGame(ctx, g); err != nil {
			log := s.logger.WithField("event_id", g.EventID)
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				log.Debug("赛事已存在，跳过")
			} else {
				log.WithError(err).Warn("保存赛事失败，跳过")
			}
			continue
		}
		saved++
	}
	s.logger.WithFields(logrus.Fields{"season_type": seasonType, "week": weekField(week), "saved": saved}).Info("赛程同步完成")
	return saved, nil
}

func weekField(week *int) interface{} {
	if week == nil {
		return "current"
	}
	return *week
}

// SyncSeason 遍历整季所有 (赛季类型, 周次)；单周失败不影响其他周
func (s *ScheduleService) SyncSeason(ctx context.Context) (int, error) {
	total := 0
	for _, sw := range espn.SeasonWeeks() {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		week := sw.Week
		n, err := s.SyncWeek(ctx, &week, sw.SeasonType)
		if err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"season_type": sw.SeasonType,
				"week":        sw.Week,
			}).Warn("单周赛程同步失败，继续下一周")
			continue
		}
		total += n
	}
	s.logger.WithField("saved", total).Info("整季赛程同步完成")
	return total, nil
}

// UpcomingGames 当前周未开赛的比赛（实时拉取，不入库）
func (s *ScheduleService) UpcomingGames(ctx context.Context) ([]*model.Game, error) {
	games, err := s.fetchGames(ctx, nil, model.SeasonTypeRegular)
	if err != nil {
		return nil, fmt.Errorf("拉取未开赛赛程失败: %w", err)
	}
	return espn.FilterUpcoming(games), nil
}

// FinalGames 指定周（nil 为当前周）已结束的比赛
func (s *ScheduleService) FinalGames(ctx context.Context, week *int) ([]*model.Game, error) {
	games, err := s.fetchGames(ctx, week, model.SeasonTypeRegular)
	if err != nil {
		return nil, fmt.Errorf("拉取已结束赛程失败: %w", err)
	}
	return espn.FilterFinal(games), nil
}

// ListGames 已入库的赛程，按开赛时间升序
func (s *ScheduleService) ListGames(ctx context.Context, limit int) ([]*model.Game, error) {
	return s.gameRepo.ListGames(ctx, limit)
}

// SyncRankings 拉取全部榜单并按 (赛季, 周次, 榜单) 整体替换
func (s *ScheduleService) SyncRankings(ctx context.Context) (int, error) {
	rj, err := s.source.FetchRankings(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s拉取排名失败: %w", s.source.GetName(), err)
	}
	ranks := slices.Collect(espn.ParseRankings(rj))
	if err := s.rankingRepo.ReplaceRankings(ctx, ranks); err != nil {
		return 0, err
	}
	s.logger.WithField("rows", len(ranks)).Info("排名同步完成")
	return len(ranks), nil
}

// Top25 实时拉取并选出一份前 25 名榜单
func (s *ScheduleService) Top25(ctx context.Context) ([]model.TopRank, error) {
	rj, err := s.source.FetchRankings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s拉取排名失败: %w", s.source.GetName(), err)
	}
	return espn.ExtractTop25(rj), nil
}

// Rankings 已入库的排名
func (s *ScheduleService) Rankings(ctx context.Context, filter repository.RankingFilter) ([]*model.Ranking, error) {
	return s.rankingRepo.ListRankings(ctx, filter)
}
