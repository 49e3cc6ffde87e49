package interfaces

import (
	"context"

	"ParlaySync/internal/config"
	"ParlaySync/internal/model"

	"github.com/sirupsen/logrus"
)

// ScoreboardQuery 赛程查询参数；Week/Dates 为空时由上游决定当前周
type ScoreboardQuery struct {
	Week       *int   // 周次（可选）
	SeasonType int    // 赛季类型：2=常规赛，3=季后赛
	Dates      string // YYYYMMDD 或区间（可选，替代 Week）
}

// SummaryFetcher 拉取单场比赛 summary
type SummaryFetcher interface {
	FetchSummary(ctx context.Context, eventID string) (*model.SummaryPayload, error)
}

// SportsDataSource 上游体育数据源必须实现的只读接口
type SportsDataSource interface {
	SummaryFetcher
	GetName() string                                                                          // 数据源名称
	FetchScoreboard(ctx context.Context, q ScoreboardQuery) (*model.ScoreboardPayload, error) // 赛程/比分
	FetchRankings(ctx context.Context) (*model.RankingsPayload, error)                        // 排名
}

// Factory 数据源工厂函数签名
type Factory func(cfg *config.SourceConfig, logger *logrus.Logger) SportsDataSource
