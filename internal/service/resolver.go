package service

import (
	"context"
	"errors"
	"fmt"

	"ParlaySync/internal/adapter/espn"
	"ParlaySync/internal/interfaces"
	"ParlaySync/internal/model"

	"github.com/sirupsen/logrus"
)

// ErrNoCompetition summary 中没有 competition 数据
var ErrNoCompetition = errors.New("summary has no competition data")

// ResolverService 基于上游 summary 的赛果解析，实现 OutcomeResolver 与 GameStateChecker
type ResolverService struct {
	fetcher interfaces.SummaryFetcher
	logger  *logrus.Logger
}

// NewResolverService 创建赛果解析服务
func NewResolverService(fetcher interfaces.SummaryFetcher, logger *logrus.Logger) *ResolverService {
	return &ResolverService{fetcher: fetcher, logger: logger}
}

// Resolve 拉取 summary 并解析胜者与是否完赛；拉取失败原样返回错误，由调用方决定如何处理
func (s *ResolverService) Resolve(ctx context.Context, eventID string) (model.Resolution, error) {
	summary, err := s.fetcher.FetchSummary(ctx, eventID)
	if err != nil {
		return model.Resolution{EventID: eventID}, err
	}
	res := espn.ResolveSummary(eventID, summary)
	s.logger.WithFields(logrus.Fields{
		"event_id": eventID,
		"state":    res.State,
		"winner":   res.Winner,
	}).Debug("赛果解析完成")
	return res, nil
}

// GameState 比赛机器状态（pre/in/post）；无 competition 数据时为空串
func (s *ResolverService) GameState(ctx context.Context, eventID string) (string, error) {
	summary, err := s.fetcher.FetchSummary(ctx, eventID)
	if err != nil {
		return "", err
	}
	return espn.GameState(summary), nil
}

// Summary 单场比赛展示摘要
func (s *ResolverService) Summary(ctx context.Context, eventID string) (*model.GameSummary, error) {
	summary, err := s.fetcher.FetchSummary(ctx, eventID)
	if err != nil {
		return nil, err
	}
	out, ok := espn.BuildSummary(eventID, summary)
	if !ok {
		return nil, fmt.Errorf("event=%s: %w", eventID, ErrNoCompetition)
	}
	return out, nil
}
