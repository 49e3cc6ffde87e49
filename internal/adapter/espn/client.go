package espn

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"ParlaySync/internal/adapter"
	"ParlaySync/internal/config"
	"ParlaySync/internal/interfaces"
	"ParlaySync/internal/model"
	"ParlaySync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// ProviderName 注册表中的数据源名称
const ProviderName = "espn"

func init() {
	adapter.Register(ProviderName, NewSource)
}

// Client ESPN 大学橄榄球站点 API 客户端
type Client struct {
	baseURL    string
	httpClient *httpclient.Client
	logger     *logrus.Logger
}

// NewSource 工厂函数
func NewSource(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.SportsDataSource {
	return NewClient(cfg, logger)
}

// NewClient 创建 ESPN 客户端
func NewClient(cfg *config.SourceConfig, logger *logrus.Logger) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultESPNBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpclient.New(cfg, logger),
		logger:     logger,
	}
}

func (c *Client) GetName() string {
	return "ESPN"
}

// FetchScoreboard 拉取赛程/比分
func (c *Client) FetchScoreboard(ctx context.Context, q interfaces.ScoreboardQuery) (*model.ScoreboardPayload, error) {
	seasonType := q.SeasonType
	if seasonType == 0 {
		seasonType = model.SeasonTypeRegular
	}
	params := url.Values{}
	params.Set("seasontype", strconv.Itoa(seasonType))
	if q.Week != nil {
		params.Set("week", strconv.Itoa(*q.Week))
	}
	if q.Dates != "" {
		params.Set("dates", q.Dates)
	}
	var out model.ScoreboardPayload
	if err := c.getJSON(ctx, "/scoreboard", params, &out); err != nil {
		return nil, fmt.Errorf("获取ESPN赛程失败: %w", err)
	}
	return &out, nil
}

// FetchSummary 拉取单场比赛 summary
func (c *Client) FetchSummary(ctx context.Context, eventID string) (*model.SummaryPayload, error) {
	params := url.Values{}
	params.Set("event", eventID)
	var out model.SummaryPayload
	if err := c.getJSON(ctx, "/summary", params, &out); err != nil {
		return nil, fmt.Errorf("获取ESPN比赛摘要失败 event=%s: %w", eventID, err)
	}
	return &out, nil
}

// FetchRankings 拉取当前排名
func (c *Client) FetchRankings(ctx context.Context) (*model.RankingsPayload, error) {
	var out model.RankingsPayload
	if err := c.getJSON(ctx, "/rankings", nil, &out); err != nil {
		return nil, fmt.Errorf("获取ESPN排名失败: %w", err)
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	return c.httpClient.GetJSON(ctx, reqURL, out)
}
