package interfaces

import (
	"context"

	"ParlaySync/internal/model"

	"github.com/shopspring/decimal"
)

// OutcomeResolver 按上游赛事 ID 解析比赛结果（结算引擎依赖此能力，测试时可替换为桩）
type OutcomeResolver interface {
	Resolve(ctx context.Context, eventID string) (model.Resolution, error)
}

// GameStateChecker 查询比赛机器状态（pre/in/post），撤单校验使用
type GameStateChecker interface {
	GameState(ctx context.Context, eventID string) (string, error)
}

// WalletCreditor 钱包入账能力（仅派彩开关打开时使用）
type WalletCreditor interface {
	Credit(ctx context.Context, amount decimal.Decimal, reason string) bool
}
