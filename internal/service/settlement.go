package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ParlaySync/internal/interfaces"
	"ParlaySync/internal/model"
	"ParlaySync/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// 派彩倍率（按腿数），仅在开启派彩时使用
var payoutMultipliers = map[int]decimal.Decimal{
	1: decimal.RequireFromString("1.9"),
	3: decimal.NewFromInt(5),
	5: decimal.NewFromInt(12),
	7: decimal.NewFromInt(25),
}

// PayoutMultiplier 腿数对应的派彩倍率，未知腿数为 1
func PayoutMultiplier(legsCount int) decimal.Decimal {
	if m, ok := payoutMultipliers[legsCount]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

// SettlementService 对 PENDING 投注单逐腿判定并结算
type SettlementService struct {
	slipRepo    repository.SlipRepository
	resolver    interfaces.OutcomeResolver
	wallet      interfaces.WalletCreditor
	creditOnWin bool
	logger      *logrus.Logger
}

// NewSettlementService 创建结算服务；wallet 为 nil 或 creditOnWin=false 时不派彩
func NewSettlementService(
	slipRepo repository.SlipRepository,
	resolver interfaces.OutcomeResolver,
	wallet interfaces.WalletCreditor,
	creditOnWin bool,
	logger *logrus.Logger,
) *SettlementService {
	return &SettlementService{
		slipRepo:    slipRepo,
		resolver:    resolver,
		wallet:      wallet,
		creditOnWin: creditOnWin,
		logger:      logger,
	}
}

type resolveResult struct {
	res model.Resolution
	err error
}

type legSnapshot struct {
	Position int             `json:"position"`
	EventID  string          `json:"event_id"`
	Pick     string          `json:"pick"`
	Result   model.LegResult `json:"result"`
}

// CheckAndSettle 执行一次结算。checked 为本次检查的 PENDING 单数，settled 为本次结算的单数。
// 单腿拉取失败只会让该腿保持 PENDING，不影响其他腿和其他单
func (s *SettlementService) CheckAndSettle(ctx context.Context) (checked, settled int, err error) {
	slips, err := s.slipRepo.ListPending(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("查询待结算投注单失败: %w", err)
	}

	// 同一次结算内，同一赛事只拉取一次
	memo := make(map[string]resolveResult)
	for _, slip := range slips {
		checked++
		ok, err := s.settleSlip(ctx, slip, memo)
		if err != nil {
			s.logger.WithError(err).WithField("slip_id", slip.ID).Warn("投注单结算写回失败")
			continue
		}
		if ok {
			settled++
		}
	}

	if checked > 0 {
		s.logger.WithFields(logrus.Fields{"checked": checked, "settled": settled}).Info("结算完成")
	}
	return checked, settled, nil
}

func (s *SettlementService) resolve(ctx context.Context, eventID string, memo map[string]resolveResult) (model.Resolution, error) {
	if r, ok := memo[eventID]; ok {
		return r.res, r.err
	}
	res, err := s.resolver.Resolve(ctx, eventID)
	memo[eventID] = resolveResult{res: res, err: err}
	return res, err
}

func (s *SettlementService) settleSlip(ctx context.Context, slip *model.Slip, memo map[string]resolveResult) (bool, error) {
	changed := false
	for i := range slip.Legs {
		leg := &slip.Legs[i]
		if leg.Result.Terminal() {
			continue
		}
		res, err := s.resolve(ctx, leg.EventID, memo)
		if err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"slip_id":  slip.ID,
				"leg":      leg.Position,
				"event_id": leg.EventID,
			}).Warn("赛果拉取失败，本腿暂不判定")
			continue
		}
		if !res.Final {
			continue
		}
		// 完赛但没有胜者也按输处理
		if res.HasWinner && res.Winner == leg.PickTeamName {
			leg.Result = model.LegWin
		} else {
			leg.Result = model.LegLoss
		}
		changed = true
	}

	if !slip.AllLegsTerminal() {
		if !changed {
			return false, nil
		}
		// 只写回已判定的腿，单仍为 PENDING
		return false, s.slipRepo.SaveSettlement(ctx, slip, nil)
	}

	outcome := slip.Outcome()
	wins, losses := slip.WinsLosses()
	payout := decimal.Zero
	if outcome == model.SlipWon && s.creditEnabled() {
		payout = slip.Stake.Mul(PayoutMultiplier(slip.LegsCount)).Round(2)
	}

	snapshot := make([]legSnapshot, 0, len(slip.Legs))
	for _, l := range slip.Legs {
		snapshot = append(snapshot, legSnapshot{Position: l.Position, EventID: l.EventID, Pick: l.PickTeamName, Result: l.Result})
	}
	legsJSON, err := json.Marshal(snapshot)
	if err != nil {
		return false, fmt.Errorf("序列化腿快照失败: %w", err)
	}

	now := time.Now().UTC()
	slip.Status = model.SlipSettled
	slip.SettledAt = &now
	record := &model.SettlementRecord{
		SlipID:    slip.ID,
		SlipUUID:  slip.SlipUUID,
		Outcome:   outcome,
		Wins:      wins,
		Losses:    losses,
		Required:  slip.RequiredWins(),
		Stake:     slip.Stake,
		Payout:    payout,
		Legs:      datatypes.JSON(legsJSON),
		SettledAt: now,
	}
	if err := s.slipRepo.SaveSettlement(ctx, slip, record); err != nil {
		return false, err
	}

	log := s.logger.WithFields(logrus.Fields{
		"slip_id":  slip.ID,
		"outcome":  outcome,
		"wins":     wins,
		"required": slip.RequiredWins(),
	})
	if payout.IsPositive() {
		reason := fmt.Sprintf("Payout for %d-leg slip #%d", slip.LegsCount, slip.ID)
		if !s.wallet.Credit(ctx, payout, reason) {
			log.WithField("payout", payout.StringFixed(2)).Error("派彩入账失败")
		} else {
			log = log.WithField("payout", payout.StringFixed(2))
		}
	}
	log.Info("投注单已结算")
	return true, nil
}

func (s *SettlementService) creditEnabled() bool {
	return s.creditOnWin && s.wallet != nil
}
