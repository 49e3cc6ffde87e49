package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"ParlaySync/internal/model"
	"ParlaySync/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ValidationError 下单参数校验失败，Message 可直接展示给用户
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// LegInput 一条腿的输入：上游赛事 ID 与选择的获胜队名（需与上游展示名完全一致）
type LegInput struct {
	EventID string `json:"event_id" validate:"required"`
	Pick    string `json:"pick" validate:"required"`
}

// SlipService 投注单的创建与查询
type SlipService struct {
	slipRepo repository.SlipRepository
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewSlipService 创建投注单服务
func NewSlipService(slipRepo repository.SlipRepository, logger *logrus.Logger) *SlipService {
	return &SlipService{
		slipRepo: slipRepo,
		validate: validator.New(),
		logger:   logger,
	}
}

// CreateSlip 校验并保存一张 PENDING 投注单。
// 只记录，不检查也不扣减钱包余额；同一赛事出现在多条腿上不做拦截
func (s *SlipService) CreateSlip(ctx context.Context, legs []LegInput, stake string) (*model.Slip, error) {
	n := len(legs)
	if !model.IsAllowedLegCount(n) {
		return nil, &ValidationError{Message: fmt.Sprintf("Leg count must be one of %v.", model.AllowedLegCounts)}
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(stake))
	if err != nil {
		return nil, &ValidationError{Message: "Stake must be a number."}
	}
	// 库里按 numeric(18,2) 存，先舍入到分再判断是否大于 0
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return nil, &ValidationError{Message: "Stake must be > 0."}
	}

	slip := &model.Slip{
		SlipUUID:  uuid.NewString(),
		LegsCount: n,
		Stake:     amount,
		Status:    model.SlipPending,
		Legs:      make([]model.Leg, 0, n),
	}
	for i, in := range legs {
		in.EventID = strings.TrimSpace(in.EventID)
		in.Pick = strings.TrimSpace(in.Pick)
		if err := s.validate.Struct(in); err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("Leg %d needs an event id and a pick.", i+1)}
		}
		slip.Legs = append(slip.Legs, model.Leg{
			Position:     i + 1,
			EventID:      in.EventID,
			PickTeamName: in.Pick,
			Result:       model.LegPending,
		})
	}

	if err := s.slipRepo.CreateSlip(ctx, slip); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"slip_id": slip.ID,
		"legs":    n,
		"stake":   amount.StringFixed(2),
	}).Info("投注单已创建")
	return slip, nil
}

var stakePrefix = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)`)

// ParseStake 宽松解析用户输入的金额：去掉 $、逗号与空白后取开头的数字部分。
// 结果舍入到分，大于 0 时 ok 为 true
func ParseStake(raw string) (decimal.Decimal, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, raw)
	m := stakePrefix.FindString(cleaned)
	if m == "" {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(strings.TrimSuffix(m, "."))
	if err != nil {
		return decimal.Zero, false
	}
	v = v.Round(2)
	return v, v.IsPositive()
}

// GetSlip 按 ID 查询投注单（含腿）
func (s *SlipService) GetSlip(ctx context.Context, id uint64) (*model.Slip, error) {
	return s.slipRepo.GetSlip(ctx, id)
}

// GetSettlement 投注单的结算记录；尚未结算时返回 nil, nil
func (s *SlipService) GetSettlement(ctx context.Context, slipID uint64) (*model.SettlementRecord, error) {
	rec, err := s.slipRepo.GetSettlementRecord(ctx, slipID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return rec, err
}

// ListPending 未结算投注单，按创建时间升序
func (s *SlipService) ListPending(ctx context.Context) ([]*model.Slip, error) {
	return s.slipRepo.ListPending(ctx)
}

// ListSettled 已结算投注单，最新在前
func (s *SlipService) ListSettled(ctx context.Context, limit int) ([]*model.Slip, error) {
	return s.slipRepo.ListByStatus(ctx, model.SlipSettled, limit)
}

// ListAll 全部投注单，最新在前
func (s *SlipService) ListAll(ctx context.Context, limit int) ([]*model.Slip, error) {
	return s.slipRepo.ListByStatus(ctx, "", limit)
}
