package service

import (
	"context"
	"fmt"

	"ParlaySync/internal/model"
	"ParlaySync/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// WalletService 单用户游戏币钱包
type WalletService struct {
	repo   repository.WalletRepository
	owner  string
	logger *logrus.Logger
}

// NewWalletService 创建钱包服务；owner 为空时使用 default
func NewWalletService(repo repository.WalletRepository, owner string, logger *logrus.Logger) *WalletService {
	if owner == "" {
		owner = "default"
	}
	return &WalletService{repo: repo, owner: owner, logger: logger}
}

// Owner 钱包所有者
func (s *WalletService) Owner() string {
	return s.owner
}

// Balance 当前余额；钱包不存在时为 0
func (s *WalletService) Balance(ctx context.Context) (decimal.Decimal, error) {
	w, err := s.repo.GetWallet(ctx, s.owner)
	if err != nil {
		if isNotFound(err) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return w.Balance, nil
}

// Credit 入账，金额必须大于 0
func (s *WalletService) Credit(ctx context.Context, amount decimal.Decimal, reason string) bool {
	if !amount.IsPositive() {
		return false
	}
	if reason == "" {
		reason = "credit"
	}
	ok, err := s.repo.AdjustBalance(ctx, s.owner, amount, reason, true)
	if err != nil {
		s.logger.WithError(err).WithField("amount", amount.StringFixed(2)).Error("钱包入账失败")
		return false
	}
	return ok
}

// Debit 出账，余额不足时返回 false
func (s *WalletService) Debit(ctx context.Context, amount decimal.Decimal, reason string) bool {
	if !amount.IsPositive() {
		return false
	}
	if reason == "" {
		reason = "debit"
	}
	ok, err := s.repo.AdjustBalance(ctx, s.owner, amount.Neg(), reason, false)
	if err != nil {
		s.logger.WithError(err).WithField("amount", amount.StringFixed(2)).Error("钱包出账失败")
		return false
	}
	return ok
}

// Reset 将余额重置为 target；已是 target 时不写任何数据
func (s *WalletService) Reset(ctx context.Context, target decimal.Decimal) error {
	target = target.Round(2)
	changed, err := s.repo.SetBalance(ctx, s.owner, target, fmt.Sprintf("Wallet reset to %s", target.StringFixed(2)))
	if err != nil {
		return fmt.Errorf("重置钱包失败: %w", err)
	}
	if changed {
		s.logger.WithField("balance", target.StringFixed(2)).Info("钱包余额已重置")
	}
	return nil
}

// History 钱包流水，最新在前
func (s *WalletService) History(ctx context.Context, limit int) ([]*model.WalletTx, error) {
	return s.repo.ListTxs(ctx, s.owner, limit)
}
