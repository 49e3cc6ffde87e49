package repository

import (
	"context"
	"errors"
	"fmt"

	"ParlaySync/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletRepository 钱包余额与流水；每次余额变动都在同一事务内写一条流水
type WalletRepository interface {
	// GetWallet 不存在时返回 gorm.ErrRecordNotFound
	GetWallet(ctx context.Context, owner string) (*model.Wallet, error)
	// AdjustBalance 余额加 delta；allowNegative=false 时余额不足返回 false
	AdjustBalance(ctx context.Context, owner string, delta decimal.Decimal, reason string, allowNegative bool) (bool, error)
	// SetBalance 将余额设为 target；已是 target 时不写任何数据并返回 false
	SetBalance(ctx context.Context, owner string, target decimal.Decimal, reason string) (bool, error)
	// ListTxs 按时间倒序
	ListTxs(ctx context.Context, owner string, limit int) ([]*model.WalletTx, error)
}

type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository 创建钱包仓储
func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func getOrCreateWallet(tx *gorm.DB, owner string) (*model.Wallet, error) {
	var w model.Wallet
	err := tx.Where("owner = ?", owner).First(&w).Error
	if err == nil {
		return &w, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	w = model.Wallet{Owner: owner, Balance: decimal.Zero}
	if err := tx.Create(&w).Error; err != nil {
		return nil, fmt.Errorf("创建钱包失败 owner=%s: %w", owner, err)
	}
	return &w, nil
}

func writeBalance(tx *gorm.DB, w *model.Wallet, newBalance, amount decimal.Decimal, reason string) error {
	if err := tx.Model(&model.Wallet{}).Where("id = ?", w.ID).Update("balance", newBalance).Error; err != nil {
		return fmt.Errorf("更新余额失败 owner=%s: %w", w.Owner, err)
	}
	entry := &model.WalletTx{
		TxUUID: uuid.NewString(),
		Owner:  w.Owner,
		Amount: amount,
		Reason: reason,
	}
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("写入钱包流水失败 owner=%s: %w", w.Owner, err)
	}
	w.Balance = newBalance
	return nil
}

func (r *walletRepository) GetWallet(ctx context.Context, owner string) (*model.Wallet, error) {
	var w model.Wallet
	if err := r.db.WithContext(ctx).Where("owner = ?", owner).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *walletRepository) AdjustBalance(ctx context.Context, owner string, delta decimal.Decimal, reason string, allowNegative bool) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := getOrCreateWallet(tx, owner)
		if err != nil {
			return err
		}
		next := w.Balance.Add(delta)
		if !allowNegative && next.IsNegative() {
			return nil
		}
		if err := writeBalance(tx, w, next, delta, reason); err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}

func (r *walletRepository) SetBalance(ctx context.Context, owner string, target decimal.Decimal, reason string) (bool, error) {
	changed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := getOrCreateWallet(tx, owner)
		if err != nil {
			return err
		}
		delta := target.Sub(w.Balance).Round(2)
		if delta.IsZero() {
			return nil
		}
		if err := writeBalance(tx, w, target, delta, reason); err != nil {
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}

func (r *walletRepository) ListTxs(ctx context.Context, owner string, limit int) ([]*model.WalletTx, error) {
	if limit <= 0 {
		limit = 50
	}
	var list []*model.WalletTx
	if err := r.db.WithContext(ctx).Where("owner = ?", owner).
		Order("created_at DESC").Order("id DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
