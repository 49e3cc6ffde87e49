package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ParlaySync/internal/model"

	"gorm.io/gorm"
)

// ErrSlipNotPending 结算写回时投注单已不是 PENDING（被并发结算或撤单）
var ErrSlipNotPending = errors.New("slip is no longer pending")

// SlipRepository 投注单及其腿的持久化
type SlipRepository interface {
	// CreateSlip 投注单与全部腿在同一事务内写入
	CreateSlip(ctx context.Context, slip *model.Slip) error
	GetSlip(ctx context.Context, id uint64) (*model.Slip, error)
	// ListPending 按创建时间升序
	ListPending(ctx context.Context) ([]*model.Slip, error)
	// ListByStatus 按创建时间倒序；status 为空表示全部
	ListByStatus(ctx context.Context, status model.SlipStatus, limit int) ([]*model.Slip, error)
	// SaveSettlement 同一事务写回腿结果、单状态与结算记录（record 可为 nil）
	SaveSettlement(ctx context.Context, slip *model.Slip, record *model.SettlementRecord) error
	// DeleteSlip 同一事务先删腿再删单
	DeleteSlip(ctx context.Context, id uint64) error
	GetSettlementRecord(ctx context.Context, slipID uint64) (*model.SettlementRecord, error)
}

type slipRepository struct {
	db *gorm.DB
}

// NewSlipRepository 创建投注单仓储
func NewSlipRepository(db *gorm.DB) SlipRepository {
	return &slipRepository{db: db}
}

func preloadLegs(db *gorm.DB) *gorm.DB {
	return db.Preload("Legs", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (r *slipRepository) CreateSlip(ctx context.Context, slip *model.Slip) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(slip).Error; err != nil {
			return fmt.Errorf("保存Slip失败: %w", err)
		}
		return nil
	})
}

func (r *slipRepository) GetSlip(ctx context.Context, id uint64) (*model.Slip, error) {
	var s model.Slip
	if err := preloadLegs(r.db.WithContext(ctx)).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *slipRepository) ListPending(ctx context.Context) ([]*model.Slip, error) {
	var list []*model.Slip
	if err := preloadLegs(r.db.WithContext(ctx)).
		Where("status = ?", model.SlipPending).
		Order("created_at ASC").Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *slipRepository) ListByStatus(ctx context.Context, status model.SlipStatus, limit int) ([]*model.Slip, error) {
	if limit <= 0 {
		limit = 50
	}
	db := preloadLegs(r.db.WithContext(ctx)).Model(&model.Slip{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	var list []*model.Slip
	if err := db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *slipRepository) SaveSettlement(ctx context.Context, slip *model.Slip, record *model.SettlementRecord) error {
	// 开启事务
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("开启事务失败: %w", tx.Error)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	// 1. 写回腿结果
	for i := range slip.Legs {
		leg := &slip.Legs[i]
		if err := tx.Model(&model.Leg{}).Where("id = ?", leg.ID).
			Update("result", leg.Result).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("更新腿结果失败 leg_id=%d: %w", leg.ID, err)
		}
	}

	// 2. 单状态变化时写回（乐观检查：只允许从 PENDING 迁移）
	if slip.Status != model.SlipPending {
		res := tx.Model(&model.Slip{}).
			Where("id = ? AND status = ?", slip.ID, model.SlipPending).
			Updates(map[string]interface{}{
				"status":     slip.Status,
				"settled_at": slip.SettledAt,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			tx.Rollback()
			return fmt.Errorf("更新Slip状态失败 slip_id=%d: %w", slip.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			tx.Rollback()
			return fmt.Errorf("slip_id=%d: %w", slip.ID, ErrSlipNotPending)
		}
	}

	// 3. 结算记录
	if record != nil {
		if err := tx.Create(record).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("保存结算记录失败 slip_id=%d: %w", slip.ID, err)
		}
	}

	// 提交事务
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("提交事务失败: %w", err)
	}
	return nil
}

func (r *slipRepository) DeleteSlip(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("slip_id = ?", id).Delete(&model.Leg{}).Error; err != nil {
			return fmt.Errorf("删除腿失败: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&model.Slip{})
		if res.Error != nil {
			return fmt.Errorf("删除Slip失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *slipRepository) GetSettlementRecord(ctx context.Context, slipID uint64) (*model.SettlementRecord, error) {
	var rec model.SettlementRecord
	if err := r.db.WithContext(ctx).Where("slip_id = ?", slipID).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}
