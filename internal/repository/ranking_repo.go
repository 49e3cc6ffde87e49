package repository

import (
	"context"
	"fmt"

	"ParlaySync/internal/model"

	"gorm.io/gorm"
)

// RankingFilter 排名查询条件，零值表示不过滤
type RankingFilter struct {
	Poll       string
	SeasonYear int
	Week       int
}

// RankingRepository 排名持久化
type RankingRepository interface {
	// ReplaceRankings 按 (season_year, week, poll) 整体替换快照，单事务
	ReplaceRankings(ctx context.Context, ranks []*model.Ranking) error
	ListRankings(ctx context.Context, filter RankingFilter) ([]*model.Ranking, error)
}

type rankingRepository struct {
	db *gorm.DB
}

// NewRankingRepository 创建排名仓储
func NewRankingRepository(db *gorm.DB) RankingRepository {
	return &rankingRepository{db: db}
}

type snapshotKey struct {
	seasonYear int
	week       int
	poll       string
}

func (r *rankingRepository) ReplaceRankings(ctx context.Context, ranks []*model.Ranking) error {
	if len(ranks) == 0 {
		return nil
	}
	seen := make(map[snapshotKey]struct{})
	var keys []snapshotKey
	for _, rk := range ranks {
		k := snapshotKey{seasonYear: rk.SeasonYear, week: rk.Week, poll: rk.Poll}
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, k := range keys {
			if err := tx.Where("season_year = ? AND week = ? AND poll = ?", k.seasonYear, k.week, k.poll).
				Delete(&model.Ranking{}).Error; err != nil {
				return fmt.Errorf("删除旧排名失败 poll=%s: %w", k.poll, err)
			}
		}
		if err := tx.CreateInBatches(ranks, 100).Error; err != nil {
			return fmt.Errorf("保存排名失败: %w", err)
		}
		return nil
	})
}

func (r *rankingRepository) ListRankings(ctx context.Context, filter RankingFilter) ([]*model.Ranking, error) {
	db := r.db.WithContext(ctx).Model(&model.Ranking{})
	if filter.Poll != "" {
		db = db.Where("poll = ?", filter.Poll)
	}
	if filter.SeasonYear != 0 {
		db = db.Where("season_year = ?", filter.SeasonYear)
	}
	if filter.Week != 0 {
		db = db.Where("week = ?", filter.Week)
	}
	var list []*model.Ranking
	if err := db.Order("rank ASC").Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
