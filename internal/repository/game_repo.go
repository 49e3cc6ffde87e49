package repository

import (
	"context"
	"fmt"

	"ParlaySync/internal/model"

	"gorm.io/gorm"
)

// GameRepository 赛程持久化
type GameRepository interface {
	// CreateGame 插入单场比赛；event_id 重复时返回 gorm.ErrDuplicatedKey
	CreateGame(ctx context.Context, g *model.Game) error
	// ListGames 按开赛时间升序
	ListGames(ctx context.Context, limit int) ([]*model.Game, error)
}

type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository 创建赛程仓储
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) CreateGame(ctx context.Context, g *model.Game) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("保存Game失败 event_id=%s: %w", g.EventID, err)
	}
	return nil
}

func (r *gameRepository) ListGames(ctx context.Context, limit int) ([]*model.Game, error) {
	if limit <= 0 {
		limit = 25
	}
	var games []*model.Game
	if err := r.db.WithContext(ctx).Order("start ASC").Order("id ASC").Limit(limit).Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}
