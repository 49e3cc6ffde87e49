package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Game 对应 games 表；每次拉取赛程重新生成，event_id 唯一，重复插入视为冲突而非合并
type Game struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	EventID    string    `gorm:"column:event_id;type:varchar(32);uniqueIndex;not null;comment:上游赛事ID"`
	Week       *int      `gorm:"column:week;comment:周次"`
	SeasonYear *int      `gorm:"column:season_year;comment:赛季年份"`
	Status     string    `gorm:"column:status;type:varchar(32);comment:上游状态描述（自由文本）"`
	Start      string    `gorm:"column:start;type:varchar(40);comment:开赛时间（ISO字符串，原样保存）"`
	HomeTeam   string    `gorm:"column:home_team;type:varchar(80);not null;comment:主队"`
	AwayTeam   string    `gorm:"column:away_team;type:varchar(80);not null;comment:客队"`
	HomeScore  *int      `gorm:"column:home_score;comment:主队得分"`
	AwayScore  *int      `gorm:"column:away_score;comment:客队得分"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime;comment:创建时间"`
}

// Label 单行展示：[状态] 客队 @ 主队 (比分) 开赛时间
func (g *Game) Label() string {
	score := "vs"
	if g.AwayScore != nil && g.HomeScore != nil {
		score = fmt.Sprintf("%d-%d", *g.AwayScore, *g.HomeScore)
	}
	status := g.Status
	if status == "" {
		status = "scheduled"
	}
	return fmt.Sprintf("[%s] %s @ %s (%s)  %s", status, g.AwayTeam, g.HomeTeam, score, g.Start)
}

// Ranking 对应 rankings 表；(season_year, week, poll) 为一份完整快照，整体替换
type Ranking struct {
	ID              uint64 `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Poll            string `gorm:"column:poll;type:varchar(40);index:idx_ranking_snapshot;not null;comment:榜单名称"`
	SeasonYear      int    `gorm:"column:season_year;index:idx_ranking_snapshot;comment:赛季年份"`
	Week            int    `gorm:"column:week;index:idx_ranking_snapshot;comment:周次"`
	Rank            int    `gorm:"column:rank;comment:排名（从1开始）"`
	TeamName        string `gorm:"column:team_name;type:varchar(100);not null;comment:球队名称"`
	TeamAbbr        string `gorm:"column:team_abbr;type:varchar(20);comment:球队缩写"`
	Previous        *int   `gorm:"column:previous;comment:上期排名"`
	Points          *int   `gorm:"column:points;comment:积分"`
	FirstPlaceVotes *int   `gorm:"column:first_place_votes;comment:第一名票数"`
}

// Slip 对应 slips 表，投注单；腿按 position 有序且仅属于本单，删除单时一并删除
type Slip struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	SlipUUID  string          `gorm:"column:slip_uuid;type:varchar(64);uniqueIndex;not null;comment:全局唯一ID"`
	LegsCount int             `gorm:"column:legs_count;not null;comment:腿数（1/3/5/7）"`
	Stake     decimal.Decimal `gorm:"column:stake;type:numeric(18,2);not null;comment:下注额（仅展示，不扣款）"`
	Status    SlipStatus      `gorm:"column:status;type:varchar(16);index;not null;comment:状态：PENDING/SETTLED"`
	SettledAt *time.Time      `gorm:"column:settled_at;comment:结算时间"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime;comment:创建时间"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime;comment:更新时间"`
	Legs      []Leg           `gorm:"foreignKey:SlipID;constraint:OnDelete:CASCADE"`
}

// Leg 对应 slip_legs 表；event_id 不建外键（上游赛事不一定在本地）
type Leg struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	SlipID       uint64    `gorm:"column:slip_id;not null;index;comment:所属投注单"`
	Position     int       `gorm:"column:position;not null;comment:腿序号（从1开始）"`
	EventID      string    `gorm:"column:event_id;type:varchar(32);index;not null;comment:上游赛事ID"`
	PickTeamName string    `gorm:"column:pick_team_name;type:varchar(100);not null;comment:用户选择的获胜队名"`
	Result       LegResult `gorm:"column:result;type:varchar(16);not null;comment:结果：PENDING/WIN/LOSS/PUSH"`
}

// Wallet 对应 wallets 表，单一所有者一条
type Wallet struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	Owner     string          `gorm:"column:owner;type:varchar(64);uniqueIndex;not null"`
	Balance   decimal.Decimal `gorm:"column:balance;type:numeric(18,2);not null"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// WalletTx 对应 wallet_txs 表，每次余额变动的流水（正数入账，负数出账）
type WalletTx struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	TxUUID    string          `gorm:"column:tx_uuid;type:varchar(64);uniqueIndex;not null"`
	Owner     string          `gorm:"column:owner;type:varchar(64);index;not null"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(18,2);not null"`
	Reason    string          `gorm:"column:reason;type:varchar(200)"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// SettlementRecord 结算记录表；只做审计，slips.status 仍只保存 SETTLED
type SettlementRecord struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	SlipID    uint64          `gorm:"column:slip_id;uniqueIndex;not null"`
	SlipUUID  string          `gorm:"column:slip_uuid;type:varchar(64);not null"`
	Outcome   SlipStatus      `gorm:"column:outcome;type:varchar(16);not null"` // WON / LOST
	Wins      int             `gorm:"column:wins;not null"`
	Losses    int             `gorm:"column:losses;not null"`
	Required  int             `gorm:"column:required;not null"`
	Stake     decimal.Decimal `gorm:"column:stake;type:numeric(18,2);not null"`
	Payout    decimal.Decimal `gorm:"column:payout;type:numeric(18,2);not null"` // 未开启派彩时为 0
	Legs      datatypes.JSON  `gorm:"column:legs;type:jsonb;not null"`
	SettledAt time.Time       `gorm:"column:settled_at;not null"`
}

func (Game) TableName() string             { return "games" }
func (Ranking) TableName() string          { return "rankings" }
func (Slip) TableName() string             { return "slips" }
func (Leg) TableName() string              { return "slip_legs" }
func (Wallet) TableName() string           { return "wallets" }
func (WalletTx) TableName() string         { return "wallet_txs" }
func (SettlementRecord) TableName() string { return "settlement_records" }

// AllModels 需要自动迁移的全部模型（按依赖顺序）
func AllModels() []interface{} {
	return []interface{}{
		&Game{},
		&Ranking{},
		&Slip{},
		&Leg{},
		&Wallet{},
		&WalletTx{},
		&SettlementRecord{},
	}
}
