package service

import (
	"ParlaySync/internal/adapter/espn"
	"ParlaySync/internal/model"

	"gorm.io/datatypes"
)

// LegItem 投注腿展示项
type LegItem struct {
	Position int    `json:"position"`
	EventID  string `json:"event_id"`
	Pick     string `json:"pick"`
	Result   string `json:"result"`
}

// SlipItem 投注单展示项；outcome 由腿结果推导（WON/LOST/PENDING）
type SlipItem struct {
	ID           uint64    `json:"id"`
	SlipUUID     string    `json:"slip_uuid"`
	Status       string    `json:"status"`
	Outcome      string    `json:"outcome"`
	LegsCount    int       `json:"legs_count"`
	Stake        string    `json:"stake"`
	Wins         int       `json:"wins"`
	Losses       int       `json:"losses"`
	RequiredWins int       `json:"required_wins"`
	CreatedAt    int64     `json:"created_at"`
	SettledAt    *int64    `json:"settled_at,omitempty"`
	Legs         []LegItem `json:"legs"`
}

// NewSlipItem 转换为展示项
func NewSlipItem(s *model.Slip) SlipItem {
	wins, losses := s.WinsLosses()
	item := SlipItem{
		ID:           s.ID,
		SlipUUID:     s.SlipUUID,
		Status:       string(s.Status),
		Outcome:      string(s.Outcome()),
		LegsCount:    s.LegsCount,
		Stake:        s.Stake.StringFixed(2),
		Wins:         wins,
		Losses:       losses,
		RequiredWins: s.RequiredWins(),
		CreatedAt:    s.CreatedAt.Unix(),
		Legs:         make([]LegItem, 0, len(s.Legs)),
	}
	if s.SettledAt != nil {
		ts := s.SettledAt.Unix()
		item.SettledAt = &ts
	}
	for _, l := range s.Legs {
		item.Legs = append(item.Legs, LegItem{
			Position: l.Position,
			EventID:  l.EventID,
			Pick:     l.PickTeamName,
			Result:   string(l.Result),
		})
	}
	return item
}

// NewSlipItems 批量转换
func NewSlipItems(slips []*model.Slip) []SlipItem {
	out := make([]SlipItem, 0, len(slips))
	for _, s := range slips {
		out = append(out, NewSlipItem(s))
	}
	return out
}

// SettlementItem 结算记录展示项；legs 为结算时的腿快照
type SettlementItem struct {
	Outcome   string         `json:"outcome"`
	Wins      int            `json:"wins"`
	Losses    int            `json:"losses"`
	Required  int            `json:"required"`
	Stake     string         `json:"stake"`
	Payout    string         `json:"payout"`
	Legs      datatypes.JSON `json:"legs"`
	SettledAt int64          `json:"settled_at"`
}

// SlipDetail 投注单详情，已结算时附带结算记录
type SlipDetail struct {
	SlipItem
	Settlement *SettlementItem `json:"settlement,omitempty"`
}

// NewSlipDetail rec 为 nil 表示尚未结算
func NewSlipDetail(s *model.Slip, rec *model.SettlementRecord) SlipDetail {
	d := SlipDetail{SlipItem: NewSlipItem(s)}
	if rec != nil {
		d.Settlement = &SettlementItem{
			Outcome:   string(rec.Outcome),
			Wins:      rec.Wins,
			Losses:    rec.Losses,
			Required:  rec.Required,
			Stake:     rec.Stake.StringFixed(2),
			Payout:    rec.Payout.StringFixed(2),
			Legs:      rec.Legs,
			SettledAt: rec.SettledAt.Unix(),
		}
	}
	return d
}

// GameItem 赛程展示项
type GameItem struct {
	EventID    string `json:"event_id"`
	Week       *int   `json:"week,omitempty"`
	SeasonYear *int   `json:"season_year,omitempty"`
	Status     string `json:"status"`
	Class      string `json:"class"`
	Start      string `json:"start"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	HomeScore  *int   `json:"home_score,omitempty"`
	AwayScore  *int   `json:"away_score,omitempty"`
	Label      string `json:"label"`
}

// NewGameItems 转换为展示项，附带状态分类与单行描述
func NewGameItems(games []*model.Game) []GameItem {
	out := make([]GameItem, 0, len(games))
	for _, g := range games {
		out = append(out, GameItem{
			EventID:    g.EventID,
			Week:       g.Week,
			SeasonYear: g.SeasonYear,
			Status:     g.Status,
			Class:      string(espn.ClassifyStatus(g.Status)),
			Start:      g.Start,
			HomeTeam:   g.HomeTeam,
			AwayTeam:   g.AwayTeam,
			HomeScore:  g.HomeScore,
			AwayScore:  g.AwayScore,
			Label:      g.Label(),
		})
	}
	return out
}

// RankingItem 排名展示项
type RankingItem struct {
	Poll            string `json:"poll"`
	SeasonYear      int    `json:"season_year"`
	Week            int    `json:"week"`
	Rank            int    `json:"rank"`
	TeamName        string `json:"team_name"`
	TeamAbbr        string `json:"team_abbr,omitempty"`
	Previous        *int   `json:"previous,omitempty"`
	Points          *int   `json:"points,omitempty"`
	FirstPlaceVotes *int   `json:"first_place_votes,omitempty"`
}

// NewRankingItems 批量转换
func NewRankingItems(ranks []*model.Ranking) []RankingItem {
	out := make([]RankingItem, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, RankingItem{
			Poll:            r.Poll,
			SeasonYear:      r.SeasonYear,
			Week:            r.Week,
			Rank:            r.Rank,
			TeamName:        r.TeamName,
			TeamAbbr:        r.TeamAbbr,
			Previous:        r.Previous,
			Points:          r.Points,
			FirstPlaceVotes: r.FirstPlaceVotes,
		})
	}
	return out
}

// WalletTxItem 钱包流水展示项
type WalletTxItem struct {
	TxUUID    string `json:"tx_uuid"`
	Amount    string `json:"amount"`
	Reason    string `json:"reason"`
	CreatedAt int64  `json:"created_at"`
}

// NewWalletTxItems 批量转换
func NewWalletTxItems(txs []*model.WalletTx) []WalletTxItem {
	out := make([]WalletTxItem, 0, len(txs))
	for _, t := range txs {
		out = append(out, WalletTxItem{
			TxUUID:    t.TxUUID,
			Amount:    t.Amount.StringFixed(2),
			Reason:    t.Reason,
			CreatedAt: t.CreatedAt.Unix(),
		})
	}
	return out
}
