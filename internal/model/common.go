package model

// SlipStatus 投注单状态。WON/LOST 只在一次结算内部短暂出现，落库与对外只有 PENDING/SETTLED
type SlipStatus string

const (
	SlipPending SlipStatus = "PENDING"
	SlipWon     SlipStatus = "WON"
	SlipLost    SlipStatus = "LOST"
	SlipSettled SlipStatus = "SETTLED"
)

// LegResult 单腿结果
type LegResult string

const (
	LegPending LegResult = "PENDING"
	LegWin     LegResult = "WIN"
	LegLoss    LegResult = "LOSS"
	LegPush    LegResult = "PUSH" // 预留：平局/作废，目前不会产生
)

// Terminal WIN/LOSS 为终态，结算时不再重新查询
func (r LegResult) Terminal() bool {
	return r == LegWin || r == LegLoss
}

// AllowedLegCounts 允许的腿数，均为奇数，多数胜出不会出现平局
var AllowedLegCounts = []int{1, 3, 5, 7}

// IsAllowedLegCount 腿数是否合法
func IsAllowedLegCount(n int) bool {
	for _, c := range AllowedLegCounts {
		if c == n {
			return true
		}
	}
	return false
}

// RequiredWins 严格多数所需的胜腿数
func RequiredWins(legsCount int) int {
	return legsCount/2 + 1
}

// RequiredWins 本单胜出所需胜腿数
func (s *Slip) RequiredWins() int {
	return RequiredWins(s.LegsCount)
}

// WinsLosses 统计已判定的胜/负腿数
func (s *Slip) WinsLosses() (wins, losses int) {
	for _, l := range s.Legs {
		switch l.Result {
		case LegWin:
			wins++
		case LegLoss:
			losses++
		}
	}
	return wins, losses
}

// AllLegsTerminal 所有腿均已判定
func (s *Slip) AllLegsTerminal() bool {
	for _, l := range s.Legs {
		if !l.Result.Terminal() {
			return false
		}
	}
	return len(s.Legs) > 0
}

// Outcome 由腿结果推导的输赢；slips.status 不保存 WON/LOST，以腿结果为准
func (s *Slip) Outcome() SlipStatus {
	if !s.AllLegsTerminal() {
		return SlipPending
	}
	wins, _ := s.WinsLosses()
	if wins >= s.RequiredWins() {
		return SlipWon
	}
	return SlipLost
}

// StatusClass 上游自由文本状态的启发式分类（上游词表不封闭，Unknown 为独立结果）
type StatusClass string

const (
	StatusUpcoming   StatusClass = "upcoming"
	StatusInProgress StatusClass = "in_progress"
	StatusFinal      StatusClass = "final"
	StatusUnknown    StatusClass = "unknown"
)

// 上游比赛机器状态（summary 中 competitions[0].status.type.state）
const (
	GameStatePre  = "pre"
	GameStateIn   = "in"
	GameStatePost = "post"
)

// SeasonType 上游赛季类型代码
const (
	SeasonTypeRegular    = 2
	SeasonTypePostseason = 3
)

// SeasonWeek 赛季中的一个 (赛季类型, 周次) 组合
type SeasonWeek struct {
	SeasonType int `json:"season_type"`
	Week       int `json:"week"`
}

// TopRank Top25 榜单中的一行
type TopRank struct {
	Rank     int    `json:"rank"`
	TeamName string `json:"team_name"`
	Poll     string `json:"poll"`
}

// Resolution 单场比赛的结果解析
type Resolution struct {
	EventID   string `json:"event_id"`
	Winner    string `json:"winner,omitempty"`
	HasWinner bool   `json:"has_winner"`
	Final     bool   `json:"final"` // 仅当机器状态为 post
	State     string `json:"state"`
}

// GameSummary 单场比赛摘要（展示用）
type GameSummary struct {
	EventID     string              `json:"event_id"`
	Status      string              `json:"status"`
	State       string              `json:"state"`
	Date        string              `json:"date"`
	Venue       string              `json:"venue"`
	Competitors []SummaryCompetitor `json:"competitors"`
}

// SummaryCompetitor 摘要中的一支参赛队
type SummaryCompetitor struct {
	HomeAway string `json:"home_away"`
	Team     string `json:"team"`
	Score    *int   `json:"score,omitempty"`
	Winner   bool   `json:"winner"`
}
