package espn

import (
	"iter"
	"strings"

	"ParlaySync/internal/model"
)

// 状态描述关键词；上游词表不封闭，按子串启发式判断
var (
	upcomingKeywords   = []string{"sched", "pre", "upcoming", "not started"}
	finalKeywords      = []string{"final", "post", "end"}
	inProgressKeywords = []string{"progress", "half", "quarter", "delay"}
)

// Top25 优先选用的榜单（按顺序）
var preferredPolls = []string{"AP Top 25", "AFCA Coaches Poll"}

const (
	topN            = 25
	unknownTeamName = "Unknown"
	unknownPollName = "Unknown Poll"
)

// ClassifyStatus 将上游自由文本状态归类；即将开始优先于已结束判断，其余落入 unknown
func ClassifyStatus(description string) model.StatusClass {
	s := strings.ToLower(description)
	switch {
	case containsAny(s, upcomingKeywords):
		return model.StatusUpcoming
	case containsAny(s, finalKeywords):
		return model.StatusFinal
	case containsAny(s, inProgressKeywords):
		return model.StatusInProgress
	default:
		return model.StatusUnknown
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// TeamDisplayName 球队名称兜底链，永不返回空串
func TeamDisplayName(t *model.ESPNTeam) string {
	if t == nil {
		return unknownTeamName
	}
	if t.DisplayName != "" {
		return t.DisplayName
	}
	if joined := strings.TrimSpace(strings.Join(nonEmpty(t.Location, t.Name), " ")); joined != "" {
		return joined
	}
	for _, name := range []string{t.ShortDisplayName, t.School, t.Nickname, t.Slug} {
		if name != "" {
			return name
		}
	}
	return unknownTeamName
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func teamAbbr(t *model.ESPNTeam) string {
	if t == nil {
		return ""
	}
	for _, v := range []string{t.Abbreviation, t.ShortName, t.Slug} {
		if v != "" {
			return v
		}
	}
	return ""
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ParseGames 将 scoreboard 转换为 Game 序列（惰性）；主客队缺一的条目直接丢弃
func ParseGames(sb *model.ScoreboardPayload) iter.Seq[*model.Game] {
	return func(yield func(*model.Game) bool) {
		if sb == nil {
			return
		}
		var seasonYear, week *int
		if sb.Season != nil {
			seasonYear = sb.Season.Year
		}
		if sb.Week != nil {
			week = sb.Week.Number
		}
		for i := range sb.Events {
			g, ok := gameFromEvent(&sb.Events[i])
			if !ok {
				continue
			}
			g.SeasonYear = copyInt(seasonYear)
			g.Week = copyInt(week)
			if !yield(g) {
				return
			}
		}
	}
}

type side struct {
	name  string
	score *int
}

func gameFromEvent(ev *model.ESPNEvent) (*model.Game, bool) {
	var comp model.ESPNCompetition
	if len(ev.Competitions) > 0 {
		comp = ev.Competitions[0]
	}
	status := "scheduled"
	if comp.Status != nil && comp.Status.Type != nil && comp.Status.Type.Description != "" {
		status = comp.Status.Type.Description
	}

	var home, away *side
	for _, c := range comp.Competitors {
		s := &side{name: TeamDisplayName(c.Team), score: c.Score.Ptr()}
		if c.HomeAway == "home" {
			home = s
		} else {
			away = s
		}
	}
	if home == nil || away == nil {
		return nil, false
	}
	return &model.Game{
		EventID:   ev.ID,
		Status:    status,
		Start:     ev.Date,
		HomeTeam:  home.name,
		AwayTeam:  away.name,
		HomeScore: home.score,
		AwayScore: away.score,
	}, true
}

// ParseRankings 将 rankings 转换为 Ranking 序列（惰性），包含全部榜单
func ParseRankings(rj *model.RankingsPayload) iter.Seq[*model.Ranking] {
	return func(yield func(*model.Ranking) bool) {
		if rj == nil {
			return
		}
		seasonYear := 0
		if rj.Season != nil && rj.Season.Year != nil {
			seasonYear = *rj.Season.Year
		}
		for _, poll := range rj.Rankings {
			pollName := poll.Name
			if pollName == "" {
				pollName = unknownPollName
			}
			for _, r := range poll.Ranks {
				ranking := &model.Ranking{
					Poll:            pollName,
					SeasonYear:      seasonYear,
					Week:            poll.Week.Or(0),
					Rank:            r.Current.Or(0),
					TeamName:        TeamDisplayName(r.Team),
					TeamAbbr:        teamAbbr(r.Team),
					Previous:        r.Previous.Ptr(),
					Points:          r.Points.Ptr(),
					FirstPlaceVotes: r.FirstPlaceVotes.Ptr(),
				}
				if !yield(ranking) {
					return
				}
			}
		}
	}
}

// ExtractTop25 选出一份榜单的前 25 名：AP Top 25 > AFCA Coaches Poll > 第一份榜单
func ExtractTop25(rj *model.RankingsPayload) []model.TopRank {
	if rj == nil || len(rj.Rankings) == 0 {
		return []model.TopRank{}
	}
	chosen := &rj.Rankings[0]
	found := false
	for _, name := range preferredPolls {
		for i := range rj.Rankings {
			if strings.TrimSpace(rj.Rankings[i].Name) == name {
				chosen, found = &rj.Rankings[i], true
				break
			}
		}
		if found {
			break
		}
	}

	pollName := chosen.Name
	if pollName == "" {
		pollName = unknownPollName
	}
	ranks := chosen.Ranks
	if len(ranks) > topN {
		ranks = ranks[:topN]
	}
	out := make([]model.TopRank, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, model.TopRank{
			Rank:     r.Current.Or(0),
			TeamName: TeamDisplayName(r.Team),
			Poll:     pollName,
		})
	}
	return out
}

// FilterUpcoming 只保留未开赛的比赛
func FilterUpcoming(games []*model.Game) []*model.Game {
	return filterByClass(games, model.StatusUpcoming)
}

// FilterFinal 只保留已结束的比赛（进行中与未知状态不计入）
func FilterFinal(games []*model.Game) []*model.Game {
	return filterByClass(games, model.StatusFinal)
}

func filterByClass(games []*model.Game, class model.StatusClass) []*model.Game {
	out := make([]*model.Game, 0, len(games))
	for _, g := range games {
		if ClassifyStatus(g.Status) == class {
			out = append(out, g)
		}
	}
	return out
}

// SeasonWeeks 一个赛季可尝试的 (赛季类型, 周次)：常规赛 1-20 周，季后赛 1-5 周。
// 不依赖上游日历，宁可多试
func SeasonWeeks() []model.SeasonWeek {
	weeks := make([]model.SeasonWeek, 0, 25)
	for w := 1; w <= 20; w++ {
		weeks = append(weeks, model.SeasonWeek{SeasonType: model.SeasonTypeRegular, Week: w})
	}
	for w := 1; w <= 5; w++ {
		weeks = append(weeks, model.SeasonWeek{SeasonType: model.SeasonTypePostseason, Week: w})
	}
	return weeks
}
