package espn

import (
	"strings"

	"ParlaySync/internal/model"
)

func firstCompetition(s *model.SummaryPayload) (*model.ESPNCompetition, bool) {
	if s == nil || s.Header == nil || len(s.Header.Competitions) == 0 {
		return nil, false
	}
	return &s.Header.Competitions[0], true
}

func statusType(c *model.ESPNCompetition) model.ESPNStatusType {
	if c.Status == nil || c.Status.Type == nil {
		return model.ESPNStatusType{}
	}
	return *c.Status.Type
}

func winnerName(t *model.ESPNTeam) string {
	if t == nil {
		return ""
	}
	for _, name := range []string{t.DisplayName, t.ShortDisplayName, t.Name} {
		if name != "" {
			return name
		}
	}
	return ""
}

// ResolveSummary 从 summary 推导 (胜者, 是否完赛)。
// 仅当恰好一支队伍带 winner 标记时才有胜者；完赛只看机器状态 state == "post"，
// 与展示用的 ClassifyStatus 无关。没有 competition 数据视为暂不可判定
func ResolveSummary(eventID string, s *model.SummaryPayload) model.Resolution {
	res := model.Resolution{EventID: eventID}
	comp, ok := firstCompetition(s)
	if !ok {
		return res
	}
	st := statusType(comp)
	res.State = strings.ToLower(st.State)
	res.Final = res.State == model.GameStatePost

	var winners []*model.ESPNTeam
	for i := range comp.Competitors {
		if comp.Competitors[i].Winner {
			winners = append(winners, comp.Competitors[i].Team)
		}
	}
	if len(winners) == 1 {
		if name := winnerName(winners[0]); name != "" {
			res.Winner, res.HasWinner = name, true
		}
	}
	return res
}

// GameState 机器状态原值（pre/in/post），无 competition 数据时为空串
func GameState(s *model.SummaryPayload) string {
	comp, ok := firstCompetition(s)
	if !ok {
		return ""
	}
	return statusType(comp).State
}

// BuildSummary 展示用摘要；没有 competition 数据时返回 false
func BuildSummary(eventID string, s *model.SummaryPayload) (*model.GameSummary, bool) {
	comp, ok := firstCompetition(s)
	if !ok {
		return nil, false
	}
	st := statusType(comp)
	venue := "Unknown"
	if comp.Venue != nil && comp.Venue.FullName != "" {
		venue = comp.Venue.FullName
	}
	out := &model.GameSummary{
		EventID:     eventID,
		Status:      st.Description,
		State:       st.State,
		Date:        comp.Date,
		Venue:       venue,
		Competitors: make([]model.SummaryCompetitor, 0, len(comp.Competitors)),
	}
	for _, c := range comp.Competitors {
		out.Competitors = append(out.Competitors, model.SummaryCompetitor{
			HomeAway: c.HomeAway,
			Team:     TeamDisplayName(c.Team),
			Score:    c.Score.Ptr(),
			Winner:   c.Winner,
		})
	}
	return out, true
}
