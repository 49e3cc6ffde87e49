package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ========== ESPN 站点 API 响应结构（scoreboard / summary / rankings） ==========
// 上游字段随时可能缺失或为 null，全部按可选处理

// ScoreboardPayload GET /scoreboard 的根响应
type ScoreboardPayload struct {
	Season *ESPNSeason `json:"season"`
	Week   *ESPNWeek   `json:"week"`
	Events []ESPNEvent `json:"events"`
}

// SummaryPayload GET /summary?event= 的根响应（只取 header）
type SummaryPayload struct {
	Header *ESPNHeader `json:"header"`
}

// RankingsPayload GET /rankings 的根响应
type RankingsPayload struct {
	Season   *ESPNSeason `json:"season"`
	Rankings []ESPNPoll  `json:"rankings"`
}

type ESPNSeason struct {
	Year *int `json:"year"`
	Type *int `json:"type"`
}

type ESPNWeek struct {
	Number *int `json:"number"`
}

type ESPNHeader struct {
	ID           string            `json:"id"`
	Competitions []ESPNCompetition `json:"competitions"`
}

// ESPNEvent 单场赛事
type ESPNEvent struct {
	ID           string            `json:"id"`
	Date         string            `json:"date"`
	Name         string            `json:"name"`
	Competitions []ESPNCompetition `json:"competitions"`
}

type ESPNCompetition struct {
	ID          string           `json:"id"`
	Date        string           `json:"date"`
	Status      *ESPNStatus      `json:"status"`
	Venue       *ESPNVenue       `json:"venue"`
	Competitors []ESPNCompetitor `json:"competitors"`
}

type ESPNStatus struct {
	Type *ESPNStatusType `json:"type"`
}

// ESPNStatusType State 为机器状态（pre/in/post），Description 为自由文本
type ESPNStatusType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	State       string `json:"state"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
}

type ESPNVenue struct {
	FullName string `json:"fullName"`
}

type ESPNCompetitor struct {
	ID       string    `json:"id"`
	HomeAway string    `json:"homeAway"`
	Winner   bool      `json:"winner"`
	Score    FlexInt   `json:"score"`
	Team     *ESPNTeam `json:"team"`
}

// ESPNTeam 球队；不同接口填充的名称字段不一致
type ESPNTeam struct {
	ID               string `json:"id"`
	DisplayName      string `json:"displayName"`
	Location         string `json:"location"`
	Name             string `json:"name"`
	ShortDisplayName string `json:"shortDisplayName"`
	School           string `json:"school"`
	Nickname         string `json:"nickname"`
	Slug             string `json:"slug"`
	Abbreviation     string `json:"abbreviation"`
	ShortName        string `json:"shortName"`
}

// ESPNPoll 一份榜单
type ESPNPoll struct {
	Name      string     `json:"name"`
	ShortName string     `json:"shortName"`
	Week      FlexInt    `json:"week"`
	Ranks     []ESPNRank `json:"ranks"`
}

type ESPNRank struct {
	Current         FlexInt   `json:"current"`
	Previous        FlexInt   `json:"previous"`
	Points          FlexInt   `json:"points"`
	FirstPlaceVotes FlexInt   `json:"firstPlaceVotes"`
	Team            *ESPNTeam `json:"team"`
}

// FlexInt 宽松整数：接受数字、数字字符串、空串与 null（后两者视为缺失）
type FlexInt struct {
	Value int
	Valid bool
}

// UnmarshalJSON 实现 json.Unmarshaler；无法识别的值按缺失处理，不报错
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	*f = FlexInt{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}
	if n, err := strconv.Atoi(raw); err == nil {
		f.Value, f.Valid = n, true
		return nil
	}
	if fl, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(fl) && !math.IsInf(fl, 0) {
		f.Value, f.Valid = int(fl), true
	}
	return nil
}

// Ptr 缺失时返回 nil
func (f FlexInt) Ptr() *int {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// Or 缺失时返回默认值
func (f FlexInt) Or(def int) int {
	if !f.Valid {
		return def
	}
	return f.Value
}
